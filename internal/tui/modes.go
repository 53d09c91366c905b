package tui

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeEdit
	ModeFileInput
	ModeConfirm
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeEdit:
		return "EDIT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSaveText
)

func (op FileOperation) String() string {
	switch op {
	case FileOpSave:
		return "Save"
	case FileOpOpen:
		return "Open"
	case FileOpSavePNG:
		return "Export PNG"
	case FileOpSaveText:
		return "Export text"
	default:
		return "File"
	}
}

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteEdge
	ConfirmQuit
	ConfirmClear
	ConfirmOverwriteFile
)

const paletteWidth = 14

// Fields of the property editor, in tab order.
const (
	fieldLabel = iota
	fieldDescription
	fieldColor
)
