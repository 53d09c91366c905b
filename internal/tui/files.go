package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/travisdwitt/flowcanvas/internal/export"
	"github.com/travisdwitt/flowcanvas/internal/storage"
)

func (m *Model) startFileInput(op FileOperation) {
	m.zPanMode = false
	m.mode = ModeFileInput
	m.fileOp = op
	m.clearMessages()
	m.fileList = nil
	m.selectedFileIndex = -1

	name := ""
	switch op {
	case FileOpSave:
		if m.filename != "" {
			name = strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
		}
	case FileOpSavePNG, FileOpSaveText:
		name = "flowchart"
	case FileOpOpen:
		m.scanFiles()
		if len(m.fileList) > 0 {
			m.selectedFileIndex = 0
			name = displayName(m.fileList[0])
		}
	}
	m.fileInput.SetValue(name)
	m.fileInput.CursorEnd()
	m.fileInput.Focus()
}

func (m *Model) scanFiles() {
	dir := m.cfg.SaveDirectory
	files, err := storage.ListFiles(dir)
	if err != nil {
		m.fail("list files", err)
		return
	}
	m.fileList = files
}

func displayName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

func (m Model) handleFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.fileInput.Blur()
		m.errorMessage = ""
		return m, nil
	case "up", "down":
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			n := len(m.fileList)
			if msg.String() == "up" {
				m.selectedFileIndex = (m.selectedFileIndex - 1 + n) % n
			} else {
				m.selectedFileIndex = (m.selectedFileIndex + 1) % n
			}
			m.fileInput.SetValue(displayName(m.fileList[m.selectedFileIndex]))
			m.fileInput.CursorEnd()
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.fileInput.Value())
		if name == "" {
			m.errorMessage = "filename is required"
			return m, nil
		}
		m.submitFile(name)
		return m, nil
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func withExt(name, ext string) string {
	if filepath.Ext(name) == "" {
		return name + ext
	}
	return name
}

func (m *Model) submitFile(name string) {
	switch m.fileOp {
	case FileOpSave:
		path := m.cfg.GetSavePath(withExt(name, storage.Extension))
		if _, err := os.Stat(path); err == nil && path != m.filename && m.cfg.Confirmations {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
		m.save(path)

	case FileOpOpen:
		path := m.cfg.GetSavePath(name)
		if _, err := os.Stat(path); err != nil {
			for _, ext := range []string{".yaml", ".yml"} {
				if _, err := os.Stat(path + ext); err == nil {
					path += ext
					break
				}
			}
		}
		d, t, err := storage.LoadFile(path)
		if err != nil {
			m.fail("open", err)
			return
		}
		m.session.Load(d, t)
		m.filename = path
		m.finishFile(fmt.Sprintf("Opened %s", path))

	case FileOpSavePNG:
		path := m.cfg.GetSavePath(withExt(name, ".png"))
		err := export.PNG(path, m.session.Snapshot(), export.Options{
			CharWidth:  float64(m.cfg.Export.CharWidth),
			CharHeight: float64(m.cfg.Export.CharHeight),
		})
		if err != nil {
			m.fail("export png", err)
			return
		}
		m.finishFile(fmt.Sprintf("Exported %s", absPath(path)))

	case FileOpSaveText:
		path := m.cfg.GetSavePath(withExt(name, ".txt"))
		if err := m.exportText(path); err != nil {
			m.fail("export text", err)
			return
		}
		m.finishFile(fmt.Sprintf("Exported %s", absPath(path)))
	}
}

func (m *Model) save(path string) {
	if err := storage.SaveFile(path, m.session.Snapshot(), m.session.Transform()); err != nil {
		m.fail("save", err)
		m.mode = ModeFileInput
		return
	}
	m.filename = path
	m.finishFile(fmt.Sprintf("Saved to %s", absPath(path)))
}

// exportText writes the canvas exactly as it is on screen, without the
// cursor or selection.
func (m *Model) exportText(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, h := m.canvasSize()
	return export.Text(f, m.session.Snapshot(), m.session.Transform(), w, h)
}

func (m *Model) finishFile(msg string) {
	m.mode = ModeNormal
	m.fileInput.Blur()
	m.errorMessage = ""
	m.successMessage = msg
	m.log.Info("file", "op", m.fileOp.String(), "msg", msg)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
