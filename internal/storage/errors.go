package storage

import "errors"

// ErrInvalidFormat is returned when a file is not a flowcanvas document.
var ErrInvalidFormat = errors.New("invalid diagram file")

// ErrUnsupportedVersion is returned for documents written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported diagram file version")
