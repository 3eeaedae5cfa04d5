package fileio

import (
	"errors"
	"io/fs"
	"os"
)

// CodeIOError is the text code the command surface reports for IOError.
const CodeIOError = "IO_ERROR"

var (
	// ErrInvalidText is reported when a file's bytes are not valid UTF-8.
	ErrInvalidText = errors.New("stream did not contain valid UTF-8")
	// ErrFileTooLarge is reported when a file exceeds Config.MaxReadBytes.
	ErrFileTooLarge = errors.New("file exceeds the maximum readable size")
)

// IOError describes a failed document read or write. Its message is the
// operating system's description of the failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path + ": unknown error"
	}
	return e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// IsNotExist reports whether the failure was a missing file.
func (e *IOError) IsNotExist() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

func newIOError(op, path string, err error) *IOError {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	if !errors.As(err, &pathErr) && !errors.As(err, &linkErr) {
		err = &fs.PathError{Op: op, Path: path, Err: err}
	}
	return &IOError{Op: op, Path: path, Err: err}
}
