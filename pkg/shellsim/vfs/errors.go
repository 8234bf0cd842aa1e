package vfs

import (
	"errors"
	"io/fs"
)

// --- Error Types ---

var (
	// ErrNotFound is returned when a path segment or entry does not exist.
	// It is fs.ErrNotExist so callers may test against either.
	ErrNotFound = fs.ErrNotExist
	// ErrNotADirectory is returned when a directory was expected but a file was found.
	ErrNotADirectory = errors.New("not a directory")
	// ErrIsADirectory is returned when a file was expected but a directory was found.
	ErrIsADirectory = errors.New("is a directory")
	// ErrInvalidName is returned for empty names, names containing a path
	// separator, and the special names "." and "..".
	ErrInvalidName = errors.New("invalid name")
)

// PathError records a failed tree operation and the path it was applied to.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
