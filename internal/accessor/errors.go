package accessor

import (
	"errors"
	"fmt"

	"fieldpath/internal/pathexpr"
)

var (
	// ErrInvalidPathSyntax is returned for paths with malformed bracket groups.
	ErrInvalidPathSyntax = pathexpr.ErrInvalidPathSyntax

	ErrAttributeNotFound = errors.New("attribute not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotIndexable      = errors.New("value is not a sequence")
	ErrNotMapping        = errors.New("value is not a string-keyed mapping")
	ErrNotSettable       = errors.New("target is not settable")
	ErrTypeMismatch      = errors.New("value type does not match target")
)

// PathError records the path and the segment at which traversal failed.
type PathError struct {
	Op      string // "get" or "set"
	Path    string // full path as given by the caller
	Segment string // segment being resolved, empty for syntax errors
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("%s %q: segment %q: %v", e.Op, e.Path, e.Segment, e.Err)
	}

	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// segmentError carries the failing segment up to the public entry points,
// which turn it into a PathError.
type segmentError struct {
	segment string
	err     error
}

func (e *segmentError) Error() string {
	return e.err.Error()
}

func (e *segmentError) Unwrap() error {
	return e.err
}

func atSegment(segment string, err error) error {
	if err == nil {
		return nil
	}

	return &segmentError{segment: segment, err: err}
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var se *segmentError
	if errors.As(err, &se) {
		return &PathError{Op: op, Path: path, Segment: se.segment, Err: se.err}
	}

	return &PathError{Op: op, Path: path, Err: err}
}
