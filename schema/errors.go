package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches any *IOError via errors.Is.
	ErrIO = errors.New("io error")
	// ErrDecode matches any *DecodeError via errors.Is.
	ErrDecode = errors.New("decode error")
	// ErrIndexOutOfRange indicates a buffer index outside the window's buffers.
	ErrIndexOutOfRange = errors.New("buffer index out of range")
	// ErrInvalidIntent indicates an intent with an unknown kind or missing path.
	ErrInvalidIntent = errors.New("invalid intent")
)

// IOErrorKind classifies a failed file operation.
type IOErrorKind string

const (
	// IONotFound indicates the file does not exist.
	IONotFound IOErrorKind = "not_found"
	// IOPermissionDenied indicates the caller may not open the file.
	IOPermissionDenied IOErrorKind = "permission_denied"
	// IOOther covers every other OS-level failure.
	IOOther IOErrorKind = "other"
)

// IOError reports a failure to open or read a buffer's source file.
type IOError struct {
	Op   string
	Path string
	Kind IOErrorKind
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// DecodeError reports file contents that are not valid UTF-8.
type DecodeError struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: invalid utf-8 at byte %d", e.Path, e.Offset)
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
