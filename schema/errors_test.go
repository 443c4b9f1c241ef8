package schema

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestIOErrorMatchesSentinelAndCause(t *testing.T) {
	err := error(&IOError{Op: "open", Path: "/a/b", Kind: IONotFound, Err: fs.ErrNotExist})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO match")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected cause to unwrap")
	}
	if errors.Is(err, ErrDecode) {
		t.Fatalf("did not expect ErrDecode match")
	}
	if !strings.Contains(err.Error(), "/a/b") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestDecodeErrorMatchesSentinel(t *testing.T) {
	err := error(&DecodeError{Path: "bad.txt", Offset: 3})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode match")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Offset != 3 {
		t.Fatalf("expected DecodeError with offset 3, got %v", err)
	}
	if !strings.Contains(err.Error(), "byte 3") {
		t.Fatalf("expected offset in message, got %q", err.Error())
	}
}
