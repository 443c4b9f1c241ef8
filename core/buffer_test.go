package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pkt.systems/simry/schema"
)

func TestEmptyBufferIsUntitled(t *testing.T) {
	b := NewEmptyBuffer()
	if got := b.DisplayName(); got != "untitled" {
		t.Fatalf("expected untitled, got %q", got)
	}
	if got := b.Content().Text(); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
	if _, ok := b.Path(); ok {
		t.Fatalf("expected no source path")
	}
	if b.ID() == "" {
		t.Fatalf("expected buffer id")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close empty buffer: %v", err)
	}
}

func TestBufferFromPathReadsFile(t *testing.T) {
	path := writeFile(t, "c.txt", []byte("héllo\nworld\n"))
	b, err := NewBufferFromPath(path)
	if err != nil {
		t.Fatalf("from path: %v", err)
	}
	defer b.Close()
	if got := b.Content().Text(); got != "héllo\nworld\n" {
		t.Fatalf("unexpected content %q", got)
	}
	if got := b.DisplayName(); got != path {
		t.Fatalf("expected display name %q, got %q", path, got)
	}
	snap := b.Snapshot()
	if !snap.FromFile || snap.Path != path || snap.Size != len("héllo\nworld\n") {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestBufferDisplayNameKeepsPathAsGiven(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Chdir(dir)
	b, err := NewBufferFromPath("./c.txt")
	if err != nil {
		t.Fatalf("from path: %v", err)
	}
	defer b.Close()
	if got := b.DisplayName(); got != "./c.txt" {
		t.Fatalf("expected path as given, got %q", got)
	}
}

func TestBufferFromPathEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)
	b, err := NewBufferFromPath(path)
	if err != nil {
		t.Fatalf("from path: %v", err)
	}
	defer b.Close()
	if b.Content().Len() != 0 {
		t.Fatalf("expected empty content")
	}
	if b.DisplayName() != path {
		t.Fatalf("expected file-backed name")
	}
}

func TestBufferFromPathNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	b, err := NewBufferFromPath(path)
	if b != nil {
		t.Fatalf("expected no buffer")
	}
	var ioErr *schema.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Kind != schema.IONotFound {
		t.Fatalf("expected not found, got %s", ioErr.Kind)
	}
	if !errors.Is(err, fs.ErrNotExist) || !errors.Is(err, schema.ErrIO) {
		t.Fatalf("expected error to match fs.ErrNotExist and ErrIO: %v", err)
	}
}

func TestBufferFromPathPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	path := writeFile(t, "locked.txt", []byte("secret"))
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	_, err := NewBufferFromPath(path)
	var ioErr *schema.IOError
	if !errors.As(err, &ioErr) || ioErr.Kind != schema.IOPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestBufferFromPathDirectory(t *testing.T) {
	_, err := NewBufferFromPath(t.TempDir())
	var ioErr *schema.IOError
	if !errors.As(err, &ioErr) || ioErr.Kind != schema.IOOther {
		t.Fatalf("expected other io error for directory, got %v", err)
	}
}

func TestBufferFromPathInvalidUTF8(t *testing.T) {
	path := writeFile(t, "bad.txt", []byte{'o', 'k', 0xff, 'x'})
	b, err := NewBufferFromPath(path)
	if b != nil {
		t.Fatalf("expected no buffer")
	}
	var decodeErr *schema.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", decodeErr.Offset)
	}
	if decodeErr.Path != path {
		t.Fatalf("expected path %q, got %q", path, decodeErr.Path)
	}
}

func TestBufferCloseIsIdempotent(t *testing.T) {
	b, err := NewBufferFromPath(writeFile(t, "a.txt", []byte("a")))
	if err != nil {
		t.Fatalf("from path: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if b.Content().Text() != "a" {
		t.Fatalf("expected content to survive close")
	}
}

func TestContentConcurrentAccess(t *testing.T) {
	c := &Content{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("abc")
		}()
		go func() {
			defer wg.Done()
			if got := c.Text(); got != "" && got != "abc" {
				t.Errorf("torn read %q", got)
			}
		}()
	}
	wg.Wait()
	if c.Len() != 3 {
		t.Fatalf("expected len 3, got %d", c.Len())
	}
}

func TestInvalidUTF8Offset(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want int
	}{
		{"leading", []byte{0x80, 'a'}, 0},
		{"after-multibyte", []byte("é\xc3"), 2},
		{"valid", []byte("abc"), 3},
	}
	for _, tc := range cases {
		if got := invalidUTF8Offset(tc.data); got != tc.want {
			t.Fatalf("%s: offset = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
