package core

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
	"unicode/utf8"

	"pkt.systems/simry/schema"
)

// Content is the mutable text of a buffer. Readers share access; a writer
// excludes everyone else.
type Content struct {
	mu   sync.RWMutex
	text string
}

// Text returns the current text.
func (c *Content) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.text
}

// Set replaces the text.
func (c *Content) Set(text string) {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}

// Len returns the text length in bytes.
func (c *Content) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.text)
}

// source is present iff the buffer was loaded from disk.
type source struct {
	path string
	file *os.File
}

// Buffer is one unit of editable text, optionally backed by a file.
type Buffer struct {
	id      schema.BufferID
	content *Content
	source  *source
}

// NewEmptyBuffer returns a buffer with no text and no source file.
func NewEmptyBuffer() *Buffer {
	return &Buffer{id: newBufferID(), content: &Content{}}
}

// NewBufferFromPath reads the whole file at path into a new buffer.
// The file must hold valid UTF-8; failures are *schema.IOError or
// *schema.DecodeError and no buffer is returned.
func NewBufferFromPath(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, newIOError("stat", path, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, &schema.IOError{Op: "read", Path: path, Kind: schema.IOOther, Err: errors.New("is a directory")}
	}

	var data bytes.Buffer
	if size := info.Size(); size > 0 && int64(int(size)) == size {
		data.Grow(int(size))
	}
	if _, err := io.Copy(&data, file); err != nil {
		_ = file.Close()
		return nil, newIOError("read", path, err)
	}
	raw := data.Bytes()
	if !utf8.Valid(raw) {
		_ = file.Close()
		return nil, &schema.DecodeError{Path: path, Offset: invalidUTF8Offset(raw)}
	}

	return &Buffer{
		id:      newBufferID(),
		content: &Content{text: string(raw)},
		source:  &source{path: path, file: file},
	}, nil
}

// ID returns the buffer's identifier.
func (b *Buffer) ID() schema.BufferID {
	return b.id
}

// DisplayName is the source path as given, or "untitled".
func (b *Buffer) DisplayName() string {
	if b.source != nil {
		return b.source.path
	}
	return schema.UntitledName
}

// Path returns the source path and whether the buffer has one.
func (b *Buffer) Path() (string, bool) {
	if b.source == nil {
		return "", false
	}
	return b.source.path, true
}

// Content returns the handle a display surface binds to.
func (b *Buffer) Content() *Content {
	return b.content
}

// Ref names the buffer for logs and events.
func (b *Buffer) Ref() schema.BufferRef {
	return schema.BufferRef{ID: b.id, Name: b.DisplayName()}
}

// Snapshot returns a read-only view of the buffer.
func (b *Buffer) Snapshot() schema.BufferSnapshot {
	path, ok := b.Path()
	return schema.BufferSnapshot{
		ID:       b.id,
		Name:     b.DisplayName(),
		Path:     path,
		FromFile: ok,
		Size:     b.content.Len(),
	}
}

// Close releases the source file handle, if any. Close is idempotent.
func (b *Buffer) Close() error {
	if b.source == nil || b.source.file == nil {
		return nil
	}
	err := b.source.file.Close()
	b.source.file = nil
	return err
}

func newIOError(op, path string, err error) *schema.IOError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	kind := schema.IOOther
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = schema.IONotFound
	case errors.Is(err, fs.ErrPermission):
		kind = schema.IOPermissionDenied
	}
	return &schema.IOError{Op: op, Path: path, Kind: kind, Err: err}
}

func invalidUTF8Offset(data []byte) int {
	offset := 0
	for offset < len(data) {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return offset
}
