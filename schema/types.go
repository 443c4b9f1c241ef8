package schema

// WindowID identifies an editor window.
type WindowID string

// BufferID identifies a buffer for logs and events. Tabs and buffers are
// correlated by position, not by this id.
type BufferID string

// UntitledName is the display name of a buffer that has no source file.
const UntitledName = "untitled"

// BufferRef names a buffer in logs and events.
type BufferRef struct {
	ID   BufferID
	Name string
}
