package schema

// WindowEventType describes a window state change.
type WindowEventType string

const (
	// WindowEventBufferAdded indicates a buffer and its tab were appended.
	WindowEventBufferAdded WindowEventType = "buffer_added"
	// WindowEventTabDeactivated indicates the previously selected tab lost its active mark.
	WindowEventTabDeactivated WindowEventType = "tab_deactivated"
	// WindowEventTabActivated indicates a tab was marked active.
	WindowEventTabActivated WindowEventType = "tab_activated"
	// WindowEventBufferSelected indicates the display surface now shows a buffer.
	WindowEventBufferSelected WindowEventType = "buffer_selected"
	// WindowEventOpenFailed indicates a file could not be opened into a buffer.
	WindowEventOpenFailed WindowEventType = "open_failed"
)

// WindowEvent represents a change to a window's buffers or selection.
type WindowEvent struct {
	WindowID WindowID
	Type     WindowEventType
	Index    int
	Tab      TabSnapshot
	Buffer   BufferRef
	Path     string
	Err      string
}
