package schema

// WindowConfig defines defaults and limits for a window.
type WindowConfig struct {
	Name string
	// IntentDepth is the capacity of the intent queue.
	IntentDepth int
}

const (
	// DefaultWindowName is used when no name is configured.
	DefaultWindowName = "simry"
	// DefaultIntentDepth is the default intent queue capacity.
	DefaultIntentDepth = 64
)
