package schema

// IntentKind names a user request entering the window from the presentation layer.
type IntentKind string

const (
	// IntentSelect asks the window to select the buffer at Index.
	IntentSelect IntentKind = "select"
	// IntentOpen asks the window to open the file at Path.
	IntentOpen IntentKind = "open"
	// IntentNew asks the window to add an empty buffer.
	IntentNew IntentKind = "new"
)

// Intent is a request emitted by tabs, menus or dialogs.
type Intent struct {
	Kind   IntentKind
	Index  int
	Path   string
	Select bool
}

// SelectIntent returns the intent a tab emits when clicked.
func SelectIntent(index int) Intent {
	return Intent{Kind: IntentSelect, Index: index}
}

// OpenIntent returns an intent to open path.
func OpenIntent(path string, selectIt bool) Intent {
	return Intent{Kind: IntentOpen, Path: path, Select: selectIt}
}

// NewIntent returns an intent to add an empty buffer.
func NewIntent(selectIt bool) Intent {
	return Intent{Kind: IntentNew, Select: selectIt}
}
