package schema

// TabSnapshot is a read-only view of one tab.
type TabSnapshot struct {
	Index  int      `yaml:"index"`
	Label  string   `yaml:"label"`
	Active bool     `yaml:"active"`
	Buffer BufferID `yaml:"buffer"`
}

// BufferSnapshot is a read-only view of one buffer's identity.
type BufferSnapshot struct {
	ID       BufferID `yaml:"id"`
	Name     string   `yaml:"name"`
	Path     string   `yaml:"path,omitempty"`
	FromFile bool     `yaml:"from_file"`
	Size     int      `yaml:"size"`
}

// WindowSnapshot captures the tab bar and selection of a window.
type WindowSnapshot struct {
	ID       WindowID      `yaml:"id"`
	Name     string        `yaml:"name"`
	Tabs     []TabSnapshot `yaml:"tabs"`
	Selected int           `yaml:"selected"`
	// HasSelection is false while the window holds no buffers.
	HasSelection bool `yaml:"has_selection"`
}
