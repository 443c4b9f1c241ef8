package core

// Surface is the presentation layer a Window drives. Calls arrive
// synchronously, in selection order, while the Window is locked, so an
// implementation must not call back into the Window.
type Surface interface {
	// InsertTab adds a tab control at the end of the tab bar.
	InsertTab(tab TabView)
	// SetTabActive toggles the active styling of the tab at index.
	SetTabActive(index int, active bool)
	// BindContent points the editing surface at the buffer at index.
	BindContent(index int, content *Content)
}

type nopSurface struct{}

func (nopSurface) InsertTab(TabView)         {}
func (nopSurface) SetTabActive(int, bool)    {}
func (nopSurface) BindContent(int, *Content) {}
