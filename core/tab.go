package core

import "pkt.systems/simry/schema"

// tab is the descriptor for one buffer in the tab bar. Its label is fixed at
// creation and its click handler is bound to its creation-time index.
type tab struct {
	index  int
	label  string
	active bool
	buffer schema.BufferID
	click  func()
}

// TabView is what a Surface receives when a tab is inserted.
type TabView struct {
	Index  int
	Label  string
	Active bool
	Buffer schema.BufferID
	// Click emits a request to select this tab's buffer.
	Click func()
}

func (t *tab) view() TabView {
	return TabView{Index: t.index, Label: t.label, Active: t.active, Buffer: t.buffer, Click: t.click}
}

// Snapshot returns a transport-friendly view of the tab.
func (t *tab) Snapshot() schema.TabSnapshot {
	return schema.TabSnapshot{
		Index:  t.index,
		Label:  t.label,
		Active: t.active,
		Buffer: t.buffer,
	}
}
