package core

import "pkt.systems/pslog"

// WindowDeps captures optional collaborators for a Window.
type WindowDeps struct {
	Surface    Surface
	EventSink  EventSink
	Dispatcher *Dispatcher
	Logger     pslog.Logger
}
