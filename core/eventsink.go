package core

import "pkt.systems/simry/schema"

// EventSink receives window events after each operation completes.
type EventSink interface {
	OnWindowEvent(event schema.WindowEvent)
}
