package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/simry/schema"
)

// DefaultDepth is the per-subscriber channel capacity.
const DefaultDepth = 256

// Bus fans window events out to per-window subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[schema.WindowID]map[chan schema.WindowEvent]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus with the default subscriber depth.
func New(logger pslog.Logger) *Bus {
	return NewWithDepth(logger, DefaultDepth)
}

// NewWithDepth constructs a Bus whose subscriber channels hold depth events.
func NewWithDepth(logger pslog.Logger, depth int) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Bus{
		subs:  make(map[schema.WindowID]map[chan schema.WindowEvent]struct{}),
		log:   logger,
		depth: depth,
	}
}

// Subscribe registers a subscriber for the window and returns a channel + cancel.
func (b *Bus) Subscribe(windowID schema.WindowID) (<-chan schema.WindowEvent, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.WindowEvent, b.depth)
	b.mu.Lock()
	windowSubs := b.subs[windowID]
	if windowSubs == nil {
		windowSubs = make(map[chan schema.WindowEvent]struct{})
		b.subs[windowID] = windowSubs
	}
	windowSubs[ch] = struct{}{}
	count := len(windowSubs)
	b.mu.Unlock()
	b.log.With("window", windowID).Debug("eventbus subscribe", "subs", count)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if subs := b.subs[windowID]; subs != nil {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subs, windowID)
				}
			}
			b.mu.Unlock()
			close(ch)
			b.log.With("window", windowID).Debug("eventbus unsubscribe")
		})
	}
}

// OnWindowEvent publishes a window event.
func (b *Bus) OnWindowEvent(event schema.WindowEvent) {
	b.publish(event.WindowID, event)
}

func (b *Bus) publish(windowID schema.WindowID, event schema.WindowEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	windowSubs := b.subs[windowID]
	subs := make([]chan schema.WindowEvent, 0, len(windowSubs))
	for sub := range windowSubs {
		subs = append(subs, sub)
	}
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	b.mu.Unlock()
	if dropped > 0 {
		b.log.With("window", windowID).Trace("eventbus dropped", "count", dropped, "type", event.Type)
	}
}
