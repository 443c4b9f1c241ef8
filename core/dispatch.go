package core

import (
	"context"
	"fmt"

	"pkt.systems/pslog"
	"pkt.systems/simry/schema"
)

// Dispatcher queues intents from the presentation layer so that tabs never
// hold a reference to the Window they belong to.
type Dispatcher struct {
	intents chan schema.Intent
	log     pslog.Logger
}

// NewDispatcher constructs a Dispatcher with the given queue depth.
func NewDispatcher(depth int, logger pslog.Logger) *Dispatcher {
	if depth <= 0 {
		depth = schema.DefaultIntentDepth
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Dispatcher{
		intents: make(chan schema.Intent, depth),
		log:     logger,
	}
}

// Emit queues an intent without blocking. It reports false when the queue
// is full and the intent was dropped.
func (d *Dispatcher) Emit(intent schema.Intent) bool {
	if d == nil {
		return false
	}
	select {
	case d.intents <- intent:
		return true
	default:
		d.log.Warn("dispatcher intent dropped", "kind", intent.Kind, "index", intent.Index, "path", intent.Path)
		return false
	}
}

// SelectHandler returns a click handler bound to index.
func (d *Dispatcher) SelectHandler(index int) func() {
	return func() {
		d.Emit(schema.SelectIntent(index))
	}
}

// Intents exposes the queue for event loops that drain it themselves.
func (d *Dispatcher) Intents() <-chan schema.Intent {
	if d == nil {
		return nil
	}
	return d.intents
}

// Run applies queued intents to w until ctx is done. Failed intents are
// logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, w *Window) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent := <-d.intents:
			if _, err := Apply(ctx, w, intent); err != nil {
				d.log.Warn("dispatcher intent failed", "kind", intent.Kind, "err", err)
			}
		}
	}
}

// Apply executes one intent against w and returns the affected buffer index.
func Apply(ctx context.Context, w *Window, intent schema.Intent) (int, error) {
	switch intent.Kind {
	case schema.IntentSelect:
		if err := w.SelectBuffer(ctx, intent.Index); err != nil {
			return -1, err
		}
		return intent.Index, nil
	case schema.IntentOpen:
		if intent.Path == "" {
			return -1, fmt.Errorf("%w: open without path", schema.ErrInvalidIntent)
		}
		return w.OpenFile(ctx, intent.Path, intent.Select)
	case schema.IntentNew:
		return w.AddEmptyBuffer(ctx, intent.Select), nil
	default:
		return -1, fmt.Errorf("%w: unknown kind %q", schema.ErrInvalidIntent, intent.Kind)
	}
}
