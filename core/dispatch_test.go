package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"pkt.systems/simry/schema"
)

func TestDispatcherEmitDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, nil)
	if !d.Emit(schema.SelectIntent(0)) {
		t.Fatalf("expected first emit to queue")
	}
	done := make(chan bool, 1)
	go func() {
		done <- d.Emit(schema.SelectIntent(1))
	}()
	select {
	case queued := <-done:
		if queued {
			t.Fatalf("expected second emit to be dropped")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("emit blocked on full queue")
	}
}

func TestNilDispatcherEmit(t *testing.T) {
	var d *Dispatcher
	if d.Emit(schema.NewIntent(true)) {
		t.Fatalf("expected nil dispatcher to drop")
	}
	if d.Intents() != nil {
		t.Fatalf("expected nil channel")
	}
}

func TestSelectHandlerKeepsCreationIndex(t *testing.T) {
	d := NewDispatcher(4, nil)
	handlers := []func(){d.SelectHandler(0), d.SelectHandler(1), d.SelectHandler(2)}
	handlers[1]()
	handlers[1]()
	handlers[0]()
	want := []int{1, 1, 0}
	for i, idx := range want {
		intent := <-d.Intents()
		if intent.Kind != schema.IntentSelect || intent.Index != idx {
			t.Fatalf("intent %d = %+v, want select %d", i, intent, idx)
		}
	}
}

func TestApplyIntents(t *testing.T) {
	w, _, _ := newTestWindow(t)
	ctx := context.Background()
	path := writeFile(t, "a.txt", []byte("a"))

	idx, err := Apply(ctx, w, schema.NewIntent(true))
	if err != nil || idx != 0 {
		t.Fatalf("new intent: idx=%d err=%v", idx, err)
	}
	idx, err = Apply(ctx, w, schema.OpenIntent(path, false))
	if err != nil || idx != 1 {
		t.Fatalf("open intent: idx=%d err=%v", idx, err)
	}
	if sel, _ := w.Selected(); sel != 0 {
		t.Fatalf("expected selection to stay at 0, got %d", sel)
	}
	idx, err = Apply(ctx, w, schema.SelectIntent(1))
	if err != nil || idx != 1 {
		t.Fatalf("select intent: idx=%d err=%v", idx, err)
	}
	if _, err := Apply(ctx, w, schema.SelectIntent(5)); !errors.Is(err, schema.ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := Apply(ctx, w, schema.Intent{Kind: schema.IntentOpen}); !errors.Is(err, schema.ErrInvalidIntent) {
		t.Fatalf("expected invalid intent for missing path, got %v", err)
	}
	if _, err := Apply(ctx, w, schema.Intent{Kind: "close"}); !errors.Is(err, schema.ErrInvalidIntent) {
		t.Fatalf("expected invalid intent for unknown kind, got %v", err)
	}
}

func TestDispatcherRunAppliesUntilCanceled(t *testing.T) {
	w, _, _ := newTestWindow(t)
	d := w.Dispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Run(ctx, w)
	}()

	d.Emit(schema.NewIntent(true))
	d.Emit(schema.SelectIntent(7))
	d.Emit(schema.NewIntent(true))

	deadline := time.Now().Add(2 * time.Second)
	for w.Len() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for intents, have %d buffers", w.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
	if sel, ok := w.Selected(); !ok || sel != 1 {
		t.Fatalf("expected selection 1, got %d (ok=%v)", sel, ok)
	}
}
