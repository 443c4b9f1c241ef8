package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/simry/internal/logx"
	"pkt.systems/simry/schema"
)

// Window owns the buffers of one editor window, one tab per buffer, and the
// selection. Buffers and tabs share indices and are append-only.
type Window struct {
	id         schema.WindowID
	name       string
	surface    Surface
	sink       EventSink
	dispatcher *Dispatcher
	log        pslog.Logger

	mu       sync.Mutex
	buffers  []*Buffer
	tabs     []*tab
	selected int
	// hasSelection flips once the first buffer is selected.
	hasSelection bool
}

// NewWindow constructs an empty window.
func NewWindow(cfg schema.WindowConfig, deps WindowDeps) (*Window, error) {
	normalized, err := schema.NormalizeWindowConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	id := newWindowID()
	var log pslog.Logger
	if deps.Logger != nil {
		log = deps.Logger.With("window", id)
	}
	if deps.Surface == nil {
		deps.Surface = nopSurface{}
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = NewDispatcher(cfg.IntentDepth, log)
	}
	return &Window{
		id:         id,
		name:       cfg.Name,
		surface:    deps.Surface,
		sink:       deps.EventSink,
		dispatcher: deps.Dispatcher,
		log:        log,
	}, nil
}

// ID returns the window identifier.
func (w *Window) ID() schema.WindowID {
	return w.id
}

// Name returns the configured window name.
func (w *Window) Name() string {
	return w.name
}

// Dispatcher returns the queue tab click handlers emit into.
func (w *Window) Dispatcher() *Dispatcher {
	return w.dispatcher
}

// AddBuffer appends buf and its tab, selecting it when selectIt is set.
// It returns the new index.
func (w *Window) AddBuffer(ctx context.Context, buf *Buffer, selectIt bool) int {
	log := logx.WithBuffer(w.logger(ctx), buf.Ref())
	path, _ := buf.Path()

	w.mu.Lock()
	w.buffers = append(w.buffers, buf)
	index := len(w.buffers) - 1
	t := &tab{
		index:  index,
		label:  buf.DisplayName(),
		buffer: buf.ID(),
		click:  w.dispatcher.SelectHandler(index),
	}
	w.tabs = append(w.tabs, t)
	w.surface.InsertTab(t.view())
	events := []schema.WindowEvent{{
		WindowID: w.id,
		Type:     schema.WindowEventBufferAdded,
		Index:    index,
		Tab:      t.Snapshot(),
		Buffer:   buf.Ref(),
		Path:     path,
	}}
	if selectIt {
		events = append(events, w.selectLocked(index)...)
	}
	w.mu.Unlock()

	w.emit(events)
	log.Info("window buffer added", "index", index, "selected", selectIt)
	return index
}

// AddEmptyBuffer appends an untitled buffer.
func (w *Window) AddEmptyBuffer(ctx context.Context, selectIt bool) int {
	return w.AddBuffer(ctx, NewEmptyBuffer(), selectIt)
}

// OpenFile loads path into a new buffer. When loading fails the error is
// returned unchanged and the window is left as it was.
func (w *Window) OpenFile(ctx context.Context, path string, selectIt bool) (int, error) {
	buf, err := NewBufferFromPath(path)
	if err != nil {
		w.logger(ctx).Warn("window open failed", "path", path, "err", err)
		w.emit([]schema.WindowEvent{{
			WindowID: w.id,
			Type:     schema.WindowEventOpenFailed,
			Index:    -1,
			Path:     path,
			Err:      err.Error(),
		}})
		return -1, err
	}
	return w.AddBuffer(ctx, buf, selectIt), nil
}

// SelectBuffer makes the buffer at index the one shown by the surface.
// Selecting the current index again re-activates its tab and is otherwise
// a no-op. An index outside the buffers returns schema.ErrIndexOutOfRange.
func (w *Window) SelectBuffer(ctx context.Context, index int) error {
	log := w.logger(ctx)

	w.mu.Lock()
	if index < 0 || index >= len(w.buffers) {
		count := len(w.buffers)
		w.mu.Unlock()
		err := fmt.Errorf("%w: %d not in [0, %d)", schema.ErrIndexOutOfRange, index, count)
		log.Warn("window select rejected", "index", index, "err", err)
		return err
	}
	reselect := w.hasSelection && index == w.selected
	events := w.selectLocked(index)
	ref := w.buffers[index].Ref()
	w.mu.Unlock()

	w.emit(events)
	if reselect {
		log.Trace("window buffer reselected", "index", index)
		return nil
	}
	logx.WithBuffer(log, ref).Info("window buffer selected", "index", index)
	return nil
}

// selectLocked runs the selection sequence. The old tab is deactivated
// before selected is overwritten, since that is the only record of it.
func (w *Window) selectLocked(index int) []schema.WindowEvent {
	var events []schema.WindowEvent
	if index != w.selected && w.selected < len(w.tabs) {
		old := w.tabs[w.selected]
		wasActive := old.active
		old.active = false
		w.surface.SetTabActive(old.index, false)
		if wasActive {
			events = append(events, schema.WindowEvent{
				WindowID: w.id,
				Type:     schema.WindowEventTabDeactivated,
				Index:    old.index,
				Tab:      old.Snapshot(),
				Buffer:   w.buffers[old.index].Ref(),
			})
		}
	}

	t := w.tabs[index]
	t.active = true
	w.surface.SetTabActive(index, true)
	buf := w.buffers[index]
	events = append(events, schema.WindowEvent{
		WindowID: w.id,
		Type:     schema.WindowEventTabActivated,
		Index:    index,
		Tab:      t.Snapshot(),
		Buffer:   buf.Ref(),
	})

	w.selected = index
	w.hasSelection = true

	w.surface.BindContent(index, buf.Content())
	events = append(events, schema.WindowEvent{
		WindowID: w.id,
		Type:     schema.WindowEventBufferSelected,
		Index:    index,
		Tab:      t.Snapshot(),
		Buffer:   buf.Ref(),
	})
	return events
}

// Len returns the number of buffers.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buffers)
}

// Selected returns the selected index; ok is false until a buffer has been
// selected.
func (w *Window) Selected() (index int, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected, w.hasSelection
}

// Buffer returns the buffer at index.
func (w *Window) Buffer(index int) (*Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.buffers) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", schema.ErrIndexOutOfRange, index, len(w.buffers))
	}
	return w.buffers[index], nil
}

// SelectedBuffer returns the buffer currently bound to the surface.
func (w *Window) SelectedBuffer() (*Buffer, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasSelection {
		return nil, false
	}
	return w.buffers[w.selected], true
}

// Tabs returns the tab bar in order.
func (w *Window) Tabs() []schema.TabSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tabSnapshotsLocked()
}

// Snapshot returns the tab bar and selection.
func (w *Window) Snapshot() schema.WindowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return schema.WindowSnapshot{
		ID:           w.id,
		Name:         w.name,
		Tabs:         w.tabSnapshotsLocked(),
		Selected:     w.selected,
		HasSelection: w.hasSelection,
	}
}

// Close releases every source file handle held by the window's buffers.
// Buffer text stays readable.
func (w *Window) Close() error {
	w.mu.Lock()
	buffers := append([]*Buffer(nil), w.buffers...)
	w.mu.Unlock()
	var errs []error
	for _, buf := range buffers {
		if err := buf.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *Window) tabSnapshotsLocked() []schema.TabSnapshot {
	tabs := make([]schema.TabSnapshot, 0, len(w.tabs))
	for _, t := range w.tabs {
		tabs = append(tabs, t.Snapshot())
	}
	return tabs
}

func (w *Window) emit(events []schema.WindowEvent) {
	if w.sink == nil {
		return
	}
	for _, event := range events {
		w.sink.OnWindowEvent(event)
	}
}

func (w *Window) logger(ctx context.Context) pslog.Logger {
	if w.log != nil {
		return w.log
	}
	return logx.WithWindow(ctx, w.id)
}
