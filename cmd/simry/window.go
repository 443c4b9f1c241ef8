package main

import (
	"context"
	"errors"

	"pkt.systems/pslog"
	"pkt.systems/simry/core"
	"pkt.systems/simry/internal/appconfig"
	"pkt.systems/simry/internal/eventbus"
	"pkt.systems/simry/schema"
)

// newWindow builds a window for cfg that reports to bus.
func newWindow(cfg appconfig.Config, surface core.Surface, bus *eventbus.Bus, logger pslog.Logger) (*core.Window, error) {
	return core.NewWindow(schema.WindowConfig{
		Name:        cfg.Window.Name,
		IntentDepth: cfg.Window.IntentDepth,
	}, core.WindowDeps{
		Surface:   surface,
		EventSink: bus,
		Logger:    logger,
	})
}

// populateWindow opens files in order, selecting each, or adds the
// configured number of empty buffers when no files are given. Files that
// fail to open are skipped and their errors joined.
func populateWindow(ctx context.Context, w *core.Window, emptyBuffers int, files []string) error {
	if len(files) == 0 {
		for i := 0; i < emptyBuffers; i++ {
			w.AddEmptyBuffer(ctx, true)
		}
		return nil
	}
	var errs []error
	for _, path := range files {
		if _, err := w.OpenFile(ctx, path, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
