package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pkt.systems/pslog"
	"pkt.systems/simry/internal/appconfig"
	"pkt.systems/simry/internal/eventbus"
	"pkt.systems/simry/internal/format"
	"pkt.systems/simry/schema"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var asYAML bool
	var showEvents bool
	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Load files into a headless window and print its tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(opts.configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			bus := eventbus.NewWithDepth(logger, cfg.Events.Depth)
			window, err := newWindow(cfg, nil, bus, logger)
			if err != nil {
				return err
			}
			defer func() { _ = window.Close() }()
			events, cancel := bus.Subscribe(window.ID())
			defer cancel()

			openErr := populateWindow(ctx, window, cfg.Window.InitialEmptyBuffers, args)
			snapshot := window.Snapshot()
			out := cmd.OutOrStdout()
			if showEvents {
				if err := writeEvents(out, events); err != nil {
					return err
				}
			}
			if asYAML {
				err = writeSnapshotYAML(out, snapshot)
			} else {
				err = writeSnapshot(out, snapshot)
			}
			if err != nil {
				return err
			}
			return openErr
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the window snapshot as YAML")
	cmd.Flags().BoolVar(&showEvents, "events", false, "print the window events raised while loading")
	return cmd
}

// writeEvents prints the events already queued on events. Window events are
// published synchronously, so everything raised while loading is buffered.
func writeEvents(w io.Writer, events <-chan schema.WindowEvent) error {
	renderer := format.NewPlainRenderer()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			line := renderer.FormatEvent(event)
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func writeSnapshot(w io.Writer, snapshot schema.WindowSnapshot) error {
	for _, tab := range snapshot.Tabs {
		marker := " "
		if tab.Active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %d %s\n", marker, tab.Index, tab.Label); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshotYAML(w io.Writer, snapshot schema.WindowSnapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return err
	}
	return enc.Close()
}
