package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/simry/internal/appconfig"
	"pkt.systems/simry/internal/eventbus"
	"pkt.systems/simry/internal/tui"
)

type editFlags struct {
	logFile string
	noMouse bool
}

func newEditFlags() *editFlags {
	return &editFlags{}
}

func (f *editFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs here while the editor owns the terminal")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "disable mouse tab selection")
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	flags := newEditFlags()
	cmd := &cobra.Command{
		Use:   "edit [file...]",
		Short: "Open files in the editor window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, flags, args)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runEdit(cmd *cobra.Command, opts *rootOptions, flags *editFlags, files []string) error {
	cfg, err := appconfig.Load(opts.configPath)
	if err != nil {
		return err
	}
	logPath := cfg.Logging.File
	if flags.logFile != "" {
		logPath = flags.logFile
	}
	logOut, err := openLogFile(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logOut.Close() }()

	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(logOut),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
	)
	ctx := pslog.ContextWithLogger(cmd.Context(), logger)

	bus := eventbus.NewWithDepth(logger, cfg.Events.Depth)
	model := tui.New(ctx, tui.Options{Tabs: cfg.Tabs, Theme: cfg.Theme, Logger: logger})
	window, err := newWindow(cfg, model, bus, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := window.Close(); err != nil {
			logger.Warn("window close failed", "err", err)
		}
	}()
	events, cancel := bus.Subscribe(window.ID())
	defer cancel()
	model.Attach(window, events)

	if err := populateWindow(ctx, window, cfg.Window.InitialEmptyBuffers, files); err != nil {
		// Failed opens stay visible on the status line via the event stream.
		logger.Warn("editor startup opens failed", "err", err)
	}
	logger.Info("editor started", "window", window.ID(), "buffers", window.Len())

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !flags.noMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
