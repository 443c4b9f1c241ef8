package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/simry/internal/eventbus"
	"pkt.systems/simry/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int          `mapstructure:"config_version" yaml:"config_version"`
	Window        WindowConfig `mapstructure:"window" yaml:"window"`
	Events        EventsConfig `mapstructure:"events" yaml:"events"`
	Tabs          TabsConfig   `mapstructure:"tabs" yaml:"tabs"`
	Theme         ThemeConfig  `mapstructure:"theme" yaml:"theme"`
	Logging       LogConfig    `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// WindowConfig controls the editor window.
type WindowConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	// InitialEmptyBuffers are opened at startup when no files are given.
	InitialEmptyBuffers int `mapstructure:"initial_empty_buffers" yaml:"initial_empty_buffers"`
	IntentDepth         int `mapstructure:"intent_depth" yaml:"intent_depth"`
}

// EventsConfig controls window event fanout.
type EventsConfig struct {
	Depth int `mapstructure:"depth" yaml:"depth"`
}

// TabsConfig controls how tab labels are drawn. Stored labels are never truncated.
type TabsConfig struct {
	LabelMax    int    `mapstructure:"label_max" yaml:"label_max"`
	LabelSuffix string `mapstructure:"label_suffix" yaml:"label_suffix"`
}

// ThemeConfig holds tab bar and status line colors.
type ThemeConfig struct {
	TabBarBG      string `mapstructure:"tab_bar_bg" yaml:"tab_bar_bg"`
	TabActiveFG   string `mapstructure:"tab_active_fg" yaml:"tab_active_fg"`
	TabActiveBG   string `mapstructure:"tab_active_bg" yaml:"tab_active_bg"`
	TabInactiveFG string `mapstructure:"tab_inactive_fg" yaml:"tab_inactive_fg"`
	TabInactiveBG string `mapstructure:"tab_inactive_bg" yaml:"tab_inactive_bg"`
	StatusFG      string `mapstructure:"status_fg" yaml:"status_fg"`
	ErrorFG       string `mapstructure:"error_fg" yaml:"error_fg"`
}

// LogConfig controls where logs go while the TUI owns the terminal.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Window: WindowConfig{
			Name:                schema.DefaultWindowName,
			InitialEmptyBuffers: 1,
			IntentDepth:         schema.DefaultIntentDepth,
		},
		Events: EventsConfig{
			Depth: eventbus.DefaultDepth,
		},
		Tabs: TabsConfig{
			LabelMax:    24,
			LabelSuffix: "…",
		},
		Theme: ThemeConfig{
			TabBarBG:      "#1b1b29",
			TabActiveFG:   "#1b1b29",
			TabActiveBG:   "#f7a8d8",
			TabInactiveFG: "#9a9ab0",
			TabInactiveBG: "#2a2a40",
			StatusFG:      "#9a9ab0",
			ErrorFG:       "#ff5f5f",
		},
		Logging: LogConfig{
			File: filepath.Join(home, ".simry", "simry.log"),
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".simry", "config.yaml"), nil
}
