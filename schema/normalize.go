package schema

import (
	"errors"
	"strings"
)

// NormalizeWindowConfig applies defaults and validates the config.
func NormalizeWindowConfig(cfg WindowConfig) (WindowConfig, error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		cfg.Name = DefaultWindowName
	}
	if cfg.IntentDepth == 0 {
		cfg.IntentDepth = DefaultIntentDepth
	}
	if cfg.IntentDepth < 0 {
		return WindowConfig{}, errors.New("intent depth must not be negative")
	}
	return cfg, nil
}
