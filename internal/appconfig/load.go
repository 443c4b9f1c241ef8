package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pkt.systems/pslog"
	"pkt.systems/simry/internal/persist"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SIMRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("window.name", cfg.Window.Name)
	v.SetDefault("window.initial_empty_buffers", cfg.Window.InitialEmptyBuffers)
	v.SetDefault("window.intent_depth", cfg.Window.IntentDepth)
	v.SetDefault("events.depth", cfg.Events.Depth)
	v.SetDefault("tabs.label_max", cfg.Tabs.LabelMax)
	v.SetDefault("tabs.label_suffix", cfg.Tabs.LabelSuffix)
	v.SetDefault("theme.tab_bar_bg", cfg.Theme.TabBarBG)
	v.SetDefault("theme.tab_active_fg", cfg.Theme.TabActiveFG)
	v.SetDefault("theme.tab_active_bg", cfg.Theme.TabActiveBG)
	v.SetDefault("theme.tab_inactive_fg", cfg.Theme.TabInactiveFG)
	v.SetDefault("theme.tab_inactive_bg", cfg.Theme.TabInactiveBG)
	v.SetDefault("theme.status_fg", cfg.Theme.StatusFG)
	v.SetDefault("theme.error_fg", cfg.Theme.ErrorFG)
	v.SetDefault("logging.file", cfg.Logging.File)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Window.InitialEmptyBuffers < 0 {
		return fmt.Errorf("window.initial_empty_buffers must not be negative")
	}
	if cfg.Window.IntentDepth < 0 {
		return fmt.Errorf("window.intent_depth must not be negative")
	}
	if cfg.Events.Depth < 0 {
		return fmt.Errorf("events.depth must not be negative")
	}
	if cfg.Tabs.LabelMax < 0 {
		return fmt.Errorf("tabs.label_max must not be negative")
	}
	if cfg.Tabs.LabelMax > 0 && cfg.Tabs.LabelMax <= len([]rune(cfg.Tabs.LabelSuffix)) {
		return fmt.Errorf("tabs.label_max must exceed tabs.label_suffix length")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Logging.File = expandEnv(cfg.Logging.File)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path. A nil logger
// disables write logging.
func WriteDefault(path string, overwrite bool, logger pslog.Logger) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := persist.NewWriter(logger).WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
