package appconfig

import "testing"

func TestDefaultConfigVersion(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected config version %d, got %d", CurrentConfigVersion, cfg.ConfigVersion)
	}
	if err := validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
