package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Player.Tool != "pickaxe" || cfg.Save.Slot != "default" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
player:
  move_speed: 7
  spawn: [1, 2, 3]
prefabs:
  hot_reload: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Player.MoveSpeed != 7 || !cfg.Prefabs.HotReload {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Player.SprintMultiplier != 1.8 {
		t.Fatalf("unset keys should keep defaults, sprint = %v", cfg.Player.SprintMultiplier)
	}
	if cfg.Player.Spawn == nil || *cfg.Player.Spawn != [3]float32{1, 2, 3} {
		t.Fatalf("spawn = %v", cfg.Player.Spawn)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "save:\n  path: from-file.db\n")
	t.Setenv("SURVIVAL_SAVE_PATH", "from-env.db")
	t.Setenv("SURVIVAL_LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Save.Path != "from-env.db" || cfg.Logging.Format != "json" {
		t.Fatalf("env not applied: save=%q format=%q", cfg.Save.Path, cfg.Logging.Format)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "window: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero_speed", func(c *Config) { c.Player.MoveSpeed = 0 }, ErrNonPositiveSpeed},
		{"negative_sensitivity", func(c *Config) { c.Player.LookSensitivity = -1 }, ErrNonPositiveSpeed},
		{"zero_width", func(c *Config) { c.Window.Width = 0 }, ErrWindowSize},
		{"empty_slot", func(c *Config) { c.Save.Slot = "" }, ErrSaveSlot},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaults()
			c.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, c.want) {
				t.Fatalf("Validate() = %v, want %v", err, c.want)
			}
		})
	}
	if err := defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		cfg  LoggingConfig
		want zapcore.Level
	}{
		{LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{LoggingConfig{Level: "loud"}, zapcore.InfoLevel},
	}
	for _, c := range cases {
		log, err := NewLogger(c.cfg)
		if err != nil {
			t.Fatalf("NewLogger(%+v): %v", c.cfg, err)
		}
		if !log.Core().Enabled(c.want) || (c.want > zapcore.DebugLevel && log.Core().Enabled(c.want-1)) {
			t.Fatalf("NewLogger(%+v) level mismatch, want %v", c.cfg, c.want)
		}
	}
}
