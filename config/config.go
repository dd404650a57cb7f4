package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SURVIVAL_"

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Player  PlayerConfig  `yaml:"player"`
	Save    SaveConfig    `yaml:"save"`
	Prefabs PrefabsConfig `yaml:"prefabs"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type WindowConfig struct {
	Title  string `yaml:"title" env:"WINDOW_TITLE"`
	Width  int    `yaml:"width" env:"WINDOW_WIDTH"`
	Height int    `yaml:"height" env:"WINDOW_HEIGHT"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // "json" or "console"
}

type PlayerConfig struct {
	MoveSpeed        float32 `yaml:"move_speed" env:"PLAYER_MOVE_SPEED"`
	SprintMultiplier float32 `yaml:"sprint_multiplier" env:"PLAYER_SPRINT_MULTIPLIER"`
	LookSensitivity  float32 `yaml:"look_sensitivity" env:"PLAYER_LOOK_SENSITIVITY"`
	EyeHeight        float32 `yaml:"eye_height" env:"PLAYER_EYE_HEIGHT"`
	Tool             string  `yaml:"tool" env:"PLAYER_TOOL"`
	// Spawn overrides the world's spawn point when set.
	Spawn *[3]float32 `yaml:"spawn"`
}

type SaveConfig struct {
	Path string `yaml:"path" env:"SAVE_PATH"`
	Slot string `yaml:"slot" env:"SAVE_SLOT"`
	// AutosaveFrames is the autosave interval in frames; 0 disables it.
	AutosaveFrames int `yaml:"autosave_frames" env:"SAVE_AUTOSAVE_FRAMES"`
}

type PrefabsConfig struct {
	Dir       string `yaml:"dir" env:"PREFABS_DIR"`
	HotReload bool   `yaml:"hot_reload" env:"PREFABS_HOT_RELOAD"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
}

var (
	ErrNonPositiveSpeed = errors.New("config: speeds must be positive")
	ErrWindowSize       = errors.New("config: window size must be positive")
	ErrSaveSlot         = errors.New("config: save slot is required")
)

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error; the defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindowSize, c.Window.Width, c.Window.Height)
	}
	if c.Player.MoveSpeed <= 0 || c.Player.SprintMultiplier <= 0 || c.Player.LookSensitivity <= 0 {
		return ErrNonPositiveSpeed
	}
	if c.Save.Slot == "" {
		return ErrSaveSlot
	}
	if c.Save.AutosaveFrames < 0 {
		return fmt.Errorf("config: autosave_frames must not be negative: %d", c.Save.AutosaveFrames)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "space survival",
			Width:  1280,
			Height: 720,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Player: PlayerConfig{
			MoveSpeed:        4.5,
			SprintMultiplier: 1.8,
			LookSensitivity:  0.15,
			EyeHeight:        1.6,
			Tool:             "pickaxe",
		},
		Save: SaveConfig{
			Path:           "survival.db",
			Slot:           "default",
			AutosaveFrames: 60 * 30,
		},
		Prefabs: PrefabsConfig{
			Dir: "prefabs",
		},
		Sentry: SentryConfig{
			Environment: "development",
		},
	}
}
