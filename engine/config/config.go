package config

import (
	"fmt"
	"os"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	"github.com/Rob2309/vulkan-explained/engine/renderer/synchronization"
	"github.com/pelletier/go-toml/v2"
)

type LogConfig struct {
	Level string `toml:"level"`
}

type SyncConfig struct {
	// Stage shared by the submit's semaphore wait and the acquire barrier.
	ColorStage metadata.StageMask `toml:"color_stage"`
	// Access performed on the swapchain image while rendering.
	ColorAccess    metadata.AccessMask `toml:"color_access"`
	FramesInFlight int                 `toml:"frames_in_flight"`
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Sync SyncConfig `toml:"sync"`
}

func DefaultConfig() *Config {
	p := synchronization.DefaultPlanner()
	return &Config{
		Log: LogConfig{Level: core.InfoLevel.String()},
		Sync: SyncConfig{
			ColorStage:     p.ColorStage,
			ColorAccess:    p.ColorAccess,
			FramesInFlight: 2,
		},
	}
}

// ParseConfig decodes data over DefaultConfig, so absent keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	core.LogDebug("loaded config %s", path)
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q: %w", core.ErrInvalidConfig, c.Log.Level, err)
	}
	if c.Sync.ColorStage.IsEmpty() {
		return fmt.Errorf("%w: sync.color_stage must name at least one stage", core.ErrInvalidConfig)
	}
	if c.Sync.ColorAccess.IsEmpty() {
		return fmt.Errorf("%w: sync.color_access must name at least one access", core.ErrInvalidConfig)
	}
	if c.Sync.FramesInFlight < 1 || c.Sync.FramesInFlight > synchronization.MaxFramesInFlight {
		return fmt.Errorf("%w: sync.frames_in_flight must be in [1, %d], got %d",
			core.ErrInvalidConfig, synchronization.MaxFramesInFlight, c.Sync.FramesInFlight)
	}
	return nil
}

func (c *Config) LogLevel() core.LogLevel {
	// Validate has already rejected unknown levels.
	level, _ := core.ParseLogLevel(c.Log.Level)
	return level
}

func (c *Config) Planner() synchronization.Planner {
	return synchronization.Planner{
		ColorStage:  c.Sync.ColorStage,
		ColorAccess: c.Sync.ColorAccess,
	}
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
