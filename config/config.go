package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AudioConfig controls tone length and playback concurrency
type AudioConfig struct {
	ToneMs  int  `json:"toneMs,omitempty"`
	Workers int  `json:"workers,omitempty"` // max simultaneous tones
	Mute    bool `json:"mute,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // path to a GIMP .gpl file, empty for the built-in one
}

// Config is the main configuration structure
type Config struct {
	Audio AudioConfig `json:"audio,omitempty"`
	UI    UIConfig    `json:"ui,omitempty"`
	Debug bool        `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			ToneMs:  500,
			Workers: 16,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-piano"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
// Fields missing from the file keep their default values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, or returns defaults if it does not exist
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would break tone generation or playback
func (c *Config) Validate() error {
	if c.Audio.ToneMs <= 0 {
		return fmt.Errorf("audio.toneMs must be positive, got %d", c.Audio.ToneMs)
	}
	if c.Audio.Workers <= 0 {
		return fmt.Errorf("audio.workers must be positive, got %d", c.Audio.Workers)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
