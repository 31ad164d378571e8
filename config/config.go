package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// OutputConfig defines the MIDI output to play to
type OutputConfig struct {
	PortName string `json:"portName,omitempty"` // substring match, empty = first port
}

// PlayerConfig stores playback preferences
type PlayerConfig struct {
	ClockRate float64 `json:"clockRate,omitempty"` // scheduler ticks per second
	Speed     float64 `json:"speed,omitempty"`     // playback speed multiplier
}

// Config is the main configuration structure
type Config struct {
	Output OutputConfig `json:"output,omitempty"`
	Player PlayerConfig `json:"player,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			ClockRate: 1000,
			Speed:     1.0,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "smfplay"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
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
