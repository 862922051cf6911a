package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ControllerID is the identity the controller script registered with
var ControllerID = uuid.MustParse("03684d0f-b167-4ebb-bbe8-478705f65b71")

// ControllerInfo identifies the controller to the user and in logs
type ControllerInfo struct {
	Vendor  string    `json:"vendor"`
	Name    string    `json:"name"`
	Version string    `json:"version"`
	ID      uuid.UUID `json:"id"`
}

// InputConfig names the port carrying clip notes and MMC
type InputConfig struct {
	PortName string `json:"portName"`
}

// Clip generators for the clock follower
const (
	GeneratorRandom = "random"
	GeneratorMarkov = "markov"
)

// ClockConfig drives the clip sender from an external MIDI clock
type ClockConfig struct {
	Enabled   bool   `json:"enabled"`
	PortName  string `json:"portName,omitempty"`
	Generator string `json:"generator,omitempty"` // "random" (default) or "markov"
}

// OutputConfig is where the clip sender writes notes
type OutputConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  int    `json:"channel,omitempty"` // 1-16
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette  string `json:"palette,omitempty"` // GIMP .gpl file
	Headless bool   `json:"headless,omitempty"`
}

// DebugConfig controls the trace log
type DebugConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Controller ControllerInfo `json:"controller"`
	Input      InputConfig    `json:"input"`
	Clock      ClockConfig    `json:"clock,omitempty"`
	Output     OutputConfig   `json:"output,omitempty"`
	UI         UIConfig       `json:"ui,omitempty"`
	Debug      DebugConfig    `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Controller: ControllerInfo{
			Vendor:  "Dan W",
			Name:    "simple_controller",
			Version: "0.1",
			ID:      ControllerID,
		},
		Input: InputConfig{
			PortName: "loopMIDI Port 1",
		},
		Clock: ClockConfig{
			PortName:  "loopMIDI Port 3",
			Generator: GeneratorRandom,
		},
		Output: OutputConfig{
			PortName: "loopMIDI Port 1",
			Channel:  1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(home, ".config", "cliplaunch"), nil
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
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Fields missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// OutputChannel returns the 0-based output channel, defaulting to channel 1
func (c *Config) OutputChannel() uint8 {
	if c.Output.Channel < 1 || c.Output.Channel > 16 {
		return 0
	}
	return uint8(c.Output.Channel - 1)
}
