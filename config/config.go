package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AudioConfig selects the output stream layout. The trigger and pitch
// channels must address distinct channels on the opened stream.
type AudioConfig struct {
	SampleRate     int `yaml:"sampleRate"`
	BufferSize     int `yaml:"bufferSize"`
	TriggerChannel int `yaml:"triggerChannel"`
	PitchChannel   int `yaml:"pitchChannel"`
}

// GridConfig selects the pad controller
type GridConfig struct {
	PortName    string `yaml:"portName,omitempty"`
	AutoConnect bool   `yaml:"autoConnect"`
}

// Tuning holds display and timing constants. They are knobs, not
// correctness invariants.
type Tuning struct {
	GateMillis float64 `yaml:"gateMillis"` // trigger pulse length

	// Viewport brightness levels, 0-15
	ActiveLevel    uint8 `yaml:"activeLevel"`
	TonicLevel     uint8 `yaml:"tonicLevel"`
	DominantLevel  uint8 `yaml:"dominantLevel"`
	LeadingLevel   uint8 `yaml:"leadingLevel"`
	PlayheadLevel  uint8 `yaml:"playheadLevel"`
	IndicatorLevel uint8 `yaml:"indicatorLevel"`
}

// Config is the main configuration structure
type Config struct {
	Tempo   float64     `yaml:"tempo"`
	Width   int         `yaml:"width"` // steps, multiple of 16
	Scale   string      `yaml:"scale"`
	Palette string      `yaml:"palette,omitempty"` // GPL file for the on-screen grid
	Audio   AudioConfig `yaml:"audio"`
	Grid    GridConfig  `yaml:"grid"`
	Tune    Tuning      `yaml:"tuning"`
	Debug   bool        `yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo: 120,
		Width: 32,
		Scale: "B minor pentatonic",
		Audio: AudioConfig{
			SampleRate:     44100,
			BufferSize:     256,
			TriggerChannel: 0,
			PitchChannel:   1,
		},
		Grid: GridConfig{AutoConnect: true},
		Tune: Tuning{
			GateMillis:     10,
			ActiveLevel:    15,
			TonicLevel:     5,
			DominantLevel:  3,
			LeadingLevel:   1,
			PlayheadLevel:  4,
			IndicatorLevel: 10,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "monoseq"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk. A missing file is not an error: the
// defaults are returned and written out so there is a file to edit.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if werr := cfg.Save(); werr != nil {
				return cfg, nil // read-only home; run on defaults
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be clamped into shape
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Width%16 != 0 {
		return fmt.Errorf("config: width %d must be a positive multiple of 16", c.Width)
	}
	if c.Tempo <= 0 {
		return fmt.Errorf("config: tempo %g must be positive", c.Tempo)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: sample rate %d must be positive", c.Audio.SampleRate)
	}
	if c.Audio.TriggerChannel == c.Audio.PitchChannel {
		return fmt.Errorf("config: trigger and pitch must use distinct channels")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
