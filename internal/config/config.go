// Package config loads the core's external configuration object (spec §6):
// framerate and the handful of other options the core's semantics actually
// depend on, plus the pass-through fields the host editor keeps around for
// its own UI but that carry no core meaning.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// TimeSignature is the (numerator, denominator) pair passed through to the
// timeline widget; the core attaches no semantics to it beyond persistence.
type TimeSignature struct {
	Num int `yaml:"num"`
	Den int `yaml:"den"`
}

// Config is the enumerated configuration object consumed by the core.
type Config struct {
	// Framerate governs keyframe-coalescing tolerance (1/(2*Framerate)) and
	// frame stepping. Defaults to 24.
	Framerate float64 `yaml:"framerate"`

	// BPM and TimeSignature are passed through to the timeline widget and
	// BPM-change listeners; no core semantics beyond persistence.
	BPM           float64       `yaml:"bpm"`
	TimeSignature TimeSignature `yaml:"timeSignature"`

	// MinClipDuration is the lower bound enforced by trim actions.
	MinClipDuration float64 `yaml:"minClipDuration"`

	// ScrollSpeed, Debug, ReopenLastSession and Layout are editor-chrome
	// settings with no core semantics; retained so the persisted config
	// round-trips without the host needing a second schema.
	ScrollSpeed       float64           `yaml:"scrollSpeed"`
	Debug             bool              `yaml:"debug"`
	ReopenLastSession bool              `yaml:"reopenLastSession"`
	Layout            map[string]string `yaml:"layout,omitempty"`
}

// Default returns the configuration the core assumes when the host supplies
// none: 24fps, 4/4 time signature, no BPM opinion, no clip-duration floor.
func Default() Config {
	return Config{
		Framerate:     24,
		TimeSignature: TimeSignature{Num: 4, Den: 4},
	}
}

// TimeResolution is half a frame period: two keyframes closer together than
// this coalesce (spec §4.D).
func (c Config) TimeResolution() float64 {
	if c.Framerate <= 0 {
		return Default().TimeResolution()
	}
	return 1 / (2 * c.Framerate)
}

// Load reads a YAML configuration file, filling any field the file omits
// with Default's value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if cfg.Framerate <= 0 {
		cfg.Framerate = Default().Framerate
	}

	return cfg, nil
}
