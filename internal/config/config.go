package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavepkt/internal/packet"
)

const (
	DefaultLaw        = "ck"
	DefaultComponents = 200
	DefaultSeed       = 1
	DefaultFrames     = 1000
	DefaultMode       = "all"
	DefaultAxis       = "position"
	DefaultFPS        = 30
)

// Display modes for the live view.
const (
	ModeWave     = "wave"
	ModeSpectrum = "spectrum"
	ModeAll      = "all"
)

// Config is a packet recipe plus how to render it. It round-trips through
// YAML; a nil C means the law's default velocity constant.
type Config struct {
	Law        string   `yaml:"law"`
	Components int      `yaml:"components"`
	C          *float64 `yaml:"c,omitempty"`
	B          float64  `yaml:"b"`
	Seed       int64    `yaml:"seed"`
	Positions  int      `yaml:"positions,omitempty"`
	Frames     int      `yaml:"frames"`
	Step       float64  `yaml:"step,omitempty"`
	Mode       string   `yaml:"mode"`
	Axis       string   `yaml:"axis"`
	FPS        int      `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Law:        DefaultLaw,
		Components: DefaultComponents,
		B:          packet.B,
		Seed:       DefaultSeed,
		Frames:     DefaultFrames,
		Mode:       DefaultMode,
		Axis:       DefaultAxis,
		FPS:        DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto overlays the fields present in the YAML file at path onto a copy
// of base. Fields absent from the file keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.C != nil {
		cfg.SetVelocity(*base.C)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first unsupported option as a
// packet.ConfigurationError.
func (c *Config) Validate() error {
	if _, err := packet.ParseLaw(c.Law); err != nil {
		return err
	}
	if _, err := packet.ParseComponentCount(c.Components); err != nil {
		return err
	}
	if _, err := packet.ParseAxisConvention(c.Axis); err != nil {
		return err
	}
	switch c.Mode {
	case ModeWave, ModeSpectrum, ModeAll:
	default:
		return &packet.ConfigurationError{Option: "mode", Value: c.Mode}
	}
	if c.FPS <= 0 {
		return &packet.ConfigurationError{Option: "fps", Value: strconv.Itoa(c.FPS)}
	}
	if c.Frames < 0 {
		return &packet.ConfigurationError{Option: "frames", Value: strconv.Itoa(c.Frames)}
	}
	if c.Step < 0 {
		return &packet.ConfigurationError{Option: "step", Value: strconv.FormatFloat(c.Step, 'g', -1, 64)}
	}
	if c.Positions < 0 {
		return &packet.ConfigurationError{Option: "positions", Value: strconv.Itoa(c.Positions)}
	}
	return nil
}

// Velocity returns C, or the law's default when C is unset.
func (c *Config) Velocity() float64 {
	if c.C != nil {
		return *c.C
	}
	law, err := packet.ParseLaw(c.Law)
	if err != nil {
		return 0
	}
	return law.DefaultC()
}

// SetVelocity pins C to v.
func (c *Config) SetVelocity(v float64) {
	c.C = &v
}

// PacketConfig converts a validated Config to the engine's form.
func (c *Config) PacketConfig() (packet.Config, error) {
	if err := c.Validate(); err != nil {
		return packet.Config{}, err
	}
	law, _ := packet.ParseLaw(c.Law)

	pc := packet.DefaultConfig()
	pc.Law = law
	pc.Components = c.Components
	pc.C = c.Velocity()
	pc.B = c.B
	pc.Positions = c.Positions
	return pc, nil
}

// FrameStep returns Step when set, otherwise the law's step for the
// configured component count.
func (c *Config) FrameStep() (float64, error) {
	if c.Step > 0 {
		return c.Step, nil
	}
	law, err := packet.ParseLaw(c.Law)
	if err != nil {
		return 0, err
	}
	n, err := packet.ParseComponentCount(c.Components)
	if err != nil {
		return 0, err
	}
	return law.FrameStep(n)
}

// AxisConvention parses Axis.
func (c *Config) AxisConvention() (packet.AxisConvention, error) {
	return packet.ParseAxisConvention(c.Axis)
}
