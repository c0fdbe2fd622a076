package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 42690
	DefaultBaud        = 9600
	DefaultNorthOffset = 360.0
	DefaultSerialRead  = time.Second
)

// Mode selects how the reference frame is established at startup.
type Mode int

const (
	ModeUndefined Mode = iota
	// ModeSun calibrates against the sun's azimuth.
	ModeSun
	// ModeDirect assumes the coax input points north, or at CoaxAzimuth.
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeSun:
		return "sun"
	case ModeDirect:
		return "direct"
	}
	return "undefined"
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "sun":
		*m = ModeSun
	case "direct":
		*m = ModeDirect
	case "", "undefined":
		*m = ModeUndefined
	default:
		return fmt.Errorf("unknown mode %q", s)
	}
	return nil
}

type GPS struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type SerialConfig struct {
	// Device is the serial device; empty selects the first port found.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
	// ReadTimeout bounds each serial read while waiting for a reply.
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Configuration is everything the bridge needs to start.
type Configuration struct {
	Port uint16 `yaml:"port"`
	Mode Mode   `yaml:"mode"`
	// GPS is the station location, required in sun mode.
	GPS *GPS `yaml:"gps"`
	// CoaxAzimuth is the heading the coax input points at in direct mode.
	CoaxAzimuth *float64 `yaml:"coax_azimuth"`
	// DishAzimuth is the rotator's internal azimuth at startup, if known.
	// Only used in sun mode; it skips querying the controller.
	DishAzimuth *float64 `yaml:"dish_azimuth"`
	// NorthOffset is the frame offset when the coax input points north.
	// It depends on how the rotator was installed and must be checked on site.
	NorthOffset *float64     `yaml:"north_offset"`
	Serial      SerialConfig `yaml:"serial"`
	// ReadTimeout bounds each read from a rotctld client. Zero waits forever.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	Simulator   bool          `yaml:"simulator"`
}

// Load reads a YAML configuration file. The result is not validated.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return &cfg, nil
}

// Addr is the TCP address to listen on for rotctld clients.
func (c *Configuration) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// NorthOffsetDegrees returns the configured north offset or the default.
func (c *Configuration) NorthOffsetDegrees() float64 {
	if c.NorthOffset == nil {
		return DefaultNorthOffset
	}
	return *c.NorthOffset
}
