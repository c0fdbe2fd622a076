package config

import (
	"errors"
	"fmt"
	"log"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate fills in defaults and checks that the selected mode has what it
// needs.
func Validate(cfg *Configuration) error {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = DefaultBaud
	}
	if cfg.Serial.ReadTimeout == 0 {
		cfg.Serial.ReadTimeout = DefaultSerialRead
	}
	if cfg.Serial.Baud < 0 {
		return invalid("serial baud must be positive, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeout < 0 {
		return invalid("serial read_timeout must not be negative")
	}
	if cfg.ReadTimeout < 0 {
		return invalid("read_timeout must not be negative")
	}

	switch cfg.Mode {
	case ModeSun:
		if cfg.GPS == nil {
			return invalid("sun mode requires coordinates (-S <lat>,<lon>)")
		}
		if lat := cfg.GPS.Latitude; lat <= -90 || lat >= 90 {
			return invalid("latitude %v out of range (-90, 90)", lat)
		}
		if lon := cfg.GPS.Longitude; lon <= -180 || lon >= 180 {
			return invalid("longitude %v out of range (-180, 180)", lon)
		}
		if cfg.CoaxAzimuth != nil {
			log.Printf("coax heading is only used in direct mode; ignoring")
		}
	case ModeDirect:
		if cfg.DishAzimuth != nil {
			log.Printf("dish azimuth is only used in sun mode; ignoring")
		}
	default:
		return invalid("no synchronization mode selected (-S or -D)")
	}
	return nil
}
