// Package calibrate establishes the rotator's reference frame at startup,
// either from the installed orientation of the coax input or from the
// sun's current azimuth.
package calibrate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/JakeSaphhire/astralis/internal/config"
	"github.com/JakeSaphhire/astralis/rotator"
)

// ErrDeviceUnresponsive is returned when the controller gives no usable
// azimuth reading during sun calibration.
var ErrDeviceUnresponsive = errors.New("rotator did not report its azimuth")

// Strategy produces a reference frame.
type Strategy interface {
	Sync(ctx context.Context) (rotator.Frame, error)
}

// North assumes the coax input was pointed at geometric north by the
// operator. Offset is the frame offset that position corresponds to; it is
// a property of the installation (180 and 360 have both been used) and has
// to be checked on site.
type North struct {
	Offset float64
}

func (n North) Sync(ctx context.Context) (rotator.Frame, error) {
	return rotator.FixedOffset(n.Offset), nil
}

// Direct is North with the coax input pointed at CoaxHeading instead.
type Direct struct {
	NorthOffset float64
	CoaxHeading *float64
}

func (d Direct) Sync(ctx context.Context) (rotator.Frame, error) {
	if d.CoaxHeading == nil {
		return North{Offset: d.NorthOffset}.Sync(ctx)
	}
	return rotator.FixedOffset(d.NorthOffset - *d.CoaxHeading), nil
}

// Sun calibrates against the sun: the rotator is assumed to be pointing at
// the sun when Sync runs.
type Sun struct {
	Latitude, Longitude float64
	// InternalAzimuth is the rotator's azimuth, if already known. When nil
	// the controller is queried.
	InternalAzimuth *float64

	Ephemeris Ephemeris
	Device    rotator.AzimuthQuerier
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s Sun) Sync(ctx context.Context) (rotator.Frame, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now().UTC()
	solar := s.Ephemeris.SolarAzimuth(t, s.Latitude, s.Longitude)
	log.Printf("solar azimuth at %v for (%v, %v): %.2f", t.Format(time.RFC3339), s.Latitude, s.Longitude, solar)

	if s.InternalAzimuth != nil {
		return rotator.Calibrate(solar, *s.InternalAzimuth), nil
	}
	if s.Device == nil {
		return rotator.Frame{}, fmt.Errorf("%w: no device to query", ErrDeviceUnresponsive)
	}
	internal, err := s.Device.QueryAzimuth(ctx)
	if err != nil {
		return rotator.Frame{}, fmt.Errorf("%w: %v", ErrDeviceUnresponsive, err)
	}
	log.Printf("rotator reports internal azimuth %.2f", internal)
	return rotator.Calibrate(solar, internal), nil
}

// FromConfig selects the strategy for cfg.
func FromConfig(cfg *config.Configuration, device rotator.AzimuthQuerier, eph Ephemeris) (Strategy, error) {
	switch cfg.Mode {
	case config.ModeSun:
		if cfg.GPS == nil {
			return nil, fmt.Errorf("%w: sun mode without coordinates", config.ErrInvalid)
		}
		return Sun{
			Latitude:        cfg.GPS.Latitude,
			Longitude:       cfg.GPS.Longitude,
			InternalAzimuth: cfg.DishAzimuth,
			Ephemeris:       eph,
			Device:          device,
		}, nil
	case config.ModeDirect:
		return Direct{
			NorthOffset: cfg.NorthOffsetDegrees(),
			CoaxHeading: cfg.CoaxAzimuth,
		}, nil
	}
	return nil, fmt.Errorf("%w: mode %v", config.ErrInvalid, cfg.Mode)
}
