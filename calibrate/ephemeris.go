package calibrate

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Ephemeris computes where the sun is.
type Ephemeris interface {
	// SolarAzimuth returns the sun's azimuth in degrees, clockwise from
	// true north, seen from latitude/longitude at t.
	SolarAzimuth(t time.Time, latitude, longitude float64) float64
}

// SunCalc computes the sun's position analytically. It needs no data files.
type SunCalc struct{}

func (SunCalc) SolarAzimuth(t time.Time, latitude, longitude float64) float64 {
	// suncalc measures azimuth in radians from south, positive towards west.
	pos := suncalc.GetPosition(t.UTC(), latitude, longitude)
	return math.Mod(pos.Azimuth*180/math.Pi+540, 360)
}
