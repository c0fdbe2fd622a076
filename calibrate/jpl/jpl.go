//go:build novas

// Package jpl computes solar positions with NOVAS against a JPL planetary
// ephemeris. Importing it aborts the program unless the ephemeris file is
// found at $JPLEPH or next to the novas sources, so it is only built with
// the novas tag.
package jpl

import (
	"time"

	"github.com/pebbe/novas"
)

// Ephemeris computes the topocentric position of the sun with NOVAS.
type Ephemeris struct{}

func (Ephemeris) SolarAzimuth(t time.Time, latitude, longitude float64) float64 {
	t = t.UTC()
	// Height, temperature and pressure only matter for refraction, which
	// does not change the azimuth.
	place := novas.NewPlace(latitude, longitude, 0, 10, 1010)
	when := novas.Date(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return novas.Sun().Topo(when, place, novas.REFR_NONE).Az
}

// Info describes the loaded ephemeris file.
func Info() string {
	return novas.EphInfo().String()
}
