//go:build novas

package jpl

import (
	"math"
	"testing"
	"time"
)

func TestNoonIsSouth(t *testing.T) {
	// Local apparent noon in Boston, near the June solstice.
	t0 := time.Date(2024, 6, 21, 16, 45, 0, 0, time.UTC)
	az := Ephemeris{}.SolarAzimuth(t0, 42.36, -71.09)
	if math.Abs(az-180) > 15 {
		t.Errorf("SolarAzimuth at noon = %v, want about 180", az)
	}
}
