package calibrate

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/JakeSaphhire/astralis/internal/config"
)

type fixedEphemeris struct {
	azimuth float64
	gotTime time.Time
	gotLat  float64
	gotLon  float64
}

func (e *fixedEphemeris) SolarAzimuth(t time.Time, lat, lon float64) float64 {
	e.gotTime, e.gotLat, e.gotLon = t, lat, lon
	return e.azimuth
}

type fakeDevice struct {
	azimuth float64
	err     error
	queries int
}

func (d *fakeDevice) QueryAzimuth(ctx context.Context) (float64, error) {
	d.queries++
	return d.azimuth, d.err
}

func float(f float64) *float64 {
	return &f
}

func TestNorth(t *testing.T) {
	for _, offset := range []float64{180, 360} {
		f, err := North{Offset: offset}.Sync(context.Background())
		if err != nil {
			t.Fatalf("Sync: %v", err)
		}
		if f.Offset() != offset {
			t.Errorf("Offset() = %v, want %v", f.Offset(), offset)
		}
	}
}

func TestDirect(t *testing.T) {
	for _, test := range []struct {
		name    string
		d       Direct
		in      float64
		want    float64
		wantOff float64
	}{
		{"north", Direct{NorthOffset: 360}, 45, 45, 360},
		{"north 180", Direct{NorthOffset: 180}, 0, 180, 180},
		{"coax east", Direct{NorthOffset: 360, CoaxHeading: float(90)}, 90, 360, 270},
		{"coax west", Direct{NorthOffset: 180, CoaxHeading: float(270)}, 270, 180, -90},
	} {
		t.Run(test.name, func(t *testing.T) {
			f, err := test.d.Sync(context.Background())
			if err != nil {
				t.Fatalf("Sync: %v", err)
			}
			if f.Offset() != test.wantOff {
				t.Errorf("Offset() = %v, want %v", f.Offset(), test.wantOff)
			}
			if got := f.ToInternal(test.in); got != test.want {
				t.Errorf("ToInternal(%v) = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestSunKnownAzimuth(t *testing.T) {
	eph := &fixedEphemeris{azimuth: 150}
	dev := &fakeDevice{}
	now := time.Date(2024, 6, 21, 16, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	s := Sun{
		Latitude:        42.36,
		Longitude:       -71.09,
		InternalAzimuth: float(30),
		Ephemeris:       eph,
		Device:          dev,
		Now:             func() time.Time { return now },
	}
	f, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if dev.queries != 0 {
		t.Errorf("device queried %d times, want 0", dev.queries)
	}
	if eph.gotTime.Location() != time.UTC || !eph.gotTime.Equal(now) {
		t.Errorf("ephemeris time = %v, want %v in UTC", eph.gotTime, now)
	}
	if eph.gotLat != 42.36 || eph.gotLon != -71.09 {
		t.Errorf("ephemeris location = %v, %v", eph.gotLat, eph.gotLon)
	}
	if got := f.ToInternal(150); got != 30 {
		t.Errorf("ToInternal(150) = %v, want 30", got)
	}
}

func TestSunQueriesDevice(t *testing.T) {
	dev := &fakeDevice{azimuth: 200}
	s := Sun{Ephemeris: &fixedEphemeris{azimuth: 100}, Device: dev}
	f, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if dev.queries != 1 {
		t.Errorf("device queried %d times, want 1", dev.queries)
	}
	ext, in, ok := f.CalibrationPoint()
	if !ok || ext != 100 || in != 200 {
		t.Errorf("CalibrationPoint() = %v, %v, %v; want 100, 200, true", ext, in, ok)
	}
}

func TestSunDeviceUnresponsive(t *testing.T) {
	for _, s := range []Sun{
		{Ephemeris: &fixedEphemeris{}, Device: &fakeDevice{err: errors.New("timeout")}},
		{Ephemeris: &fixedEphemeris{}},
	} {
		if _, err := s.Sync(context.Background()); !errors.Is(err, ErrDeviceUnresponsive) {
			t.Errorf("Sync error = %v, want ErrDeviceUnresponsive", err)
		}
	}
}

func TestFromConfig(t *testing.T) {
	dev := &fakeDevice{}
	eph := &fixedEphemeris{}

	s, err := FromConfig(&config.Configuration{Mode: config.ModeSun, GPS: &config.GPS{Latitude: 1, Longitude: 2}, DishAzimuth: float(5)}, dev, eph)
	if err != nil {
		t.Fatalf("FromConfig(sun): %v", err)
	}
	if sun, ok := s.(Sun); !ok || sun.Latitude != 1 || sun.Longitude != 2 || *sun.InternalAzimuth != 5 {
		t.Errorf("FromConfig(sun) = %#v", s)
	}

	s, err = FromConfig(&config.Configuration{Mode: config.ModeDirect, CoaxAzimuth: float(90)}, dev, eph)
	if err != nil {
		t.Fatalf("FromConfig(direct): %v", err)
	}
	if d, ok := s.(Direct); !ok || d.NorthOffset != config.DefaultNorthOffset || *d.CoaxHeading != 90 {
		t.Errorf("FromConfig(direct) = %#v", s)
	}

	for _, cfg := range []*config.Configuration{
		{},
		{Mode: config.ModeSun},
	} {
		if _, err := FromConfig(cfg, dev, eph); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("FromConfig(%+v) error = %v, want ErrInvalid", cfg, err)
		}
	}
}

func TestSunCalc(t *testing.T) {
	for _, test := range []struct {
		name     string
		t        time.Time
		lat, lon float64
		want     float64
	}{
		// Local apparent noon in Boston, near the June solstice.
		{"boston noon", time.Date(2024, 6, 21, 16, 45, 0, 0, time.UTC), 42.36, -71.09, 180},
		// Mid-morning in Boston at the equinox: the sun is south-east.
		{"boston morning", time.Date(2024, 3, 20, 14, 0, 0, 0, time.UTC), 42.36, -71.09, 125},
		// Winter noon in Sydney: the sun is due north.
		{"sydney noon", time.Date(2024, 6, 21, 2, 0, 0, 0, time.UTC), -33.87, 151.21, 0},
	} {
		t.Run(test.name, func(t *testing.T) {
			az := SunCalc{}.SolarAzimuth(test.t, test.lat, test.lon)
			if az < 0 || az >= 360 {
				t.Fatalf("SolarAzimuth = %v, out of [0, 360)", az)
			}
			d := math.Abs(az - test.want)
			if d > 180 {
				d = 360 - d
			}
			if d > 20 {
				t.Errorf("SolarAzimuth = %v, want about %v", az, test.want)
			}
		})
	}
}
