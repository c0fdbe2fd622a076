package rotator

import (
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	for _, test := range []struct {
		in, want float64
	}{
		{370, 10},
		{-10, 350},
		{0.5, 360},
		{0, 0},
		{1, 1},
		{45, 45},
		{360, 360},
		{720, 0},
		{-360, 360},
		{-725, 355},
		{1080.5, 360},
		{-359.5, 360},
		{-0.5, 359.5},
		{-359, 1},
	} {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			if got := Normalize(test.in); got != test.want {
				t.Errorf("Normalize(%v) = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestNormalizeRange(t *testing.T) {
	for a := -1000.0; a <= 1000; a += 0.25 {
		if got := Normalize(a); got < 0 || got > 360 {
			t.Errorf("Normalize(%v) = %v, out of [0, 360]", a, got)
		}
	}
}

func TestClampElevation(t *testing.T) {
	for _, test := range []struct {
		in, want float64
		clamped  bool
	}{
		{3, 5, true},
		{75, 70, true},
		{40, 40, false},
		{5, 5, false},
		{70, 70, false},
	} {
		got, clamped := ClampElevation(test.in)
		if got != test.want || clamped != test.clamped {
			t.Errorf("ClampElevation(%v) = %v, %v; want %v, %v", test.in, got, clamped, test.want, test.clamped)
		}
	}
}
