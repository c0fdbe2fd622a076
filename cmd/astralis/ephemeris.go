//go:build !novas

package main

import "github.com/JakeSaphhire/astralis/calibrate"

func sunEphemeris() calibrate.Ephemeris {
	return calibrate.SunCalc{}
}
