//go:build novas

package main

import (
	"log"

	"github.com/JakeSaphhire/astralis/calibrate"
	"github.com/JakeSaphhire/astralis/calibrate/jpl"
)

func sunEphemeris() calibrate.Ephemeris {
	log.Printf("using NOVAS: %s", jpl.Info())
	return jpl.Ephemeris{}
}
