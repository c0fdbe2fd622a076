// Package vq2500 drives a VQ2500 antenna rotator controller over a serial
// line. The controller accepts absolute positions as dimensionless headings
// ("azacc <n>" / "elacc <n>") rather than degrees.
package vq2500

import (
	"fmt"
	"math"
)

// The azimuth scale has a step at 210°; both segments were measured on
// the controller and must be kept as-is.
const (
	azimuthBreak = 210.0

	azimuthLowBase   = 724.6
	azimuthLowScale  = 15.6
	azimuthHighBase  = 792.0
	azimuthHighScale = 16.20

	elevationBase  = 390.1
	elevationScale = 17.44
)

// Heading is a position in controller units.
type Heading struct {
	Azimuth   float64
	Elevation float64
}

// Encode converts an internal azimuth/elevation in degrees into headings.
// Inputs must already be sanitized.
func Encode(azimuth, elevation float64) Heading {
	return Heading{
		Azimuth:   EncodeAzimuth(azimuth),
		Elevation: EncodeElevation(elevation),
	}
}

func EncodeAzimuth(azimuth float64) float64 {
	if azimuth >= azimuthBreak {
		return azimuthHighBase + azimuthHighScale*azimuth
	}
	return azimuthLowBase + azimuthLowScale*azimuth
}

func EncodeElevation(elevation float64) float64 {
	return elevationBase + elevationScale*elevation
}

// DecodeAzimuth is the inverse of EncodeAzimuth. Headings falling in the
// gap between the two segments are decoded with the lower one.
func DecodeAzimuth(heading float64) float64 {
	if heading >= EncodeAzimuth(azimuthBreak) {
		return (heading - azimuthHighBase) / azimuthHighScale
	}
	return (heading - azimuthLowBase) / azimuthLowScale
}

func DecodeElevation(heading float64) float64 {
	return (heading - elevationBase) / elevationScale
}

// AzimuthUnits is the azimuth heading as sent on the wire.
func (h Heading) AzimuthUnits() int {
	return int(math.Round(h.Azimuth))
}

// ElevationUnits is the elevation heading as sent on the wire. It rounds up.
func (h Heading) ElevationUnits() int {
	return int(math.Ceil(h.Elevation))
}

// Commands returns the two command lines that move the rotator to h.
func (h Heading) Commands() [2]string {
	return [2]string{
		fmt.Sprintf("azacc %d \r\n", h.AzimuthUnits()),
		fmt.Sprintf("elacc %d \r\n", h.ElevationUnits()),
	}
}
