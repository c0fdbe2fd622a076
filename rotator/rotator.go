package rotator

import "context"

// Positioner commands a rotator in its own (internal) coordinate frame.
type Positioner interface {
	SetPosition(azimuth, elevation float64) error
}

// AzimuthQuerier reads the rotator's current internal azimuth.
type AzimuthQuerier interface {
	QueryAzimuth(ctx context.Context) (float64, error)
}

// Rotator is a controller that can be both commanded and queried.
type Rotator interface {
	Positioner
	AzimuthQuerier
}
