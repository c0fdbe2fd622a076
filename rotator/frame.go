package rotator

import "fmt"

// Frame converts azimuths from an external reference frame (compass or
// solar) into the rotator's internal frame. A Frame is fixed once built.
type Frame struct {
	// offset is added to external azimuths to obtain internal ones.
	offset float64
	// external and internal are the raw azimuths the frame was calibrated
	// from, when calibrated is set.
	external, internal float64
	calibrated         bool
}

// Calibrate returns the frame in which external and internal describe the
// same physical direction.
func Calibrate(external, internal float64) Frame {
	return Frame{
		offset:     internal - external,
		external:   external,
		internal:   internal,
		calibrated: true,
	}
}

// FixedOffset returns a frame with a known offset and no calibration point.
func FixedOffset(offset float64) Frame {
	return Frame{offset: offset}
}

func (f Frame) Offset() float64 {
	return f.offset
}

// CalibrationPoint returns the raw azimuths used by Calibrate.
// ok is false for frames built with FixedOffset.
func (f Frame) CalibrationPoint() (external, internal float64, ok bool) {
	return f.external, f.internal, f.calibrated
}

// ToInternal converts an external azimuth into the rotator's frame.
func (f Frame) ToInternal(azimuth float64) float64 {
	return Normalize(azimuth + f.offset)
}

func (f Frame) String() string {
	if f.calibrated {
		return fmt.Sprintf("offset %.2f (external %.2f = internal %.2f)", f.offset, f.external, f.internal)
	}
	return fmt.Sprintf("offset %.2f", f.offset)
}
