package rotctld

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/JakeSaphhire/astralis/rotator"
)

const (
	// BufferSize is the most read from a client at once; one read is one frame.
	BufferSize = 128
	// MinFrameSize is the shortest frame that is parsed at all.
	MinFrameSize = 18
	// Deadband is the smallest azimuth change, in degrees, that is sent on
	// to the rotator. Changes up to and including it are dropped.
	Deadband = 0.2

	// deadbandSlack absorbs float error in the azimuth difference, so that
	// a change of exactly Deadband is always suppressed.
	deadbandSlack = 1e-9
)

// ErrFrameTooShort is returned for frames under MinFrameSize bytes.
var ErrFrameTooShort = errors.New("frame too short")

// Outcome is what happened to one frame.
type Outcome int

const (
	// Discarded frames were too short or did not parse.
	Discarded Outcome = iota
	// Ignored frames held a command other than set position.
	Ignored
	// Suppressed frames moved the azimuth by no more than Deadband.
	Suppressed
	// Applied frames were written to the rotator.
	Applied
	// Failed frames could not be written to the rotator.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Discarded:
		return "discarded"
	case Ignored:
		return "ignored"
	case Suppressed:
		return "suppressed"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Session handles the frames of one client connection.
type Session struct {
	frame  rotator.Frame
	device rotator.Positioner
	// ReadTimeout, if positive, ends the session when a client sends
	// nothing for that long. It needs a reader with SetReadDeadline.
	ReadTimeout time.Duration
	// Name identifies the client in log messages.
	Name string

	// lastAzimuth is the last azimuth written to the device, after
	// sanitizing and before frame conversion.
	lastAzimuth float64
}

func NewSession(frame rotator.Frame, device rotator.Positioner) *Session {
	return &Session{frame: frame, device: device, Name: "client"}
}

func (s *Session) LastAzimuth() float64 {
	return s.lastAzimuth
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// Run reads and handles frames until conn returns an error. A clean close
// by the client returns nil.
func (s *Session) Run(conn io.Reader) error {
	buf := make([]byte, BufferSize)
	dl, canTimeout := conn.(readDeadliner)
	for {
		if canTimeout && s.ReadTimeout > 0 {
			if err := dl.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
				return err
			}
		}
		n, err := conn.Read(buf)
		if n > 0 {
			s.handle(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) handle(buf []byte) {
	outcome, err := s.HandleFrame(buf)
	switch {
	case errors.Is(err, ErrFrameTooShort):
	case err != nil:
		log.Printf("%s: %s frame %q: %v", s.Name, outcome, buf, err)
	}
}

// HandleFrame runs one frame through parsing, sanitizing, the deadband and
// the rotator. Errors are never fatal to the session.
func (s *Session) HandleFrame(buf []byte) (Outcome, error) {
	if len(buf) < MinFrameSize {
		return Discarded, ErrFrameTooShort
	}
	cmd, err := Parse(buf)
	if err != nil {
		return Discarded, err
	}
	switch cmd := cmd.(type) {
	case SetPosition:
		return s.setPosition(cmd)
	}
	return Ignored, nil
}

func (s *Session) setPosition(cmd SetPosition) (Outcome, error) {
	az := rotator.Normalize(cmd.Azimuth)
	el, clamped := rotator.ClampElevation(cmd.Elevation)
	if clamped {
		log.Printf("%s: elevation %.2f out of range, clamped to %.2f", s.Name, cmd.Elevation, el)
	}
	if math.Abs(az-s.lastAzimuth) <= Deadband+deadbandSlack {
		return Suppressed, nil
	}
	internal := s.frame.ToInternal(az)
	log.Printf("%s: set position az %.2f el %.2f (internal az %.2f)", s.Name, az, el, internal)
	if err := s.device.SetPosition(internal, el); err != nil {
		return Failed, fmt.Errorf("writing to rotator: %w", err)
	}
	s.lastAzimuth = az
	return Applied, nil
}
