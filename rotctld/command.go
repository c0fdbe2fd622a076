// Package rotctld accepts rotctld-style position commands from network
// clients and forwards them to a rotator in its own reference frame.
package rotctld

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JakeSaphhire/astralis/rotator"
)

// ErrParse is wrapped by errors for frames whose arguments are not numbers.
var ErrParse = errors.New("malformed command")

// Command is a parsed client command. The set of commands is closed:
// SetPosition and Unknown.
type Command interface {
	command()
}

// SetPosition moves the rotator to an azimuth and elevation in the
// client's frame, as received.
type SetPosition struct {
	Azimuth, Elevation float64
}

// Unknown is any command this bridge does not implement. It is ignored.
type Unknown struct {
	Name string
}

func (SetPosition) command() {}
func (Unknown) command()     {}

// Parse decodes one frame. Arguments keep only their digits and decimal
// points, so prefixed values such as "az045.0" are accepted.
func Parse(frame []byte) (Command, error) {
	fields := strings.Fields(string(frame))
	if len(fields) == 0 {
		return Unknown{}, nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case `\set_pos`, "P":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: %s needs azimuth and elevation, got %q", ErrParse, cmd, args)
		}
		az, err := rotator.ParseNumber(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: azimuth %q: %v", ErrParse, args[0], err)
		}
		el, err := rotator.ParseNumber(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: elevation %q: %v", ErrParse, args[1], err)
		}
		return SetPosition{Azimuth: az, Elevation: el}, nil
	}
	return Unknown{Name: cmd}, nil
}
