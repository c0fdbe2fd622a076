package vq2500

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/JakeSaphhire/astralis/rotator"
	"github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

const queryCommand = "azacc\r\n"

// ErrNoReading is returned when the controller does not answer a position
// query with a usable value.
var ErrNoReading = errors.New("no azimuth reading from controller")

// Port is the serial line to the controller.
type Port interface {
	io.ReadWriter
	// Flush discards data buffered in either direction.
	Flush() error
}

// Controller talks to a VQ2500. It is safe for concurrent use; each
// command pair is written atomically.
type Controller struct {
	mu     sync.Mutex
	port   Port
	closer io.Closer
}

var _ rotator.Rotator = (*Controller)(nil)

func New(port Port) *Controller {
	c := &Controller{port: port}
	if closer, ok := port.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// Open opens the named serial device. readTimeout bounds each read while
// waiting for a query reply and must be positive.
func Open(name string, baud int, readTimeout time.Duration) (*Controller, error) {
	if readTimeout <= 0 {
		return nil, fmt.Errorf("opening %q: read timeout must be positive", name)
	}
	c := &serial.Config{Name: name, Baud: baud, ReadTimeout: readTimeout}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}
	log.Printf("opened %q at %d baud", name, baud)
	return New(s), nil
}

// DiscoverPort returns the first serial port present on the system.
func DiscoverPort() (string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("listing serial ports: %w", err)
	}
	log.Printf("serial ports: %v", ports)
	if len(ports) == 0 {
		return "", errors.New("no serial ports found")
	}
	return ports[0], nil
}

func (c *Controller) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// write sends s one byte at a time, clearing the port buffers before every
// byte. The controller drops characters from multi-byte writes.
func (c *Controller) write(s string) error {
	for i := 0; i < len(s); i++ {
		if err := c.port.Flush(); err != nil {
			return fmt.Errorf("clearing buffers: %w", err)
		}
		if _, err := c.port.Write([]byte{s[i]}); err != nil {
			return err
		}
	}
	return nil
}

// SetPosition moves the rotator to an internal azimuth and elevation in
// degrees. Both values must already be within the rotator's range.
func (c *Controller) SetPosition(azimuth, elevation float64) error {
	cmds := Encode(azimuth, elevation).Commands()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cmd := range cmds {
		log.Printf("Writing: %q", cmd)
		if err := c.write(cmd); err != nil {
			return fmt.Errorf("writing %q: %w", strings.TrimSpace(cmd), err)
		}
	}
	return nil
}

// QueryAzimuth asks the controller for its current internal azimuth.
func (c *Controller) QueryAzimuth(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(queryCommand); err != nil {
		return 0, fmt.Errorf("writing query: %w", err)
	}
	var reply []byte
	buf := make([]byte, 64)
	for {
		if az, ok := ParseAzimuthReply(reply); ok {
			return az, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := c.port.Read(buf)
		reply = append(reply, buf[:n]...)
		if err == io.EOF || (err == nil && n == 0) {
			// Read timed out.
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading reply: %w", err)
		}
	}
	return 0, fmt.Errorf("%w: got %q", ErrNoReading, reply)
}

// ParseAzimuthReply extracts the azimuth from a reply to the position
// query. The reply is a series of lines; every line is reduced to its
// numeric characters and the second value is the azimuth. ok is false until
// two complete numeric lines have been seen.
func ParseAzimuthReply(reply []byte) (azimuth float64, ok bool) {
	lines := strings.Split(string(reply), "\n")
	// The last part is either empty or a line still being received.
	lines = lines[:len(lines)-1]
	var values []float64
	for _, line := range lines {
		v, err := rotator.ParseNumber(line)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) < 2 {
		return 0, false
	}
	return values[1], true
}
