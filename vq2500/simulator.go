package vq2500

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JakeSaphhire/astralis/rotator"
	"golang.org/x/sync/errgroup"
)

// SimulatorStatus is the simulated controller state, in degrees.
type SimulatorStatus struct {
	AzPos, ElPos float64
	// Last commanded headings, in controller units.
	CommandAz, CommandEl int
}

// Simulator emulates a VQ2500 on the far end of a pipe.
type Simulator struct {
	conn   net.Conn
	mu     sync.Mutex
	status SimulatorStatus
}

// PipePort is the controller side of a simulator pipe.
type PipePort struct {
	net.Conn
	// ReadTimeout bounds each Read; a read that times out returns 0, nil
	// like a serial port with a read timeout.
	ReadTimeout time.Duration
}

func (p *PipePort) Flush() error {
	return nil
}

func (p *PipePort) Read(b []byte) (int, error) {
	if p.ReadTimeout > 0 {
		p.Conn.SetReadDeadline(time.Now().Add(p.ReadTimeout))
	}
	n, err := p.Conn.Read(b)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return n, nil
	}
	return n, err
}

// NewSimulator returns a simulator parked at the given internal azimuth
// and the port a Controller should use to reach it.
func NewSimulator(azimuth float64) (*Simulator, *PipePort) {
	a, b := net.Pipe()
	s := &Simulator{conn: a}
	s.status.AzPos = azimuth
	s.status.ElPos = rotator.MinElevation
	s.status.CommandAz = int(math.Round(EncodeAzimuth(azimuth)))
	s.status.CommandEl = int(math.Ceil(EncodeElevation(rotator.MinElevation)))
	return s, &PipePort{Conn: b, ReadTimeout: time.Second}
}

func (s *Simulator) Status() SimulatorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

const (
	// Maximum slew rate in degrees/second
	maxVel = 6
	// Discrete simulation step size
	stepSize = 25 * time.Millisecond
)

func (s *Simulator) Run(ctx context.Context) error {
	t := time.NewTicker(stepSize)
	defer t.Stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		s.conn.Close()
		return ctx.Err()
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
			s.step()
		}
	})
	g.Go(func() error {
		return s.reader(ctx)
	})
	return g.Wait()
}

func (s *Simulator) reader(ctx context.Context) error {
	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		log.Printf("srv->sim: %s", input)
		if err := s.parseInput(input); err != nil {
			log.Printf("parsing %q: %v", input, err)
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			// The port was closed for shutdown.
			return nil
		}
		return fmt.Errorf("reading port: %w", err)
	}
	return nil
}

func (s *Simulator) parseInput(input string) error {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]
	if cmd != "azacc" && cmd != "elacc" {
		return fmt.Errorf("unknown command %q", cmd)
	}
	if len(args) == 0 {
		if cmd != "azacc" {
			return fmt.Errorf("%s takes a heading", cmd)
		}
		status := s.Status()
		return s.send("azacc %d\r\n%.2f", status.CommandAz, status.AzPos)
	}
	h, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cmd == "azacc" {
		s.status.CommandAz = h
	} else {
		s.status.CommandEl = h
	}
	return nil
}

// posServo moves s toward t by at most one step.
func posServo(s, t float64) float64 {
	delta := math.Abs(t - s)
	if limit := maxVel * stepSize.Seconds(); delta > limit {
		delta = limit
	}
	if t < s {
		delta = -delta
	}
	return s + delta
}

func (s *Simulator) step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.AzPos = posServo(s.status.AzPos, DecodeAzimuth(float64(s.status.CommandAz)))
	s.status.ElPos = posServo(s.status.ElPos, DecodeElevation(float64(s.status.CommandEl)))
}

func (s *Simulator) send(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	log.Printf("sim->srv: %q", msg)
	_, err := fmt.Fprintf(s.conn, "%s\r\n", msg)
	return err
}
