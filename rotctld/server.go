package rotctld

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"github.com/JakeSaphhire/astralis/rotator"
)

// acceptBackoff is how long Serve waits after a failed Accept.
var acceptBackoff = 1 * time.Second

// Server serves one rotctld client at a time against a single rotator.
type Server struct {
	Frame  rotator.Frame
	Device rotator.Positioner
	// ReadTimeout is passed to every Session.
	ReadTimeout time.Duration
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("listening for rotctld clients on %v (%v)", ln.Addr(), s.Frame)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. Each connection is
// handled to completion before the next is accepted.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Print("shutdown; closing rotctld socket")
			ln.Close()
		case <-done:
		}
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Printf("failed to accept: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(acceptBackoff):
			}
			continue
		}
		s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	log.Printf("accepted connection from %v", conn.RemoteAddr())

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	sess := NewSession(s.Frame, s.Device)
	sess.Name = conn.RemoteAddr().String()
	sess.ReadTimeout = s.ReadTimeout
	if err := sess.Run(conn); err != nil && ctx.Err() == nil {
		log.Printf("reading from %v: %v", conn.RemoteAddr(), err)
	}
	log.Printf("closed connection from %v", conn.RemoteAddr())
}
