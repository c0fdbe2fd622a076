// Command astralis bridges rotctld clients to a VQ2500 antenna rotator.
//
//	astralis -p <port> [-S <lat>,<lon> | -D] [-h <coax heading>] [-d <dish azimuth>]
//
// With -S the antenna must be pointing at the sun at startup; with -D the
// coax input must point north, or at the heading given with -h.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JakeSaphhire/astralis/calibrate"
	"github.com/JakeSaphhire/astralis/internal/config"
	"github.com/JakeSaphhire/astralis/rotctld"
	"github.com/JakeSaphhire/astralis/vq2500"
	"golang.org/x/sync/errgroup"
)

// simulatorAzimuth is where the simulated rotator starts.
const simulatorAzimuth = 180

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	dev, err := openController(ctx, g, cfg)
	if err != nil {
		log.Fatalf("opening rotator: %v", err)
	}
	defer dev.Close()

	strategy, err := calibrate.FromConfig(cfg, dev, sunEphemeris())
	if err != nil {
		log.Fatalf("calibration: %v", err)
	}
	frame, err := strategy.Sync(ctx)
	if err != nil {
		log.Fatalf("%v calibration failed: %v", cfg.Mode, err)
	}
	log.Printf("%v calibration: %v", cfg.Mode, frame)

	srv := &rotctld.Server{
		Frame:       frame,
		Device:      dev,
		ReadTimeout: cfg.ReadTimeout,
	}
	g.Go(func() error {
		return srv.ListenAndServe(ctx, cfg.Addr())
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func openController(ctx context.Context, g *errgroup.Group, cfg *config.Configuration) (*vq2500.Controller, error) {
	if cfg.Simulator {
		sim, port := vq2500.NewSimulator(simulatorAzimuth)
		g.Go(func() error {
			return sim.Run(ctx)
		})
		log.Printf("using simulated rotator at azimuth %v", simulatorAzimuth)
		return vq2500.New(port), nil
	}
	name := cfg.Serial.Device
	if name == "" {
		var err error
		if name, err = vq2500.DiscoverPort(); err != nil {
			return nil, err
		}
	}
	return vq2500.Open(name, cfg.Serial.Baud, cfg.Serial.ReadTimeout)
}
