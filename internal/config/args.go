package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// gpsFlag parses "<lat>,<lon>".
type gpsFlag struct {
	GPS
	set bool
}

func (g *gpsFlag) String() string {
	if g == nil || !g.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", g.Latitude, g.Longitude)
}

func (g *gpsFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return errors.New("want <lat>,<lon>")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}
	g.GPS = GPS{Latitude: lat, Longitude: lon}
	g.set = true
	return nil
}

// ParseArgs parses command line arguments (without the program name),
// layered over the -config file when one is given. It returns a validated
// configuration or an error.
func ParseArgs(args []string) (*Configuration, error) {
	fs := flag.NewFlagSet("astralis", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "YAML configuration file; flags override it")
		port        = fs.Uint("port", DefaultPort, "TCP port for rotctld clients")
		sun         gpsFlag
		direct      = fs.Bool("direct", false, "direct alignment: coax input points north, or at -heading")
		heading     = fs.Float64("heading", 0, "heading of the coax input (direct mode)")
		dish        = fs.Float64("dish", 0, "internal azimuth of the antenna at startup (sun mode); skips querying the controller")
		serialPort  = fs.String("serial", "", "serial port name; empty uses the first port found")
		baud        = fs.Int("baud", DefaultBaud, "serial baud rate")
		serialRead  = fs.Duration("serial_timeout", DefaultSerialRead, "serial read timeout")
		northOffset = fs.Float64("north_offset", DefaultNorthOffset, "frame offset when the coax input points north; verify on site")
		readTimeout = fs.Duration("read_timeout", 0, "read timeout for rotctld clients; 0 waits forever")
		simulator   = fs.Bool("simulator", false, "drive an in-process simulator instead of a serial port")
	)
	fs.Var(&sun, "sun", "solar alignment at `lat,lon`")
	fs.UintVar(port, "p", DefaultPort, "shorthand for -port")
	fs.Var(&sun, "S", "shorthand for -sun")
	fs.BoolVar(direct, "D", false, "shorthand for -direct")
	fs.Float64Var(heading, "h", 0, "shorthand for -heading")
	fs.Float64Var(dish, "d", 0, "shorthand for -dish")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, invalid("unexpected arguments %q", fs.Args())
	}

	cfg := &Configuration{}
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if set["port"] || set["p"] {
		if *port == 0 || *port > math.MaxUint16 {
			return nil, invalid("port %d out of range", *port)
		}
		cfg.Port = uint16(*port)
	}
	if sun.set && *direct {
		return nil, invalid("-S and -D are mutually exclusive")
	}
	if sun.set {
		cfg.Mode = ModeSun
		gps := sun.GPS
		cfg.GPS = &gps
	}
	if *direct {
		cfg.Mode = ModeDirect
	}
	if set["heading"] || set["h"] {
		h := *heading
		cfg.CoaxAzimuth = &h
	}
	if set["dish"] || set["d"] {
		d := *dish
		cfg.DishAzimuth = &d
	}
	if set["north_offset"] {
		n := *northOffset
		cfg.NorthOffset = &n
	}
	if set["serial"] {
		cfg.Serial.Device = *serialPort
	}
	if set["baud"] {
		cfg.Serial.Baud = *baud
	}
	if set["serial_timeout"] {
		cfg.Serial.ReadTimeout = *serialRead
	}
	if set["read_timeout"] {
		cfg.ReadTimeout = *readTimeout
	}
	if set["simulator"] {
		cfg.Simulator = *simulator
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
