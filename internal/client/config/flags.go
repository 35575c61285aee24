package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dmitrijs2005/healthnav/internal/flagx"
)

var knownFlags = []string{"-p", "-a", "-d", "-i", "-l", "-lat", "-lng"}

// parseFlags applies the flags listed in the package doc. Arguments that
// belong to other components (-c) are filtered out first. Negative
// coordinates must use the -lat=-33.86 form.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("navigator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	profile := fs.String("p", string(cfg.Profile), "profile: development | production")
	baseURL := fs.String("a", cfg.baseURLOverride, "API base URL override")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local state database")
	interval := fs.Int("i", int(cfg.TokenCheckInterval.Seconds()), "token check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	lat := fs.Float64("lat", math.NaN(), "device latitude")
	lng := fs.Float64("lng", math.NaN(), "device longitude")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg.Profile = Profile(*profile)
	cfg.baseURLOverride = *baseURL
	if set["i"] {
		if *interval <= 0 {
			return fmt.Errorf("token check interval must be positive, got %d", *interval)
		}
		cfg.TokenCheckInterval = time.Duration(*interval) * time.Second
	}

	switch {
	case math.IsNaN(*lat) && math.IsNaN(*lng):
	case math.IsNaN(*lat) || math.IsNaN(*lng):
		return fmt.Errorf("-lat and -lng must be given together")
	default:
		cfg.Location = &Location{Lat: *lat, Lng: *lng}
	}
	return nil
}
