package config

import (
	"fmt"
	"os"
	"time"
)

// Profile selects one of the static API bundles.
type Profile string

const (
	ProfileDevelopment Profile = "development"
	ProfileProduction  Profile = "production"
)

// defaultProfile is overridden at build time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/healthnav/internal/client/config.defaultProfile=production"
var defaultProfile = string(ProfileDevelopment)

// APIConfig is the bundle handed to the HTTP client.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// APIFor returns the API bundle of profile p.
func APIFor(p Profile) (APIConfig, error) {
	switch p {
	case ProfileDevelopment:
		return APIConfig{BaseURL: "http://127.0.0.1:5000/", Timeout: 5 * time.Second, Headers: defaultHeaders()}, nil
	case ProfileProduction:
		return APIConfig{BaseURL: "https://your-production-api.com/", Timeout: 10 * time.Second, Headers: defaultHeaders()}, nil
	default:
		return APIConfig{}, fmt.Errorf("unknown profile %q", p)
	}
}

// Location is a fixed device position standing in for the geolocation API.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Config holds runtime settings for the CLI.
type Config struct {
	Profile            Profile
	API                APIConfig
	DBPath             string
	TokenCheckInterval time.Duration
	SeedFixtures       bool
	LogLevel           string
	DownloadDir        string

	// Location is nil when the device position is unknown, which makes
	// registration fall back to the reference coordinates.
	Location *Location

	baseURLOverride string
	seedOverride    *bool
}

// LoadDefaults populates c with the defaults of the build's profile.
func (c *Config) LoadDefaults() {
	c.Profile = Profile(defaultProfile)
	c.DBPath = "navigator.db"
	c.TokenCheckInterval = 30 * time.Second
	c.LogLevel = "info"
	c.DownloadDir = "download"
	c.Location = nil
	c.baseURLOverride = ""
	c.seedOverride = nil
	_ = c.applyProfile()
}

// applyProfile derives profile-dependent settings after all sources have
// been read.
func (c *Config) applyProfile() error {
	api, err := APIFor(c.Profile)
	if err != nil {
		return err
	}
	if c.baseURLOverride != "" {
		api.BaseURL = c.baseURLOverride
	}
	c.API = api

	c.SeedFixtures = c.Profile == ProfileDevelopment
	if c.seedOverride != nil {
		c.SeedFixtures = *c.seedOverride
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then the JSON file (if any),
// then command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.applyProfile(); err != nil {
		return nil, err
	}
	return cfg, nil
}
