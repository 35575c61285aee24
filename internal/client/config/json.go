package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/healthnav/internal/flagx"
	"github.com/dmitrijs2005/healthnav/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	Profile            string          `json:"profile"`
	APIBaseURL         string          `json:"api_base_url"`
	DBPath             string          `json:"db_path"`
	TokenCheckInterval *timex.Duration `json:"token_check_interval"`
	SeedFixtures       *bool           `json:"seed_fixtures"`
	LogLevel           string          `json:"log_level"`
	DownloadDir        string          `json:"download_dir"`
	Location           *Location       `json:"location"`
}

// parseJson overlays cfg with the file named by -c / -config. No flag means
// no file and no error.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Profile != "" {
		cfg.Profile = Profile(jc.Profile)
	}
	if jc.APIBaseURL != "" {
		cfg.baseURLOverride = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.TokenCheckInterval != nil {
		cfg.TokenCheckInterval = jc.TokenCheckInterval.Duration
	}
	if jc.SeedFixtures != nil {
		v := *jc.SeedFixtures
		cfg.seedOverride = &v
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.Location != nil {
		loc := *jc.Location
		cfg.Location = &loc
	}
	return nil
}
