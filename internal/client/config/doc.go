// Package config loads runtime configuration for the Health Navigator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults), including the API
//     bundle of the default profile.
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// The API bundle (base URL, timeout, default headers) is never configured
// field by field: it is selected by profile name, "development" or
// "production". Only the base URL may be overridden with -a.
//
// Supported flags
//
//	-p string   profile: development | production
//	-a string   API base URL override
//	-d string   path of the local state database
//	-i int      token check interval (seconds)
//	-l string   log level: debug | info | warn | error
//	-lat float  device latitude
//	-lng float  device longitude
//
// # JSON schema
//
//	{
//	  "profile": "development",
//	  "api_base_url": "http://127.0.0.1:5000/",
//	  "db_path": "navigator.db",
//	  "token_check_interval": "30s",
//	  "seed_fixtures": true,
//	  "log_level": "info",
//	  "download_dir": "download",
//	  "location": {"lat": 48.85, "lng": 2.35}
//	}
package config
