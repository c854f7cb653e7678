// Package config handles configuration for the offline cache server,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the offline cache server.
//
// Fields:
//   - Addr: HTTP listen address.
//   - Origin: base URL the assets are fetched from.
//   - AppName / Version: together they name the cache ("nurse-notes-v2").
//   - CacheDB: SQLite file holding the caches; empty keeps them in memory.
//   - UpstreamTimeout: dial and response-header timeout towards the origin.
//   - LogLevel: debug, info, warn or error.
//   - Manifest: asset paths to install; nil means the built-in list.
type Config struct {
	Addr            string
	Origin          string
	AppName         string
	Version         int
	CacheDB         string
	UpstreamTimeout time.Duration
	LogLevel        string
	Manifest        []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.Origin = "http://127.0.0.1:3000"
	c.AppName = "nurse-notes"
	c.Version = 2
	c.CacheDB = "offline-cache.db"
	c.UpstreamTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Manifest = nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
