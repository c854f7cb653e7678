package config

import (
	"os"

	"github.com/dmitrijs2005/nursenotes/internal/flagx"
	"github.com/dmitrijs2005/nursenotes/internal/timex"
	"sigs.k8s.io/yaml"
)

// FileConfig is the DTO for config files. It uses timex.Duration, which
// accepts strings such as "5s" as well as integer nanoseconds. YAML is
// converted to JSON before decoding, so the json tags cover both formats.
type FileConfig struct {
	Addr            string          `json:"addr"`
	Origin          string          `json:"origin"`
	AppName         string          `json:"app_name"`
	Version         int             `json:"version"`
	CacheDB         *string         `json:"cache_db"`
	UpstreamTimeout *timex.Duration `json:"upstream_timeout"`
	LogLevel        string          `json:"log_level"`
	Manifest        []string        `json:"manifest"`
}

// parseFile loads the file named by -c/-config into config. Absent keys
// keep their current value; cache_db may be set to "" to use memory. It
// panics when the file can't be read or decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	if err := yaml.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.Origin != "" {
		config.Origin = c.Origin
	}
	if c.AppName != "" {
		config.AppName = c.AppName
	}
	if c.Version != 0 {
		config.Version = c.Version
	}
	if c.CacheDB != nil {
		config.CacheDB = *c.CacheDB
	}
	if c.UpstreamTimeout != nil {
		config.UpstreamTimeout = c.UpstreamTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if len(c.Manifest) > 0 {
		config.Manifest = c.Manifest
	}
}
