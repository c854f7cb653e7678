package config

// Config holds runtime settings for the Nurse Notes CLI.
//
// Fields:
//   - StoragePath: SQLite file or LevelDB directory holding notes and options.
//   - Backend: "sqlite", "leveldb" or "memory".
//   - ExportDir: directory receiving exported notes and option bundles.
//   - LogLevel: debug, info, warn or error.
//   - AssumeYes: answer yes to every confirmation prompt.
type Config struct {
	StoragePath string
	Backend     string
	ExportDir   string
	LogLevel    string
	AssumeYes   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoragePath = "nursenotes.db"
	c.Backend = "sqlite"
	c.ExportDir = "."
	c.LogLevel = "warn"
	c.AssumeYes = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
