package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/nursenotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   storage path
//	-b string   storage backend
//	-o string   export directory
//	-l string   log level
//	-y          assume yes for confirmations
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and unknown
// flags are left to other loaders.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-o", "-l"}, "-y")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "storage path (SQLite file or LevelDB directory)")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend: sqlite, leveldb or memory")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.AssumeYes, "y", cfg.AssumeYes, "assume yes for confirmations")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
