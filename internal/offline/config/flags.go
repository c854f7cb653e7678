package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/nursenotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":8080")
//	-u string   origin URL
//	-n string   app name, the cache name prefix
//	-v int      cache version
//	-d string   cache database file ("" keeps caches in memory)
//	-t int      upstream timeout, seconds
//	-l string   log level
//
// os.Args is first filtered with flagx.FilterArgs so -c/-config and unknown
// flags don't reach this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-n", "-v", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to listen on")
	fs.StringVar(&config.Origin, "u", config.Origin, "origin URL")
	fs.StringVar(&config.AppName, "n", config.AppName, "app name")
	fs.IntVar(&config.Version, "v", config.Version, "cache version")
	fs.StringVar(&config.CacheDB, "d", config.CacheDB, "cache database file")
	upstreamTimeout := fs.Int("t", int(config.UpstreamTimeout.Seconds()), "upstream timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.UpstreamTimeout = time.Duration(*upstreamTimeout) * time.Second
}
