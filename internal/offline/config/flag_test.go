package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", ":9090", "-u", "http://origin.test", "-n", "notes", "-v", "3", "-d", "c.db", "-t", "4", "-l", "debug"},
			expected: &Config{Addr: ":9090", Origin: "http://origin.test", AppName: "notes", Version: 3, CacheDB: "c.db", UpstreamTimeout: 4 * time.Second, LogLevel: "debug"}},
		{name: "empty cache db", args: []string{"cmd", "-d="},
			expected: &Config{}},
		{name: "incorrect version", args: []string{"cmd", "-v", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "1s"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
