package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "nurse-notes", c.AppName)
	assert.Equal(t, 2, c.Version)
	assert.Equal(t, "offline-cache.db", c.CacheDB)
	assert.Equal(t, 10*time.Second, c.UpstreamTimeout)
	assert.Nil(t, c.Manifest)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempFile(t, "offline.yaml", "origin: http://file.test\nversion: 5\nupstream_timeout: 2s\n")
	os.Args = []string{"offline", "-c", path, "-v", "7"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://file.test", cfg.Origin)
	assert.Equal(t, 7, cfg.Version)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
}
