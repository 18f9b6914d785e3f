package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err, "a default config file should have been written")
	assert.Equal(t, 4096, cfg.Matcher.PatternCacheSize)
	assert.Equal(t, 100000, cfg.Matcher.ResultCacheMaxChars)
	assert.Equal(t, "info", cfg.System.LogLevel)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "matcher:\n  pattern_cache_size: 128\nsystem:\n  log_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Matcher.PatternCacheSize)
	assert.Equal(t, "debug", cfg.System.LogLevel)
	assert.Equal(t, 100000, cfg.Matcher.ResultCacheMaxChars, "missing fields get defaults")
	assert.Equal(t, "blacklist.json", cfg.Blacklist.File)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4096, cfg.Matcher.PatternCacheSize)
	assert.Empty(t, cfg.TLD.CustomSuffixes)
}
