package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionOptionsFromConfig(t *testing.T) {
	opts := sessionOptions(Config{
		UserAgent:       "webdoc-configured",
		TimeoutSeconds:  5,
		CacheDir:        "/var/cache/webdoc",
		CacheTTLMinutes: 10,
		Browser:         BrowserConfig{Bin: "/usr/bin/chromium"},
	})

	require.Equal(t, "webdoc-configured", opts.UserAgent)
	require.Equal(t, 5*time.Second, opts.Timeout)
	require.Equal(t, "/var/cache/webdoc", opts.CacheDir)
	require.Equal(t, 10*time.Minute, opts.CacheTTL)
	require.Equal(t, "/usr/bin/chromium", opts.Browser.Bin)
}

func TestSessionOptionsFlagsOverrideConfig(t *testing.T) {
	oldUA, oldTTL := *flagUserAgent, *flagCacheTTL
	*flagUserAgent = "webdoc-flag"
	*flagCacheTTL = time.Hour
	defer func() {
		*flagUserAgent = oldUA
		*flagCacheTTL = oldTTL
	}()

	opts := sessionOptions(Config{
		UserAgent:       "webdoc-configured",
		CacheTTLMinutes: 1,
	})
	require.Equal(t, "webdoc-flag", opts.UserAgent)
	require.Equal(t, time.Hour, opts.CacheTTL)
}

func TestLoadConfigSearchesUpward(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "webdoc.json5"), []byte(`{
		// cli defaults
		user_agent: "webdoc-configured",
		timeout_seconds: 7,
	}`), 0600)
	require.NoError(t, err)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0700))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	defer os.Chdir(wd)

	cfg := loadConfig()
	require.Equal(t, "webdoc-configured", cfg.UserAgent)
	require.Equal(t, 7, cfg.TimeoutSeconds)
}

func TestLoadConfigMissingFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	require.Equal(t, Config{}, loadConfig())
}
