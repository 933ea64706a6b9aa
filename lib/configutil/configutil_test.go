package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Timeout   int    `json:"timeout"`
	UserAgent string `json:"user_agent"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webdoc.json5")
	err := os.WriteFile(path, []byte(`{
		// seconds
		timeout: 30,
		user_agent: "webdoc-test",
	}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, 30, config.Timeout)
	require.Equal(t, "webdoc-test", config.UserAgent)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "webdoc.json5"), []byte(`{timeout: 30, user_agent: "base"}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "webdoc.local.json5"), []byte(`{timeout: 5}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "webdoc.json5"))
	require.NoError(t, err)
	require.Equal(t, 5, config.Timeout)
	require.Equal(t, "base", config.UserAgent)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
