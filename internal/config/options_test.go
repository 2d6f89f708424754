package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { os.Setenv(key, old) })
	}
	os.Unsetenv(key)
}

func TestParseOptionsDefaults(t *testing.T) {
	for _, key := range []string{"YTDM_LOG_DIR", "YTDM_BIN_DIR", "YTDM_KILL_TIMEOUT", "YTDM_DEBUG", "YTDM_PLAYLIST_TIMEOUT"} {
		unsetEnv(t, key)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	opts, err := ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, opts.KillTimeout)
	assert.Equal(t, time.Minute, opts.PlaylistTimeout)
	assert.False(t, opts.Debug)
	assert.Equal(t, "logs", filepath.Base(opts.LogDir))
	assert.Equal(t, "bin", filepath.Base(opts.BinDir))
	assert.Empty(t, opts.URLs)
}

func TestParseOptionsFlagsAndEnv(t *testing.T) {
	unsetEnv(t, "YTDM_DEBUG")
	unsetEnv(t, "YTDM_PLAYLIST_TIMEOUT")
	t.Setenv("YTDM_LOG_DIR", "/var/log/ytdm")
	t.Setenv("YTDM_KILL_TIMEOUT", "2s")

	opts, err := ParseOptions([]string{"--bin-dir", "/opt/ytdm/bin", "--debug", "--playlist-timeout", "90s", "https://example.com/a", "https://example.com/b"})
	require.NoError(t, err)
	assert.Equal(t, "/var/log/ytdm", opts.LogDir)
	assert.Equal(t, "/opt/ytdm/bin", opts.BinDir)
	assert.Equal(t, 2*time.Second, opts.KillTimeout)
	assert.True(t, opts.Debug)
	assert.Equal(t, 90*time.Second, opts.PlaylistTimeout)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, opts.URLs)
}

func TestParseOptionsRejectsBadTimeout(t *testing.T) {
	unsetEnv(t, "YTDM_KILL_TIMEOUT")
	unsetEnv(t, "YTDM_PLAYLIST_TIMEOUT")
	t.Setenv("YTDM_LOG_DIR", "/tmp/l")
	t.Setenv("YTDM_BIN_DIR", "/tmp/b")

	_, err := ParseOptions([]string{"--kill-timeout", "0s"})
	assert.Error(t, err)

	_, err = ParseOptions([]string{"--kill-timeout", "soon"})
	assert.Error(t, err)

	_, err = ParseOptions([]string{"--playlist-timeout", "-1s"})
	assert.Error(t, err)
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("YTDM_TEST_A=from-file\nYTDM_TEST_B=from-file\n"), 0o600))

	t.Setenv("YTDM_TEST_A", "from-env")
	unsetEnv(t, "YTDM_TEST_B")
	t.Cleanup(func() { os.Unsetenv("YTDM_TEST_B") })

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), file))
	assert.Equal(t, "from-env", os.Getenv("YTDM_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("YTDM_TEST_B"))
}
