package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wscrape/wscrape/internal/config"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestInitCommand(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, initCommand(false))

	// The generated config must load and validate.
	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "logins.db", cfg.Store.DSN)
	assert.Equal(t, config.DefaultIntervalMS, cfg.Capture.IntervalMS)

	// Credential templates exist with owner-only permissions.
	for _, name := range []string{"store.json", "remote.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestInitCommand_ExistingConfig(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, initCommand(false))

	// A second init without --force must refuse to clobber.
	err := initCommand(false)
	assert.Error(t, err)

	// With --force it overwrites.
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("mangled"), 0644))
	require.NoError(t, initCommand(true))

	_, err = config.Load(filepath.Join(dir, config.ConfigFileName))
	assert.NoError(t, err)
}
