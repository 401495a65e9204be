package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		}
	})
}

func TestLocateSettingsFileFindsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, configDirName)
	require.NoError(t, os.MkdirAll(configured, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configured, SettingsFilename), []byte(`{}`), 0o600))

	withEnv(t, "XDG_CONFIG_HOME", dir)
	unsetEnv(t, "XDG_CONFIG_DIRS")

	path, err := LocateSettingsFile(DefaultLocator)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configured, SettingsFilename), path)
}

func TestLocateSettingsFileFallsBackToXDGConfigDirs(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, configDirName)
	require.NoError(t, os.MkdirAll(configured, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configured, SettingsFilename), []byte(`{}`), 0o600))

	unsetEnv(t, "XDG_CONFIG_HOME")
	withEnv(t, "XDG_CONFIG_DIRS", dir)

	oldHomedir := homedirFunc
	homedirFunc = func() (string, error) { return "", assert.AnError }
	t.Cleanup(func() { homedirFunc = oldHomedir })

	path, err := LocateSettingsFile(DefaultLocator)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configured, SettingsFilename), path)
}

func TestLocateSettingsFileReturnsErrorWhenNowhereFound(t *testing.T) {
	unsetEnv(t, "XDG_CONFIG_HOME")
	unsetEnv(t, "XDG_CONFIG_DIRS")

	oldHomedir := homedirFunc
	homedirFunc = func() (string, error) { return "", assert.AnError }
	t.Cleanup(func() { homedirFunc = oldHomedir })

	_, err := LocateSettingsFile(DefaultLocator)
	assert.Error(t, err)
}
