package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SaveLoad(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("HILAL_CONFIG_DIR", cfgDir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &GlobalConfig{}, cfg, "missing file loads as empty config")
	assert.True(t, cfg.ShowOtherMonths())

	require.NoError(t, cfg.Set("calendar", "HIJRA"))
	require.NoError(t, cfg.Set("weekStart", "saturday"))
	require.NoError(t, cfg.Set("format", "yaml"))
	require.NoError(t, cfg.Set("tui.showOtherMonths", "false"))
	require.NoError(t, SaveConfig(cfg))

	// Second save keeps a backup of the first.
	require.NoError(t, cfg.Set("tui.profile", "mono"))
	require.NoError(t, SaveConfig(cfg))
	_, err = os.Stat(filepath.Join(cfgDir, "config.json.bak"))
	require.NoError(t, err)

	got, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "hijra", got.Calendar)
	require.NotNil(t, got.WeekStart)
	assert.Equal(t, 6, *got.WeekStart)
	assert.Equal(t, "yaml", got.Format)
	assert.Equal(t, "mono", got.TUI.Profile)
	assert.False(t, got.ShowOtherMonths())

	require.NoError(t, got.Set("weekStart", ""))
	assert.Nil(t, got.WeekStart)
}

func TestConfig_SetRejectsInvalid(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	assert.Error(t, cfg.Set("calendar", "julian"))
	assert.Error(t, cfg.Set("weekStart", "7"))
	assert.Error(t, cfg.Set("weekStart", "-1"))
	assert.Error(t, cfg.Set("format", "xml"))
	assert.Error(t, cfg.Set("tui.showOtherMonths", "maybe"))
	assert.Error(t, cfg.Set("nope", "x"))
	assert.Equal(t, &GlobalConfig{}, cfg)
}

func TestConfig_CorruptFile(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("HILAL_CONFIG_DIR", cfgDir)
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{"), 0o600))

	_, err := LoadConfig()
	assert.Error(t, err)
}
