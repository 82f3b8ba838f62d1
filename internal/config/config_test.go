package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.SaveDir)
	assert.NotEmpty(t, cfg.GeminiModel)
	assert.False(t, cfg.NarrationEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CHARSHEET_SAVE_DIR", "/tmp/sheets")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("CHARSHEET_DICE_SEED", "99")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sheets", cfg.SaveDir)
	assert.Equal(t, uint64(99), cfg.DiceSeed)
	assert.True(t, cfg.NarrationEnabled())
}

func TestLoadConfigBadSeed(t *testing.T) {
	t.Setenv("CHARSHEET_DICE_SEED", "lots")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHARSHEET_GEMINI_MODEL=gemini-test\nCHARSHEET_SAVE_DIR=from-file\n"), 0644))
	t.Chdir(dir)
	// The environment wins over the file.
	t.Setenv("CHARSHEET_SAVE_DIR", "from-env")
	t.Setenv("CHARSHEET_GEMINI_MODEL", "")
	os.Unsetenv("CHARSHEET_GEMINI_MODEL")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
	assert.Equal(t, "from-env", cfg.SaveDir)
}
