package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/urltemplate/config"
)

func TestLoad_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("", nil)

	require.NoError(t, err)
	assert.Empty(t, cfg.ParamFiles)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "text", cfg.Format)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_from_environ(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("", []string{
		"URLTEMPLATE_PARAM_FILES=a.json,b.yaml",
		"URLTEMPLATE_STRICT=true",
		"URLTEMPLATE_FORMAT=json",
		"URLTEMPLATE_LOG_LEVEL=debug",
		"UNRELATED=1",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.yaml"}, cfg.ParamFiles)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_environ_overrides_dotenv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(
		pa,
		[]byte("URLTEMPLATE_FORMAT=json\nURLTEMPLATE_STRICT=true\n"),
		0o600,
	))

	cfg, err := config.Load(pa, []string{"URLTEMPLATE_FORMAT=text"})

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.Strict)
}

func TestLoad_missing_dotenv_ignored(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("/nonexistent/.env", nil)

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_invalid_format(t *testing.T) {
	t.Parallel()

	_, err := config.Load("", []string{"URLTEMPLATE_FORMAT=xml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORMAT")
}

func TestLoad_invalid_log_level(t *testing.T) {
	t.Parallel()

	_, err := config.Load("", []string{"URLTEMPLATE_LOG_LEVEL=loud"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_invalid_bool(t *testing.T) {
	t.Parallel()

	_, err := config.Load("", []string{"URLTEMPLATE_STRICT=maybe"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
