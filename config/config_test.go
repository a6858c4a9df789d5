package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/squash/internal/core/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "squash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
log_format: console
engine:
  strategy_timeout: 90s
generic:
  algorithm: zstd
  level: 4
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "squash", cfg.ServiceName)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 90*time.Second, cfg.Engine.StrategyTimeout)
	assert.Equal(t, "medium", cfg.Engine.DefaultLevel)
	assert.Equal(t, "zstd", cfg.Generic.Algorithm)
	assert.Equal(t, 4, cfg.Generic.Level)
	assert.Equal(t, "disk", cfg.Staging.Mode)
	assert.Equal(t, "ffmpeg", cfg.Media.FFmpegPath)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SQUASH_DEFAULT_LEVEL", "maximum")
	t.Setenv("SQUASH_STRATEGY_TIMEOUT", "2m")
	t.Setenv("SQUASH_GENERIC_LEVEL", "9")
	t.Setenv("SQUASH_FFMPEG_PATH", "/usr/local/bin/ffmpeg")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "maximum", cfg.Engine.DefaultLevel)
	assert.Equal(t, 2*time.Minute, cfg.Engine.StrategyTimeout)
	assert.Equal(t, 9, cfg.Generic.Level)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.Media.FFmpegPath)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "engine: [1, 2"},
		{name: "bad level", body: "engine:\n  default_level: extreme\n"},
		{name: "zero timeout", body: "engine:\n  strategy_timeout: 0s\n"},
		{name: "bad staging", body: "staging:\n  mode: tape\n"},
		{name: "bad log format", body: "log_format: xml\n"},
		{name: "negative level", body: "generic:\n  level: -1\n"},
		{name: "empty ffmpeg", body: "media:\n  ffmpeg_path: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnvRejectsMalformedValues(t *testing.T) {
	env := map[string]string{"SQUASH_STRATEGY_TIMEOUT": "soon"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	assert.Error(t, applyEnv(DefaultConfig(), lookup))

	env = map[string]string{"SQUASH_GENERIC_LEVEL": "high"}
	assert.Error(t, applyEnv(DefaultConfig(), lookup))
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generic.Algorithm = "Brotli"
	cfg.Staging.Mode = "MEMORY"

	opts := cfg.EngineOptions()
	assert.Equal(t, 10*time.Minute, opts.StrategyTimeout)
	assert.Equal(t, domain.LevelMedium, opts.DefaultLevel)
	assert.Equal(t, domain.Algorithm("brotli"), opts.GenericOptions.Algorithm)
	assert.Equal(t, domain.StagingMemory, opts.StagingOptions.Mode)
	assert.Equal(t, "ffmpeg", opts.MediaOptions.FFmpegPath)
}
