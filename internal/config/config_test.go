package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, "info", config.Logger.Verbosity)
	assert.Equal(t, "json", config.Logger.Format)
	assert.Equal(t, "getrf", config.Bench.Function)
	assert.Equal(t, "s", config.Bench.Precision)
	assert.Equal(t, 10, config.Bench.Iters)
	assert.Equal(t, 128, config.Bench.M)
	assert.Equal(t, 128, config.Bench.N)
	assert.Empty(t, config.Metrics.Out)
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config, err := LoadConfig("../../fixtures/tests/config/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, "debug", config.Logger.Verbosity)
		assert.Equal(t, "console", config.Logger.Format)
		assert.Equal(t, "potrf", config.Bench.Function)
		assert.Equal(t, "d", config.Bench.Precision)
		assert.Equal(t, 3, config.Bench.Iters)
		assert.Equal(t, 1, config.Bench.Device)
		assert.Equal(t, 64, config.Bench.M)
		// not set in the file
		assert.Equal(t, 128, config.Bench.N)
		assert.Equal(t, "/tmp/densolver.prom", config.Metrics.Out)
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := LoadConfig("non-existent-file.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir, err := os.Getwd()
		require.NoError(t, err)

		configPath := filepath.Join(dir, "..", "..", "fixtures", "tests", "invalid_config", "config.yaml")
		_, err = LoadConfig(configPath)
		assert.Error(t, err)
	})
}
