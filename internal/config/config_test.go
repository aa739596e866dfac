package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestServerAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
logging:
  level: debug
  format: console
game:
  seed: 42
  grid:
    width: 50
    height: 40
  max_depth: 5
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 50, cfg.Game.Grid.Width)
	assert.Equal(t, 40, cfg.Game.Grid.Height)
	assert.Equal(t, 5, cfg.Game.MaxDepth)
	// Keys absent from the file fall back to defaults.
	assert.Equal(t, 8, cfg.Game.Rooms.Max)
	assert.Equal(t, 0.2, cfg.Game.Combat.Variance)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateRejectsOversizedRooms(t *testing.T) {
	cfg := Default()
	cfg.Game.Rooms.MaxSize = cfg.Game.Grid.Height
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_size")
}

func TestValidateRejectsVarianceOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.1, 1.0, 2.5} {
		cfg := Default()
		cfg.Game.Combat.Variance = v
		assert.Error(t, cfg.Validate(), "variance %g should be rejected", v)
	}
}

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := Default()
		cfg.Server.Port = port
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := Default()
		cfg.Server.Port = port
		if cfg.Validate() == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}
