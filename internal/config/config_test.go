package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file naming redis storage and a 4x4 board
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
storage: redis
session-ttl: 30m
redis:
  host: cache
  port: "6380"
board:
  rows: 4
  columns: 4
  win-length: 3
`)

		// When: loading it
		conf := MustLoad(path)

		// Then: every value is taken from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, Board{Rows: 4, Columns: 4, WinLength: 3}, conf.Board)
	})

	t.Run("Fills defaults", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")

		conf := MustLoad(path)

		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, Board{Rows: 3, Columns: 3}, conf.Board)
		assert.Equal(t, "tictactoe", conf.MetricsName)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\nmetrics-namespace: from_file\n")
		t.Setenv("GAME_PORT", "7070")
		t.Setenv("METRICS_NAMESPACE", "from_env")

		conf := MustLoad(path)

		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, "from_env", conf.MetricsName)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
