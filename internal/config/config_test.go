package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.DB.Type)
	assert.Equal(t, "mist.db", cfg.DB.Path)
	assert.Equal(t, 10*time.Second, cfg.Updates.Timeout)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MIST_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("MIST_LOG_LEVEL", "debug")
	t.Setenv("MIST_DB_TYPE", "postgres")
	t.Setenv("MIST_DB_DSN", "postgres://mist@localhost/mist")
	t.Setenv("MIST_UPDATES_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.DB.Type)
	assert.Equal(t, "postgres://mist@localhost/mist", cfg.DB.DSN)
	assert.Equal(t, 3*time.Second, cfg.Updates.Timeout)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
		DB:     DBConfig{Type: "sqlite", Path: "mist.db"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing addr", mutate: func(c *Config) { c.Server.Addr = "" }},
		{name: "unknown db", mutate: func(c *Config) { c.DB.Type = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DB.Type = "postgres" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.DB.Path = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
