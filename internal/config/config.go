// Package config loads server configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MIST"

// Config holds server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Updates UpdatesConfig `mapstructure:"updates"`
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig contains logger preferences.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig selects and configures the store.
type DBConfig struct {
	Type string `mapstructure:"type"` // "sqlite" or "postgres"
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

// UpdatesConfig configures the release check.
type UpdatesConfig struct {
	RepoURL string        `mapstructure:"repo_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from MIST_* environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.path", "mist.db")
	v.SetDefault("db.dsn", "")

	v.SetDefault("updates.repo_url", "https://github.com/corecollectives/mist.git")
	v.SetDefault("updates.timeout", 10*time.Second)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"server.addr",
		"server.shutdown_timeout",
		"log.level",
		"db.type",
		"db.path",
		"db.dsn",
		"updates.repo_url",
		"updates.timeout",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	switch c.DB.Type {
	case "sqlite":
		if strings.TrimSpace(c.DB.Path) == "" {
			return errors.New("db.path is required for sqlite")
		}
	case "postgres":
		if strings.TrimSpace(c.DB.DSN) == "" {
			return errors.New("db.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db.type %q", c.DB.Type)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return level, nil
}
