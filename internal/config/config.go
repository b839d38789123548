// Package config resolves runtime settings. Precedence, lowest first:
// built-in defaults, MECALIN_* environment variables, command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/albanobattistella/mecalin/internal/locale"
)

const appName = "mecalin"

// Config holds everything the CLI needs before opening the store.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `env:"MECALIN_DB"`

	// Language is a course code ("us", "es") or any locale string that
	// locale.Resolve understands. Empty means detect from LANG.
	Language string `env:"MECALIN_LANG"`

	// LogFile receives structured logs. "-" disables logging.
	LogFile string `env:"MECALIN_LOG_FILE"`

	LogLevel string `env:"MECALIN_LOG_LEVEL" envDefault:"info"`
}

// DefaultConfig returns the built-in defaults. Paths are left empty and
// filled by Complete.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// FromEnv returns defaults overlaid with the process environment.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Complete fills empty fields with derived defaults and normalises the
// language to a course code.
func (c *Config) Complete(getenv locale.Getenv) error {
	if c.DBPath == "" {
		dir, err := xdgDir(getenv, "XDG_DATA_HOME", ".local", "share")
		if err != nil {
			return err
		}
		c.DBPath = filepath.Join(dir, appName, appName+".db")
	}
	if c.LogFile == "" {
		dir, err := xdgDir(getenv, "XDG_STATE_HOME", ".local", "state")
		if err != nil {
			return err
		}
		c.LogFile = filepath.Join(dir, appName, appName+".log")
	}
	if c.Language == "" {
		c.Language = locale.Detect(getenv)
	} else {
		c.Language = locale.Resolve(c.Language)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// LogPath returns the log destination, or "" when logging is disabled.
func (c Config) LogPath() string {
	if c.LogFile == "-" {
		return ""
	}
	return c.LogFile
}

func xdgDir(getenv locale.Getenv, key string, fallback ...string) (string, error) {
	if dir := getenv(key); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}
