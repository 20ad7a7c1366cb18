// Package config resolves bookshelf settings from flags, the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"bookshelf-manager/bookshelf"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultBackend  = bookshelf.BackendSQLite
	DefaultDBPath   = "bookshelf.db"
	DefaultLogLevel = "warn"
	DefaultEnv      = "development"
	DefaultEnvFile  = ".env"
)

// Config holds the resolved settings.
type Config struct {
	Env      string
	LogLevel string
	Backend  string
	DBPath   string
	Images   []string
}

// Overrides are values given on the command line. Empty fields fall through
// to the environment.
type Overrides struct {
	Backend  string
	DBPath   string
	LogLevel string
	EnvFile  string
}

// Load resolves the configuration with precedence:
// 1. Overrides (command-line flags).
// 2. Environment variables.
// 3. The .env file, if present.
// 4. Defaults.
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
		dotenv = map[string]string{}
	}

	get := func(flagValue, key, def string) string {
		if flagValue != "" {
			return flagValue
		}
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := dotenv[key]; v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Env:      get("", "BOOKSHELF_ENV", DefaultEnv),
		LogLevel: get(o.LogLevel, "BOOKSHELF_LOG_LEVEL", DefaultLogLevel),
		Backend:  strings.ToLower(get(o.Backend, "BOOKSHELF_BACKEND", DefaultBackend)),
		DBPath:   get(o.DBPath, "BOOKSHELF_DB", DefaultDBPath),
		Images:   splitList(get("", "BOOKSHELF_IMAGES", "")),
	}
	if len(cfg.Images) == 0 {
		cfg.Images = append([]string(nil), bookshelf.DefaultImages...)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case bookshelf.BackendSQLite, bookshelf.BackendBadger, bookshelf.BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q (want %s, %s or %s)", c.Backend,
			bookshelf.BackendSQLite, bookshelf.BackendBadger, bookshelf.BackendMemory)
	}
	if c.Backend != bookshelf.BackendMemory && c.DBPath == "" {
		return errors.New("database path is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
