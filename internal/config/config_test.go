package config

import (
	"os"
	"path/filepath"
	"testing"

	"bookshelf-manager/bookshelf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BOOKSHELF_ENV", "BOOKSHELF_LOG_LEVEL", "BOOKSHELF_BACKEND", "BOOKSHELF_DB", "BOOKSHELF_IMAGES"} {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Overrides{EnvFile: missingEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, bookshelf.DefaultImages, cfg.Images)
	assert.Equal(t, bookshelf.BackendSQLite, cfg.Backend)
}

func TestLoadAcceptsEveryBackend(t *testing.T) {
	clearEnv(t)
	for _, name := range []string{bookshelf.BackendSQLite, bookshelf.BackendBadger, bookshelf.BackendMemory} {
		cfg, err := Load(Overrides{Backend: name, EnvFile: missingEnvFile(t)})
		require.NoError(t, err, name)
		assert.Equal(t, name, cfg.Backend)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"BOOKSHELF_BACKEND=badger\nBOOKSHELF_DB=from-dotenv\nBOOKSHELF_LOG_LEVEL=error\nBOOKSHELF_IMAGES=a.png, b.png,,\n",
	), 0o644))
	t.Setenv("BOOKSHELF_DB", "from-env")

	cfg, err := Load(Overrides{EnvFile: envFile, LogLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Backend, ".env fills unset values")
	assert.Equal(t, "from-env", cfg.DBPath, "environment beats .env")
	assert.Equal(t, "debug", cfg.LogLevel, "flags beat everything")
	assert.Equal(t, []string{"a.png", "b.png"}, cfg.Images)
}

func TestLoadBackendIsCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKSHELF_BACKEND", "Memory")

	cfg, err := Load(Overrides{EnvFile: missingEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)

	_, err := Load(Overrides{Backend: "postgres", EnvFile: missingEnvFile(t)})
	assert.ErrorContains(t, err, "invalid backend")
}

func TestLoadUnreadableEnvFile(t *testing.T) {
	clearEnv(t)

	// A directory cannot be read as a .env file.
	_, err := Load(Overrides{EnvFile: t.TempDir()})
	assert.Error(t, err)
}
