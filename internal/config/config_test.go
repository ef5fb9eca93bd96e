package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes-cli/internal/store"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QUICKNOTES_CONFIG_DIR", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, store.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, store.DefaultKey, cfg.Key)
	assert.Equal(t, 500*time.Millisecond, cfg.Autosave.Delay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Autosave.SavedDisplay)
	assert.Equal(t, "unicode", cfg.Glyphs)
	assert.Equal(t, filepath.Join(dir, "quicknotes.log"), cfg.LogFile)
	assert.Empty(t, cfg.File)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	dir := isolate(t)
	yaml := "storage:\n  backend: file\n  key: work\nautosave:\n  delay: 1s\ntui:\n  glyphs: ascii\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, store.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "work", cfg.Key)
	assert.Equal(t, time.Second, cfg.Autosave.Delay)
	assert.Equal(t, "ascii", cfg.Glyphs)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)

	t.Setenv("QUICKNOTES_STORAGE_KEY", "from-env")
	cfg, err = Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Key)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("key", "", "")
	fs.String("backend", "", "")
	require.NoError(t, fs.Parse([]string{"--key", "from-flag"}))
	cfg, err = Load(Options{Flags: fs, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Key)
	assert.Equal(t, store.BackendFile, cfg.Storage.Backend, "unset flags do not override")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("QUICKNOTES_STORAGE_BACKEND=redis\nQUICKNOTES_STORAGE_REDIS_URL=redis://localhost:6379/0\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("QUICKNOTES_STORAGE_BACKEND")
		os.Unsetenv("QUICKNOTES_STORAGE_REDIS_URL")
	})

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, store.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := isolate(t)
	t.Setenv("QUICKNOTES_STORAGE_BACKEND", "dynamo")
	_, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	assert.True(t, errors.Is(err, store.ErrUnknownBackend), "got %v", err)
}

func TestLoad_ExplicitMissingConfigFails(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml"), EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}
