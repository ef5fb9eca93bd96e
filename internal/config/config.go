// Package config resolves runtime settings from defaults, config.yaml, .env,
// QUICKNOTES_* environment variables and command-line flags (highest wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"quicknotes-cli/internal/autosave"
	"quicknotes-cli/internal/store"
)

const (
	EnvPrefix      = "QUICKNOTES"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
)

const (
	KeyBackend      = "storage.backend"
	KeyStorageKey   = "storage.key"
	KeySQLitePath   = "storage.sqlite_path"
	KeyDir          = "storage.dir"
	KeyRedisURL     = "storage.redis_url"
	KeyPostgresDSN  = "storage.postgres_dsn"
	KeyDelay        = "autosave.delay"
	KeySavedDisplay = "autosave.saved_display"
	KeyGlyphs       = "tui.glyphs"
	KeyLogFile      = "log.file"
	KeyLogDebug     = "log.debug"
)

type Config struct {
	// StateDir holds config.yaml, the sqlite database, tui_state.json and the log.
	StateDir string

	Storage  store.Config
	Key      string
	Autosave autosave.Options

	Glyphs string

	LogFile  string
	LogDebug bool

	// File is the config file actually read, or "".
	File string
}

// Options carries what the caller knows before viper runs.
type Options struct {
	// ConfigFile overrides the config.yaml lookup.
	ConfigFile string
	// Flags are bound on top of env and file values when set.
	Flags *pflag.FlagSet
	// EnvFile is loaded with godotenv when present; defaults to ".env".
	EnvFile string
}

func defaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, store.BackendSQLite)
	v.SetDefault(KeyStorageKey, store.DefaultKey)
	v.SetDefault(KeySQLitePath, "")
	v.SetDefault(KeyDir, "")
	v.SetDefault(KeyRedisURL, "")
	v.SetDefault(KeyPostgresDSN, "")
	v.SetDefault(KeyDelay, autosave.DefaultDelay)
	v.SetDefault(KeySavedDisplay, autosave.DefaultSavedDisplay)
	v.SetDefault(KeyGlyphs, "unicode")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogDebug, false)
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"backend": KeyBackend,
	"key":     KeyStorageKey,
	"debug":   KeyLogDebug,
	"glyphs":  KeyGlyphs,
}

func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	stateDir, err := store.ConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(stateDir)
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{
		StateDir: stateDir,
		Storage: store.Config{
			Backend:     v.GetString(KeyBackend),
			SQLitePath:  expandHome(v.GetString(KeySQLitePath)),
			Dir:         expandHome(v.GetString(KeyDir)),
			RedisURL:    v.GetString(KeyRedisURL),
			PostgresDSN: v.GetString(KeyPostgresDSN),
		},
		Key: strings.TrimSpace(v.GetString(KeyStorageKey)),
		Autosave: autosave.Options{
			Delay:        v.GetDuration(KeyDelay),
			SavedDisplay: v.GetDuration(KeySavedDisplay),
		},
		Glyphs:   v.GetString(KeyGlyphs),
		LogFile:  expandHome(v.GetString(KeyLogFile)),
		LogDebug: v.GetBool(KeyLogDebug),
		File:     v.ConfigFileUsed(),
	}
	if cfg.Key == "" {
		cfg.Key = store.DefaultKey
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(stateDir, "quicknotes.log")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	known := false
	for _, b := range store.Backends {
		if b == backend {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", store.ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Autosave.Delay < 0 || c.Autosave.SavedDisplay < 0 {
		return errors.New("autosave durations must not be negative")
	}
	if c.Autosave.Delay > time.Minute {
		return fmt.Errorf("autosave.delay %s is longer than a minute", c.Autosave.Delay)
	}
	return nil
}

func (c *Config) Store() store.Store {
	return store.Store{Dir: c.StateDir}
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
