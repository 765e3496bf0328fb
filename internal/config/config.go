// Package config resolves runtime settings from defaults, an optional TOML
// file and TODO_* environment variables. Command-line flags are applied on
// top by cmd/todo.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"todolists/internal/util"
)

const (
	DefaultAddr           = ":8080"
	DefaultDBPath         = "data/todo.db"
	DefaultAPIURL         = "http://localhost:8080"
	DefaultLogLevel       = "info"
	DefaultLogFile        = "todo-tui.log"
	DefaultRequestTimeout = 10 * time.Second

	// DefaultFile is read from the working directory when no file is named.
	DefaultFile = "todo.toml"
)

// Config holds every setting the serve and tui commands need.
type Config struct {
	Addr           string   `toml:"addr"`
	DBPath         string   `toml:"db_path"`
	APIURL         string   `toml:"api_url"`
	LogLevel       string   `toml:"log_level"`
	LogFile        string   `toml:"log_file"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration decodes TOML strings such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func Default() Config {
	return Config{
		Addr:           DefaultAddr,
		DBPath:         DefaultDBPath,
		APIURL:         DefaultAPIURL,
		LogLevel:       DefaultLogLevel,
		LogFile:        DefaultLogFile,
		RequestTimeout: Duration{DefaultRequestTimeout},
	}
}

// Load layers the configuration sources. path names a TOML file that must
// exist; when empty, TODO_CONFIG is consulted and then DefaultFile, which
// may be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = os.Getenv("TODO_CONFIG")
		required = path != ""
	}
	if path == "" {
		path = DefaultFile
	}

	if err := loadFile(&cfg, path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func loadEnv(cfg *Config) error {
	cfg.Addr = util.EnvOrDefault("TODO_ADDR", cfg.Addr)
	cfg.DBPath = util.EnvOrDefault("TODO_DB_PATH", cfg.DBPath)
	cfg.APIURL = util.EnvOrDefault("TODO_API_URL", cfg.APIURL)
	cfg.LogLevel = util.EnvOrDefault("TODO_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = util.EnvOrDefault("TODO_LOG_FILE", cfg.LogFile)

	timeout, err := util.EnvDuration("TODO_REQUEST_TIMEOUT", cfg.RequestTimeout.Duration)
	if err != nil {
		return err
	}
	cfg.RequestTimeout.Duration = timeout
	return nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if _, err := util.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout.Duration)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	level, _ := util.ParseLevel(c.LogLevel)
	return level
}
