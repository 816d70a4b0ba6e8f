// Package config loads shiptrack settings: defaults, then shiptrack.toml, then the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvConfigPath     = "SHIPTRACK_CONFIG"
	DefaultConfigPath = "shiptrack.toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Feed   FeedConfig   `toml:"feed"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type DataConfig struct {
	SQLitePath string `toml:"sqlite_path"`
}

// FeedConfig points at the published sheet. FetchTimeout is a Go duration string.
type FeedConfig struct {
	URL          string `toml:"url"`
	FetchTimeout string `toml:"fetch_timeout"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Data:   DataConfig{SQLitePath: "shiptrack.db"},
		Feed:   FeedConfig{FetchTimeout: "30s"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads .env (if present), the TOML file named by SHIPTRACK_CONFIG or
// shiptrack.toml (if present), and finally the environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	path := getenv(EnvConfigPath, DefaultConfigPath)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Server.Addr = getenv("APP_ADDR", c.Server.Addr)
	c.Data.SQLitePath = getenv("SQLITE_PATH", c.Data.SQLitePath)
	c.Feed.URL = getenv("FEED_URL", c.Feed.URL)
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if strings.TrimSpace(c.Data.SQLitePath) == "" {
		errs = append(errs, errors.New("data.sqlite_path is required"))
	}
	if strings.TrimSpace(c.Feed.URL) == "" {
		errs = append(errs, errors.New("feed.url is required (set FEED_URL)"))
	}
	if _, err := c.FetchTimeout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FetchTimeout parses feed.fetch_timeout; empty means 30s.
func (c *Config) FetchTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Feed.FetchTimeout)
	if raw == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("feed.fetch_timeout %q is not a positive duration", raw)
	}
	return d, nil
}

// NewLogger builds the process logger from the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
