// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"ytreport/report"
	"ytreport/youtube"
)

// FileName is the config file looked up in the working directory and in
// ~/.config/ytreport.
const FileName = "ytreport.json"

// Duration is a time.Duration that reads from JSON as either a Go duration
// string ("30s") or a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %s", b)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds all application configuration for a report run.
type Config struct {
	// APIKey is the YouTube Data API key. It is not checked up front: a
	// missing or wrong key surfaces as an API error.
	APIKey string `json:"api_key"`
	// PlaylistID is the playlist to report on.
	PlaylistID string `json:"playlist_id"`

	// Output is the report file path (default: "resultado.xlsx")
	Output string `json:"output"`
	// Format is xlsx, csv or json; empty infers it from Output's extension
	Format string `json:"format"`
	// PageSize is the number of playlist items requested per page (1-50)
	PageSize int64 `json:"page_size"`
	// Workers bounds concurrent item enrichment (1 = sequential)
	Workers int `json:"workers"`

	// Groups is the ordered list of classification labels
	Groups []string `json:"groups"`
	// Fallback labels titles that match no group
	Fallback string `json:"fallback"`
	// Unavailable replaces hidden like and comment counts
	Unavailable string `json:"unavailable"`

	// MaxRetries is the maximum number of retries for a failed request (0 = none)
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries
	InitialBackoff Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries
	MaxBackoff Duration `json:"max_backoff"`
	// BackoffMultiplier is the multiplier for exponential backoff (must be > 1)
	BackoffMultiplier float64 `json:"backoff_multiplier"`

	// RequestsPerSecond caps the request rate to the API (0 = unlimited)
	RequestsPerSecond float64 `json:"requests_per_second"`
	// Timeout bounds each HTTP request (0 = no timeout)
	Timeout Duration `json:"timeout"`
	// Endpoint overrides the API base URL
	Endpoint string `json:"endpoint"`

	// LogLevel is a zerolog level name (default: "info")
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:            "resultado.xlsx",
		PageSize:          youtube.DefaultPageSize,
		Workers:           1,
		Groups:            append([]string(nil), report.DefaultGroups...),
		Fallback:          report.DefaultFallback,
		Unavailable:       youtube.DefaultUnavailable,
		MaxRetries:        0,
		InitialBackoff:    Duration(1 * time.Second),
		MaxBackoff:        Duration(30 * time.Second),
		BackoffMultiplier: 2.0,
		RequestsPerSecond: 0,
		Timeout:           0,
		Endpoint:          youtube.DefaultEndpoint,
		LogLevel:          "info",
	}
}

// Load loads configuration from .env, a config file, and environment
// variables on top of the defaults.
// Priority: env vars > config file > defaults. A .env file in the working
// directory is loaded into the environment first and never overrides
// variables that are already set.
//
// An empty path searches ytreport.json in the working directory, then in
// ~/.config/ytreport; a missing file is not an error. An explicit path must
// exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()

	if err := cfg.loadFromFile(path); err != nil {
		// Config file is optional unless named explicitly
		if path != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads path, or the first config file found in the default
// locations when path is empty.
func (c *Config) loadFromFile(path string) error {
	paths := []string{path}
	if path == "" {
		paths = []string{FileName}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".config", "ytreport", FileName))
		}
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == "" {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		return nil
	}

	return fs.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PLAYLIST_ID"); v != "" {
		c.PlaylistID = v
	}
	if v := os.Getenv("YTREPORT_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("YTREPORT_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("YTREPORT_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("YTREPORT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"YTREPORT_WORKERS", &c.Workers},
		{"YTREPORT_MAX_RETRIES", &c.MaxRetries},
	}
	for _, e := range ints {
		if v := os.Getenv(e.env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.env, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("YTREPORT_PAGE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("YTREPORT_PAGE_SIZE: %w", err)
		}
		c.PageSize = n
	}
	if v := os.Getenv("YTREPORT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("YTREPORT_RPS: %w", err)
		}
		c.RequestsPerSecond = f
	}

	durations := []struct {
		env string
		dst *Duration
	}{
		{"YTREPORT_INITIAL_BACKOFF", &c.InitialBackoff},
		{"YTREPORT_MAX_BACKOFF", &c.MaxBackoff},
		{"YTREPORT_TIMEOUT", &c.Timeout},
	}
	for _, e := range durations {
		if v := os.Getenv(e.env); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.env, err)
			}
			*e.dst = Duration(d)
		}
	}
	return nil
}

// Validate checks that configuration values are valid and consistent.
// The API key and playlist ID are deliberately left unchecked.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.PageSize < 1 || c.PageSize > 50 {
		return fmt.Errorf("page_size must be between 1 and 50")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("groups must not be empty")
	}
	for i, g := range c.Groups {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("groups[%d] must not be empty", i)
		}
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// OutputFormat returns the configured format, inferring it from the output
// path when none is set. Call Validate first.
func (c *Config) OutputFormat() report.Format {
	if f, err := report.ParseFormat(c.Format); err == nil && strings.TrimSpace(c.Format) != "" {
		return f
	}
	return report.FormatFromPath(c.Output)
}
