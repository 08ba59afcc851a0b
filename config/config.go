package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Calendar  CalendarConfig  `yaml:"calendar"`
}

type ServerConfig struct {
	Port                int `yaml:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// APIConfig points at the CLM backend REST API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SessionConfig controls the signed cookie that carries the backend tokens.
type SessionConfig struct {
	Secret      string `yaml:"secret"`
	CookieName  string `yaml:"cookie_name"`
	ExpireHours int    `yaml:"expire_hours"`
	Secure      bool   `yaml:"secure"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

type CalendarConfig struct {
	Timezone string `yaml:"timezone"`
}

const (
	DefaultPort       = 3000
	DefaultAPIBaseURL = "http://127.0.0.1:8000"
	DefaultCookieName = "clm_session"
)

// Load reads the YAML file at path. A missing file is not an error: the
// defaults and environment overrides still produce a usable config.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CLM_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("CLM_SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 60
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 60
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.ExpireHours == 0 {
		c.Session.ExpireHours = 24 * 7
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 300
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = "Local"
	}
}

// Validate reports settings that have no usable default.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 16 {
		return errors.New("session.secret must be at least 16 characters (or set CLM_SESSION_SECRET)")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	return nil
}

// Timeout returns the backend request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.ExpireHours) * time.Hour
}

// Location resolves the calendar timezone, falling back to time.Local.
func (c CalendarConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
