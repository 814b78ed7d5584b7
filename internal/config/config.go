// Package config loads formpdf settings from YAML with environment
// overrides.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Store     StoreConfig     `yaml:"store" json:"store"`
	PDF       PDFConfig       `yaml:"pdf" json:"pdf"`
	Theme     ThemeConfig     `yaml:"theme" json:"theme"`
	Templates TemplatesConfig `yaml:"templates" json:"templates"`
	Log       LogConfig       `yaml:"log" json:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr  string `yaml:"addr" json:"addr"`
	Grace string `yaml:"grace" json:"grace"` // shutdown grace period, e.g. "10s"
	// Secure marks cookies Secure; enable behind TLS.
	Secure bool `yaml:"secure" json:"secure,omitempty"`
}

// StoreConfig configures transient record storage.
type StoreConfig struct {
	Driver     string      `yaml:"driver" json:"driver"` // memory, redis, cookie
	TTL        string      `yaml:"ttl" json:"ttl"`
	Secret     string      `yaml:"secret" json:"-"`
	CookieName string      `yaml:"cookie_name" json:"cookie_name"`
	Redis      RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig addresses the Redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"-"`
	DB       int    `yaml:"db" json:"db"`
}

// PDFConfig selects and tunes the export engine.
type PDFConfig struct {
	Engine      string       `yaml:"engine" json:"engine"` // native, chrome
	WrapColumns int          `yaml:"wrap_columns" json:"wrap_columns"`
	Chrome      ChromeConfig `yaml:"chrome" json:"chrome"`
}

// ChromeConfig configures the headless browser engine.
type ChromeConfig struct {
	Path      string `yaml:"path" json:"path,omitempty"`
	Download  bool   `yaml:"download" json:"download"`
	NoSandbox bool   `yaml:"no_sandbox" json:"no_sandbox"`
	Timeout   string `yaml:"timeout" json:"timeout"`
}

// ThemeConfig selects the screen theme.
type ThemeConfig struct {
	Name    string `yaml:"name" json:"name"`
	Variant string `yaml:"variant" json:"variant"`
}

// TemplatesConfig points at optional template overrides on disk.
type TemplatesConfig struct {
	Dir string `yaml:"dir" json:"dir,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, console
}

// PDF engine names.
const (
	EngineNative = "native"
	EngineChrome = "chrome"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:  "127.0.0.1:8080",
			Grace: "10s",
		},
		Store: StoreConfig{
			Driver:     "memory",
			TTL:        "30m",
			CookieName: "formpdf_session",
			Redis: RedisConfig{
				Addr: "127.0.0.1:6379",
			},
		},
		PDF: PDFConfig{
			Engine:      EngineNative,
			WrapColumns: 60,
			Chrome: ChromeConfig{
				Timeout: "30s",
			},
		},
		Theme: ThemeConfig{
			Name:    "default",
			Variant: "light",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file yields the defaults; an empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FORMPDF_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("FORMPDF_SECRET"); v != "" {
		c.Store.Secret = v
	}
	if v := os.Getenv("FORMPDF_STORE"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("FORMPDF_REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv("FORMPDF_PDF_ENGINE"); v != "" {
		c.PDF.Engine = v
	}
	if v := os.Getenv("FORMPDF_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FORMPDF_CHROME_NO_SANDBOX"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.PDF.Chrome.NoSandbox = b
		}
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if _, err := parseDuration(c.Server.Grace); err != nil {
		errs = append(errs, fmt.Errorf("server.grace: %w", err))
	}
	if d, err := parseDuration(c.Store.TTL); err != nil {
		errs = append(errs, fmt.Errorf("store.ttl: %w", err))
	} else if d <= 0 {
		errs = append(errs, errors.New("store.ttl must be positive"))
	}

	switch c.Store.Driver {
	case "memory", "cookie":
	case "redis":
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not one of memory, redis, cookie", c.Store.Driver))
	}

	switch c.PDF.Engine {
	case EngineNative, EngineChrome:
	default:
		errs = append(errs, fmt.Errorf("pdf.engine %q is not one of native, chrome", c.PDF.Engine))
	}
	if c.PDF.WrapColumns < 10 {
		errs = append(errs, errors.New("pdf.wrap_columns must be at least 10"))
	}
	if _, err := parseDuration(c.PDF.Chrome.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("pdf.chrome.timeout: %w", err))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, console", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// EnsureSecret fills an empty store secret with a random one and reports
// whether it did. Sessions keyed by a generated secret do not survive a
// restart.
func (c *Config) EnsureSecret() (bool, error) {
	if c.Store.Secret != "" {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("config: generate secret: %w", err)
	}
	c.Store.Secret = hex.EncodeToString(buf)
	return true, nil
}

// GraceTimeout returns the shutdown grace period.
func (c *Config) GraceTimeout() time.Duration {
	d, err := parseDuration(c.Server.Grace)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// StoreTTL returns the record lifetime.
func (c *Config) StoreTTL() time.Duration {
	d, err := parseDuration(c.Store.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// ChromeTimeout returns the per-conversion timeout of the chrome engine.
func (c *Config) ChromeTimeout() time.Duration {
	d, err := parseDuration(c.PDF.Chrome.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
