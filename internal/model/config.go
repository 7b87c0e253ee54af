package model

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// APIConfig points the client at the notifications service.
type APIConfig struct {
	// BaseURL is the scheme and host of the service; the endpoint path is
	// appended by the client.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds a single request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// NoticeDuration is how long a transient status-bar notice stays up.
	NoticeDuration time.Duration `mapstructure:"notice_duration" yaml:"notice_duration"`

	// DateFormat is the Go time layout used for scheduled/created dates.
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// DevServerConfig configures the local fixture server.
type DevServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Fixtures string `mapstructure:"fixtures" yaml:"fixtures"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	DevServer DevServerConfig `mapstructure:"devserver" yaml:"devserver"`
}

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultTimeout        = 10 * time.Second
	DefaultNoticeDuration = 2 * time.Second
	DefaultDateFormat     = "Jan 02 2006 15:04"

	envPrefix = "NOTIFYVIEW"
)

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/notifyview/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "notifyview", "config.yaml")
}

// DefaultLogPath returns ~/.local/state/notifyview/notifyview.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "notifyview.log")
	}
	return filepath.Join(home, ".local", "state", "notifyview", "notifyview.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout.String())
	v.SetDefault("display.notice_duration", DefaultNoticeDuration.String())
	v.SetDefault("display.date_format", DefaultDateFormat)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogPath())
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("devserver.addr", "127.0.0.1:8080")
	v.SetDefault("devserver.fixtures", "")
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// then overlays NOTIFYVIEW_* environment variables (api.base_url becomes
// NOTIFYVIEW_API_BASE_URL). A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// normalize fills zero values left by explicit empty keys and rejects a
// base URL the client could not use.
func (c *AppConfig) normalize() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.Display.NoticeDuration <= 0 {
		c.Display.NoticeDuration = DefaultNoticeDuration
	}
	if c.Display.DateFormat == "" {
		c.Display.DateFormat = DefaultDateFormat
	}
	return nil
}

// ValidateBaseURL checks that s is an absolute http or https URL.
func ValidateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must start with http:// or https://", s)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", s)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Durations are written as strings so the file stays hand-editable.
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("display.notice_duration", cfg.Display.NoticeDuration.String())
	v.Set("display.date_format", cfg.Display.DateFormat)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("devserver.addr", cfg.DevServer.Addr)
	v.Set("devserver.fixtures", cfg.DevServer.Fixtures)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
