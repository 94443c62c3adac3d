// Package config handles the configuration directory, the optional config
// file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML config filename.
	ConfigFile = "config.toml"

	// LogFile is the default debug log filename used by the UI.
	LogFile = "todo.log"

	// DefaultAPIURL is the base address used when nothing else is configured.
	DefaultAPIURL = "http://localhost:5000/api"

	// EnvAPIURL overrides the API base address.
	EnvAPIURL = "TODO_API_URL"

	// EnvDebug enables debug logging when set to a true value.
	EnvDebug = "TODO_DEBUG"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base address of the todo service.
	APIURL string

	// LogFile is where the UI writes debug logs. Empty means Dir/todo.log.
	LogFile string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml. Pointer fields distinguish "unset" from
// the zero value.
type fileConfig struct {
	APIURL  string `toml:"api_url"`
	Debug   *bool  `toml:"debug"`
	LogFile string `toml:"log_file"`
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, APIURL: DefaultAPIURL}, nil
}

// Load builds a Config from defaults, the config file in the directory and
// the environment, in that order.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path of the UI debug log.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.Dir, LogFile)
}

// SetAPIURL validates and sets the API base address.
// A trailing slash is dropped so paths can be appended directly.
func (c *Config) SetAPIURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("api url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api url %q: missing host", raw)
	}
	c.APIURL = strings.TrimRight(raw, "/")
	return nil
}

// loadFile reads config.toml if it exists. A missing file is not an error.
func (c *Config) loadFile() error {
	var fc fileConfig
	_, err := toml.DecodeFile(c.ConfigPath(), &fc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", c.ConfigPath(), err)
	}

	if fc.APIURL != "" {
		if err := c.SetAPIURL(fc.APIURL); err != nil {
			return fmt.Errorf("loading config file %s: %w", c.ConfigPath(), err)
		}
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	return nil
}

// loadEnv overrides config from environment variables.
func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		if err := c.SetAPIURL(v); err != nil {
			return fmt.Errorf("%s: %w", EnvAPIURL, err)
		}
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvDebug, v)
		}
		c.Debug = b
	}
	return nil
}
