// Package config loads the local client configuration: where the
// PowerDNS-Admin instance lives and how to talk to it. Values come
// from the YAML file, overridden by PDNSADMIN_* environment variables,
// overridden again by command-line flags at the call site.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nickbouwhuis/PowerDNS-Admin/pkg/client"
)

// ErrExclusiveEnv is returned when both X and X_FILE are set for the
// same variable
var ErrExclusiveEnv = errors.New("environment variable and its _FILE variant are both set")

const envPrefix = "PDNSADMIN"

type Config struct {
	// Server is the base URL of the PowerDNS-Admin instance; the
	// settings endpoint path is appended to it
	Server string `yaml:"server"`
	// Endpoint overrides the full endpoint URL when set
	Endpoint       string    `yaml:"endpoint,omitempty"`
	CSRFToken      string    `yaml:"csrf_token"`
	TimeoutSeconds int       `yaml:"timeout_seconds"`
	Profile        string    `yaml:"profile"`
	Log            LogConfig `yaml:"log"`
	StateFile      string    `yaml:"state_file"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultDir returns the per-user configuration directory
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "pdnsadmin")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		TimeoutSeconds: 30,
		Profile:        "default",
		Log: LogConfig{
			File:  filepath.Join(dir, "pdnsadmin.log"),
			Level: "info",
		},
		StateFile: filepath.Join(dir, "state.yaml"),
	}
}

// Load reads the config file (the default path when empty), fills the
// gaps with defaults and applies environment overrides. A missing
// file is not an error; a missing explicitly named file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
			path = env
			explicit = true
		}
	}
	if !explicit {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideFromEnv applies the PDNSADMIN_* variables. Every variable
// also accepts a _FILE variant naming a file to read the value from;
// setting both forms is an error.
func (c *Config) overrideFromEnv() error {
	strVars := []struct {
		name   string
		target *string
	}{
		{"SERVER", &c.Server},
		{"ENDPOINT", &c.Endpoint},
		{"CSRF_TOKEN", &c.CSRFToken},
		{"PROFILE", &c.Profile},
		{"LOG_FILE", &c.Log.File},
		{"LOG_LEVEL", &c.Log.Level},
		{"STATE_FILE", &c.StateFile},
	}
	for _, v := range strVars {
		val, err := envValue(envPrefix + "_" + v.name)
		if err != nil {
			return err
		}
		if val != "" {
			*v.target = val
		}
	}

	val, err := envValue(envPrefix + "_TIMEOUT")
	if err != nil {
		return err
	}
	if val != "" {
		secs, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s_TIMEOUT: %w", envPrefix, err)
		}
		c.TimeoutSeconds = secs
	}
	return nil
}

// envValue resolves one variable honoring the _FILE variant the same
// way the server resolves its own environment
func envValue(name string) (string, error) {
	direct, hasDirect := os.LookupEnv(name)
	fileName, hasFile := os.LookupEnv(name + "_FILE")
	if hasDirect && hasFile {
		return "", fmt.Errorf("%w: %s", ErrExclusiveEnv, name)
	}
	if hasFile {
		data, err := os.ReadFile(fileName)
		if err != nil {
			return "", fmt.Errorf("%s_FILE: %w", name, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return direct, nil
}

// EndpointURL resolves the full settings endpoint URL, empty when the
// config names no server
func (c *Config) EndpointURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Server != "" {
		return strings.TrimRight(c.Server, "/") + client.DefaultEndpointPath
	}
	return ""
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return client.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewClient builds an endpoint client from the config
func (c *Config) NewClient() *client.Client {
	return client.New(c.EndpointURL(), c.CSRFToken, c.Timeout())
}
