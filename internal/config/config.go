package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/brokeneck/brokeneck/cli/internal/schema"
)

// Environment variables that override the config file.
const (
	EnvServerURL = "BROKENECK_SERVER_URL"
	EnvAPIKey    = "BROKENECK_API_KEY"
	EnvLogLevel  = "BROKENECK_LOG_LEVEL"
)

// Config holds CLI configuration stored at ~/.brokeneck/config.
type Config struct {
	ServerURL string                     `yaml:"server_url"`
	APIKey    string                     `yaml:"api_key,omitempty"`
	LogLevel  string                     `yaml:"log_level,omitempty"`
	LogFile   string                     `yaml:"log_file,omitempty"`
	VimKeys   bool                       `yaml:"vim_keys,omitempty"`
	Types     map[string]schema.Override `yaml:"types,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".brokeneck", "config")
}

// DefaultLogPath is where the TUI logs when log_file is "default".
func DefaultLogPath() string {
	return filepath.Join(filepath.Dir(Path()), "brokeneck.log")
}

// Load reads the config file, then applies .env and environment overrides.
// A missing file is not an error when the environment supplies a server URL.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadFile(Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || os.Getenv(EnvServerURL) == "" {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.applyEnv()
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, fmt.Errorf("config missing server_url")
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// ResolvedLogFile returns the TUI log destination, or "" to discard.
func (c *Config) ResolvedLogFile() string {
	switch strings.TrimSpace(c.LogFile) {
	case "":
		return ""
	case "default":
		return DefaultLogPath()
	default:
		return c.LogFile
	}
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	return os.Chmod(path, 0600)
}
