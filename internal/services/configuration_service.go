package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"statshell/internal/logger"
)

// ConfigurationService loads configuration from .env files and the process
// environment. Precedence: process environment > local .env > ~/.statshell/.env.
type ConfigurationService struct {
	initialized bool
	values      map[string]string
}

// NewConfigurationService creates an uninitialized configuration service.
func NewConfigurationService() *ConfigurationService {
	return &ConfigurationService{values: make(map[string]string)}
}

// Name returns the service name for registration.
func (c *ConfigurationService) Name() string { return "configuration" }

// Initialize loads the configuration files. Missing files are not errors.
func (c *ConfigurationService) Initialize() error {
	if home, err := os.UserHomeDir(); err == nil {
		c.loadFile(filepath.Join(home, ".statshell", ".env"))
	}
	c.loadFile(".env")
	c.initialized = true
	return nil
}

func (c *ConfigurationService) loadFile(path string) {
	vals, err := godotenv.Read(path)
	if err != nil {
		return
	}
	logger.Debug("Loaded configuration file", "path", path, "entries", len(vals))
	for k, v := range vals {
		c.values[k] = v
	}
}

// Get returns a configuration value. Process environment variables win over
// file-sourced values.
func (c *ConfigurationService) Get(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := c.values[key]
	return v, ok
}

// GetOr returns a configuration value or a default.
func (c *ConfigurationService) GetOr(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// AllKeys returns the keys loaded from configuration files, sorted order is
// not guaranteed.
func (c *ConfigurationService) AllKeys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// DataDir returns the directory datasets are loaded from by default.
func (c *ConfigurationService) DataDir() string {
	dir := c.GetOr("STATSHELL_DATA_DIR", "")
	if dir == "" {
		return "."
	}
	return strings.TrimRight(dir, "/")
}
