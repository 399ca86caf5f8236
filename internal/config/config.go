// Package config reads the user configuration file at
// ~/.transcript/config. Keys use dotted section.key form, e.g.
// "export.format" or "fetch.token". A missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Config wraps the loaded ini file.
type Config struct {
	file *ini.File
}

// Load reads the configuration file from ~/.transcript/config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadFrom(filepath.Join(home, ".transcript", "config"))
}

// LoadFrom reads the configuration file at the given path. A missing
// file yields an empty config.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{file: ini.Empty()}, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return &Config{file: file}, nil
}

// GetString retrieves a string value using section.key form. The last
// dot separates the key name from the section.
func (c *Config) GetString(key string) string {
	section, keyName := parseKey(key)
	if section == "" {
		return ""
	}
	return c.file.Section(section).Key(keyName).String()
}

// GetInt retrieves an integer value from the config.
func (c *Config) GetInt(key string) (int, error) {
	val := c.GetString(key)
	if val == "" {
		return 0, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %w", key, err)
	}
	return intVal, nil
}

// GetBool retrieves a boolean value from the config.
func (c *Config) GetBool(key string) bool {
	switch strings.ToLower(c.GetString(key)) {
	case "true", "yes", "1", "on":
		return true
	default:
		return false
	}
}

// HasKey checks if a key exists in the config.
func (c *Config) HasKey(key string) bool {
	section, keyName := parseKey(key)
	if section == "" {
		return false
	}
	return c.file.Section(section).HasKey(keyName)
}

// GetStringWithFallback retrieves a string value with a fallback default.
func (c *Config) GetStringWithFallback(key, fallback string) string {
	if c.HasKey(key) {
		return c.GetString(key)
	}
	return fallback
}

// GetIntWithFallback retrieves an int value with a fallback default.
func (c *Config) GetIntWithFallback(key string, fallback int) int {
	if c.HasKey(key) {
		if val, err := c.GetInt(key); err == nil {
			return val
		}
	}
	return fallback
}

func parseKey(key string) (string, string) {
	lastDot := strings.LastIndex(key, ".")
	if lastDot == -1 {
		return "", ""
	}
	return key[:lastDot], key[lastDot+1:]
}
