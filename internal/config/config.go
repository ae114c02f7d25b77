/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
)

const (
	DefaultRecentLimit = 20
	DefaultIntervalMs  = 500
	DefaultSchedule    = "@every 10m"
	DefaultMaxEntries  = 1000
	DefaultTerminal    = "x-terminal-emulator"
)

type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Watcher     WatcherConfig     `toml:"watcher"`
	UI          UIConfig          `toml:"ui"`
	Tray        TrayConfig        `toml:"tray"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
	Logging     LoggingConfig     `toml:"logging"`
}

type DatabaseConfig struct {
	// Empty means ~/.config/clipvault/clips.db.
	Path string `toml:"path"`
}

// ResolvedPath expands a leading "~/" in Path. It stays empty when no path
// is configured.
func (d DatabaseConfig) ResolvedPath() (string, error) {
	return ExpandHome(d.Path)
}

type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
}

func (w WatcherConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMs) * time.Millisecond
}

type UIConfig struct {
	RecentLimit int `toml:"recent_limit"`
}

type TrayConfig struct {
	// Terminal emulator used to host the UI; it is invoked as
	// `<terminal> -e clipvault`.
	Terminal string `toml:"terminal"`
}

type MaintenanceConfig struct {
	Schedule      string `toml:"schedule"`
	MaxEntries    int    `toml:"max_entries"`
	RetentionDays int    `toml:"retention_days"`
}

type LoggingConfig struct {
	LogFile    string `toml:"log_file"`
	Level      string `toml:"level"`
	MaxSize    int    `toml:"max_size"`
	MaxAge     int    `toml:"max_age"`
	MaxBackups int    `toml:"max_backups"`
}

// File returns the log file path with "~/" expanded.
func (l LoggingConfig) File() (string, error) {
	return ExpandHome(l.LogFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// Dir returns ~/.config/clipvault.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "clipvault"), nil
}

// Load reads ~/.config/clipvault/config.toml, creating it with defaults
// when missing.
func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(configDir, "config.toml"))
}

func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Watcher.IntervalMs <= 0 {
		c.Watcher.IntervalMs = DefaultIntervalMs
	}
	if c.UI.RecentLimit <= 0 {
		c.UI.RecentLimit = DefaultRecentLimit
	}
	if c.Tray.Terminal == "" {
		c.Tray.Terminal = DefaultTerminal
	}

	if c.Maintenance.Schedule == "" {
		c.Maintenance.Schedule = DefaultSchedule
	} else if _, err := cron.ParseStandard(c.Maintenance.Schedule); err != nil {
		c.Maintenance.Schedule = DefaultSchedule
	}
	if c.Maintenance.MaxEntries < 0 {
		c.Maintenance.MaxEntries = 0
	}
	if c.Maintenance.RetentionDays < 0 {
		c.Maintenance.RetentionDays = 0
	}

	if c.Logging.LogFile == "" {
		c.Logging.LogFile = "~/.config/clipvault/clipvault.log"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = 10
	}
	if c.Logging.MaxAge <= 0 {
		c.Logging.MaxAge = 30
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
}

func createDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(`[database]
# path = "~/.config/clipvault/clips.db"

[watcher]
interval_ms = 500

[ui]
recent_limit = 20

[tray]
terminal = "x-terminal-emulator"

[maintenance]
schedule = "@every 10m"
max_entries = 1000
retention_days = 0

[logging]
log_file = "~/.config/clipvault/clipvault.log"
level = "info"
max_size = 10
max_age = 30
max_backups = 3
`)

	return err
}
