// Package config loads offwiki settings from a TOML file.
//
// The file is optional and lives at $XDG_CONFIG_HOME/offwiki/config.toml
// (or ~/.config/offwiki/config.toml). Keys that are absent keep their
// defaults; unknown keys are rejected so typos do not go unnoticed.
//
//	max_results = 20
//	render_tables = true
//	content_selectors = ["div#mw-content-text"]
//	log_file = ""
//
//	[import]
//	workers = 4
//	main = ""
//
//	[serve]
//	addr = "127.0.0.1:8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/andybalholm/cascadia"
)

const (
	appName = "offwiki"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Defaults.
const (
	DefaultMaxResults = 20
	DefaultAddr       = "127.0.0.1:8080"
	MaxMaxResults     = 1000
	MaxWorkers        = 64
)

// DefaultContentSelectors locate the article body of MediaWiki-style pages.
var DefaultContentSelectors = []string{"div#mw-content-text"}

// Config holds all settings.
type Config struct {
	// MaxResults caps the number of search results shown.
	MaxResults int `toml:"max_results"`

	// RenderTables lays out tables in articles. When false, table lines are
	// omitted but links inside tables stay navigable.
	RenderTables bool `toml:"render_tables"`

	// ContentSelectors locate the article body, tried in order.
	ContentSelectors []string `toml:"content_selectors"`

	// LogFile receives log output while the interactive reader runs.
	LogFile string `toml:"log_file"`

	Import ImportConfig `toml:"import"`
	Serve  ServeConfig  `toml:"serve"`
}

// ImportConfig holds settings of the import command.
type ImportConfig struct {
	// Workers is the number of files parsed concurrently.
	Workers int `toml:"workers"`

	// Main is the path of the main article. Empty picks index or Main_Page.
	Main string `toml:"main"`
}

// ServeConfig holds settings of the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	c := Config{RenderTables: true}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields with their defaults.
func (c *Config) SetDefaults() {
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
	if len(c.ContentSelectors) == 0 {
		c.ContentSelectors = slices.Clone(DefaultContentSelectors)
	}
	if c.Import.Workers == 0 {
		c.Import.Workers = min(runtime.NumCPU(), 8)
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
}

// Validate checks value ranges and selector syntax.
func (c *Config) Validate() error {
	if c.MaxResults < 1 || c.MaxResults > MaxMaxResults {
		return fmt.Errorf("max_results must be between 1 and %d, got %d", MaxMaxResults, c.MaxResults)
	}
	if c.Import.Workers < 1 || c.Import.Workers > MaxWorkers {
		return fmt.Errorf("import.workers must be between 1 and %d, got %d", MaxWorkers, c.Import.Workers)
	}
	for _, s := range c.ContentSelectors {
		if _, err := cascadia.Compile(s); err != nil {
			return fmt.Errorf("content_selectors: invalid selector %q: %w", s, err)
		}
	}
	return nil
}

// Dir returns the config directory using the XDG standard (~/.config/offwiki/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Load reads the config file from its default location. A missing file
// yields the defaults.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), nil
	}
	c, err := LoadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return c, err
}

// LoadFile reads, defaults and validates the config file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
