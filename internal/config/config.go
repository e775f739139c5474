// Package config loads galaxymap configuration.
// Loading order (lowest to highest priority): defaults in code, the YAML/JSON document,
// then GALAXYMAP_* environment variables. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment selects logger flavour and defaults.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Storage backends understood by Open in the entry points.
const (
	BackendIndexedDB = "indexeddb"
	BackendFS        = "fs"
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
)

type Config struct {
	Environment Environment    `yaml:"environment" validate:"oneof=development production"`
	Storage     StorageConfig  `yaml:"storage"`
	Autosave    AutosaveConfig `yaml:"autosave"`
	Canvas      CanvasConfig   `yaml:"canvas"`
}

// StorageConfig describes where the snapshot blob lives.
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=indexeddb fs sqlite memory"`
	// Key is the single key the snapshot is stored under.
	Key string `yaml:"key" validate:"required,excludesall=/\\"`
	// Dir is the directory of the fs backend.
	Dir string `yaml:"dir" validate:"required_if=Backend fs"`
	// DSN is the database of the sqlite backend.
	DSN string `yaml:"dsn" validate:"required_if=Backend sqlite"`
	// Database names the IndexedDB database in the browser.
	Database string `yaml:"database" validate:"required_if=Backend indexeddb"`
}

// AutosaveConfig controls the trailing debounce of snapshot writes.
type AutosaveConfig struct {
	Delay time.Duration `yaml:"delay" validate:"gte=0"`
}

// UnmarshalYAML rejects a bare nonzero number for delay; yaml would read 2000 as 2000ns.
func (a *AutosaveConfig) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Value != "delay" {
				continue
			}
			if tag := val.ShortTag(); (tag == "!!int" || tag == "!!float") && val.Value != "0" {
				return fmt.Errorf("autosave.delay must be a duration string such as \"2s\", got %s", val.Value)
			}
		}
	}
	type plain AutosaveConfig
	return n.Decode((*plain)(a))
}

// CanvasConfig bounds the random placement of new notes.
type CanvasConfig struct {
	MinX   float64 `yaml:"minX"`
	MinY   float64 `yaml:"minY"`
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Environment: Development,
		Storage: StorageConfig{
			Backend:  BackendFS,
			Key:      "galaxy-mindmap-data",
			Dir:      "galaxymap",
			DSN:      "galaxymap.db",
			Database: "galaxymap",
		},
		Autosave: AutosaveConfig{Delay: 2 * time.Second},
		Canvas:   CanvasConfig{MinX: 200, MinY: 100, Width: 500, Height: 400},
	}
}

// Parse decodes a YAML (or JSON) document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	return ParseWith(Default(), data)
}

// ParseWith decodes data over base, which is modified in place, and validates the result.
func ParseWith(base *Config, data []byte) (*Config, error) {
	cfg := base
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path, applies environment overrides and validates.
// A missing file is not an error: defaults and environment are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GALAXYMAP_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("GALAXYMAP_ENV"); ok {
		c.Environment = Environment(strings.ToLower(v))
	}
	if v, ok := lookup("GALAXYMAP_STORAGE_BACKEND"); ok {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v, ok := lookup("GALAXYMAP_DATA_DIR"); ok {
		c.Storage.Dir = v
	}
	if v, ok := lookup("GALAXYMAP_SQLITE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := lookup("GALAXYMAP_AUTOSAVE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GALAXYMAP_AUTOSAVE_DELAY: %w", err)
		}
		c.Autosave.Delay = d
	}
	return nil
}

var validate = validator.New()

// Validate checks the struct tags of the whole configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
