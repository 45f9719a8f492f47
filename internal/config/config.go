package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"hsv-masker/internal/logger"
	"hsv-masker/internal/models"
	"hsv-masker/internal/processing"
)

const appDir = "hsv-masker"

// Config holds runtime settings. Fields may be loaded from a JSON file and
// overridden by command-line flags.
type Config struct {
	LogLevel       string `json:"log_level"`
	Backend        string `json:"backend"`
	AsyncRecompute bool   `json:"async_recompute"`

	// Range applied before the first image is loaded.
	InitialRange models.HSVRange `json:"initial_range"`

	JPEGQuality  int `json:"jpeg_quality"`
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Backend:        processing.BackendNative,
		AsyncRecompute: false,
		InitialRange:   models.FullRange(),
		JPEGQuality:    95,
		WindowWidth:    1200,
		WindowHeight:   800,
	}
}

// Validate normalizes out-of-range values back to their defaults. It never
// fails; the returned error lists what was reset.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
		c.LogLevel = def.LogLevel
	}
	if err := processing.ValidateName(c.Backend); err != nil {
		errs = append(errs, err)
		c.Backend = def.Backend
	}
	if err := c.InitialRange.Validate(); err != nil {
		errs = append(errs, err)
		c.InitialRange = def.InitialRange
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = def.JPEGQuality
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = def.WindowHeight
	}
	return errors.Join(errs...)
}

// DefaultPath is config.json under the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, "config.json"), nil
}

// Load reads configuration from the given JSON file path. A missing file
// yields DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration as indented JSON, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
