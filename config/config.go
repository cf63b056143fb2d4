// Package config loads flexls settings from a YAML file, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/roveo/flexls/logging"
	"gopkg.in/yaml.v3"
)

// DefaultLineLimit is the default maximum number of lines in map output
const DefaultLineLimit = 1000

// DefaultDebounce is how long the watcher waits after the last write to a
// file before re-scanning it.
const DefaultDebounce = 100 * time.Millisecond

type Config struct {
	Language  string        `yaml:"language"` // language identifier served
	Catalog   string        `yaml:"catalog"`  // path to the standard library catalog
	Locale    string        `yaml:"locale"`
	Skip      []string      `yaml:"skip"`    // path prefixes the map hides by default
	Exclude   []string      `yaml:"exclude"` // glob patterns never indexed
	LineLimit int           `yaml:"limit"`
	Watch     bool          `yaml:"watch"`
	Debounce  time.Duration `yaml:"debounce"`
	Log       LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Language:  "flexia",
		Catalog:   "data/StdLib.json",
		Locale:    "en",
		LineLimit: DefaultLineLimit,
		Debounce:  DefaultDebounce,
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load returns Default overlaid with the YAML file at path and then with the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FLEXLS_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("FLEXLS_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("FLEXLS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FLEXLS_LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Language == "" {
		return errors.New("config: language must not be empty")
	}
	if c.LineLimit < 0 {
		return fmt.Errorf("config: limit must be >= 0, got %d", c.LineLimit)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("config: debounce must be >= 0, got %s", c.Debounce)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Logging returns the logger configuration for a component.
func (c Config) Logging(source string) logging.Config {
	cfg := logging.DefaultConfig(source)
	if level, ok := logging.ParseLevel(c.Log.Level); ok {
		cfg.Level = level
	}
	cfg.Format = c.Log.Format
	return cfg
}
