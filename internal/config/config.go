// Package config resolves paleta's settings from defaults, a YAML file and
// the environment. Command-line flags are layered on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/paleta/internal/colour"
	"github.com/jmylchreest/paleta/internal/extraction"
)

// Environment variables read by ApplyEnv.
const (
	EnvColours   = "PALETA_COLOURS"
	EnvAccuracy  = "PALETA_ACCURACY"
	EnvAlgorithm = "PALETA_ALGORITHM"
	EnvTolerance = "PALETA_TOLERANCE"
)

// Output formats understood by the extract command.
var Formats = []string{"hex", "rgb", "json", "table"}

// Config holds resolved settings.
type Config struct {
	Colours   int           `yaml:"colours"`
	Accuracy  string        `yaml:"accuracy"`
	Algorithm string        `yaml:"algorithm"`
	Tolerance float64       `yaml:"tolerance"`
	Format    string        `yaml:"format"`
	Cache     CacheConfig   `yaml:"cache"`
	Timeout   time.Duration `yaml:"timeout"`

	// AllowPrivateHosts permits image URLs on loopback and private networks.
	AllowPrivateHosts bool `yaml:"allow_private_hosts"`
}

// CacheConfig controls the on-disk cache for remote images.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Colours:   extraction.DefaultColorCount,
		Accuracy:  colour.DefaultAccuracy.String(),
		Algorithm: string(colour.AlgorithmMMCQ),
		Format:    "hex",
		Cache:     CacheConfig{Enabled: true},
		Timeout:   10 * time.Second,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/paleta/config.yaml, falling back to
// the platform config dir.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paleta", "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "paleta", "config.yaml"), nil
}

// Load reads and validates the configuration.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read resolves defaults, the file at path and the environment without
// validating the result. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Read(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.LoadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	err := cfg.ApplyEnv(os.LookupEnv)
	return cfg, err
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays PALETA_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvColours); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvColours, err)
		}
		c.Colours = n
	}
	if v, ok := lookup(EnvAccuracy); ok && v != "" {
		c.Accuracy = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAlgorithm); ok && v != "" {
		c.Algorithm = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvTolerance); ok && v != "" {
		d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTolerance, err)
		}
		c.Tolerance = d
	}
	return nil
}

// Validate checks that the settings can drive an extraction.
func (c Config) Validate() error {
	if _, err := c.Parameters(); err != nil {
		return err
	}
	if !colour.IsValidAlgorithm(colour.Algorithm(c.Algorithm)) {
		return fmt.Errorf("invalid algorithm: %s (valid: %v)", c.Algorithm, colour.ValidAlgorithms())
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %v", c.Tolerance)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	return nil
}

// Parameters converts the colour count and accuracy into extraction
// parameters.
func (c Config) Parameters() (extraction.Parameters, error) {
	acc, err := colour.ParseAccuracy(c.Accuracy)
	if err != nil {
		return extraction.Parameters{}, err
	}
	q, err := acc.Quality()
	if err != nil {
		return extraction.Parameters{}, err
	}
	p := extraction.Parameters{ColorCount: c.Colours, Quality: q}
	if err := p.Validate(); err != nil {
		return extraction.Parameters{}, err
	}
	return p, nil
}
