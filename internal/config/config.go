// Package config defines the YAML configuration file shared by the lexvek
// commands. Parsing uses strict mode, so a typo in a field name fails loudly
// instead of silently training with defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sanonone/lexvek/pkg/core"
	"github.com/sanonone/lexvek/pkg/corpus"
	"github.com/sanonone/lexvek/pkg/persistence"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level structure of the configuration file.
type Config struct {
	Train TrainConfig `yaml:"train"`
	Serve ServeConfig `yaml:"serve"`
}

// TrainConfig mirrors core.Options plus the on-disk precision of saved
// snapshots.
type TrainConfig struct {
	WindowSize int    `yaml:"window_size"` // context positions per side, >= 1
	Dimensions int    `yaml:"dimensions"`  // embedding size k
	MinCount   int    `yaml:"min_count"`   // drop words occurring fewer times
	StopWords  string `yaml:"stop_words"`  // "english", "italian" or empty
	Stem       bool   `yaml:"stem"`        // Porter2-stem tokens before counting
	Parallel   bool   `yaml:"parallel"`    // spread counting across cores
	Precision  string `yaml:"precision"`   // "float32" or "float16"
}

// ServeConfig configures the HTTP API server.
type ServeConfig struct {
	Host      string `yaml:"host"` // empty binds every interface
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"` // bearer token, empty disables auth
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Train: TrainConfig{
			WindowSize: 4,
			Dimensions: 2,
			MinCount:   1,
			Precision:  string(persistence.Float32),
		},
		Serve: ServeConfig{
			Port: 9191,
		},
	}
}

// Load reads and parses the configuration file at path. An empty path
// returns the defaults. Environment variables in the file are expanded
// before parsing, and unknown fields are rejected.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return &config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	expandedData := os.ExpandEnv(string(data))

	decoder := yaml.NewDecoder(strings.NewReader(expandedData))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in '%s': %w", path, err)
	}
	return &config, nil
}

// Validate checks every field against its legal range.
func (c *Config) Validate() error {
	if c.Train.WindowSize < 1 {
		return fmt.Errorf("train.window_size must be at least 1, got %d", c.Train.WindowSize)
	}
	if c.Train.Dimensions < 1 {
		return fmt.Errorf("train.dimensions must be at least 1, got %d", c.Train.Dimensions)
	}
	if c.Train.MinCount < 1 {
		return fmt.Errorf("train.min_count must be at least 1, got %d", c.Train.MinCount)
	}
	switch persistence.Precision(c.Train.Precision) {
	case persistence.Float32, persistence.Float16:
	default:
		return fmt.Errorf("train.precision must be %q or %q, got %q",
			persistence.Float32, persistence.Float16, c.Train.Precision)
	}
	if c.Train.StopWords != "" {
		known := false
		for _, language := range corpus.StopWordLanguages() {
			if strings.EqualFold(c.Train.StopWords, language) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("train.stop_words %q is not a known language (have %s)",
				c.Train.StopWords, strings.Join(corpus.StopWordLanguages(), ", "))
		}
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be in [1, 65535], got %d", c.Serve.Port)
	}
	return nil
}

// Options converts the training section into pipeline options.
func (t TrainConfig) Options() core.Options {
	return core.Options{
		WindowSize:       t.WindowSize,
		Dimensions:       t.Dimensions,
		MinCount:         t.MinCount,
		StopWordLanguage: t.StopWords,
		Stem:             t.Stem,
		Parallel:         t.Parallel,
	}
}

// SnapshotPrecision converts the configured precision string.
func (t TrainConfig) SnapshotPrecision() persistence.Precision {
	return persistence.Precision(t.Precision)
}
