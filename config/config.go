// Package config loads the runtime configuration of the resolver and the demo CLI.
//
// Values are layered, later layers winning:
//
//  1. Default()
//  2. an optional YAML file
//  3. .env files (never overriding the real environment)
//  4. GRAPHIOC_* environment variables
//
// The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRAPHIOC_"

// Config is the full runtime configuration.
type Config struct {
	// Policy is "canonical" or "alternate".
	Policy string `yaml:"policy" validate:"oneof=canonical alternate"`

	// MaxDepth bounds resolution depth; 0 means the resolver default.
	MaxDepth int `yaml:"max_depth" validate:"gte=0"`

	// Seed makes synthesized data reproducible when set.
	Seed *uint64 `yaml:"seed"`

	Collection Collection `yaml:"collection"`
	Logging    Logging    `yaml:"logging"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Collection is the inclusive size range of synthesized slices and maps.
type Collection struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// Logging configures the zerolog logger.
type Logging struct {
	// Level is one of trace, debug, info, warn, error, disabled.
	Level string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`

	// Format is console or json.
	Format string `yaml:"format" validate:"oneof=console json"`

	// Output is stdout, stderr or a file path.
	Output string `yaml:"output" validate:"required"`
}

// Metrics configures the prometheus observer.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Policy:     "canonical",
		Collection: Collection{Min: 2, Max: 6},
		Logging: Logging{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: Metrics{Namespace: "graphioc"},
	}
}

// LoadFromEnv loads the configuration without a YAML file.
func LoadFromEnv() (Config, error) {
	return Load("")
}

// Load layers path (skipped when empty), envFiles (".env" when none are given and
// it exists) and the process environment over Default.
func Load(path string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	return load(path, envFiles, os.LookupEnv)
}

func load(path string, envFiles []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if len(envFiles) > 0 {
		dotenv, err := godotenv.Read(envFiles...)
		if err != nil {
			return Config{}, fmt.Errorf("read env files: %w", err)
		}
		lookup = withFallback(lookup, dotenv)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags of cfg.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	cfg.Policy = getenv(lookup, "POLICY", cfg.Policy)
	cfg.Logging.Level = getenv(lookup, "LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getenv(lookup, "LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.Output = getenv(lookup, "LOG_OUTPUT", cfg.Logging.Output)
	cfg.Metrics.Namespace = getenv(lookup, "METRICS_NAMESPACE", cfg.Metrics.Namespace)

	var err error
	if cfg.MaxDepth, err = getenvInt(lookup, "MAX_DEPTH", cfg.MaxDepth); err != nil {
		errs = append(errs, err)
	}
	if cfg.Collection.Min, err = getenvInt(lookup, "COLLECTION_MIN", cfg.Collection.Min); err != nil {
		errs = append(errs, err)
	}
	if cfg.Collection.Max, err = getenvInt(lookup, "COLLECTION_MAX", cfg.Collection.Max); err != nil {
		errs = append(errs, err)
	}
	if cfg.Metrics.Enabled, err = getenvBool(lookup, "METRICS_ENABLED", cfg.Metrics.Enabled); err != nil {
		errs = append(errs, err)
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			errs = append(errs, fmt.Errorf("%sSEED must be an unsigned integer: %w", EnvPrefix, perr))
		} else {
			cfg.Seed = &seed
		}
	}
	return errors.Join(errs...)
}

func withFallback(lookup func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		if v, ok := lookup(k); ok {
			return v, true
		}
		v, ok := fallback[k]
		return v, ok
	}
}

func getenv(lookup func(string) (string, bool), k, def string) string {
	if v, ok := lookup(EnvPrefix + k); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(lookup func(string) (string, bool), k string, def int) (int, error) {
	v, ok := lookup(EnvPrefix + k)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, k, err)
	}
	return n, nil
}

func getenvBool(lookup func(string) (string, bool), k string, def bool) (bool, error) {
	v, ok := lookup(EnvPrefix + k)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s%s must be a boolean: %w", EnvPrefix, k, err)
	}
	return b, nil
}
