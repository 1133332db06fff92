// Package config resolves the settings of a khaos run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/khaos/pkg/engine"
	"github.com/devicelab-dev/khaos/pkg/format"
	"github.com/devicelab-dev/khaos/pkg/logger"
)

// Host parameter keys.
const (
	ParamParallel      = "khaos.execution.parallel"
	ParamFailOnPending = "khaos.failOnPending"
)

// EnvPrefix is prepended to the env tag of every field.
const EnvPrefix = "KHAOS_"

// Config represents the run configuration (khaos.yaml).
type Config struct {
	// Execution settings
	Parallel      bool `yaml:"parallel" env:"PARALLEL" default:"true"`              // Run siblings concurrently
	FailOnPending bool `yaml:"failOnPending" env:"FAIL_ON_PENDING" default:"true"` // Report PENDING as failed
	MaxParallel   int  `yaml:"maxParallel" env:"MAX_PARALLEL" default:"0"`         // 0 is unbounded

	// Scenario selection
	IncludeTags []string `yaml:"includeTags" env:"INCLUDE_TAGS"` // Tags to include
	ExcludeTags []string `yaml:"excludeTags" env:"EXCLUDE_TAGS"` // Tags to exclude

	// Output
	Format     string `yaml:"format" env:"FORMAT" default:"markdown"`  // markdown or text
	LogLevel   string `yaml:"logLevel" env:"LOG_LEVEL" default:"info"` // Diagnostics level
	LogFile    string `yaml:"logFile" env:"LOG_FILE"`                  // Diagnostics destination
	ReportPath string `yaml:"reportPath" env:"REPORT"`                 // .json, .yaml or .yml
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	return cfg
}

// Load loads configuration from a file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir looks for khaos.yaml or khaos.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	if path, ok := FindInDir(dir); ok {
		return Load(path)
	}

	// No config file found, return defaults
	return Default(), nil
}

// FindInDir returns the config file in dir, if there is one.
func FindInDir(dir string) (string, bool) {
	for _, name := range []string{"khaos.yaml", "khaos.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// ApplyEnv overrides fields from KHAOS_* variables. A nil environ reads the
// process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// ApplyParameters overrides fields from host parameters. Unknown keys are
// ignored.
func (c *Config) ApplyParameters(params map[string]string) error {
	for key, target := range map[string]*bool{
		ParamParallel:      &c.Parallel,
		ParamFailOnPending: &c.FailOnPending,
	} {
		raw, ok := params[key]
		if !ok {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parameter %s: invalid boolean %q", key, raw)
		}
		*target = v
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if _, err := format.ProviderByName(c.Format); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("maxParallel must not be negative, got %d", c.MaxParallel)
	}
	return nil
}

// EngineOptions converts the configuration into engine options. Output goes
// to the console unless a specification provides its own adapter.
func (c *Config) EngineOptions() (engine.Options, error) {
	provider, err := format.ProviderByName(c.Format)
	if err != nil {
		return engine.Options{}, err
	}

	return engine.Options{
		Parallel:      c.Parallel,
		FailOnPending: c.FailOnPending,
		MaxParallel:   c.MaxParallel,
		Format:        provider,
	}, nil
}

// DiscoveryRequest returns a request for the selectors filtered by the
// configured tags.
func (c *Config) DiscoveryRequest(selectors ...engine.Selector) engine.DiscoveryRequest {
	return engine.DiscoveryRequest{
		Selectors:   selectors,
		IncludeTags: c.IncludeTags,
		ExcludeTags: c.ExcludeTags,
	}
}

// Resolve builds the configuration from every source: defaults, the config
// file, the environment and finally host parameters. An empty path searches
// dir, then the khaos home directory.
func Resolve(path, dir string, environ, params map[string]string) (*Config, error) {
	if path == "" {
		if found, ok := FindInDir(dir); ok {
			path = found
		} else if found, ok := FindInDir(GetHome()); ok {
			path = found
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.ApplyParameters(params); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
