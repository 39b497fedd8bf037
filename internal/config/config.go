// Package config loads the pass's ambient settings from a
// regenerator.yaml file, in the teacher's own style of a plain struct
// decoded with gopkg.in/yaml.v3 (see the original internal/ext config
// this package replaces).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how the Driver emits the runtime binding and, for
// cmd/regenerate, where the transform cache lives and whether a host
// diagnostics endpoint is configured.
type Config struct {
	// RuntimeImport is the module specifier passed to require(), default
	// "regenerator-runtime".
	RuntimeImport string `yaml:"runtime_import"`

	// RuntimeBinding is the local identifier the Driver binds it to
	// (spec §4.5's `<rt>`), default "regeneratorRuntime".
	RuntimeBinding string `yaml:"runtime_binding"`

	// AsyncGenerators is decoded from the file and is part of Fingerprint;
	// off by default. The Driver does not consult it: a function is lowered
	// when it is a generator, async or not, and a `for await (... of ...)`
	// is lowered like a plain for-of.
	AsyncGenerators bool `yaml:"async_generators"`

	// CachePath, if set, points cmd/regenerate at a sqlite database file
	// for internal/cache. Empty disables caching.
	CachePath string `yaml:"cache_path"`

	// HostEndpoint, if set, is the gRPC address internal/hostrpc reports
	// internal-invariant violations to. Empty makes the reporter a no-op.
	HostEndpoint string `yaml:"host_endpoint"`
}

// Default returns the Config used when no regenerator.yaml is present.
func Default() Config {
	return Config{
		RuntimeImport:  "regenerator-runtime",
		RuntimeBinding: "regeneratorRuntime",
	}
}

// Load reads and decodes path, applying Default() for any field the file
// leaves at its zero value (an empty RuntimeImport/RuntimeBinding).
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.RuntimeImport == "" {
		cfg.RuntimeImport = "regenerator-runtime"
	}
	if cfg.RuntimeBinding == "" {
		cfg.RuntimeBinding = "regeneratorRuntime"
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file returns Default() rather
// than an error — regenerator.yaml is optional, per SPEC_FULL.md's
// ambient-stack section.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Fingerprint is a short, stable string identifying the Config values
// that affect emitted output, for internal/cache's Key.
func (c Config) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%t", c.RuntimeImport, c.RuntimeBinding, c.AsyncGenerators)
}
