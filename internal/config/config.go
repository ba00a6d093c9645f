// Package config resolves the tool-level configuration: where the storage
// tree lives and who is acting. Resolution order is flag > environment >
// observe.yaml > built-in default; the storage root is the only
// environment-level input the core depends on.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDir selects the storage root when no flag is given.
	EnvDir = "OBSERVE_DIR"

	// DefaultDir is the storage root of last resort, relative to the
	// working directory.
	DefaultDir = ".observe"

	// DefaultFile is the optional tool config file looked up in the
	// working directory.
	DefaultFile = "observe.yaml"

	// DefaultSource tags records whose origin the caller does not name.
	DefaultSource = "founder-pm"
)

// Config is the tool-level configuration from observe.yaml.
type Config struct {
	// StorageDir is the storage root for all observer entities.
	StorageDir string `yaml:"storage_dir,omitempty"`

	// Actor is the default resolver identity for approve and reject.
	Actor string `yaml:"actor,omitempty"`

	// Source is the default source tag stamped on new records.
	Source string `yaml:"source,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		StorageDir: DefaultDir,
		Source:     DefaultSource,
	}
}

// LoadConfig reads a tool config file. A missing file yields the defaults;
// a present but malformed file is an error, since the operator explicitly
// wrote it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = DefaultDir
	}
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	return cfg, nil
}

// Resolve produces the effective configuration for one CLI invocation.
// flagDir wins over OBSERVE_DIR, which wins over observe.yaml, which wins
// over the default. A .env file in the working directory is loaded first,
// best effort, so OBSERVE_DIR can live there.
func Resolve(flagDir string) (*Config, error) {
	// Ignore a missing .env; that is the usual case.
	_ = godotenv.Load()

	cfg, err := LoadConfig(DefaultFile)
	if err != nil {
		return nil, err
	}
	if env := os.Getenv(EnvDir); env != "" {
		cfg.StorageDir = env
	}
	if flagDir != "" {
		cfg.StorageDir = flagDir
	}
	if cfg.Actor == "" {
		cfg.Actor = os.Getenv("USER")
	}
	return cfg, nil
}
