// Package config assembles the client's configuration from, in rising
// precedence: flag defaults, an optional YAML file, FLASHIFY_* env vars,
// and explicit command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is everything the client needs to run. All state but the
// credential slot lives behind the remote API, so there is little to
// configure.
type Config struct {
	// APIURL is the base URL of the remote Flashify API.
	APIURL string `koanf:"api-url" validate:"required,url"`
	// DBPath is the sqlite file holding the persisted credential.
	DBPath string `koanf:"db" validate:"required"`
	// Listen is the address of the local web UI.
	Listen string `koanf:"listen" validate:"required,hostname_port"`
	// Timeout bounds every request to the remote API.
	Timeout time.Duration `koanf:"timeout" validate:"required"`
	// CacheDir is where git card sources are mirrored for import.
	CacheDir string `koanf:"cache-dir" validate:"required"`
}

// Load builds the configuration. configFile may be "" or point at a YAML
// file; a named-but-missing file is an error, the default file is
// optional.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	path, required := configFile, true
	if path == "" {
		path, required = "flashify.yaml", false
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	// FLASHIFY_API_URL -> api-url
	err := k.Load(env.Provider("FLASHIFY_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "FLASHIFY_")), "_", "-")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultDBPath places the credential store under the user's config
// directory, falling back to the working directory.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "flashify.db"
	}
	return filepath.Join(dir, "flashify", "flashify.db")
}

// DefaultCacheDir places git source mirrors under the user's cache
// directory, falling back to the working directory.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "flashify-sources"
	}
	return filepath.Join(dir, "flashify", "sources")
}
