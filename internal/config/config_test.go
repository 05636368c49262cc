package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "http://localhost:5000", "")
	flags.String("db", "flashify.db", "")
	flags.String("listen", "127.0.0.1:8484", "")
	flags.Duration("timeout", 15*time.Second, "")
	flags.String("cache-dir", "sources", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", testFlags())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:5000" {
		t.Errorf("Expected the flag default API URL, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Expected the default timeout, got %v", cfg.Timeout)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("FLASHIFY_API_URL", "https://api.example.com")
	t.Setenv("FLASHIFY_LISTEN", "127.0.0.1:9999")

	cfg, err := Load("", testFlags())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("Expected the env API URL, got %q", cfg.APIURL)
	}
	if cfg.Listen != "127.0.0.1:9999" {
		t.Errorf("Expected the env listen address, got %q", cfg.Listen)
	}
}

func TestExplicitFlagBeatsEnv(t *testing.T) {
	t.Setenv("FLASHIFY_API_URL", "https://env.example.com")

	flags := testFlags()
	if err := flags.Parse([]string{"--api-url", "https://flag.example.com"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "https://flag.example.com" {
		t.Errorf("Expected the explicit flag to win, got %q", cfg.APIURL)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashify.yaml")
	content := "api-url: https://file.example.com\ntimeout: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path, testFlags())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "https://file.example.com" {
		t.Errorf("Expected the file API URL, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected the file timeout, got %v", cfg.Timeout)
	}
}

func TestMissingNamedConfigFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), testFlags()); err == nil {
		t.Error("Expected an error for an explicitly named but missing file")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	flags := testFlags()
	if err := flags.Parse([]string{"--api-url", "not a url"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	if _, err := Load("", flags); err == nil {
		t.Error("Expected a validation error for a malformed API URL")
	}
}
