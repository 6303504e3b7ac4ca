package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig loads embedded example", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL != "http://localhost:8080" {
			t.Errorf("expected default base URL, got %s", config.Server.BaseURL)
		}
		if config.Server.PollIntervalSecs != 1 {
			t.Errorf("expected poll interval 1, got %d", config.Server.PollIntervalSecs)
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
	})

	t.Run("LoadConfig parses a TOML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
base_url = "https://transfer.example.com"
poll_interval_secs = 2

[database]
path = ":memory:"
max_open_conns = 3
max_idle_conns = 1
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.BaseURL != "https://transfer.example.com" {
			t.Errorf("unexpected base URL: %s", config.Server.BaseURL)
		}
		if config.Database.MaxOpenConns != 3 {
			t.Errorf("unexpected max open conns: %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig fails on missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.toml")
		if !errors.Is(err, ErrMissingConfig) {
			t.Fatalf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig fails on invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[server\nbase_url"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("CreateConfigFile writes template once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Fatal("expected error when file exists")
		}
	})

	t.Run("ExpandPath resolves home prefix", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory available")
		}

		expanded := ExpandPath("~/.sptx/sptx.db")
		if !strings.HasPrefix(expanded, home) {
			t.Errorf("expected %q to start with %q", expanded, home)
		}
		if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
			t.Errorf("expected absolute path unchanged, got %q", got)
		}
	})
}
