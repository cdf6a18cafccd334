package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Serve.Addr)
	}
	if cfg.Generate.Seed != nil {
		t.Errorf("seed should be unset, got %d", *cfg.Generate.Seed)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[serve]\naddr = \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Serve.Addr)
	}
	if cfg.Serve.RateLimit != 10 {
		t.Errorf("unset keys should keep defaults, rate_limit = %v", cfg.Serve.RateLimit)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
ttl = "36h"
redis_addr = "localhost:6379"
redis_db = 2
namespace = "team-a"

[generate]
seed = 42
alternatives = 8

[decide]
require_normalized = true
tolerance = 0.02
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisDB != 2 || cfg.Cache.Namespace != "team-a" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("ttl = %v, want 36h", cfg.Cache.TTL.Duration)
	}
	if cfg.Generate.Seed == nil || *cfg.Generate.Seed != 42 {
		t.Errorf("seed = %v, want 42", cfg.Generate.Seed)
	}
	if cfg.Generate.Alternatives != 8 || cfg.Generate.Criteria != 3 {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if !cfg.Decide.RequireNormalized || cfg.Decide.Tolerance != 0.02 {
		t.Errorf("decide = %+v", cfg.Decide)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    perrors.Code
	}{
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = \"red\"\n", perrors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", perrors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", perrors.ErrCodeInvalidInput},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", perrors.ErrCodeInvalidInput},
		{"negative rate", "[serve]\nrate_limit = -1\n", perrors.ErrCodeInvalidInput},
		{"syntax", "[cache\n", perrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !perrors.Is(err, tt.code) {
				t.Errorf("LoadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
	if dir, _ := configDir(); dir != filepath.Join("/tmp/xdg-config", appName) {
		t.Errorf("configDir() = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if dir, _ := cacheDir(); dir != filepath.Join(home, ".cache", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
	if dir, _ := configDir(); dir != filepath.Join(home, ".config", appName) {
		t.Errorf("configDir() = %q", dir)
	}
}

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		cfg  CacheConfig
		want string
	}{
		{CacheConfig{Backend: backendNone}, "disabled"},
		{CacheConfig{Backend: backendRedis, RedisAddr: "cache:6379", RedisDB: 1}, "redis://cache:6379/1"},
		{CacheConfig{Backend: backendFile, Dir: "/var/cache/pg"}, "/var/cache/pg"},
	}

	for _, tt := range tests {
		if got := cacheLocation(tt.cfg); got != tt.want {
			t.Errorf("cacheLocation(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
