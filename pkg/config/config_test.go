package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/layout"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout != layout.DefaultOptions() {
		t.Errorf("Layout = %+v, want defaults", cfg.Layout)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Server.Addr != ":8080" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[layout]
mode = "radial"
root_spacing = 200.0

[placement]
spacing = 25.0

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "90m"

[server]
addr = ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Mode != layout.Radial || cfg.Layout.RootSpacing != 200 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Layout.HorizontalOffset != layout.DefaultHorizontalOffset {
		t.Errorf("unset layout key lost its default: %+v", cfg.Layout)
	}
	if cfg.Placement.Spacing != 25 || cfg.Placement.MaxProbes != 500 {
		t.Errorf("Placement = %+v", cfg.Placement)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Syntax", "[layout\nmode = "},
		{"UnknownKey", "[layout]\nmodee = \"radial\"\n"},
		{"BadMode", "[layout]\nmode = \"spiral\"\n"},
		{"BadBackend", "[cache]\nbackend = \"memcached\"\n"},
		{"RedisWithoutAddr", "[cache]\nbackend = \"redis\"\n"},
		{"MongoWithoutURI", "[cache]\nbackend = \"mongo\"\n"},
		{"BadDuration", "[cache]\nttl = \"soon\"\n"},
		{"NegativeSpacing", "[layout]\nchild_spacing = -5.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Layout.Mode = layout.Vertical
	cfg.Cache.TTL = Duration{2 * time.Hour}
	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Layout.Mode != layout.Vertical || got.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("round trip = %+v", got)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if p, _ := Path(); p != "/tmp/xdg-config/mindgeo/config.toml" {
		t.Errorf("Path() = %q", p)
	}
	if p, _ := CacheDir(); p != "/tmp/xdg-cache/mindgeo" {
		t.Errorf("CacheDir() = %q", p)
	}
}
