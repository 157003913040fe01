// Package config loads mindgeo settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/mindgeo/config.toml (falling back to
// ~/.config/mindgeo/config.toml). A missing file yields [Default]. Every
// key is optional:
//
//	[layout]
//	mode = "radial"
//	horizontal_offset = 250.0
//	root_spacing = 120.0
//	child_spacing = 80.0
//	vertical_gap = 40.0
//
//	[placement]
//	spacing = 50.0
//	max_probes = 500
//
//	[cache]
//	backend = "redis"        # file | redis | mongo | none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["http://localhost:3000"]
//
// CLI flags override file values.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/layout"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

const appName = "mindgeo"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full settings file.
type Config struct {
	Layout    layout.Options  `toml:"layout"`
	Placement PlacementConfig `toml:"placement"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
}

// PlacementConfig holds free-position search defaults.
type PlacementConfig struct {
	Spacing   float64 `toml:"spacing"`
	MaxProbes int     `toml:"max_probes"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	MongoURI      string   `toml:"mongo_uri,omitempty"`
	MongoDatabase string   `toml:"mongo_database,omitempty"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	CORSOrigins  []string `toml:"cors_origins,omitempty"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: layout.DefaultOptions(),
		Placement: PlacementConfig{
			Spacing:   placement.DefaultSpacing,
			MaxProbes: placement.DefaultMaxProbes,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{cache.LayoutTTL},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/mindgeo/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Unknown keys are rejected so typos surface early.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [Path].
func LoadDefault() (Config, string, error) {
	path, err := Path()
	if err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Placement.Spacing < 0 || c.Placement.MaxProbes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "placement values must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	return nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves cfg to path, creating parent directories.
func Write(path string, cfg Config) error {
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
