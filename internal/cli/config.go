package cli

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

var validate = validator.New()

// Config is the contents of config.toml:
//
//	[cache]
//	backend = "redis"          # file (default), redis or none
//	ttl = "24h"                # overrides the per-kind defaults
//	redis_addr = "localhost:6379"
//	namespace = "team-a"
//
//	[generate]
//	seed = 42
//
//	[serve]
//	addr = ":8080"
//	rate_limit = 10            # requests per second per client, 0 disables
//
//	[decide]
//	require_normalized = true
//	tolerance = 0.011
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Generate GenerateConfig `toml:"generate"`
	Serve    ServeConfig    `toml:"serve"`
	Decide   DecideConfig   `toml:"decide"`
}

type CacheConfig struct {
	Backend   string   `toml:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir"`
	TTL       duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int      `toml:"redis_db" validate:"min=0"`
	Namespace string   `toml:"namespace"`
}

type GenerateConfig struct {
	// Seed fixes the generator; unset means a fresh seed per run.
	Seed         *uint64 `toml:"seed"`
	Alternatives int     `toml:"alternatives" validate:"min=0,max=1000"`
	Criteria     int     `toml:"criteria" validate:"min=0,max=1000"`
}

type ServeConfig struct {
	Addr      string  `toml:"addr" validate:"required"`
	RateLimit float64 `toml:"rate_limit" validate:"min=0"`
	Burst     int     `toml:"burst" validate:"min=0"`
}

type DecideConfig struct {
	RequireNormalized bool    `toml:"require_normalized"`
	Tolerance         float64 `toml:"tolerance" validate:"min=0"`
}

// duration decodes TOML strings such as "36h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache:    CacheConfig{Backend: backendFile},
		Generate: GenerateConfig{Alternatives: 5, Criteria: 3},
		Serve:    ServeConfig{Addr: ":8080", RateLimit: 10, Burst: 20},
	}
}

// LoadConfig reads path over the defaults. An empty path means the default
// location, where a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}
