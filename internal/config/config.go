// Package config loads certrender settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// a TOML file, and CERTRENDER_* environment variables. Command-line flags
// are applied on top by the caller.
//
//	origin = "https://certs.example.com"
//	asset_base = "https://api.example.com"
//	listen = ":8080"
//	cache = "redis"
//	asset_timeout = "5s"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/certifyme/certrender/pkg/cache"
	"github.com/certifyme/certrender/pkg/core/render/scale"
	"github.com/certifyme/certrender/pkg/errors"
	"github.com/certifyme/certrender/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "certrender"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds every setting shared by the CLI and the server.
type Config struct {
	Origin       string        `toml:"origin"`
	AssetBase    string        `toml:"asset_base"`
	Listen       string        `toml:"listen"`
	Cache        string        `toml:"cache"`
	CacheDir     string        `toml:"cache_dir"`
	Redis        Redis         `toml:"redis"`
	AssetTimeout time.Duration `toml:"asset_timeout"`
	Debounce     time.Duration `toml:"debounce"`
}

// Redis holds the Redis cache connection settings.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// Prefix scopes every key so deployments can share one instance.
	Prefix string `toml:"prefix"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Origin:       pipeline.DefaultOrigin,
		AssetBase:    pipeline.DefaultAssetBase,
		Listen:       ":8080",
		Cache:        CacheFile,
		CacheDir:     CacheDir(),
		Redis:        Redis{Addr: "localhost:6379"},
		AssetTimeout: pipeline.DefaultAssetTimeout,
		Debounce:     scale.DefaultDebounce,
	}
}

// Load reads the config file at path, then the environment. An empty path
// reads DefaultPath() and tolerates its absence; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides settings from CERTRENDER_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CERTRENDER_ORIGIN", &c.Origin)
	str("CERTRENDER_ASSET_BASE", &c.AssetBase)
	str("CERTRENDER_ADDR", &c.Listen)
	str("CERTRENDER_CACHE", &c.Cache)
	str("CERTRENDER_CACHE_DIR", &c.CacheDir)
	str("CERTRENDER_REDIS_ADDR", &c.Redis.Addr)
	str("CERTRENDER_REDIS_PASSWORD", &c.Redis.Password)
	str("CERTRENDER_REDIS_PREFIX", &c.Redis.Prefix)

	if v, ok := lookup("CERTRENDER_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "CERTRENDER_REDIS_DB: %q is not a number", v)
		}
		c.Redis.DB = db
	}
	if v, ok := lookup("CERTRENDER_ASSET_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "CERTRENDER_ASSET_TIMEOUT: %q is not a duration", v)
		}
		c.AssetTimeout = d
	}
	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch c.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache must be one of file, redis, none (got %q)", c.Cache)
	}
	if err := errors.ValidateOrigin(c.Origin); err != nil {
		return err
	}
	if err := errors.ValidateAssetBase(c.AssetBase); err != nil {
		return err
	}
	if c.AssetTimeout < 0 || c.Debounce < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// OpenCache opens the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	}
	if c.CacheDir == "" {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(c.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open file cache: %w", err)
	}
	return fc, nil
}

// Keyer returns the cache keyer for the configured backend. Only a Redis
// backend with a prefix needs a scoped keyer; nil selects the default.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache == CacheRedis && c.Redis.Prefix != "" {
		return cache.NewScopedKeyer(nil, c.Redis.Prefix)
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file location using the XDG standard
// (~/.config/certrender/config.toml).
func DefaultPath() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/certrender/). It is empty when no home directory is known.
func CacheDir() string {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", AppName)
}
