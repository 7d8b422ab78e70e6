package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/certifyme/certrender/pkg/cache"
	"github.com/certifyme/certrender/pkg/errors"
	"github.com/certifyme/certrender/pkg/pipeline"
)

var envKeys = []string{
	"CERTRENDER_ORIGIN", "CERTRENDER_ASSET_BASE", "CERTRENDER_ADDR",
	"CERTRENDER_CACHE", "CERTRENDER_CACHE_DIR", "CERTRENDER_REDIS_ADDR",
	"CERTRENDER_REDIS_PASSWORD", "CERTRENDER_REDIS_DB", "CERTRENDER_ASSET_TIMEOUT",
	"CERTRENDER_REDIS_PREFIX",
}

// isolate clears every variable Load reads and points the XDG
// directories at a temporary home.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
	check("Origin", cfg.Origin, pipeline.DefaultOrigin)
	check("AssetBase", cfg.AssetBase, pipeline.DefaultAssetBase)
	check("Listen", cfg.Listen, ":8080")
	check("Cache", cfg.Cache, CacheFile)
	check("CacheDir", cfg.CacheDir, filepath.Join(dir, "cache", AppName))
	check("Redis.Addr", cfg.Redis.Addr, "localhost:6379")

	if cfg.AssetTimeout != pipeline.DefaultAssetTimeout {
		t.Errorf("AssetTimeout = %v", cfg.AssetTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "config", AppName, "config.toml"), `
origin = "https://certs.example.com"
cache = "none"
asset_timeout = "3s"
debounce = "10ms"

[redis]
addr = "redis:6379"
db = 2
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Origin != "https://certs.example.com" {
		t.Errorf("Origin = %q", cfg.Origin)
	}
	if cfg.Cache != CacheNone {
		t.Errorf("Cache = %q", cfg.Cache)
	}
	if cfg.AssetTimeout != 3*time.Second || cfg.Debounce != 10*time.Millisecond {
		t.Errorf("durations = %v, %v", cfg.AssetTimeout, cfg.Debounce)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("unset keys should keep defaults, Listen = %q", cfg.Listen)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeConfig(t, path, `origin = "https://file.example.com"`)

	overrides := map[string]string{
		"CERTRENDER_ORIGIN":         "https://env.example.com",
		"CERTRENDER_ASSET_BASE":     "https://api.example.com",
		"CERTRENDER_ADDR":           ":9090",
		"CERTRENDER_CACHE":          "redis",
		"CERTRENDER_REDIS_ADDR":     "cache:6380",
		"CERTRENDER_REDIS_PASSWORD": "secret",
		"CERTRENDER_REDIS_DB":       "4",
		"CERTRENDER_ASSET_TIMEOUT":  "750ms",
	}
	for k, v := range overrides {
		t.Setenv(k, v)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Origin != "https://env.example.com" {
		t.Errorf("Origin = %q", cfg.Origin)
	}
	if cfg.AssetBase != "https://api.example.com" || cfg.Listen != ":9090" {
		t.Errorf("AssetBase, Listen = %q, %q", cfg.AssetBase, cfg.Listen)
	}
	if cfg.Cache != CacheRedis {
		t.Errorf("Cache = %q", cfg.Cache)
	}
	if cfg.Redis != (Redis{Addr: "cache:6380", Password: "secret", DB: 4}) {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.AssetTimeout != 750*time.Millisecond {
		t.Errorf("AssetTimeout = %v", cfg.AssetTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		code errors.Code
	}{
		{"unknown key", `colour = "red"`, nil, errors.ErrCodeInvalidConfig},
		{"bad toml", `origin = `, nil, errors.ErrCodeInvalidConfig},
		{"bad cache", `cache = "memcached"`, nil, errors.ErrCodeInvalidConfig},
		{"bad origin", `origin = "ftp://x"`, nil, errors.ErrCodeInvalidOrigin},
		{"bad redis db", ``, map[string]string{"CERTRENDER_REDIS_DB": "two"}, errors.ErrCodeInvalidConfig},
		{"bad timeout", ``, map[string]string{"CERTRENDER_ASSET_TIMEOUT": "soon"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(dir, "c.toml")
			writeConfig(t, path, tt.file)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", AppName, "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got := DefaultPath()
	if !strings.HasPrefix(got, home) || !strings.Contains(got, ".config") {
		t.Errorf("DefaultPath() = %q, should be under %s/.config", got, home)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if got := CacheDir(); got != filepath.Join("/tmp/xdg-cache", AppName) {
		t.Errorf("CacheDir() = %q", got)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got := CacheDir()
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, AppName) {
		t.Errorf("CacheDir() = %q", got)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache = CacheNone
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none: got %T", c)
	}

	cfg.Cache = CacheFile
	cfg.CacheDir = t.TempDir()
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("file: got %T", c)
	}
	if fc.Dir() != cfg.CacheDir {
		t.Errorf("Dir() = %q", fc.Dir())
	}
}

func TestKeyer(t *testing.T) {
	cfg := Default()
	if cfg.Keyer() != nil {
		t.Error("file cache should use the default keyer")
	}

	cfg.Cache = CacheRedis
	if cfg.Keyer() != nil {
		t.Error("redis without prefix should use the default keyer")
	}

	cfg.Redis.Prefix = "certrender:staging:"
	k := cfg.Keyer()
	if k == nil {
		t.Fatal("expected scoped keyer")
	}
	if key := k.AssetKey("https://cdn.example.com/logo.png"); !strings.HasPrefix(key, "certrender:staging:asset:") {
		t.Errorf("AssetKey = %q", key)
	}
}
