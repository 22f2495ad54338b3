package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log"},
		{"unknown cache", func(c *Config) { c.Cache.Type = "memcached" }, "cache"},
		{"redis without addr", func(c *Config) { c.Cache.Type = CacheRedis }, "cache.redis"},
		{"negative redis db", func(c *Config) { c.Cache.Redis.DB = -1 }, "cache.redis"},
		{"unknown store", func(c *Config) { c.Store.Type = "postgres" }, "store"},
		{"mongo without uri", func(c *Config) { c.Store.Type = StoreMongo }, "store.mongo"},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, "server"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.HasPrefix(err.Error(), tt.wantErr+":") {
				t.Errorf("error = %v, want prefix %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBackendsWithSettings(t *testing.T) {
	cfg := Default()
	cfg.Cache.Type = CacheRedis
	cfg.Cache.Redis.Addr = "localhost:6379"
	cfg.Store.Type = StoreMongo
	cfg.Store.Mongo.URI = "mongodb://localhost:27017"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, FileName, `
[log]
level = "debug"

[cache]
type = "none"

[store]
type = "file"
dir = "/tmp/netlists"

[server]
addr = "127.0.0.1:9000"
shutdown_timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.ParsedLevel() != log.DebugLevel {
		t.Errorf("log level = %v, want debug", cfg.Log.ParsedLevel())
	}
	if cfg.Cache.Type != CacheNone {
		t.Errorf("cache type = %q", cfg.Cache.Type)
	}
	if cfg.Store.Type != StoreFile || cfg.Store.Dir != "/tmp/netlists" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	// Untouched values keep their defaults.
	if cfg.Server.MaxBodyBytes != Default().Server.MaxBodyBytes {
		t.Errorf("max body bytes = %d", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[log\nlevel = 1"},
		{"unknown key", "[log]\ncolour = true\n"},
		{"invalid value", "[cache]\ntype = \"tape\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, FileName, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:        "warn",
		EnvCacheType:       CacheRedis,
		EnvRedisAddr:       "redis:6379",
		EnvRedisDB:         "2",
		EnvStoreType:       StoreMongo,
		EnvMongoURI:        "mongodb://mongo:27017",
		EnvServerAddr:      ":9999",
		EnvShutdownTimeout: "1m",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Store.Mongo.URI != "mongodb://mongo:27017" || cfg.Server.ShutdownTimeout != time.Minute {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	for _, key := range []string{EnvRedisDB, EnvShutdownTimeout} {
		lookup := func(k string) (string, bool) {
			if k == key {
				return "not-a-number", true
			}
			return "", false
		}
		if err := Default().ApplyEnv(lookup); err == nil {
			t.Errorf("%s: expected error", key)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "FRAME_TEST_DOTENV=loaded\n")
	t.Setenv("FRAME_TEST_DOTENV", "")
	os.Unsetenv("FRAME_TEST_DOTENV")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("FRAME_TEST_DOTENV"); got != "loaded" {
		t.Errorf("FRAME_TEST_DOTENV = %q, want loaded", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/custom"
	if dir, _ := cfg.CacheDir(); dir != "/custom" {
		t.Errorf("CacheDir() = %q, want /custom", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	cfg.Cache.Dir = ""
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}
