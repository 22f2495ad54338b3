// Package config loads FRAME settings.
//
// Settings come from three layers, each overriding the previous one:
//
//  1. Built-in defaults ([Default]).
//  2. A TOML file, frame.toml by default.
//  3. Environment variables (FRAME_*), optionally seeded from a .env file.
//
// Command-line flags override all three and are applied by the CLI.
//
// # Example frame.toml
//
//	[log]
//	level = "debug"
//
//	[cache]
//	type = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[store]
//	type = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//	shutdown_timeout = "10s"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const appName = "frame"

// FileName is the config file looked up when no path is given.
const FileName = "frame.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the complete FRAME configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// ParsedLevel returns the configured level, or info if it does not parse.
func (c *LogConfig) ParsedLevel() log.Level {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheConfig selects and configures the export cache.
type CacheConfig struct {
	Type  string      `toml:"type"`
	Dir   string      `toml:"dir"` // file cache directory
	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Type, validation.Required, validation.In(CacheFile, CacheRedis, CacheNone)),
	); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := validation.ValidateStruct(&c.Redis,
		validation.Field(&c.Redis.Addr, validation.When(c.Type == CacheRedis, validation.Required)),
		validation.Field(&c.Redis.DB, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("cache.redis: %w", err)
	}
	return nil
}

// StoreConfig selects and configures the netlist store.
type StoreConfig struct {
	Type  string      `toml:"type"`
	Dir   string      `toml:"dir"` // file store directory
	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Type, validation.Required, validation.In(StoreMemory, StoreFile, StoreMongo)),
	); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := validation.ValidateStruct(&c.Mongo,
		validation.Field(&c.Mongo.URI, validation.When(c.Type == StoreMongo, validation.Required)),
	); err != nil {
		return fmt.Errorf("store.mongo: %w", err)
	}
	return nil
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxBodyBytes, validation.Required, validation.Min(int64(1))),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Default returns the built-in configuration: info logging, a file cache in
// the user cache directory, an in-memory store and the API on :8080.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Cache: CacheConfig{Type: CacheFile},
		Store: StoreConfig{Type: StoreMemory},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    10 << 20,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path and the
// environment. An empty path looks for frame.toml in the working directory
// and then in the user config directory; a missing default file is not an
// error, a missing explicit one is. A .env file in the working directory is
// loaded first if present; variables already set are not overridden.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()
	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func findFile() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel        = "FRAME_LOG_LEVEL"
	EnvCacheType       = "FRAME_CACHE_TYPE"
	EnvCacheDir        = "FRAME_CACHE_DIR"
	EnvRedisAddr       = "FRAME_REDIS_ADDR"
	EnvRedisPassword   = "FRAME_REDIS_PASSWORD"
	EnvRedisDB         = "FRAME_REDIS_DB"
	EnvStoreType       = "FRAME_STORE_TYPE"
	EnvStoreDir        = "FRAME_STORE_DIR"
	EnvMongoURI        = "FRAME_MONGO_URI"
	EnvMongoDatabase   = "FRAME_MONGO_DATABASE"
	EnvServerAddr      = "FRAME_SERVER_ADDR"
	EnvShutdownTimeout = "FRAME_SHUTDOWN_TIMEOUT"
)

// ApplyEnv overrides settings from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvLogLevel:      &c.Log.Level,
		EnvCacheType:     &c.Cache.Type,
		EnvCacheDir:      &c.Cache.Dir,
		EnvRedisAddr:     &c.Cache.Redis.Addr,
		EnvRedisPassword: &c.Cache.Redis.Password,
		EnvStoreType:     &c.Store.Type,
		EnvStoreDir:      &c.Store.Dir,
		EnvMongoURI:      &c.Store.Mongo.URI,
		EnvMongoDatabase: &c.Store.Mongo.Database,
		EnvServerAddr:    &c.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRedisDB); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRedisDB, err)
		}
		c.Cache.Redis.DB = db
	}
	if v, ok := lookup(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShutdownTimeout, err)
		}
		c.Server.ShutdownTimeout = d
	}
	return nil
}

// CacheDir returns the file cache directory, defaulting to the XDG cache
// location (~/.cache/frame).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
