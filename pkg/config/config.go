// Package config loads pardot configuration from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/pardot/config.toml (falling back to
// ~/.config/pardot/config.toml). A missing file is not an error: the zero
// configuration runs the client in disabled mode with a file cache.
//
// Example:
//
//	[api]
//	email    = "ops@example.com"
//	password = "..."
//	user_key = "..."
//
//	[cache]
//	backend = "redis"
//	prefix  = "staging:"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pardot/pkg/cache"
	errs "github.com/matzehuels/pardot/pkg/errors"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

// AppName names the config and cache directories.
const AppName = "pardot"

// Environment variables that override file values.
const (
	EnvEmail        = "PARDOT_API_EMAIL"
	EnvPassword     = "PARDOT_API_PASSWORD"
	EnvUserKey      = "PARDOT_API_USER_KEY"
	EnvBaseURL      = "PARDOT_BASE_URL"
	EnvCacheBackend = "PARDOT_CACHE_BACKEND"
	EnvRedisAddr    = "PARDOT_REDIS_ADDR"
	EnvRedisDB      = "PARDOT_REDIS_DB"
	EnvMongoURI     = "PARDOT_MONGO_URI"
	EnvServerAddr   = "PARDOT_SERVER_ADDR"
)

// DefaultServerAddr is the listen address of `pardot serve`.
const DefaultServerAddr = "127.0.0.1:8080"

// Config is the full configuration.
type Config struct {
	API    API    `toml:"api"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// API holds the account credentials and endpoint.
type API struct {
	Email    string   `toml:"email"`
	Password string   `toml:"password"`
	UserKey  string   `toml:"user_key"`
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Prefix  string `toml:"prefix"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures `pardot serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path (or [DefaultPath] when empty), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeConfigInvalid, err, "read %s", path)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.API.Email, EnvEmail)
	set(&c.API.Password, EnvPassword)
	set(&c.API.UserKey, EnvUserKey)
	set(&c.API.BaseURL, EnvBaseURL)
	set(&c.Cache.Backend, EnvCacheBackend)
	set(&c.Cache.Redis.Addr, EnvRedisAddr)
	set(&c.Cache.Mongo.URI, EnvMongoURI)
	set(&c.Server.Addr, EnvServerAddr)

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeConfigInvalid, err, "%s", EnvRedisDB)
		}
		c.Cache.Redis.DB = db
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = pardot.DefaultBaseURL
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate checks backend names, URLs and backend-specific settings.
func (c *Config) Validate() error {
	if err := errs.ValidateURL(c.API.BaseURL); err != nil {
		return errs.Wrap(errs.ErrCodeConfigInvalid, err, "api.base_url")
	}
	if c.API.Timeout.Duration < 0 {
		return errs.New(errs.ErrCodeConfigInvalid, "api.timeout must not be negative")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendMemory, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errs.New(errs.ErrCodeConfigInvalid, "cache.redis.addr is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.Mongo.URI == "" {
			return errs.New(errs.ErrCodeConfigInvalid, "cache.mongo.uri is required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeConfigInvalid, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// Credentials returns the account credentials.
func (c *Config) Credentials() pardot.Credentials {
	return pardot.Credentials{
		Email:    c.API.Email,
		Password: c.API.Password,
		UserKey:  c.API.UserKey,
	}
}

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}

// Keyer returns the cache key scheme, prefixed when cache.prefix is set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// Write encodes c as TOML to path, creating the directory if needed.
// The file holds credentials and is written with mode 0600.
func Write(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
