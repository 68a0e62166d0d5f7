package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/ssnmovie/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name.
var Backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a cache backend.
type Config struct {
	Backend  string `toml:"backend" json:"backend"`
	Dir      string `toml:"dir" json:"dir,omitempty"`             // file backend; default DefaultDir()
	RedisURL string `toml:"redis_url" json:"redis_url,omitempty"` // redis backend
	MongoURI string `toml:"mongo_uri" json:"mongo_uri,omitempty"` // mongo backend
	MongoDB  string `toml:"mongo_db" json:"mongo_db,omitempty"`   // mongo backend
}

// Validate checks the backend name and its required settings.
func (c Config) Validate() error {
	switch c.Backend {
	case "", BackendNone, BackendMemory, BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis cache requires a redis url")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("mongo cache requires a mongo uri")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (must be one of: %s)", c.Backend, strings.Join(Backends, ", "))
	}
	return nil
}

// Open creates the configured cache. An empty backend means none. The
// returned cache reports hits and misses to the observability cache hooks.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		c = NewMemoryCache()
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		c, err = NewFileCache(dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, cfg.RedisURL)
	case BackendMongo:
		c, err = NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDB, "")
	}
	if err != nil {
		return nil, err
	}
	return Instrument(c, "layout"), nil
}

// instrumented reports cache traffic to observability.Cache().
type instrumented struct {
	Cache
	keyType string
}

// Instrument wraps c so that every Get and Set emits a cache hook event
// tagged with keyType.
func Instrument(c Cache, keyType string) Cache {
	return &instrumented{Cache: c, keyType: keyType}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

// Unwrap returns the underlying cache.
func (c *instrumented) Unwrap() Cache { return c.Cache }

// IsBackend reports whether name is a known backend.
func IsBackend(name string) bool { return slices.Contains(Backends, name) }
