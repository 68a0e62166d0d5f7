// Package cache stores computed graph layouts so that identical pruned
// topologies are laid out only once.
//
// Consecutive thresholds of a sweep often leave the same edge set (and every
// annotation source of a run sweeps the same thresholds), so the layout of a
// frame is looked up by a hash of its DOT text before Graphviz is invoked.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: process-local map, shared across sources of one run
//   - [FileCache]: on-disk cache reused across runs (CLI default)
//   - [RedisCache]: shared cache for several machines rendering the same network
//   - [MongoCache]: shared cache with document TTL expiry
//
// All implementations are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a computed layout stays valid.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is reported
	// as a miss (false) with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs, besides the graph itself, that change a
// layout.
type LayoutKeyOpts struct {
	Algorithm string  `json:"algorithm"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of the graph whose DOT text
	// hashes to graphHash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>" over the graph hash and options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
