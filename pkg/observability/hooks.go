// Package observability provides hooks for progress reporting and metrics.
//
// Libraries emit events through hook interfaces with no-op defaults; the
// command line registers real implementations at startup. This keeps the
// sweep engine free of any particular UI or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSweepHooks(&progressReporter{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sweep().OnSweepStart(ctx, "KOFAM", len(thresholds))
//	// ... render frames ...
//	observability.Sweep().OnSweepComplete(ctx, "KOFAM", frames, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sweep Hooks
// =============================================================================

// SweepHooks receives events from the threshold sweep.
//
// Under parallel rendering OnThresholdComplete may arrive out of threshold
// order; done counts finished frames and is always increasing.
type SweepHooks interface {
	OnSweepStart(ctx context.Context, source string, total int)
	OnThresholdComplete(ctx context.Context, source string, threshold float64, done, total int)
	OnSweepComplete(ctx context.Context, source string, frames int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the frame renderer.
type RenderHooks interface {
	OnLayoutComplete(ctx context.Context, algorithm string, nodeCount int, cached bool, duration time.Duration, err error)
	OnFrameWritten(ctx context.Context, path string, size int64, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSweepHooks is a no-op implementation of SweepHooks.
type NoopSweepHooks struct{}

func (NoopSweepHooks) OnSweepStart(context.Context, string, int)                         {}
func (NoopSweepHooks) OnThresholdComplete(context.Context, string, float64, int, int)     {}
func (NoopSweepHooks) OnSweepComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLayoutComplete(context.Context, string, int, bool, time.Duration, error) {
}
func (NoopRenderHooks) OnFrameWritten(context.Context, string, int64, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sweepHooks  SweepHooks  = NoopSweepHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSweepHooks registers custom sweep hooks.
// This should be called once at application startup before any sweep runs.
func SetSweepHooks(h SweepHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sweepHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Sweep returns the registered sweep hooks.
func Sweep() SweepHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sweepHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sweepHooks = NoopSweepHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
