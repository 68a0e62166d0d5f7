package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Sweep hooks
	s := NoopSweepHooks{}
	s.OnSweepStart(ctx, "KOFAM", 12)
	s.OnThresholdComplete(ctx, "KOFAM", 35, 1, 12)
	s.OnSweepComplete(ctx, "KOFAM", 12, time.Second, nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnLayoutComplete(ctx, "neato", 100, false, time.Second, nil)
	r.OnFrameWritten(ctx, "out/KOFAM/ssn.35.png", 1024, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Sweep() should return NoopSweepHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customSweep := &testSweepHooks{}
	SetSweepHooks(customSweep)
	if Sweep() != customSweep {
		t.Error("SetSweepHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Reset() should restore NoopSweepHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSweepHooks{}
	SetSweepHooks(custom)

	// Setting nil should be ignored
	SetSweepHooks(nil)

	if Sweep() != custom {
		t.Error("SetSweepHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSweepHooks struct{ NoopSweepHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
