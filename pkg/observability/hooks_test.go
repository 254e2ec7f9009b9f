package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Scan hooks
	s := NoopScanHooks{}
	s.OnScanStart(ctx, "/usr/portage")
	s.OnScanComplete(ctx, "/usr/portage", 100, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "scan")
	c.OnCacheMiss(ctx, "index")
	c.OnCacheSet(ctx, "scan", 1024)

	// Bugz hooks
	b := NoopBugzHooks{}
	b.OnSearchStart(ctx, "bugz")
	b.OnSearchComplete(ctx, "bugz", 5, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Scan() should return NoopScanHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Bugz().(NoopBugzHooks); !ok {
		t.Error("Bugz() should return NoopBugzHooks by default")
	}

	// Set custom hooks
	customScan := &testScanHooks{}
	SetScanHooks(customScan)
	if Scan() != customScan {
		t.Error("SetScanHooks should set custom hooks")
	}

	customCache := &countingCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customBugz := &testBugzHooks{}
	SetBugzHooks(customBugz)
	if Bugz() != customBugz {
		t.Error("SetBugzHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Reset() should restore NoopScanHooks")
	}
}

func TestCountingCacheHooks(t *testing.T) {
	defer Reset()

	counting := &countingCacheHooks{}
	SetCacheHooks(counting)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "scan")
	Cache().OnCacheMiss(ctx, "scan")
	Cache().OnCacheMiss(ctx, "index")
	Cache().OnCacheSet(ctx, "scan", 10)

	if counting.hits != 1 || counting.misses != 2 || counting.sets != 1 {
		t.Errorf("counts = %+v", counting)
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testScanHooks{}
	SetScanHooks(custom)

	// Setting nil should be ignored
	SetScanHooks(nil)

	if Scan() != custom {
		t.Error("SetScanHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testScanHooks struct{ NoopScanHooks }
type testBugzHooks struct{ NoopBugzHooks }

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
