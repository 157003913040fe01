package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Engine hooks
	e := NoopEngineHooks{}
	e.OnOperationStart(ctx, "layout", 100)
	e.OnOperationComplete(ctx, "layout", time.Second, nil)
	e.OnWarning(ctx, "placement", "NO_FREE_SLOT")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)

	// Setting nil should be ignored
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}

	Reset()
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnOperationStart(ctx, "layout", 3)
			c.OnCacheMiss(ctx, "layout")
		}()
	}
	wg.Wait()

	c.OnOperationComplete(ctx, "layout", time.Millisecond, nil)
	c.OnOperationComplete(ctx, "placement", time.Millisecond, errors.New("boom"))
	c.OnWarning(ctx, "placement", "NO_FREE_SLOT")
	c.OnCacheHit(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 10)
	c.OnRequest(ctx, "POST", "/v1/layout")
	c.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)

	s := c.Snapshot()
	if s.Operations["layout"] != 10 {
		t.Errorf("Operations[layout] = %d, want 10", s.Operations["layout"])
	}
	if s.Failures["placement"] != 1 || s.Failures["layout"] != 0 {
		t.Errorf("Failures = %v", s.Failures)
	}
	if s.Warnings["NO_FREE_SLOT"] != 1 {
		t.Errorf("Warnings = %v", s.Warnings)
	}
	if s.CacheHits != 1 || s.CacheMisses != 10 || s.CacheSets != 1 {
		t.Errorf("cache = %d/%d/%d, want 1/10/1", s.CacheHits, s.CacheMisses, s.CacheSets)
	}
	if s.Requests != 1 || s.Responses[200] != 1 {
		t.Errorf("http = %d requests %v responses", s.Requests, s.Responses)
	}

	// Snapshot must be a copy.
	s.Operations["layout"] = 0
	if c.Snapshot().Operations["layout"] != 10 {
		t.Error("Snapshot shares state with Counters")
	}
}

// Test implementations
type testEngineHooks struct{ NoopEngineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

var (
	_ EngineHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)
