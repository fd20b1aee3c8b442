// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"funcview-cli/internal/cache"
)

// stubResolver returns queued results, one per call, and records how often it
// was invoked. When block is set, calls after the first wait until release is
// closed.
type stubResolver struct {
	mu      sync.Mutex
	results [][]FunctionInfo
	errs    []error
	calls   int

	block   bool
	release chan struct{}
}

func (r *stubResolver) Resolve(_ context.Context, _ string) ([]FunctionInfo, error) {
	r.mu.Lock()
	call := r.calls
	r.calls++
	var list []FunctionInfo
	var err error
	if call < len(r.results) {
		list = r.results[call]
	}
	if call < len(r.errs) {
		err = r.errs[call]
	}
	blocked := r.block && call > 0
	r.mu.Unlock()

	if blocked {
		<-r.release
	}
	return list, err
}

func (r *stubResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func sampleFunctions(id string) []FunctionInfo {
	return []FunctionInfo{{
		Name:       "build",
		FunctionID: id,
		Module:     "",
		ReturnType: "Container",
		Args:       []ArgumentInfo{},
	}}
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	return cache.NewStore(cache.NewMemoryBackend(), quietLogger())
}

func TestListFunctionsCachingDisabled(t *testing.T) {
	resolver := &stubResolver{results: [][]FunctionInfo{sampleFunctions("fn-1"), sampleFunctions("fn-1")}}
	store := newTestStore(t)
	svc := NewService(resolver, store, false, quietLogger())

	for i := 0; i < 2; i++ {
		funcs, err := svc.ListFunctions(context.Background(), "/proj")
		if err != nil {
			t.Fatalf("ListFunctions: %v", err)
		}
		if len(funcs) != 1 {
			t.Fatalf("got %d functions, want 1", len(funcs))
		}
	}

	if got := resolver.callCount(); got != 2 {
		t.Errorf("resolver called %d times, want 2 with caching disabled", got)
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("store must stay untouched with caching disabled, has %d keys", len(keys))
	}
}

func TestListFunctionsMissResolvesAndCaches(t *testing.T) {
	resolver := &stubResolver{results: [][]FunctionInfo{sampleFunctions("fn-1")}}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	funcs, err := svc.ListFunctions(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("ListFunctions: %v", err)
	}
	if len(funcs) != 1 || funcs[0].FunctionID != "fn-1" {
		t.Fatalf("unexpected result: %+v", funcs)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("store has %d keys after miss, want 1", len(keys))
	}

	var cached []FunctionInfo
	ok, err := store.Get(keys[0], &cached)
	if err != nil || !ok {
		t.Fatalf("Get cached: ok=%v err=%v", ok, err)
	}
	if len(cached) != 1 || cached[0].FunctionID != "fn-1" {
		t.Errorf("cached value mismatch: %+v", cached)
	}
}

func TestListFunctionsEmptyResultNotCached(t *testing.T) {
	resolver := &stubResolver{results: [][]FunctionInfo{nil}}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	funcs, err := svc.ListFunctions(context.Background(), "/empty")
	if err != nil {
		t.Fatalf("ListFunctions: %v", err)
	}
	if len(funcs) != 0 {
		t.Fatalf("got %d functions, want 0", len(funcs))
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("empty results must not be cached, store has %d keys", len(keys))
	}
}

func TestListFunctionsResolveErrorPropagates(t *testing.T) {
	wantErr := errors.New("engine unavailable")
	resolver := &stubResolver{errs: []error{wantErr}}
	svc := NewService(resolver, newTestStore(t), true, quietLogger())

	_, err := svc.ListFunctions(context.Background(), "/proj")
	if !errors.Is(err, wantErr) {
		t.Fatalf("ListFunctions error = %v, want %v", err, wantErr)
	}
}

func TestListFunctionsHitReturnsBeforeRefreshFinishes(t *testing.T) {
	resolver := &stubResolver{
		results: [][]FunctionInfo{sampleFunctions("fn-1"), sampleFunctions("fn-1")},
		block:   true,
		release: make(chan struct{}),
	}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	// First call populates the cache.
	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("warm-up ListFunctions: %v", err)
	}

	// Second call hits the cache and must return while the background
	// refresh is still blocked inside the resolver.
	done := make(chan []FunctionInfo, 1)
	go func() {
		funcs, err := svc.ListFunctions(context.Background(), "/proj")
		if err != nil {
			t.Errorf("cached ListFunctions: %v", err)
		}
		done <- funcs
	}()

	select {
	case funcs := <-done:
		if len(funcs) != 1 || funcs[0].FunctionID != "fn-1" {
			t.Errorf("unexpected cached result: %+v", funcs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cache hit blocked on the background refresh")
	}

	close(resolver.release)
	svc.Close()

	if got := resolver.callCount(); got != 2 {
		t.Errorf("resolver called %d times, want 2 (warm-up + refresh)", got)
	}
}

func TestBackgroundRefreshFailureKeepsCache(t *testing.T) {
	resolver := &stubResolver{
		results: [][]FunctionInfo{sampleFunctions("fn-1")},
		errs:    []error{nil, errors.New("refresh blew up")},
	}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("warm-up ListFunctions: %v", err)
	}

	funcs, err := svc.ListFunctions(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("cached ListFunctions: %v", err)
	}
	if len(funcs) != 1 {
		t.Fatalf("got %d functions, want 1", len(funcs))
	}
	svc.Close()

	// The failed refresh must leave the cached entry intact.
	var cached []FunctionInfo
	keys, _ := store.Keys()
	if len(keys) != 1 {
		t.Fatalf("store has %d keys, want 1", len(keys))
	}
	ok, err := store.Get(keys[0], &cached)
	if err != nil || !ok {
		t.Fatalf("Get cached: ok=%v err=%v", ok, err)
	}
	if len(cached) != 1 || cached[0].FunctionID != "fn-1" {
		t.Errorf("cached value changed after failed refresh: %+v", cached)
	}
}

func TestBackgroundRefreshEmptyResultKeepsCache(t *testing.T) {
	resolver := &stubResolver{
		results: [][]FunctionInfo{sampleFunctions("fn-1"), nil},
	}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("warm-up ListFunctions: %v", err)
	}
	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("cached ListFunctions: %v", err)
	}
	svc.Close()

	keys, _ := store.Keys()
	if len(keys) != 1 {
		t.Fatalf("store has %d keys, want 1", len(keys))
	}
	var cached []FunctionInfo
	if ok, err := store.Get(keys[0], &cached); err != nil || !ok {
		t.Fatalf("Get cached: ok=%v err=%v", ok, err)
	}
	if len(cached) != 1 {
		t.Errorf("empty refresh must not overwrite cache, got %+v", cached)
	}
}

func TestBackgroundRefreshUpdatesOnChange(t *testing.T) {
	resolver := &stubResolver{
		results: [][]FunctionInfo{sampleFunctions("fn-old"), sampleFunctions("fn-new")},
	}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("warm-up ListFunctions: %v", err)
	}

	funcs, err := svc.ListFunctions(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("cached ListFunctions: %v", err)
	}
	// The caller still sees the stale entry on this call.
	if funcs[0].FunctionID != "fn-old" {
		t.Errorf("cache hit returned %q, want stale %q", funcs[0].FunctionID, "fn-old")
	}
	svc.Close()

	keys, _ := store.Keys()
	var cached []FunctionInfo
	if ok, err := store.Get(keys[0], &cached); err != nil || !ok {
		t.Fatalf("Get cached: ok=%v err=%v", ok, err)
	}
	if cached[0].FunctionID != "fn-new" {
		t.Errorf("refresh did not update cache: %+v", cached)
	}
}

func TestClearCache(t *testing.T) {
	resolver := &stubResolver{results: [][]FunctionInfo{sampleFunctions("fn-1")}}
	store := newTestStore(t)
	svc := NewService(resolver, store, true, quietLogger())

	if _, err := svc.ListFunctions(context.Background(), "/proj"); err != nil {
		t.Fatalf("ListFunctions: %v", err)
	}
	if err := svc.ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("store has %d keys after clear, want 0", len(keys))
	}
}
