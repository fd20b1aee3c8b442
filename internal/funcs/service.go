// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"funcview-cli/internal/cache"
)

// cacheKeyPrefix namespaces function-list entries in the cache store.
const cacheKeyPrefix = "funcview/functions/v1"

// FunctionResolver produces the function list for a workspace. *Resolver
// satisfies this; tests substitute stubs.
type FunctionResolver interface {
	Resolve(ctx context.Context, workspacePath string) ([]FunctionInfo, error)
}

// Service is the front door for function discovery. It layers a
// stale-while-revalidate cache over a resolver: a cache hit returns
// immediately while a background refresh re-resolves and overwrites the entry
// only when the content actually changed.
type Service struct {
	resolver FunctionResolver
	store    *cache.Store
	enabled  bool
	logger   *log.Logger

	// refreshes tracks in-flight background refreshes so tests can wait for
	// them. Callers of ListFunctions never do.
	refreshes sync.WaitGroup
}

// NewService creates a discovery service. With caching disabled, or with a
// nil store, every call resolves synchronously and the store is never
// touched. A nil logger falls back to the package default.
func NewService(resolver FunctionResolver, store *cache.Store, enabled bool, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		resolver: resolver,
		store:    store,
		enabled:  enabled && store != nil,
		logger:   logger,
	}
}

// ListFunctions returns the functions the workspace at path exposes.
//
// With caching enabled, a non-empty cached list is returned immediately and a
// background refresh is launched; the caller never waits on it and its
// failures never propagate. On a miss (or an empty cached list) resolution is
// synchronous, and a non-empty result is written through to the store before
// returning. Concurrent misses for the same key are not coalesced: each call
// resolves on its own and the last store write wins.
func (s *Service) ListFunctions(ctx context.Context, workspacePath string) ([]FunctionInfo, error) {
	if !s.enabled {
		return s.resolver.Resolve(ctx, workspacePath)
	}

	key := cache.Key(cacheKeyPrefix, workspacePath)

	var cached []FunctionInfo
	ok, err := s.store.Get(key, &cached)
	if err != nil {
		// A corrupt or unreadable entry degrades to a synchronous resolve.
		s.logger.Warn("cache read failed, resolving synchronously", "key", key, "err", err)
		ok = false
	}
	if ok && len(cached) > 0 {
		s.refreshes.Add(1)
		go s.refresh(context.WithoutCancel(ctx), key, workspacePath)
		return cached, nil
	}

	list, err := s.resolver.Resolve(ctx, workspacePath)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		if err := s.store.Set(key, list); err != nil {
			return nil, fmt.Errorf("cache discovered functions: %w", err)
		}
	}
	return list, nil
}

// ClearCache removes every cached discovery result.
func (s *Service) ClearCache() error {
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// refresh re-resolves the workspace and overwrites the cache entry only when
// the content hash differs. Every failure is logged and dropped: a refresh
// must never affect the result already returned to the caller, and a resolve
// failure or empty result never overwrites a previously cached list.
func (s *Service) refresh(ctx context.Context, key, workspacePath string) {
	defer s.refreshes.Done()

	list, err := s.resolver.Resolve(ctx, workspacePath)
	if err != nil {
		s.logger.Warn("background refresh failed, keeping cached result", "path", workspacePath, "err", err)
		return
	}
	if len(list) == 0 {
		s.logger.Debug("background refresh found no functions, keeping cached result", "path", workspacePath)
		return
	}

	changed, err := s.store.HasDataChanged(key, list)
	if err != nil {
		s.logger.Warn("background refresh change check failed", "key", key, "err", err)
		return
	}
	if !changed {
		s.logger.Debug("background refresh found no changes", "path", workspacePath)
		return
	}

	if err := s.store.Set(key, list); err != nil {
		s.logger.Warn("background refresh cache write failed", "key", key, "err", err)
		return
	}
	s.logger.Debug("background refresh updated cache", "path", workspacePath, "functions", len(list))
}

// Close waits for in-flight background refreshes to finish. A short-lived
// process must call this before exiting, or the refresh that keeps the cache
// current dies with it.
func (s *Service) Close() {
	s.refreshes.Wait()
}
