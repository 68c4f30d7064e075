package reconcile

import (
	"context"
	"sync"
	"time"

	"story-manager/core/storage"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ReconcileCache holds pre-built indexes for fast targeted reconciliation.
type ReconcileCache struct {
	DBIndex      map[string]DBItem
	CatalogIndex map[string]CatalogItem
	StorageSet   map[string]struct{}

	// Built is the timestamp when this cache was built.
	Built time.Time
	TTL   time.Duration
}

// IsExpired reports whether the cache is past its TTL. A zero TTL is always expired.
func (c *ReconcileCache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*ReconcileCache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*ReconcileCache),
}

// BuildCache loads the three indexes concurrently. The result is not stored;
// use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) (*ReconcileCache, error) {
	var (
		dbIndex      map[string]DBItem
		catalogIndex map[string]CatalogItem
		storageSet   map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dbIndex, err = spec.Adapter.LoadDBIndex(gctx, db, spec.ServerProfile)
		return err
	})
	g.Go(func() error {
		var err error
		catalogIndex, err = spec.Adapter.LoadCatalogIndex(gctx, client, bucket, spec.CatalogObjectName)
		return err
	})
	g.Go(func() error {
		var err error
		storageSet, err = spec.Adapter.LoadStorageSet(gctx, client, bucket, spec.StoragePrefix)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ReconcileCache{
		DBIndex:      dbIndex,
		CatalogIndex: catalogIndex,
		StorageSet:   storageSet,
		Built:        time.Now(),
		TTL:          spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the stored cache for spec, rebuilding it when it is
// missing or expired. Concurrent rebuilds of the same spec are collapsed.
func GetOrBuildCache(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) (*ReconcileCache, error) {
	cacheKey := spec.CacheKey()

	if cache, ok := lookupCache(cacheKey); ok {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		if cache, ok := lookupCache(cacheKey); ok {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec, db, client, bucket)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ReconcileCache), nil
}

func lookupCache(key string) (*ReconcileCache, bool) {
	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[key]
	globalCacheStore.mu.RUnlock()
	if !exists || cache.IsExpired() {
		return nil, false
	}
	return cache, true
}

// InvalidateCache drops the stored cache for spec.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
