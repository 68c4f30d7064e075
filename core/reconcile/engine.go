package reconcile

import (
	"context"
	"sort"

	"story-manager/core/storage"

	"gorm.io/gorm"
)

// ReconcileAll loads every source and returns one result per key in the union
// of the three indexes, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) ([]ReconcileResult, error) {
	cache, err := BuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache, spec.Adapter), nil
}

// ReconcileOne reconciles a single entity. With caching enabled the cached
// indexes are used, otherwise the adapter's targeted queries.
func ReconcileOne(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string, query Query) (*ReconcileResult, error) {
	if spec.CacheTTL > 0 {
		cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
		if err != nil {
			return nil, err
		}

		key := findKeyFromQuery(query, cache, spec.Adapter)
		if key == "" {
			return &ReconcileResult{ID: query.ID, Mismatch: []string{}}, nil
		}

		result := buildResult(key, cache, spec.Adapter)
		return &result, nil
	}

	dbItem, err := spec.Adapter.QueryDB(ctx, db, spec.ServerProfile, query)
	if err != nil {
		return nil, err
	}

	catalogItem, err := spec.Adapter.QueryCatalog(ctx, client, bucket, spec.CatalogObjectName, query)
	if err != nil {
		return nil, err
	}

	var key string
	switch {
	case dbItem != nil:
		key = spec.Adapter.ExtractDBKey(dbItem)
	case catalogItem != nil:
		key = spec.Adapter.ExtractCatalogKey(catalogItem)
	case query.Object != "":
		key, _ = spec.Adapter.ExtractStorageKey(query.Object)
	}
	if key == "" {
		key = query.ID
	}

	storagePresent := false
	if key != "" {
		storagePresent, err = spec.Adapter.CheckStorage(ctx, client, bucket, spec.StoragePrefix, key)
		if err != nil {
			return nil, err
		}
	}

	result := ReconcileResult{
		ID:             key,
		Name:           spec.Adapter.ResolveName(dbItem, catalogItem),
		Metadata:       spec.Adapter.GetMetadata(dbItem, catalogItem),
		DBPresent:      dbItem != nil,
		CatalogPresent: catalogItem != nil,
		StoragePresent: storagePresent,
		Mismatch:       []string{},
	}

	if dbItem != nil && catalogItem != nil {
		result.Mismatch = spec.Adapter.CompareFields(dbItem, catalogItem)
	}

	return &result, nil
}

// reconcileFromCache builds sorted results over the union of cached keys.
func reconcileFromCache(cache *ReconcileCache, adapter Adapter) []ReconcileResult {
	union := make(map[string]struct{}, len(cache.DBIndex)+len(cache.CatalogIndex)+len(cache.StorageSet))
	for key := range cache.DBIndex {
		union[key] = struct{}{}
	}
	for key := range cache.CatalogIndex {
		union[key] = struct{}{}
	}
	for key := range cache.StorageSet {
		union[key] = struct{}{}
	}

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache, adapter))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// buildResult creates the result for one key.
func buildResult(key string, cache *ReconcileCache, adapter Adapter) ReconcileResult {
	dbItem, dbPresent := cache.DBIndex[key]
	catalogItem, catalogPresent := cache.CatalogIndex[key]
	_, storagePresent := cache.StorageSet[key]

	result := ReconcileResult{
		ID:             key,
		DBPresent:      dbPresent,
		CatalogPresent: catalogPresent,
		StoragePresent: storagePresent,
		Mismatch:       []string{},
	}

	if dbPresent || catalogPresent {
		result.Name = adapter.ResolveName(dbItem, catalogItem)
		result.Metadata = adapter.GetMetadata(dbItem, catalogItem)
	}

	if dbPresent && catalogPresent {
		result.Mismatch = adapter.CompareFields(dbItem, catalogItem)
	}

	return result
}

// findKeyFromQuery resolves a query against the cached indexes: by key first,
// then by object name, then by display name.
func findKeyFromQuery(query Query, cache *ReconcileCache, adapter Adapter) string {
	if query.ID != "" {
		if _, ok := cache.DBIndex[query.ID]; ok {
			return query.ID
		}
		if _, ok := cache.CatalogIndex[query.ID]; ok {
			return query.ID
		}
		if _, ok := cache.StorageSet[query.ID]; ok {
			return query.ID
		}
	}

	if query.Object != "" {
		if key, ok := adapter.ExtractStorageKey(query.Object); ok {
			return key
		}
	}

	if query.Name != "" {
		var matches []string
		for key, item := range cache.DBIndex {
			if adapter.ResolveName(item, nil) == query.Name {
				matches = append(matches, key)
			}
		}
		for key, item := range cache.CatalogIndex {
			if adapter.ResolveName(nil, item) == query.Name {
				matches = append(matches, key)
			}
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0]
		}
	}

	return ""
}
