package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"story-manager/core/storage"
	"story-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockAdapter indexes plain string items by themselves.
type mockAdapter struct {
	name            string
	dbIndex         map[string]DBItem
	catalogIndex    map[string]CatalogItem
	storageSet      map[string]struct{}
	objects         map[string]string
	mismatches      map[string][]string
	dbLoadFunc      func(context.Context, *gorm.DB, string) (map[string]DBItem, error)
	catalogLoadFunc func(context.Context, storage.Client, string, string) (map[string]CatalogItem, error)
	storageLoadFunc func(context.Context, storage.Client, string, string) (map[string]struct{}, error)
}

func (m *mockAdapter) Name() string {
	if m.name != "" {
		return m.name
	}
	return "mock"
}

func (m *mockAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB, serverProfile string) (map[string]DBItem, error) {
	if m.dbLoadFunc != nil {
		return m.dbLoadFunc(ctx, db, serverProfile)
	}
	return m.dbIndex, nil
}

func (m *mockAdapter) LoadCatalogIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]CatalogItem, error) {
	if m.catalogLoadFunc != nil {
		return m.catalogLoadFunc(ctx, client, bucket, objectName)
	}
	return m.catalogIndex, nil
}

func (m *mockAdapter) LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	if m.storageLoadFunc != nil {
		return m.storageLoadFunc(ctx, client, bucket, prefix)
	}
	return m.storageSet, nil
}

func (m *mockAdapter) ExtractDBKey(item DBItem) string { return item.(string) }

func (m *mockAdapter) ExtractCatalogKey(item CatalogItem) string { return item.(string) }

func (m *mockAdapter) ExtractStorageKey(objectKey string) (string, bool) {
	key, ok := m.objects[objectKey]
	return key, ok
}

func (m *mockAdapter) ResolveName(dbItem DBItem, catalogItem CatalogItem) string {
	if dbItem != nil {
		return "name-" + dbItem.(string)
	}
	if catalogItem != nil {
		return "name-" + catalogItem.(string)
	}
	return ""
}

func (m *mockAdapter) CompareFields(dbItem DBItem, catalogItem CatalogItem) []string {
	if mismatches, ok := m.mismatches[dbItem.(string)]; ok {
		return mismatches
	}
	return []string{}
}

func (m *mockAdapter) GetMetadata(dbItem DBItem, catalogItem CatalogItem) map[string]string {
	return map[string]string{}
}

func (m *mockAdapter) QueryDB(ctx context.Context, db *gorm.DB, serverProfile string, query Query) (DBItem, error) {
	if item, ok := m.dbIndex[query.ID]; ok {
		return item, nil
	}
	return nil, nil
}

func (m *mockAdapter) QueryCatalog(ctx context.Context, client storage.Client, bucket, objectName string, query Query) (CatalogItem, error) {
	if item, ok := m.catalogIndex[query.ID]; ok {
		return item, nil
	}
	return nil, nil
}

func (m *mockAdapter) CheckStorage(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error) {
	_, exists := m.storageSet[key]
	return exists, nil
}

func indexByID(results []ReconcileResult) map[string]ReconcileResult {
	m := make(map[string]ReconcileResult, len(results))
	for _, r := range results {
		m[r.ID] = r
	}
	return m
}

func TestBuildCache_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		catalogErr error
		storageErr error
		expectErr  string
	}{
		{name: "DB load error", dbErr: fmt.Errorf("db error"), expectErr: "db error"},
		{name: "Catalog load error", catalogErr: fmt.Errorf("catalog error"), expectErr: "catalog error"},
		{name: "Storage load error", storageErr: fmt.Errorf("storage error"), expectErr: "storage error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockAdapter{
				dbLoadFunc: func(context.Context, *gorm.DB, string) (map[string]DBItem, error) {
					return map[string]DBItem{}, tt.dbErr
				},
				catalogLoadFunc: func(context.Context, storage.Client, string, string) (map[string]CatalogItem, error) {
					return map[string]CatalogItem{}, tt.catalogErr
				},
				storageLoadFunc: func(context.Context, storage.Client, string, string) (map[string]struct{}, error) {
					return map[string]struct{}{}, tt.storageErr
				},
			}

			spec := &Spec{Adapter: adapter, CacheTTL: 5 * time.Minute}

			_, err := BuildCache(context.Background(), spec, nil, new(mocks.Client), "")
			assert.ErrorContains(t, err, tt.expectErr)
		})
	}
}

func TestReconcileAll(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex:      map[string]DBItem{"A": "A", "B": "B"},
		catalogIndex: map[string]CatalogItem{"B": "B", "C": "C"},
		storageSet:   map[string]struct{}{"C": {}, "D": {}},
		mismatches:   map[string][]string{"B": {"game_id: catalog=zork1 db=zork2"}},
	}
	spec := &Spec{Adapter: adapter}

	results, err := ReconcileAll(context.Background(), spec, nil, new(mocks.Client), "")
	require.NoError(t, err)

	t.Run("Union Sorted", func(t *testing.T) {
		require.Len(t, results, 4)
		ids := []string{results[0].ID, results[1].ID, results[2].ID, results[3].ID}
		assert.Equal(t, []string{"A", "B", "C", "D"}, ids)
	})

	t.Run("Presence Flags", func(t *testing.T) {
		byID := indexByID(results)

		assert.True(t, byID["A"].DBPresent)
		assert.False(t, byID["A"].CatalogPresent)
		assert.False(t, byID["A"].StoragePresent)

		assert.True(t, byID["B"].DBPresent)
		assert.True(t, byID["B"].CatalogPresent)
		assert.False(t, byID["B"].StoragePresent)

		assert.False(t, byID["C"].DBPresent)
		assert.True(t, byID["C"].CatalogPresent)
		assert.True(t, byID["C"].StoragePresent)

		assert.False(t, byID["D"].DBPresent)
		assert.False(t, byID["D"].CatalogPresent)
		assert.True(t, byID["D"].StoragePresent)
	})

	t.Run("Names And Mismatches", func(t *testing.T) {
		byID := indexByID(results)

		assert.Equal(t, "name-A", byID["A"].Name)
		assert.Equal(t, "name-C", byID["C"].Name)
		assert.Empty(t, byID["D"].Name)
		assert.Equal(t, []string{"game_id: catalog=zork1 db=zork2"}, byID["B"].Mismatch)
		assert.Empty(t, byID["A"].Mismatch)
	})
}

func TestCache(t *testing.T) {
	t.Run("Hit", func(t *testing.T) {
		var loads int32
		adapter := &mockAdapter{
			name: "cache-hit",
			dbLoadFunc: func(context.Context, *gorm.DB, string) (map[string]DBItem, error) {
				atomic.AddInt32(&loads, 1)
				return map[string]DBItem{"A": "A"}, nil
			},
		}
		spec := &Spec{Adapter: adapter, CacheTTL: 5 * time.Minute}
		defer InvalidateCache(spec)

		first, err := GetOrBuildCache(context.Background(), spec, nil, nil, "")
		require.NoError(t, err)
		second, err := GetOrBuildCache(context.Background(), spec, nil, nil, "")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	})

	t.Run("Expiration", func(t *testing.T) {
		var loads int32
		adapter := &mockAdapter{
			name: "cache-expiry",
			dbLoadFunc: func(context.Context, *gorm.DB, string) (map[string]DBItem, error) {
				atomic.AddInt32(&loads, 1)
				return map[string]DBItem{}, nil
			},
		}
		spec := &Spec{Adapter: adapter, CacheTTL: 10 * time.Millisecond}
		defer InvalidateCache(spec)

		_, err := GetOrBuildCache(context.Background(), spec, nil, nil, "")
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
		_, err = GetOrBuildCache(context.Background(), spec, nil, nil, "")
		require.NoError(t, err)

		assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	})

	t.Run("Invalidate", func(t *testing.T) {
		var loads int32
		adapter := &mockAdapter{
			name: "cache-invalidate",
			dbLoadFunc: func(context.Context, *gorm.DB, string) (map[string]DBItem, error) {
				atomic.AddInt32(&loads, 1)
				return map[string]DBItem{}, nil
			},
		}
		spec := &Spec{Adapter: adapter, CacheTTL: time.Minute}
		defer InvalidateCache(spec)

		_, _ = GetOrBuildCache(context.Background(), spec, nil, nil, "")
		InvalidateCache(spec)
		_, _ = GetOrBuildCache(context.Background(), spec, nil, nil, "")
		assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	})
}

func TestReconcileOne(t *testing.T) {
	newAdapter := func(name string) *mockAdapter {
		return &mockAdapter{
			name:         name,
			dbIndex:      map[string]DBItem{"item1": "item1"},
			catalogIndex: map[string]CatalogItem{"item1": "item1", "item2": "item2"},
			storageSet:   map[string]struct{}{"item1": {}, "item3": {}},
			objects:      map[string]string{"stories/three.z5": "item3"},
			mismatches:   map[string][]string{"item1": {"extra: catalog=a db=b"}},
		}
	}

	t.Run("Cached By ID", func(t *testing.T) {
		spec := &Spec{Adapter: newAdapter("one-id"), CacheTTL: time.Minute}
		defer InvalidateCache(spec)

		result, err := ReconcileOne(context.Background(), spec, nil, nil, "", Query{ID: "item1"})
		require.NoError(t, err)
		assert.Equal(t, "item1", result.ID)
		assert.True(t, result.DBPresent)
		assert.True(t, result.CatalogPresent)
		assert.True(t, result.StoragePresent)
		assert.Len(t, result.Mismatch, 1)
	})

	t.Run("Cached By Object", func(t *testing.T) {
		spec := &Spec{Adapter: newAdapter("one-object"), CacheTTL: time.Minute}
		defer InvalidateCache(spec)

		result, err := ReconcileOne(context.Background(), spec, nil, nil, "", Query{Object: "stories/three.z5"})
		require.NoError(t, err)
		assert.Equal(t, "item3", result.ID)
		assert.True(t, result.StoragePresent)
		assert.False(t, result.DBPresent)
	})

	t.Run("Cached By Name", func(t *testing.T) {
		spec := &Spec{Adapter: newAdapter("one-name"), CacheTTL: time.Minute}
		defer InvalidateCache(spec)

		result, err := ReconcileOne(context.Background(), spec, nil, nil, "", Query{Name: "name-item2"})
		require.NoError(t, err)
		assert.Equal(t, "item2", result.ID)
		assert.True(t, result.CatalogPresent)
	})

	t.Run("Cached Not Found", func(t *testing.T) {
		spec := &Spec{Adapter: newAdapter("one-missing"), CacheTTL: time.Minute}
		defer InvalidateCache(spec)

		result, err := ReconcileOne(context.Background(), spec, nil, nil, "", Query{ID: "nonexistent"})
		require.NoError(t, err)
		assert.Equal(t, "nonexistent", result.ID)
		assert.False(t, result.DBPresent)
		assert.False(t, result.CatalogPresent)
		assert.False(t, result.StoragePresent)
	})

	t.Run("Targeted Queries", func(t *testing.T) {
		spec := &Spec{Adapter: newAdapter("one-direct")}

		result, err := ReconcileOne(context.Background(), spec, nil, nil, "", Query{ID: "item1"})
		require.NoError(t, err)
		assert.True(t, result.DBPresent)
		assert.True(t, result.CatalogPresent)
		assert.True(t, result.StoragePresent)
		assert.Equal(t, "name-item1", result.Name)
		assert.Equal(t, []string{"extra: catalog=a db=b"}, result.Mismatch)

		result, err = ReconcileOne(context.Background(), spec, nil, nil, "", Query{Object: "stories/three.z5"})
		require.NoError(t, err)
		assert.Equal(t, "item3", result.ID)
		assert.True(t, result.StoragePresent)
	})
}
