package reconcile

import (
	"context"

	"story-manager/core/storage"

	"gorm.io/gorm"
)

// Adapter defines the model-specific side of reconciliation: how each source
// is loaded and indexed, and how items are keyed and compared.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "stories").
	Name() string

	// LoadDBIndex loads all DB items indexed by entity key.
	LoadDBIndex(ctx context.Context, db *gorm.DB, serverProfile string) (map[string]DBItem, error)

	// LoadCatalogIndex loads all catalog items indexed by entity key. objectName
	// is the storage catalog object; a missing object is not an error.
	LoadCatalogIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]CatalogItem, error)

	// LoadStorageSet lists the storage objects under prefix and returns the
	// set of entity keys they hold.
	LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error)

	ExtractDBKey(item DBItem) string
	ExtractCatalogKey(item CatalogItem) string

	// ExtractStorageKey maps an object name to its entity key.
	// ok is false for objects the adapter does not track.
	ExtractStorageKey(objectKey string) (key string, ok bool)

	// ResolveName returns a display name. Either item may be nil.
	ResolveName(dbItem DBItem, catalogItem CatalogItem) string

	// CompareFields returns one description per differing field, with both
	// values. Both items are non-nil.
	CompareFields(dbItem DBItem, catalogItem CatalogItem) []string

	// QueryDB looks up a single DB item. Returns nil if nothing matches.
	QueryDB(ctx context.Context, db *gorm.DB, serverProfile string, query Query) (DBItem, error)

	// QueryCatalog looks up a single catalog item. Returns nil if nothing matches.
	QueryCatalog(ctx context.Context, client storage.Client, bucket, objectName string, query Query) (CatalogItem, error)

	// CheckStorage reports whether storage holds the entity.
	CheckStorage(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error)

	// GetMetadata returns adapter-specific details for the result.
	GetMetadata(dbItem DBItem, catalogItem CatalogItem) map[string]string
}

// Mutator is implemented by adapters whose stores can be changed by ApplyPlan.
type Mutator interface {
	DeleteDB(ctx context.Context, key string) error
	DeleteCatalog(ctx context.Context, key string) error
	DeleteStorage(ctx context.Context, key string) error
	SyncDBFromCatalog(ctx context.Context, key string, item CatalogItem) error
}

// DBBatchDeleter deletes many DB rows at once.
type DBBatchDeleter interface {
	DeleteDBBatch(ctx context.Context, keys []string) error
}

// CatalogBatchDeleter deletes many catalog records at once.
type CatalogBatchDeleter interface {
	DeleteCatalogBatch(ctx context.Context, keys []string) error
}

// StorageBatchDeleter deletes many storage objects at once.
type StorageBatchDeleter interface {
	DeleteStorageBatch(ctx context.Context, keys []string) error
}

// SyncBatcher applies many sync actions at once.
type SyncBatcher interface {
	SyncDBBatch(ctx context.Context, actions []Action) error
}
