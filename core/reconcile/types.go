package reconcile

import "time"

// ReconcileResult is the reconciliation output for a single entity.
type ReconcileResult struct {
	// ID is the entity key.
	ID string `json:"id"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	DBPresent      bool `json:"db_present"`
	StoragePresent bool `json:"storage_present"`
	CatalogPresent bool `json:"catalog_present"`

	// Mismatch lists field differences between the DB and the catalog,
	// e.g. "game_id: catalog=zork1 db=zork2".
	Mismatch []string `json:"mismatch"`

	// Metadata holds adapter-specific details (object names, language).
	Metadata map[string]string `json:"metadata"`
}

// Query is a targeted lookup. The adapter decides how to interpret it.
type Query struct {
	// ID is the entity key.
	ID string

	// Name is matched against the resolved display name.
	Name string

	// Object is a storage object name.
	Object string
}

// Spec bundles an adapter with its data source parameters.
type Spec struct {
	Adapter Adapter

	// CacheTTL is the lifetime of cached indexes. Zero disables caching.
	CacheTTL time.Duration

	// StoragePrefix is the listing prefix for storage objects.
	StoragePrefix string

	// CatalogObjectName is the storage object layered over built-in catalog data.
	// Example: "catalog/frotz.json"
	CatalogObjectName string

	// ServerProfile is the database layout (e.g. "library", "legacy").
	ServerProfile string
}

// CacheKey returns a key unique to the adapter and its sources.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.ServerProfile + "|" + s.StoragePrefix + "|" + s.CatalogObjectName
}

// DBItem is a database entity. Adapters define the concrete type.
type DBItem any

// CatalogItem is a catalog entity. Adapters define the concrete type.
type CatalogItem any

// ActionType is the kind of a planned mutation.
type ActionType string

const (
	ActionDeleteDB      ActionType = "delete_db"
	ActionDeleteCatalog ActionType = "delete_catalog"
	ActionDeleteStorage ActionType = "delete_storage"
	// ActionSyncDB rewrites database fields from the catalog.
	ActionSyncDB ActionType = "sync_db"
)

// Action is a planned mutation.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Reason string     `json:"reason"`

	// CatalogItem is the sync source. Only set for ActionSyncDB.
	CatalogItem CatalogItem `json:"-"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	Results []ReconcileResult `json:"results"`
	Actions []Action          `json:"actions"`
	Summary PlanSummary       `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	TotalItems int `json:"total_items"`

	// MissingCatalog counts entities in the DB or storage without a catalog record.
	MissingCatalog int `json:"missing_catalog"`

	// MissingStorage counts entities in the DB or catalog without a story file.
	MissingStorage int `json:"missing_storage"`

	// MissingDB counts entities in the catalog or storage without a DB row.
	MissingDB int `json:"missing_db"`

	Mismatches   int `json:"mismatches"`
	PurgeActions int `json:"purge_actions"`
	SyncActions  int `json:"sync_actions"`
}

// ReconcileOptions controls purge and sync planning.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge deletes entities missing in any store from every store.
	DoPurge bool

	// DoSync updates mismatched DB fields from the catalog.
	DoSync bool

	// Confirmed must be set for mutations to run.
	Confirmed bool
}
