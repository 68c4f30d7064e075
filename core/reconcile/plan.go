package reconcile

import (
	"context"
	"fmt"
	"strings"

	"story-manager/core/storage"

	"gorm.io/gorm"
)

// ReconcileWithPlan reconciles from the cached indexes and plans purge and
// sync actions. Nothing is executed; use ApplyPlan for that.
func ReconcileWithPlan(
	ctx context.Context,
	spec *Spec,
	db *gorm.DB,
	client storage.Client,
	bucket string,
	opts ReconcileOptions,
) (*ReconcilePlan, error) {
	cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache, spec.Adapter)
	summary, actions := buildPlanFromResults(results, cache, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the planned actions, preferring the adapter's batch
// methods. It does nothing unless opts is confirmed and not a dry run.
// The cached indexes of spec are dropped once anything ran.
func ApplyPlan(
	ctx context.Context,
	spec *Spec,
	db *gorm.DB,
	client storage.Client,
	bucket string,
	plan *ReconcilePlan,
	opts ReconcileOptions,
) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	defer func() {
		if executed > 0 {
			InvalidateCache(spec)
		}
	}()

	var (
		deleteDBKeys      []string
		deleteCatalogKeys []string
		deleteStorageKeys []string
		syncActions       []Action
	)
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteDB:
			deleteDBKeys = append(deleteDBKeys, action.Key)
		case ActionDeleteCatalog:
			deleteCatalogKeys = append(deleteCatalogKeys, action.Key)
		case ActionDeleteStorage:
			deleteStorageKeys = append(deleteStorageKeys, action.Key)
		case ActionSyncDB:
			syncActions = append(syncActions, action)
		}
	}

	if len(deleteDBKeys) > 0 {
		if batch, ok := mutator.(DBBatchDeleter); ok {
			if err := batch.DeleteDBBatch(ctx, deleteDBKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete DB keys: %w", err)
			}
			executed += len(deleteDBKeys)
		} else {
			for _, key := range deleteDBKeys {
				if err := mutator.DeleteDB(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete DB key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	if len(deleteCatalogKeys) > 0 {
		if batch, ok := mutator.(CatalogBatchDeleter); ok {
			if err := batch.DeleteCatalogBatch(ctx, deleteCatalogKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete catalog keys: %w", err)
			}
			executed += len(deleteCatalogKeys)
		} else {
			for _, key := range deleteCatalogKeys {
				if err := mutator.DeleteCatalog(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete catalog key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	if len(deleteStorageKeys) > 0 {
		if batch, ok := mutator.(StorageBatchDeleter); ok {
			if err := batch.DeleteStorageBatch(ctx, deleteStorageKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete storage keys: %w", err)
			}
			executed += len(deleteStorageKeys)
		} else {
			for _, key := range deleteStorageKeys {
				if err := mutator.DeleteStorage(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete storage key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	if len(syncActions) > 0 {
		if batch, ok := mutator.(SyncBatcher); ok {
			if err := batch.SyncDBBatch(ctx, syncActions); err != nil {
				return executed, fmt.Errorf("failed to batch sync DB: %w", err)
			}
			executed += len(syncActions)
		} else {
			for _, action := range syncActions {
				if err := mutator.SyncDBFromCatalog(ctx, action.Key, action.CatalogItem); err != nil {
					return executed, fmt.Errorf("failed to sync key %s: %w", action.Key, err)
				}
				executed++
			}
		}
	}

	return executed, nil
}

// ReconcileAndApply plans and, when opts allow it, applies the actions.
func ReconcileAndApply(
	ctx context.Context,
	spec *Spec,
	db *gorm.DB,
	client storage.Client,
	bucket string,
	opts ReconcileOptions,
) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, db, client, bucket, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, db, client, bucket, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults counts gaps and plans actions. An entity missing from
// any store is purged from the stores that have it; purge wins over sync.
func buildPlanFromResults(results []ReconcileResult, cache *ReconcileCache, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if (result.DBPresent || result.CatalogPresent) && !result.StoragePresent {
			summary.MissingStorage++
		}
		if (result.DBPresent || result.StoragePresent) && !result.CatalogPresent {
			summary.MissingCatalog++
		}
		if (result.CatalogPresent || result.StoragePresent) && !result.DBPresent {
			summary.MissingDB++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		incomplete := !result.CatalogPresent || !result.StoragePresent || !result.DBPresent
		if opts.DoPurge && incomplete {
			reason := missingReason(result)
			if result.DBPresent {
				actions = append(actions, Action{Type: ActionDeleteDB, Key: result.ID, Reason: reason})
				summary.PurgeActions++
			}
			if result.CatalogPresent {
				actions = append(actions, Action{Type: ActionDeleteCatalog, Key: result.ID, Reason: reason})
				summary.PurgeActions++
			}
			if result.StoragePresent {
				actions = append(actions, Action{Type: ActionDeleteStorage, Key: result.ID, Reason: reason})
				summary.PurgeActions++
			}
			continue
		}

		if opts.DoSync && len(result.Mismatch) > 0 && result.DBPresent && result.CatalogPresent {
			actions = append(actions, Action{
				Type:        ActionSyncDB,
				Key:         result.ID,
				Reason:      "mismatch: " + strings.Join(result.Mismatch, ", "),
				CatalogItem: cache.CatalogIndex[result.ID],
			})
			summary.SyncActions++
		}
	}

	return summary, actions
}

// missingReason names the stores an entity is missing from.
func missingReason(result ReconcileResult) string {
	var missing []string
	if !result.CatalogPresent {
		missing = append(missing, "catalog")
	}
	if !result.StoragePresent {
		missing = append(missing, "storage")
	}
	if !result.DBPresent {
		missing = append(missing, "database")
	}

	if len(missing) == 0 {
		return "complete"
	}
	return "missing in: " + strings.Join(missing, ", ")
}
