package reconcile

import (
	"context"
	"fmt"

	"story-manager/core/reconcile"
	"story-manager/core/storage"

	"gorm.io/gorm"
)

// DeleteDBBatch removes the rows of many stories in one transaction.
func (a *StoryAdapter) DeleteDBBatch(ctx context.Context, keys []string) error {
	if a.db == nil {
		return errNoMutationContext
	}
	if len(keys) == 0 {
		return nil
	}

	profile := GetProfileByName(a.serverProfile)
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			md5, size, err := ParseKey(key)
			if err != nil {
				continue
			}
			if err := deleteRow(tx, profile, md5, size); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to batch delete from DB: %w", err)
	}
	return nil
}

// DeleteCatalogBatch removes many records from the catalog object in one
// write. Built-in records are left in place.
func (a *StoryAdapter) DeleteCatalogBatch(ctx context.Context, keys []string) error {
	if a.client == nil {
		return errNoMutationContext
	}
	if len(keys) == 0 {
		return nil
	}
	_, err := a.removeCatalogRecords(ctx, keys)
	return err
}

// DeleteStorageBatch removes every object holding one of keys. Keys without
// a known object are skipped.
func (a *StoryAdapter) DeleteStorageBatch(ctx context.Context, keys []string) error {
	if a.client == nil {
		return errNoMutationContext
	}

	var names []string
	for _, key := range keys {
		names = append(names, a.Objects(key)...)
	}
	if len(names) == 0 {
		return nil
	}

	if err := storage.RemoveAll(ctx, a.client, a.bucket, names); err != nil {
		return fmt.Errorf("batch delete failed: %w", err)
	}

	a.mu.Lock()
	for _, key := range keys {
		for _, name := range a.keyObjects[key] {
			delete(a.objectKeys, name)
		}
		delete(a.keyObjects, key)
	}
	a.mu.Unlock()
	return nil
}

// SyncDBBatch applies many sync actions in one transaction.
func (a *StoryAdapter) SyncDBBatch(ctx context.Context, actions []reconcile.Action) error {
	if a.db == nil {
		return errNoMutationContext
	}
	if len(actions) == 0 {
		return nil
	}

	profile := GetProfileByName(a.serverProfile)
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, action := range actions {
			if err := syncRow(tx, profile, action.Key, action.CatalogItem); err != nil {
				return fmt.Errorf("sync failed for %s: %w", action.Key, err)
			}
		}
		return nil
	})
}
