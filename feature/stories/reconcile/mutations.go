package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"story-manager/core/reconcile"
	"story-manager/feature/catalog"
	"story-manager/feature/catalog/frotz"

	"gorm.io/gorm"
)

// ErrBuiltinRecord is returned when deleting a compiled-in detection record.
var ErrBuiltinRecord = errors.New("built-in records cannot be deleted")

var errNoMutationContext = errors.New("mutation context not set, call SetMutationContext first")

// DeleteDB removes the rows of a story from the database.
func (a *StoryAdapter) DeleteDB(ctx context.Context, key string) error {
	if a.db == nil {
		return errNoMutationContext
	}
	md5, size, err := ParseKey(key)
	if err != nil {
		return err
	}

	profile := GetProfileByName(a.serverProfile)
	if err := deleteRow(a.db.WithContext(ctx), profile, md5, size); err != nil {
		return fmt.Errorf("failed to delete from DB: %w", err)
	}
	return nil
}

func deleteRow(db *gorm.DB, profile ServerProfile, md5 string, size int64) error {
	return db.Table(profile.TableName).
		Where(profile.Columns[ColMD5]+" = ? AND "+profile.Columns[ColFileSize]+" = ?", md5, size).
		Delete(nil).Error
}

// DeleteCatalog removes a record from the catalog object.
func (a *StoryAdapter) DeleteCatalog(ctx context.Context, key string) error {
	if a.client == nil {
		return errNoMutationContext
	}

	removed, err := a.removeCatalogRecords(ctx, []string{key})
	if err != nil {
		return err
	}
	if removed == 0 && builtinKey(key) {
		return fmt.Errorf("%w: %s", ErrBuiltinRecord, key)
	}
	return nil
}

// removeCatalogRecords rewrites the catalog object without keys. It returns
// the number of records removed and writes nothing when that is zero.
func (a *StoryAdapter) removeCatalogRecords(ctx context.Context, keys []string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	overlay, found, err := catalog.LoadOverlay(ctx, a.client, a.bucket, a.catalogObj)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	kept := make([]frotz.GameDescription, 0, len(overlay.Games))
	for _, g := range overlay.Games {
		if !slices.Contains(keys, g.Key()) {
			kept = append(kept, g)
		}
	}
	removed := len(overlay.Games) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	overlay.Games = kept
	if err := catalog.SaveOverlay(ctx, a.client, a.bucket, a.catalogObj, overlay); err != nil {
		return 0, fmt.Errorf("failed to write catalog: %w", err)
	}
	if inv, ok := a.tables.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
	return removed, nil
}

func builtinKey(key string) bool {
	for _, g := range frotz.BuiltinTable().Games {
		if g.Key() == key {
			return true
		}
	}
	return false
}

// DeleteStorage removes the story objects of key.
func (a *StoryAdapter) DeleteStorage(ctx context.Context, key string) error {
	return a.DeleteStorageBatch(ctx, []string{key})
}

// SyncDBFromCatalog rewrites the game id, extra and language of a row from
// its catalog record.
func (a *StoryAdapter) SyncDBFromCatalog(ctx context.Context, key string, item reconcile.CatalogItem) error {
	if a.db == nil {
		return errNoMutationContext
	}
	profile := GetProfileByName(a.serverProfile)
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return syncRow(tx, profile, key, item)
	})
}

func syncRow(tx *gorm.DB, profile ServerProfile, key string, item reconcile.CatalogItem) error {
	c, ok := item.(CatalogItem)
	if !ok {
		return fmt.Errorf("invalid catalog item type %T", item)
	}
	md5, size, err := ParseKey(key)
	if err != nil {
		return err
	}

	updates := map[string]any{
		profile.Columns[ColGameID]:   c.GameID,
		profile.Columns[ColExtra]:    c.Extra,
		profile.Columns[ColLanguage]: c.Language.String(),
	}
	result := tx.Table(profile.TableName).
		Where(profile.Columns[ColMD5]+" = ? AND "+profile.Columns[ColFileSize]+" = ?", md5, size).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no rows updated for %s", key)
	}
	return nil
}
