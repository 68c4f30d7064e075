package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"story-manager/core/reconcile"
	"story-manager/core/storage"
	"story-manager/core/utils"
	"story-manager/feature/catalog"
	"story-manager/feature/catalog/frotz"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// TableSource provides the effective detection table.
type TableSource interface {
	Table(ctx context.Context) (*frotz.Table, error)
}

// StoryAdapter implements the reconcile.Adapter interface for story files.
type StoryAdapter struct {
	tables  TableSource
	workers int

	// objectKeys maps object names to keys and keyObjects the reverse,
	// both filled by LoadStorageSet.
	mu         sync.RWMutex
	objectKeys map[string]string
	keyObjects map[string][]string

	db            *gorm.DB
	client        storage.Client
	bucket        string
	storagePrefix string
	serverProfile string
	catalogObj    string
}

// NewAdapter creates a story adapter. Storage objects are identified
// against tables by at most workers concurrent reads.
func NewAdapter(tables TableSource, workers int) *StoryAdapter {
	if workers < 1 {
		workers = 1
	}
	return &StoryAdapter{
		tables:     tables,
		workers:    workers,
		objectKeys: make(map[string]string),
		keyObjects: make(map[string][]string),
	}
}

// SetMutationContext binds the stores the Mutator methods write to.
func (a *StoryAdapter) SetMutationContext(db *gorm.DB, client storage.Client, bucket, storagePrefix, serverProfile, catalogObj string) {
	a.db = db
	a.client = client
	a.bucket = bucket
	a.storagePrefix = storagePrefix
	a.serverProfile = serverProfile
	a.catalogObj = catalogObj
}

// Name returns the unique name of this adapter.
func (a *StoryAdapter) Name() string {
	return "stories"
}

// DBItem is a normalized library row.
type DBItem struct {
	ID         int
	MD5        string
	FileSize   int64
	GameID     string
	Extra      string
	Language   string
	ObjectName string
}

// Key returns the fingerprint key of the row.
func (d DBItem) Key() string {
	return frotz.FingerprintKey(d.MD5, d.FileSize)
}

// CatalogItem is a detection record. Overlay is set for records of the
// storage catalog object, which are the only deletable ones.
type CatalogItem struct {
	frotz.GameDescription
	Description string
	Overlay     bool
}

// ParseKey splits a fingerprint key into md5 and file size.
func ParseKey(key string) (md5 string, size int64, err error) {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return "", 0, fmt.Errorf("invalid story key %q", key)
	}
	size, err = strconv.ParseInt(key[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid story key %q: %w", key, err)
	}
	return key[:i], size, nil
}

// StorageKey returns the key of a fingerprinted file: the matching record's
// key, or the file's own key when the table does not know it.
func StorageKey(table *frotz.Table, fp *frotz.Fingerprint) string {
	if g, ok := table.Lookup(fp.MD5, fp.FileSize, fp.IsBlorb); ok {
		return g.Key()
	}
	return fp.Key()
}

// LoadDBIndex loads all story rows from the database.
func (a *StoryAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB, serverProfile string) (map[string]reconcile.DBItem, error) {
	index := make(map[string]reconcile.DBItem)
	if db == nil {
		return index, nil
	}

	profile := GetProfileByName(serverProfile)
	rows, err := db.WithContext(ctx).Raw(fmt.Sprintf("SELECT * FROM %s", profile.TableName)).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", profile.TableName, err)
	}
	defer rows.Close()

	items, err := scanRows(rows, profile)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		index[item.Key()] = item
	}
	return index, nil
}

func scanRows(rows *sql.Rows, profile ServerProfile) ([]DBItem, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var items []DBItem
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		items = append(items, parseDBRow(row, profile))
	}
	return items, rows.Err()
}

func parseDBRow(row map[string]any, profile ServerProfile) DBItem {
	return DBItem{
		ID:         int(utils.ToInt64(row[profile.Columns[ColID]])),
		MD5:        strings.ToLower(stringValue(row, profile.Columns[ColMD5])),
		FileSize:   utils.ToInt64(row[profile.Columns[ColFileSize]]),
		GameID:     stringValue(row, profile.Columns[ColGameID]),
		Extra:      stringValue(row, profile.Columns[ColExtra]),
		Language:   stringValue(row, profile.Columns[ColLanguage]),
		ObjectName: stringValue(row, profile.Columns[ColObjectName]),
	}
}

func stringValue(row map[string]any, col string) string {
	return strings.TrimSpace(utils.ToString(row[col]))
}

// LoadCatalogIndex loads the built-in records merged with the catalog object.
func (a *StoryAdapter) LoadCatalogIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]reconcile.CatalogItem, error) {
	overlay, _, err := catalog.LoadOverlay(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}
	return catalogIndex(overlay), nil
}

func catalogIndex(overlay *frotz.Table) map[string]reconcile.CatalogItem {
	own := make(map[string]bool, len(overlay.Games))
	for _, g := range overlay.Games {
		own[g.Key()] = true
	}

	table := frotz.BuiltinTable().Merge(overlay)
	index := make(map[string]reconcile.CatalogItem, len(table.Games))
	for _, g := range table.Games {
		item := CatalogItem{GameDescription: g, Overlay: own[g.Key()]}
		if desc, ok := table.FindGame(g.GameID); ok {
			item.Description = desc.Description
		}
		index[g.Key()] = item
	}
	return index
}

// LoadStorageSet identifies every story object under prefix. Each object's
// detection prefix is read with a ranged GET.
func (a *StoryAdapter) LoadStorageSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	table, err := a.tables.Table(ctx)
	if err != nil {
		return nil, err
	}

	var objects []minio.ObjectInfo
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") || !frotz.HasSupportedExtension(obj.Key) {
			continue
		}
		objects = append(objects, obj)
	}

	keys := make([]string, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, obj := range objects {
		g.Go(func() error {
			fp, err := FingerprintObject(gctx, client, bucket, obj)
			if err != nil {
				return err
			}
			keys[i] = StorageKey(table, fp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(objects))
	objectKeys := make(map[string]string, len(objects))
	keyObjects := make(map[string][]string, len(objects))
	for i, obj := range objects {
		set[keys[i]] = struct{}{}
		objectKeys[obj.Key] = keys[i]
		keyObjects[keys[i]] = append(keyObjects[keys[i]], obj.Key)
	}

	a.mu.Lock()
	a.objectKeys = objectKeys
	a.keyObjects = keyObjects
	a.mu.Unlock()

	return set, nil
}

// FingerprintObject reads the detection prefix of a listed object.
func FingerprintObject(ctx context.Context, client storage.Client, bucket string, obj minio.ObjectInfo) (*frotz.Fingerprint, error) {
	head, err := storage.ReadPrefix(ctx, client, bucket, obj.Key, frotz.DetectionBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", obj.Key, err)
	}
	return frotz.FingerprintHead(head, obj.Size), nil
}

// Objects returns the object names last seen for key.
func (a *StoryAdapter) Objects(key string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.keyObjects[key]...)
}

func (a *StoryAdapter) ExtractDBKey(item reconcile.DBItem) string {
	return item.(DBItem).Key()
}

func (a *StoryAdapter) ExtractCatalogKey(item reconcile.CatalogItem) string {
	return item.(CatalogItem).Key()
}

// ExtractStorageKey returns the key of an object seen by the last
// LoadStorageSet.
func (a *StoryAdapter) ExtractStorageKey(objectKey string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	key, ok := a.objectKeys[objectKey]
	return key, ok
}

// ResolveName returns the game id, preferring the catalog.
func (a *StoryAdapter) ResolveName(dbItem reconcile.DBItem, catalogItem reconcile.CatalogItem) string {
	if catalogItem != nil {
		return catalogItem.(CatalogItem).GameID
	}
	if dbItem != nil {
		return dbItem.(DBItem).GameID
	}
	return ""
}

// CompareFields compares game id, extra and language.
func (a *StoryAdapter) CompareFields(dbItem reconcile.DBItem, catalogItem reconcile.CatalogItem) []string {
	db := dbItem.(DBItem)
	c := catalogItem.(CatalogItem)

	var mismatches []string
	if db.GameID != c.GameID {
		mismatches = append(mismatches, fmt.Sprintf("game_id: catalog=%s db=%s", c.GameID, db.GameID))
	}
	if db.Extra != c.Extra {
		mismatches = append(mismatches, fmt.Sprintf("extra: catalog=%s db=%s", c.Extra, db.Extra))
	}
	if lang := normalizeLanguage(db.Language); lang != c.Language.String() {
		mismatches = append(mismatches, fmt.Sprintf("language: catalog=%s db=%s", c.Language, db.Language))
	}
	return mismatches
}

func normalizeLanguage(s string) string {
	if s == "" {
		return language.Und.String()
	}
	tag, err := language.Parse(s)
	if err != nil {
		return strings.ToLower(s)
	}
	return tag.String()
}

// QueryDB looks a row up by key, then object name, then game id.
func (a *StoryAdapter) QueryDB(ctx context.Context, db *gorm.DB, serverProfile string, query reconcile.Query) (reconcile.DBItem, error) {
	if db == nil {
		return nil, nil
	}
	profile := GetProfileByName(serverProfile)

	find := func(where string, args ...any) (reconcile.DBItem, error) {
		row := map[string]any{}
		err := db.WithContext(ctx).Table(profile.TableName).Where(where, args...).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", profile.TableName, err)
		}
		return parseDBRow(row, profile), nil
	}

	if query.ID != "" {
		if md5, size, err := ParseKey(query.ID); err == nil {
			item, err := find(profile.Columns[ColMD5]+" = ? AND "+profile.Columns[ColFileSize]+" = ?", md5, size)
			if item != nil || err != nil {
				return item, err
			}
		}
	}
	if query.Object != "" {
		item, err := find(profile.Columns[ColObjectName]+" = ?", query.Object)
		if item != nil || err != nil {
			return item, err
		}
	}
	if query.Name != "" {
		return find(profile.Columns[ColGameID]+" = ?", query.Name)
	}
	return nil, nil
}

// QueryCatalog looks a record up by key, then by game id.
func (a *StoryAdapter) QueryCatalog(ctx context.Context, client storage.Client, bucket, objectName string, query reconcile.Query) (reconcile.CatalogItem, error) {
	index, err := a.LoadCatalogIndex(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}

	if query.ID != "" {
		if item, ok := index[query.ID]; ok {
			return item, nil
		}
	}
	if query.Name != "" {
		var keys []string
		for key, item := range index {
			if item.(CatalogItem).GameID == query.Name {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			sort.Strings(keys)
			return index[keys[0]], nil
		}
	}
	return nil, nil
}

// CheckStorage reports whether a story with key is stored. Known objects are
// checked with a stat, anything else needs a full scan of prefix.
func (a *StoryAdapter) CheckStorage(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error) {
	if _, _, err := ParseKey(key); err != nil {
		return false, nil
	}

	for _, name := range a.Objects(key) {
		_, err := client.StatObject(ctx, bucket, name, minio.StatObjectOptions{})
		if err == nil {
			return true, nil
		}
		if !storage.IsNotFound(err) {
			return false, fmt.Errorf("failed to stat %s: %w", name, err)
		}
	}

	set, err := a.LoadStorageSet(ctx, client, bucket, prefix)
	if err != nil {
		return false, err
	}
	_, ok := set[key]
	return ok, nil
}

// GetMetadata returns the game, language and object details of an entity.
func (a *StoryAdapter) GetMetadata(dbItem reconcile.DBItem, catalogItem reconcile.CatalogItem) map[string]string {
	meta := make(map[string]string)
	var key string

	if dbItem != nil {
		db := dbItem.(DBItem)
		key = db.Key()
		meta["db_game_id"] = db.GameID
		if db.ObjectName != "" {
			meta["db_object"] = db.ObjectName
		}
	}
	if catalogItem != nil {
		c := catalogItem.(CatalogItem)
		key = c.Key()
		meta["game_id"] = c.GameID
		meta["extra"] = c.Extra
		meta["language"] = c.Language.String()
		if c.Description != "" {
			meta["description"] = c.Description
		}
		meta["source"] = "builtin"
		if c.Overlay {
			meta["source"] = "catalog"
		}
	}

	if objects := a.Objects(key); len(objects) > 0 {
		meta["objects"] = strings.Join(objects, ",")
	}
	return meta
}
