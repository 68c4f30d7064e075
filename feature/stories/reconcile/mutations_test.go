package reconcile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"story-manager/core/reconcile"
	"story-manager/core/storage/mocks"
	"story-manager/feature/catalog/frotz"
	"story-manager/feature/library/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func insertStory(t *testing.T, adapter *StoryAdapter, md5 string, size int64, gameID string) {
	t.Helper()
	require.NoError(t, adapter.db.Create(&models.StoryFile{MD5: md5, FileSize: size, GameID: gameID, Language: "en"}).Error)
}

func countStories(t *testing.T, adapter *StoryAdapter) int64 {
	t.Helper()
	var n int64
	require.NoError(t, adapter.db.Table("story_files").Count(&n).Error)
	return n
}

func TestMutationContextRequired(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(testTables(), 1)

	assert.ErrorIs(t, adapter.DeleteDB(ctx, "a:1"), errNoMutationContext)
	assert.ErrorIs(t, adapter.DeleteCatalog(ctx, "a:1"), errNoMutationContext)
	assert.ErrorIs(t, adapter.DeleteStorage(ctx, "a:1"), errNoMutationContext)
	assert.ErrorIs(t, adapter.SyncDBFromCatalog(ctx, "a:1", CatalogItem{}), errNoMutationContext)
}

func TestDeleteDB(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(testTables(), 1)
	adapter.SetMutationContext(setupTestDB(t, "delete_db", &models.StoryFile{}), nil, "", "", "library", "")

	insertStory(t, adapter, "aaaa", 100, "one")
	insertStory(t, adapter, "aaaa", 200, "two")
	insertStory(t, adapter, "bbbb", 100, "three")

	require.NoError(t, adapter.DeleteDB(ctx, "aaaa:100"))
	assert.Equal(t, int64(2), countStories(t, adapter))

	assert.Error(t, adapter.DeleteDB(ctx, "not-a-key"))

	require.NoError(t, adapter.DeleteDBBatch(ctx, []string{"aaaa:200", "bbbb:100", "bad"}))
	assert.Equal(t, int64(0), countStories(t, adapter))
}

func TestSyncDBFromCatalog(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(testTables(), 1)
	adapter.SetMutationContext(setupTestDB(t, "sync_db", &models.StoryFile{}), nil, "", "", "library", "")
	insertStory(t, adapter, knownRecord.MD5, knownRecord.FileSize, "wrong")

	require.NoError(t, adapter.SyncDBFromCatalog(ctx, knownRecord.Key(), CatalogItem{GameDescription: knownRecord}))

	var row models.StoryFile
	require.NoError(t, adapter.db.Where("md5 = ?", knownRecord.MD5).Take(&row).Error)
	assert.Equal(t, "mystory", row.GameID)
	assert.Equal(t, "R88-S840726", row.Extra)
	assert.Equal(t, "en", row.Language)

	err := adapter.SyncDBFromCatalog(ctx, "ffff:1", CatalogItem{GameDescription: knownRecord})
	assert.ErrorContains(t, err, "no rows updated for ffff:1")

	err = adapter.SyncDBFromCatalog(ctx, knownRecord.Key(), "not an item")
	assert.ErrorContains(t, err, "invalid catalog item type")
}

func TestSyncDBBatch(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(testTables(), 1)
	adapter.SetMutationContext(setupTestDB(t, "sync_batch", &models.StoryFile{}), nil, "", "", "library", "")
	insertStory(t, adapter, "aaaa", 100, "old")
	insertStory(t, adapter, "bbbb", 100, "old")

	item := func(id string) CatalogItem {
		return CatalogItem{GameDescription: frotz.GameDescription{GameID: id, Language: language.German}}
	}

	t.Run("Rolls Back On Failure", func(t *testing.T) {
		err := adapter.SyncDBBatch(ctx, []reconcile.Action{
			{Type: reconcile.ActionSyncDB, Key: "aaaa:100", CatalogItem: item("new")},
			{Type: reconcile.ActionSyncDB, Key: "cccc:100", CatalogItem: item("new")},
		})
		assert.ErrorContains(t, err, "sync failed for cccc:100")

		var row models.StoryFile
		require.NoError(t, adapter.db.Where("md5 = ?", "aaaa").Take(&row).Error)
		assert.Equal(t, "old", row.GameID)
	})

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, adapter.SyncDBBatch(ctx, []reconcile.Action{
			{Type: reconcile.ActionSyncDB, Key: "aaaa:100", CatalogItem: item("first")},
			{Type: reconcile.ActionSyncDB, Key: "bbbb:100", CatalogItem: item("second")},
		}))

		var rows []models.StoryFile
		require.NoError(t, adapter.db.Order("md5").Find(&rows).Error)
		require.Len(t, rows, 2)
		assert.Equal(t, "first", rows[0].GameID)
		assert.Equal(t, "second", rows[1].GameID)
		assert.Equal(t, "de", rows[1].Language)
	})
}

type invalidatingTables struct {
	staticTables
	invalidated int
}

func (i *invalidatingTables) Invalidate() {
	i.invalidated++
}

func TestDeleteCatalog(t *testing.T) {
	ctx := context.Background()
	overlay := &frotz.Table{Games: []frotz.GameDescription{
		knownRecord,
		{GameID: "other", Extra: "R1", MD5: "ffff", FileSize: 10, Language: language.English},
	}}
	var encoded bytes.Buffer
	require.NoError(t, frotz.EncodeCatalog(&encoded, overlay))

	newClient := func() *mocks.Client {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "catalog/frotz.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(encoded.Bytes())), nil).Once()
		return client
	}

	t.Run("Rewrites Catalog", func(t *testing.T) {
		client := newClient()
		var written []byte
		client.On("PutObject", mock.Anything, "bucket", "catalog/frotz.json", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				written, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).Return(minio.UploadInfo{}, nil)

		tables := &invalidatingTables{staticTables: testTables()}
		adapter := NewAdapter(tables, 1)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "catalog/frotz.json")

		require.NoError(t, adapter.DeleteCatalogBatch(ctx, []string{knownRecord.Key(), frotz.Games[0].Key()}))

		saved, err := frotz.DecodeCatalog(bytes.NewReader(written))
		require.NoError(t, err)
		require.Len(t, saved.Games, 1)
		assert.Equal(t, "other", saved.Games[0].GameID)
		assert.Equal(t, 1, tables.invalidated)
		client.AssertExpectations(t)
	})

	t.Run("Builtin Record", func(t *testing.T) {
		client := newClient()
		adapter := NewAdapter(testTables(), 1)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "catalog/frotz.json")

		err := adapter.DeleteCatalog(ctx, frotz.Games[0].Key())
		assert.ErrorIs(t, err, ErrBuiltinRecord)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Catalog Object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "catalog/frotz.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
		adapter := NewAdapter(testTables(), 1)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "catalog/frotz.json")

		assert.NoError(t, adapter.DeleteCatalogBatch(ctx, []string{knownRecord.Key()}))
	})
}

func TestDeleteStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Known Objects", func(t *testing.T) {
		client := storyClient(map[string][]byte{
			"stories/a/mystory.z5": knownStory,
			"stories/b/mystory.z5": knownStory,
		})
		adapter := NewAdapter(testTables(), 2)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "catalog/frotz.json")
		_, err := adapter.LoadStorageSet(ctx, client, "bucket", "stories/")
		require.NoError(t, err)

		var removed []string
		client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					removed = append(removed, obj.Key)
				}
			}).Return(nil)

		require.NoError(t, adapter.DeleteStorage(ctx, knownRecord.Key()))
		assert.ElementsMatch(t, []string{"stories/a/mystory.z5", "stories/b/mystory.z5"}, removed)
		assert.Empty(t, adapter.Objects(knownRecord.Key()))

		_, ok := adapter.ExtractStorageKey("stories/a/mystory.z5")
		assert.False(t, ok)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		client := new(mocks.Client)
		adapter := NewAdapter(testTables(), 1)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "")

		require.NoError(t, adapter.DeleteStorageBatch(ctx, []string{"ffff:1"}))
		client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove Error", func(t *testing.T) {
		client := storyClient(map[string][]byte{"stories/mystory.z5": knownStory})
		adapter := NewAdapter(testTables(), 1)
		adapter.SetMutationContext(nil, client, "bucket", "stories/", "library", "")
		_, err := adapter.LoadStorageSet(ctx, client, "bucket", "stories/")
		require.NoError(t, err)

		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "stories/mystory.z5", Err: errors.New("denied")}
		close(errCh)
		client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		err = adapter.DeleteStorage(ctx, knownRecord.Key())
		assert.ErrorContains(t, err, "denied")
		assert.True(t, strings.HasPrefix(err.Error(), "batch delete failed"))
	})
}
