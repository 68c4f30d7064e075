package integrity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"story-manager/core/library"
	"story-manager/core/reconcile"
	"story-manager/core/storage/mocks"
	"story-manager/feature/catalog"
	"story-manager/feature/catalog/frotz/frotztest"
	"story-manager/feature/library/models"
	"story-manager/feature/stories"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testLibrary = library.Config{
		StoriesPrefix:   "stories",
		FontsPrefix:     "fonts",
		SavesPrefix:     "saves",
		CatalogObject:   "catalog/frotz.json",
		CacheTTLSeconds: 60,
		Workers:         2,
	}

	lostStory = frotztest.Story(3, 2, "830101", 3000)
)

func newTestClient() *mocks.Client {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "bucket", minio.ListObjectsOptions{Prefix: "stories/", Recursive: true}).
		Return(func() <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: "stories/lost.z3", Size: int64(len(lostStory))}
			close(ch)
			return ch
		})
	client.On("GetObject", mock.Anything, "bucket", "stories/lost.z3", mock.Anything).
		Return(func() io.ReadCloser { return io.NopCloser(bytes.NewReader(lostStory)) }, nil)
	client.On("GetObject", mock.Anything, "bucket", "catalog/frotz.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	return client
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoryFile{}))
	return db
}

func newTestService(t *testing.T, client *mocks.Client, db *gorm.DB) *Service {
	catalogSvc := catalog.NewService(client, "bucket", testLibrary, zap.NewNop())
	storiesSvc := stories.NewService(client, "bucket", testLibrary, zap.NewNop(), db, "library", catalogSvc)
	reconcile.InvalidateCache(storiesSvc.Spec())
	t.Cleanup(func() { reconcile.InvalidateCache(storiesSvc.Spec()) })
	return NewService(client, "bucket", testLibrary, zap.NewNop(), db, "library", catalogSvc, storiesSvc)
}

func TestService_Structure(t *testing.T) {
	client := newTestClient()
	svc := newTestService(t, client, nil)

	t.Run("CheckStructure", func(t *testing.T) {
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
		client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "stories/" && !opts.Recursive
		})).Return(func() <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: "stories/lost.z3"}
			close(ch)
			return ch
		})
		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(func() <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo)
			close(ch)
			return ch
		})

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"catalog", "fonts", "saves"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		client.On("PutObject", mock.Anything, "bucket", "saves/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"saves"})
		assert.NoError(t, err)
	})
}

func TestService_Catalog(t *testing.T) {
	svc := newTestService(t, newTestClient(), nil)

	report, err := svc.CheckCatalog(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OverlayFound)
	assert.Equal(t, catalog.StatusWarning, report.Status)
	assert.Empty(t, report.Problems)
}

func TestService_Stories(t *testing.T) {
	svc := newTestService(t, newTestClient(), newTestDB(t, "integrity_stories"))

	report, err := svc.CheckStories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalFound)
	assert.Equal(t, []string{"stories/lost.z3"}, report.UnknownFiles)
	assert.Empty(t, report.MissingFiles)
}

func TestService_Server(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := newTestService(t, newTestClient(), nil)
		_, err := svc.CheckServer()
		assert.Error(t, err)
	})

	t.Run("Migrated", func(t *testing.T) {
		svc := newTestService(t, newTestClient(), newTestDB(t, "integrity_server"))
		report, err := svc.CheckServer()
		require.NoError(t, err)
		assert.True(t, report.Matched, "%+v", report.Tables)
	})
}
