package checks

import (
	"context"
	"testing"

	"story-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var folders = []string{"catalog", "fonts", "saves", "stories"}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func prefix(p string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == p
	})
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "library").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "library", folders)
		assert.ErrorIs(t, err, ErrBucketNotFound)
		assert.EqualError(t, err, "bucket does not exist: library")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "library").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "library", mock.Anything).
			Return(func() <-chan minio.ObjectInfo { return listing() })

		missing, err := CheckStructure(context.Background(), mockClient, "library", folders)
		assert.NoError(t, err)
		assert.Equal(t, folders, missing)
	})

	t.Run("Some Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "library").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "library", prefix("catalog/")).Return(listing("catalog/frotz.json"))
		mockClient.On("ListObjects", mock.Anything, "library", prefix("stories/")).Return(listing("stories/"))
		mockClient.On("ListObjects", mock.Anything, "library", mock.Anything).
			Return(func() <-chan minio.ObjectInfo { return listing() })

		missing, err := CheckStructure(context.Background(), mockClient, "library", folders)
		assert.NoError(t, err)
		assert.Equal(t, []string{"fonts", "saves"}, missing)
	})

	t.Run("List Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "library").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: assert.AnError}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "library", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := CheckStructure(context.Background(), mockClient, "library", folders)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Creates Markers", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "library", "fonts/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		mockClient.On("PutObject", mock.Anything, "library", "saves/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "library", logger, []string{"fonts", "/saves/"})
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("Stops On Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "library", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

		err := FixStructure(context.Background(), mockClient, "library", logger, []string{"fonts", "saves"})
		assert.ErrorIs(t, err, assert.AnError)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})
}

func TestCreateBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("MakeBucket", mock.Anything, "library", minio.MakeBucketOptions{}).Return(nil)

	err := CreateBucket(context.Background(), mockClient, "library", zap.NewNop())
	assert.NoError(t, err)

	failing := new(mocks.Client)
	failing.On("MakeBucket", mock.Anything, "library", mock.Anything).Return(assert.AnError)
	err = CreateBucket(context.Background(), failing, "library", zap.NewNop())
	assert.ErrorIs(t, err, assert.AnError)
}
