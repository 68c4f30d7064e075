package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"story-manager/core/storage"
	"story-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.False(t, storage.IsNotFound(nil))
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, storage.IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, storage.IsNotFound(errors.New("boom")))
}

func TestReadPrefix(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestsRange", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "bucket", "stories/zork1.z3", mock.MatchedBy(func(o minio.GetObjectOptions) bool {
			return o.Header().Get("Range") == "bytes=0-4"
		})).Return(io.NopCloser(strings.NewReader("abcdefgh")), nil)

		data, err := storage.ReadPrefix(ctx, client, "bucket", "stories/zork1.z3", 5)
		require.NoError(t, err)
		assert.Equal(t, "abcde", string(data))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "bucket", "missing", mock.Anything).Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := storage.ReadPrefix(ctx, client, "bucket", "missing", 5)
		assert.True(t, storage.IsNotFound(err))
	})
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("GetObject", ctx, "bucket", "catalog/frotz.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(`{"games":[]}`)), nil)

	data, err := storage.ReadObject(ctx, client, "bucket", "catalog/frotz.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"games":[]}`, string(data))
}

func TestWriteObject(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("PutObject", ctx, "bucket", "catalog/frotz.json", mock.Anything, int64(2), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Return(minio.UploadInfo{}, nil)

	require.NoError(t, storage.WriteObject(ctx, client, "bucket", "catalog/frotz.json", []byte("{}"), "application/json"))
	client.AssertExpectations(t)
}

func TestRemoveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		var sent []string
		client.On("RemoveObjects", ctx, "bucket", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					sent = append(sent, obj.Key)
				}
			}).
			Return(nil)

		require.NoError(t, storage.RemoveAll(ctx, client, "bucket", []string{"a", "b"}))
		assert.Equal(t, []string{"a", "b"}, sent)
	})

	t.Run("Failure", func(t *testing.T) {
		client := new(mocks.Client)
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "a", Err: errors.New("denied")}
		close(errCh)
		client.On("RemoveObjects", ctx, "bucket", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		err := storage.RemoveAll(ctx, client, "bucket", []string{"a"})
		assert.ErrorContains(t, err, "failed to remove a: denied")
	})
}
