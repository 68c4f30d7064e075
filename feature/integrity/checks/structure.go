package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"story-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrBucketNotFound is returned by CheckStructure when the bucket is missing.
var ErrBucketNotFound = errors.New("bucket does not exist")

// CheckStructure returns the folders that hold no object in the bucket.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	missing := []string{}
	for _, folder := range folders {
		found, err := hasObjects(ctx, client, bucket, folderKey(folder))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, err)
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

func hasObjects(ctx context.Context, client storage.Client, bucket, prefix string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

// CreateBucket creates the library bucket. The client's region applies.
func CreateBucket(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	logger.Info("Created bucket", zap.String("bucket", bucket))
	return nil
}

// FixStructure creates a folder marker for every missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folderKey(folder), bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("failed to create %s: %w", folder, err)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}

func folderKey(folder string) string {
	folder = strings.Trim(folder, "/")
	return folder + "/"
}
