package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// IsNotFound reports whether err is a missing key or bucket response.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}

// ReadObject downloads a whole object.
func ReadObject(ctx context.Context, c Client, bucket, name string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadPrefix downloads at most n leading bytes of an object with a ranged GET.
func ReadPrefix(ctx context.Context, c Client, bucket, name string, n int64) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(0, n-1); err != nil {
		return nil, fmt.Errorf("invalid range for %s: %w", name, err)
	}
	obj, err := c.GetObject(ctx, bucket, name, opts)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, n))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteObject uploads data under name.
func WriteObject(ctx context.Context, c Client, bucket, name string, data []byte, contentType string) error {
	_, err := c.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// RemoveAll deletes names in one batch and returns the first failure.
func RemoveAll(ctx context.Context, c Client, bucket string, names []string) error {
	objectsCh := make(chan minio.ObjectInfo, len(names))
	for _, name := range names {
		objectsCh <- minio.ObjectInfo{Key: name}
	}
	close(objectsCh)

	var firstErr error
	for rErr := range c.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	return firstErr
}
