package catalog

import (
	"bytes"
	"context"
	"fmt"

	"story-manager/core/storage"
	"story-manager/feature/catalog/frotz"
)

const jsonContentType = "application/json"

// LoadOverlay reads the catalog object. found is false when the object does
// not exist, which is not an error.
func LoadOverlay(ctx context.Context, client storage.Client, bucket, objectName string) (overlay *frotz.Table, found bool, err error) {
	data, err := storage.ReadObject(ctx, client, bucket, objectName)
	if err != nil {
		if storage.IsNotFound(err) {
			return &frotz.Table{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read catalog %s: %w", objectName, err)
	}

	overlay, err = frotz.DecodeCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", objectName, err)
	}
	return overlay, true, nil
}

// SaveOverlay writes t as the catalog object.
func SaveOverlay(ctx context.Context, client storage.Client, bucket, objectName string, t *frotz.Table) error {
	var buf bytes.Buffer
	if err := frotz.EncodeCatalog(&buf, t); err != nil {
		return err
	}
	return storage.WriteObject(ctx, client, bucket, objectName, buf.Bytes(), jsonContentType)
}

// LoadTable returns the built-in table with the catalog object layered on top.
func LoadTable(ctx context.Context, client storage.Client, bucket, objectName string) (*frotz.Table, error) {
	overlay, _, err := LoadOverlay(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}
	return frotz.BuiltinTable().Merge(overlay), nil
}
