// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the library
// stores (story files, fonts, the catalog object) can be mocked in tests with
// core/storage/mocks.
//
// # Helpers
//
//   - ReadObject and ReadPrefix download whole objects or leading byte ranges.
//   - WriteObject uploads a byte slice.
//   - RemoveAll deletes many objects through one RemoveObjects batch.
//   - IsNotFound recognises missing key responses.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	head, err := storage.ReadPrefix(ctx, client, cfg.Storage.Bucket, "stories/zork1.z3", 5000)
package storage
