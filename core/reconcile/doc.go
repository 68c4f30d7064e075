// Package reconcile reconciles three sources of truth: the library database,
// the game catalog and the story objects in storage.
//
// # Architecture
//
// The Engine builds the union of keys over the three indexes, records where
// each key is present and collects field mismatches between the DB and the
// catalog.
//
// An Adapter supplies the model-specific parts: loading each source, keying
// items and comparing fields. Adapters that can change their stores also
// implement Mutator and, optionally, the batch interfaces.
//
// A TTL cache with singleflight stampede protection keeps the indexes for
// targeted lookups.
//
// # Plans
//
// ReconcileWithPlan turns results into actions. With purge enabled, an entity
// missing from any store is deleted from every store that holds it, and no
// sync is planned for it. With sync enabled, mismatched DB rows are rewritten
// from the catalog. ApplyPlan only runs confirmed, non dry-run plans.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Adapter:           storiesreconcile.NewAdapter(profile, detector),
//	    CacheTTL:          5 * time.Minute,
//	    StoragePrefix:     "stories/",
//	    CatalogObjectName: "catalog/frotz.json",
//	}
//
//	results, err := reconcile.ReconcileAll(ctx, spec, db, storageClient, bucket)
//	result, err := reconcile.ReconcileOne(ctx, spec, db, storageClient, bucket, reconcile.Query{ID: key})
package reconcile
