// Command debug_reconcile loads the three story indexes directly and shows
// where a single story appears. Usage: debug_reconcile <key|game id|object>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"story-manager/core/config"
	"story-manager/core/database"
	core "story-manager/core/reconcile"
	"story-manager/core/storage"
	"story-manager/feature/catalog"
	"story-manager/feature/stories/reconcile"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_reconcile <key|game id|object>")
	}
	query := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	bucket := cfg.Storage.Bucket
	catalogSvc := catalog.NewService(client, bucket, cfg.Library, zap.NewNop())
	adapter := reconcile.NewAdapter(catalogSvc, cfg.Library.WorkerCount())
	ctx := context.Background()

	fmt.Println("=== Catalog ===")
	catIndex, err := adapter.LoadCatalogIndex(ctx, client, bucket, cfg.Library.CatalogObject)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Catalog records: %d\n", len(catIndex))

	fmt.Println("\n=== Database ===")
	dbIndex, err := adapter.LoadDBIndex(ctx, db, cfg.Server.Profile)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("DB rows: %d\n", len(dbIndex))

	fmt.Println("\n=== Storage ===")
	storageSet, err := adapter.LoadStorageSet(ctx, client, bucket, cfg.Library.StoriesPath())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Stored fingerprints: %d\n", len(storageSet))

	keys := matchingKeys(adapter, query, catIndex, dbIndex, cfg.Library.StoriesPath())
	if len(keys) == 0 {
		fmt.Printf("\n%s matched nothing\n", query)
	}

	matches := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		cat, inCatalog := catIndex[key]
		row, inDB := dbIndex[key]
		_, inStorage := storageSet[key]

		fmt.Printf("\n--- %s ---\n", key)
		fmt.Printf("catalog=%v db=%v storage=%v objects=%v\n", inCatalog, inDB, inStorage, adapter.Objects(key))
		if inCatalog && inDB {
			for _, m := range adapter.CompareFields(row, cat) {
				fmt.Printf("mismatch: %s\n", m)
			}
		}
		matches = append(matches, map[string]any{
			"key":      key,
			"catalog":  cat,
			"db":       row,
			"storage":  inStorage,
			"objects":  adapter.Objects(key),
			"metadata": adapter.GetMetadata(row, cat),
		})
	}

	data, _ := json.MarshalIndent(map[string]any{
		"catalog_count": len(catIndex),
		"db_count":      len(dbIndex),
		"storage_count": len(storageSet),
		"matches":       matches,
	}, "", "  ")
	os.WriteFile("debug_reconcile.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_reconcile.json for details.")
}

func matchingKeys(adapter *reconcile.StoryAdapter, query string, catIndex map[string]core.CatalogItem, dbIndex map[string]core.DBItem, prefix string) []string {
	if _, _, err := reconcile.ParseKey(query); err == nil {
		return []string{query}
	}
	for _, obj := range []string{query, prefix + strings.TrimPrefix(query, "/")} {
		if key, ok := adapter.ExtractStorageKey(obj); ok {
			return []string{key}
		}
	}

	seen := make(map[string]bool)
	var keys []string
	for key, item := range catIndex {
		if item.(reconcile.CatalogItem).GameID == query && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key, item := range dbIndex {
		if item.(reconcile.DBItem).GameID == query && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
