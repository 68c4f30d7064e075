package stories

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"story-manager/core/library"
	"story-manager/core/reconcile"
	"story-manager/core/storage"
	"story-manager/feature/catalog"
	"story-manager/feature/catalog/frotz"
	storyreconcile "story-manager/feature/stories/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStoryNotFound is returned when no store knows an identifier.
var ErrStoryNotFound = errors.New("story not found")

// Service handles story library operations.
type Service struct {
	client  storage.Client
	bucket  string
	lib     library.Config
	logger  *zap.Logger
	db      *gorm.DB
	profile string
	catalog *catalog.Service
	adapter *storyreconcile.StoryAdapter
}

// NewService creates a new stories service. db may be nil.
func NewService(client storage.Client, bucket string, lib library.Config, logger *zap.Logger, db *gorm.DB, profile string, catalogSvc *catalog.Service) *Service {
	adapter := storyreconcile.NewAdapter(catalogSvc, lib.WorkerCount())
	adapter.SetMutationContext(db, client, bucket, lib.StoriesPath(), profile, lib.CatalogObject)

	return &Service{
		client:  client,
		bucket:  bucket,
		lib:     lib,
		logger:  logger,
		db:      db,
		profile: profile,
		catalog: catalogSvc,
		adapter: adapter,
	}
}

// Spec returns the reconcile spec of the story library.
func (s *Service) Spec() *reconcile.Spec {
	return &reconcile.Spec{
		Adapter:           s.adapter,
		CacheTTL:          s.lib.CacheTTL(),
		StoragePrefix:     s.lib.StoriesPath(),
		CatalogObjectName: s.lib.CatalogObject,
		ServerProfile:     s.profile,
	}
}

// ScanStories compares the catalog, the stored story files and the database.
func (s *Service) ScanStories(ctx context.Context) (*Report, error) {
	start := time.Now()

	results, err := reconcile.ReconcileAll(ctx, s.Spec(), s.db, s.client, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to scan stories: %w", err)
	}

	report := &Report{
		UnknownFiles:      make([]string, 0),
		MissingFiles:      make([]string, 0),
		UnregisteredFiles: make([]string, 0),
	}
	for _, r := range results {
		if r.CatalogPresent {
			report.TotalCatalogued++
		}
		objects := s.adapter.Objects(r.ID)
		report.TotalFound += len(objects)

		switch {
		case r.StoragePresent && !r.CatalogPresent:
			report.UnknownFiles = append(report.UnknownFiles, objects...)
		case r.StoragePresent && !r.DBPresent && s.db != nil:
			report.UnregisteredFiles = append(report.UnregisteredFiles, objects...)
		case r.DBPresent && !r.StoragePresent:
			report.MissingFiles = append(report.MissingFiles, fmt.Sprintf("%s (%s)", r.ID, r.Name))
		}
		for _, m := range r.Mismatch {
			report.FieldMismatches = append(report.FieldMismatches, r.ID+": "+m)
		}
	}

	sort.Strings(report.UnknownFiles)
	sort.Strings(report.UnregisteredFiles)
	sort.Strings(report.MissingFiles)

	report.GeneratedAt = time.Now().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()

	s.logger.Debug("Story scan finished",
		zap.Int("catalogued", report.TotalCatalogued),
		zap.Int("found", report.TotalFound),
		zap.Int("unknown", len(report.UnknownFiles)))
	return report, nil
}

// CheckStoryItem reports on one story. identifier is an object name, an md5,
// a fingerprint key or a game id.
func (s *Service) CheckStoryItem(ctx context.Context, identifier string) (*StoryDetailReport, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrStoryNotFound)
	}

	spec := s.Spec()
	query, err := s.resolveQuery(ctx, spec, identifier)
	if err != nil {
		return nil, err
	}

	result, err := reconcile.ReconcileOne(ctx, spec, s.db, s.client, s.bucket, query)
	if err != nil {
		return nil, err
	}
	if !result.DBPresent && !result.CatalogPresent && !result.StoragePresent {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, identifier)
	}

	report := &StoryDetailReport{
		Key:        result.ID,
		GameID:     result.Name,
		Objects:    s.adapter.Objects(result.ID),
		InCatalog:  result.CatalogPresent,
		InStorage:  result.StoragePresent,
		InDB:       result.DBPresent,
		Mismatches: result.Mismatch,
	}
	if meta := result.Metadata; meta != nil {
		report.Description = meta["description"]
		report.Extra = meta["extra"]
		report.Language = meta["language"]
	}

	switch {
	case len(report.Mismatches) > 0, report.InDB && !report.InStorage:
		report.IntegrityStatus = catalog.StatusFail
	case report.InCatalog && report.InStorage && (report.InDB || s.db == nil):
		report.IntegrityStatus = catalog.StatusPass
	default:
		report.IntegrityStatus = catalog.StatusWarning
	}
	return report, nil
}

func (s *Service) resolveQuery(ctx context.Context, spec *reconcile.Spec, identifier string) (reconcile.Query, error) {
	if _, _, err := storyreconcile.ParseKey(identifier); err == nil {
		return reconcile.Query{ID: strings.ToLower(identifier)}, nil
	}

	if isMD5(identifier) {
		cache, err := reconcile.GetOrBuildCache(ctx, spec, s.db, s.client, s.bucket)
		if err != nil {
			return reconcile.Query{}, err
		}
		return reconcile.Query{ID: keyForMD5(cache, strings.ToLower(identifier))}, nil
	}

	if strings.Contains(identifier, "/") || frotz.HasSupportedExtension(identifier) {
		object := identifier
		if !strings.HasPrefix(object, spec.StoragePrefix) {
			object = spec.StoragePrefix + strings.TrimPrefix(object, "/")
		}
		return reconcile.Query{Object: object}, nil
	}

	return reconcile.Query{Name: identifier}, nil
}

func isMD5(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// keyForMD5 returns the first cached key with the given md5.
func keyForMD5(cache *reconcile.ReconcileCache, md5 string) string {
	prefix := md5 + ":"
	var keys []string
	for key := range cache.DBIndex {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	for key := range cache.CatalogIndex {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	for key := range cache.StorageSet {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// Reconcile plans and, when opts allow it, applies purge and sync actions.
func (s *Service) Reconcile(ctx context.Context, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	plan, executed, err := reconcile.ReconcileAndApply(ctx, s.Spec(), s.db, s.client, s.bucket, opts)
	if err != nil {
		return plan, executed, err
	}
	if executed > 0 {
		s.logger.Info("Reconcile applied", zap.Int("executed", executed))
	}
	return plan, executed, nil
}
