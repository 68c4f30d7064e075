package integrity

import (
	"context"

	"story-manager/core/library"
	"story-manager/core/storage"
	"story-manager/feature/catalog"
	"story-manager/feature/integrity/checks"
	"story-manager/feature/stories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	lib     library.Config
	logger  *zap.Logger
	db      *gorm.DB
	profile string
	catalog *catalog.Service
	stories *stories.Service
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, lib library.Config, logger *zap.Logger, db *gorm.DB, profile string, catalogSvc *catalog.Service, storiesSvc *stories.Service) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		lib:     lib,
		logger:  logger,
		db:      db,
		profile: profile,
		catalog: catalogSvc,
		stories: storiesSvc,
	}
}

// CheckStructure returns the library folders missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.lib.Folders())
}

// CreateBucket creates the library bucket in the storage client's region.
func (s *Service) CreateBucket(ctx context.Context) error {
	return checks.CreateBucket(ctx, s.client, s.bucket, s.logger)
}

// Folders lists the folders the structure check looks for.
func (s *Service) Folders() []string {
	return s.lib.Folders()
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCatalog validates the effective detection table.
func (s *Service) CheckCatalog(ctx context.Context) (*catalog.ValidationReport, error) {
	return s.catalog.Validate(ctx)
}

// CheckStories cross-checks stored stories with the catalog and the database.
func (s *Service) CheckStories(ctx context.Context) (*stories.Report, error) {
	return s.stories.ScanStories(ctx)
}

// CheckServer compares the library table with its model.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, s.profile)
}
