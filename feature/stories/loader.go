package stories

import (
	"story-manager/core/library"
	"story-manager/core/storage"
	"story-manager/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new stories feature.
func NewFeature(client storage.Client, bucket string, lib library.Config, logger *zap.Logger, db *gorm.DB, profile string, catalogSvc *catalog.Service) *Feature {
	svc := NewService(client, bucket, lib, logger, db, profile, catalogSvc)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the stories service to other features.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "stories"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
