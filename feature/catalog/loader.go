package catalog

import (
	"story-manager/core/library"
	"story-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new catalog feature.
func NewFeature(client storage.Client, bucket string, lib library.Config, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, lib, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the catalog service to other features.
func (f *Feature) Service() *Service {
	return f.service
}

func (f *Feature) Name() string {
	return "catalog"
}

func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
