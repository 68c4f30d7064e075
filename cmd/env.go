package cmd

import (
	"fmt"

	"story-manager/core/config"
	"story-manager/core/database"
	"story-manager/core/logger"
	"story-manager/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is what most commands need before they can do any work.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Client
	db     *gorm.DB
}

// setup loads the configuration and opens storage. The database is opened
// too; when requireDB is false a failed connection only logs a warning.
func setup(requireDB bool) (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	e := &env{cfg: cfg, logger: logg, store: store}
	if conn, err := database.Connect(cfg.Database); err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		e.db = conn
		e.logger = logg.With(zap.String("profile", cfg.Server.Profile))
	}
	return e, nil
}
