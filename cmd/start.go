package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"story-manager/core/loader"
	"story-manager/core/logger"
	"story-manager/core/middleware/auth"
	"story-manager/core/middleware/rayid"

	"story-manager/feature/catalog"
	"story-manager/feature/fonts"
	"story-manager/feature/integrity"
	"story-manager/feature/stories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "story-manager/docs/swagger"
)

// @title Story Manager API
// @version 1.0
// @description API for managing a library of Z-machine stories and interpreter fonts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the story manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := setup(false)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := e.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		cfg := e.cfg
		bucket := cfg.Storage.Bucket

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)

		catalogFeature := catalog.NewFeature(e.store, bucket, cfg.Library, logg)
		storiesFeature := stories.NewFeature(e.store, bucket, cfg.Library, logg, e.db, cfg.Server.Profile, catalogFeature.Service())
		mgr.Register(catalogFeature)
		mgr.Register(storiesFeature)
		mgr.Register(fonts.NewFeature(e.store, bucket, cfg.Library, logg))
		mgr.Register(integrity.NewFeature(e.store, bucket, cfg.Library, logg, e.db, cfg.Server.Profile, catalogFeature.Service(), storiesFeature.Service()))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
