package integrity

import (
	"errors"

	"story-manager/core/logger"
	"story-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
	group.Get("/stories", h.HandleStoriesCheck)
	group.Get("/server", h.HandleServerCheck)
}

func failed(err error) fiber.Map {
	return fiber.Map{"status": "error", "error": err.Error()}
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the structure, catalog, stories and server checks. Reading every story file may take a long time.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(fiber.Map)

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = failed(err)
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if catReport, err := h.service.CheckCatalog(ctx); err != nil {
		report["catalog"] = failed(err)
	} else {
		report["catalog"] = catReport
	}

	if storyReport, err := h.service.CheckStories(ctx); err != nil {
		report["stories"] = failed(err)
	} else {
		report["stories"] = storyReport
	}

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = failed(err)
	} else {
		report["server"] = srvReport
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks that the library folders exist in the storage bucket. With fix, creates the bucket and any missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")

	missing, err := h.service.CheckStructure(c.Context())
	if errors.Is(err, checks.ErrBucketNotFound) && fix {
		l.Warn("Bucket missing, creating it")
		if err = h.service.CreateBucket(c.Context()); err == nil {
			missing = h.service.Folders()
		}
	}
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCatalogCheck validates the detection table.
// @Summary Check Catalog
// @Description Validates the built-in detection table merged with the catalog object.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} catalog.ValidationReport "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCatalog(c.Context())
	if err != nil {
		l.Error("Catalog check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(report.Problems) > 0 {
		l.Warn("Catalog problems detected", zap.Int("problems", len(report.Problems)))
	}
	return c.JSON(report)
}

// HandleStoriesCheck scans the story library.
// @Summary Check Stories
// @Description Cross-checks story files in storage with the catalog and the library database.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} stories.Report "Stories Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/stories [get]
func (h *Handler) HandleStoriesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting story integrity check")

	report, err := h.service.CheckStories(c.Context())
	if err != nil {
		l.Error("Story check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Story check completed",
		zap.Int("catalogued", report.TotalCatalogued),
		zap.Int("found", report.TotalFound))
	return c.JSON(report)
}

// HandleServerCheck checks server schema integrity.
// @Summary Check Server Schema
// @Description Checks that the library table matches the model of the configured profile.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
