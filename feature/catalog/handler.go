package catalog

import (
	"errors"

	"story-manager/core/logger"
	"story-manager/feature/catalog/frotz"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Get("/validate", h.HandleValidate)
	group.Post("/detect", h.HandleDetect)
	group.Get("/:gameId", h.HandleGame)
}

// HandleList lists the catalog.
// @Summary List Games
// @Description Lists every game of the effective catalog with its fingerprint count.
// @Tags catalog
// @Produce json
// @Success 200 {array} GameSummary "Games"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	games, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Catalog listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(games)
}

// HandleGame returns one game.
// @Summary Get Game
// @Description Returns a game descriptor with all of its fingerprint records.
// @Tags catalog
// @Produce json
// @Param gameId path string true "Game id (e.g. 'zork1')"
// @Success 200 {object} GameDetail "Game"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/{gameId} [get]
func (h *Handler) HandleGame(c *fiber.Ctx) error {
	game, err := h.service.Game(c.Context(), c.Params("gameId"))
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Catalog lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(game)
}

// HandleValidate validates the catalog.
// @Summary Validate Catalog
// @Description Checks every fingerprint record and descriptor of the effective catalog.
// @Tags catalog
// @Produce json
// @Success 200 {object} ValidationReport "Validation Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/validate [get]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Validate(c.Context())
	if err != nil {
		l.Error("Catalog validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if report.Status == StatusFail {
		l.Warn("Catalog has problems", zap.Int("problems", len(report.Problems)))
	}
	return c.JSON(report)
}

// HandleDetect identifies an uploaded story file.
// @Summary Detect Story
// @Description Identifies an uploaded story file. Nothing is stored.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Story file"
// @Success 200 {object} frotz.DetectedGame "Detection"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/detect [post]
func (h *Handler) HandleDetect(c *fiber.Ctx) error {
	return DetectUpload(c, h.service, h.service.logger)
}

// DetectUpload runs detection on the multipart "file" field of a request.
func DetectUpload(c *fiber.Ctx, service *Service, log *zap.Logger) error {
	l := logger.WithRayID(log, c)

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file field"})
	}
	file, err := header.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	game, err := service.Detect(c.Context(), header.Filename, file)
	if err != nil {
		if isDetectionError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Detection failed", zap.String("file", header.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Story detected",
		zap.String("file", header.Filename),
		zap.String("game_id", game.GameID),
		zap.Bool("known", game.Known))
	return c.JSON(game)
}

func isDetectionError(err error) bool {
	return errors.Is(err, frotz.ErrUnsupportedExtension) ||
		errors.Is(err, frotz.ErrNotDetected) ||
		errors.Is(err, frotz.ErrNotZcode)
}
