package stories

import (
	"errors"
	"net/url"

	"story-manager/core/logger"
	"story-manager/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stories.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the story routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stories")
	group.Post("/detect", h.HandleDetect)
	group.Get("/:identifier", h.HandleGetStoryDetail)
}

// HandleGetStoryDetail returns a detailed report for a single story.
// @Summary Get Story Detail
// @Description Get the integrity report of one story. Object names must be URL-encoded.
// @Tags stories
// @Produce json
// @Param identifier path string true "Object name, md5, fingerprint key or game id (e.g. 'zork1')"
// @Success 200 {object} StoryDetailReport "Story Detail"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stories/{identifier} [get]
func (h *Handler) HandleGetStoryDetail(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	identifier, err := url.PathUnescape(c.Params("identifier"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid identifier"})
	}

	report, err := h.service.CheckStoryItem(c.Context(), identifier)
	if err != nil {
		if errors.Is(err, ErrStoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Story detail check failed", zap.String("identifier", identifier), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleDetect identifies an uploaded story file.
// @Summary Detect Story
// @Description Identifies an uploaded story file. Nothing is stored.
// @Tags stories
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Story file"
// @Success 200 {object} frotz.DetectedGame "Detection"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stories/detect [post]
func (h *Handler) HandleDetect(c *fiber.Ctx) error {
	return catalog.DetectUpload(c, h.service.catalog, h.service.logger)
}
