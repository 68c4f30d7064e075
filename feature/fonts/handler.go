package fonts

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"story-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for fonts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the font routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fonts")
	group.Get("/", h.HandleList)
	group.Get("/:name/blend", h.HandleBlend)
	group.Get("/:name", h.HandleInspect)
}

// HandleList lists the interpreter fonts.
// @Summary List Fonts
// @Description Lists the font objects of the library.
// @Tags fonts
// @Produce json
// @Success 200 {array} FontSummary "Fonts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fonts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Font listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleInspect describes a font.
// @Summary Inspect Font
// @Description Opens a font and reports its names, PostScript dictionaries, Multiple Master axes and CID info.
// @Tags fonts
// @Produce json
// @Param name path string true "Font name relative to the fonts folder"
// @Success 200 {object} FontReport "Font Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fonts/{name} [get]
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid font name"})
	}

	report, err := h.service.Inspect(c.Context(), name)
	if err != nil {
		return h.fail(c, name, err)
	}
	return c.JSON(report)
}

// HandleBlend returns the weight vector at a design position.
// @Summary Blend Font
// @Description Sets the design coordinates of a Multiple Master font and returns the weight vector with the blended FontInfo and Private values.
// @Tags fonts
// @Produce json
// @Param name path string true "Font name relative to the fonts folder"
// @Param design query string true "Comma separated design coordinates, one per axis (e.g. '550,650')"
// @Success 200 {object} BlendReport "Blend Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /fonts/{name}/blend [get]
func (h *Handler) HandleBlend(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid font name"})
	}
	design, err := parseDesign(c.Query("design"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Blend(c.Context(), name, design)
	if err != nil {
		return h.fail(c, name, err)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, name string, err error) error {
	switch {
	case errors.Is(err, ErrFontNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case IsFontError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Font request failed", zap.String("font", name), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parseDesign(s string) ([]int, error) {
	if s == "" {
		return nil, errors.New("design query parameter is required")
	}
	parts := strings.Split(s, ",")
	design := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.New("design must be a comma separated list of integers")
		}
		design = append(design, v)
	}
	return design, nil
}
