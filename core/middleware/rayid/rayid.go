package rayid

import (
	"story-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// HeaderName is the request and response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// New returns a middleware that tags each request with a ray id. An incoming
// X-Ray-ID header is reused, otherwise a UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := utils.CopyString(c.Get(HeaderName))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

// FromContext returns the ray id of the request, if any.
func FromContext(c *fiber.Ctx) string {
	rid, _ := c.Locals(logger.RayIDKey).(string)
	return rid
}
