package logger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RayIDKey is the Fiber locals key holding the request id.
const RayIDKey = "ray_id"

// New builds a zap logger. Debug level selects the development preset;
// every other level uses the production preset.
func New(cfg *Config) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Format {
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	case "", "json":
		config.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.Output != "" {
		config.OutputPaths = []string{cfg.Output}
	}

	enc := &config.EncoderConfig
	enc.LevelKey, enc.TimeKey, enc.MessageKey = "level", "time", "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build(zap.Fields(zap.String("service", "story-manager")))
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals(RayIDKey).(string); ok && rid != "" {
		return l.With(zap.String(RayIDKey, rid))
	}
	return l
}
