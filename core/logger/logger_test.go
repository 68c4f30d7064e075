package logger

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		l, err := New(&Config{Level: "warn", Format: "json"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Debug Console", func(t *testing.T) {
		l, err := New(&Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Invalid Level", func(t *testing.T) {
		_, err := New(&Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("Invalid Format", func(t *testing.T) {
		_, err := New(&Config{Level: "info", Format: "xml"})
		assert.EqualError(t, err, `invalid log format "xml"`)
	})

	t.Run("File Output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "story-manager.log")
		l, err := New(&Config{Level: "info", Output: path})
		require.NoError(t, err)
		l.Info("written")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"written"`)
		assert.Contains(t, string(data), `"service":"story-manager"`)
	})
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(RayIDKey, "abc-123")
		WithRayID(base, c).Info("tagged")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		WithRayID(base, c).Info("plain")
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/", "/plain"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[0].ContextMap()[RayIDKey])
	assert.NotContains(t, entries[1].ContextMap(), RayIDKey)
}
