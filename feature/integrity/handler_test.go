package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"story-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, dbName string) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	client := newTestClient()
	var svc *Service
	if dbName == "" {
		svc = newTestService(t, client, nil)
	} else {
		svc = newTestService(t, client, newTestDB(t, dbName))
	}
	NewHandler(svc).RegisterRoutes(app)
	return app, client
}

func emptyListing(client *mocks.Client) {
	client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(func() <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo)
		close(ch)
		return ch
	})
}

func decode(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleStructureCheck(t *testing.T) {
	t.Run("Check", func(t *testing.T) {
		app, client := setupTestApp(t, "")
		emptyListing(client)

		status, body := decode(t, app, "/integrity/structure")
		assert.Equal(t, 200, status)
		assert.Equal(t, "checked", body["status"])
		assert.Len(t, body["missing"], 4)
	})

	t.Run("Fix", func(t *testing.T) {
		app, client := setupTestApp(t, "")
		emptyListing(client)
		client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		status, body := decode(t, app, "/integrity/structure?fix=true")
		assert.Equal(t, 200, status)
		assert.Equal(t, "fixed", body["status"])
		client.AssertNumberOfCalls(t, "PutObject", 4)
	})

	t.Run("Fix Creates Bucket", func(t *testing.T) {
		app, client := setupTestApp(t, "")
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		status, body := decode(t, app, "/integrity/structure?fix=true")
		assert.Equal(t, 200, status)
		assert.Equal(t, []any{"catalog", "fonts", "saves", "stories"}, body["fixed"])
		client.AssertCalled(t, "MakeBucket", mock.Anything, "bucket", mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		app, client := setupTestApp(t, "")
		client.On("BucketExists", mock.Anything, "bucket").Return(false, assert.AnError)

		status, body := decode(t, app, "/integrity/structure")
		assert.Equal(t, 500, status)
		assert.Contains(t, body["error"], "failed to check bucket existence")
	})
}

func TestHandleCatalogCheck(t *testing.T) {
	app, _ := setupTestApp(t, "")

	status, body := decode(t, app, "/integrity/catalog")
	assert.Equal(t, 200, status)
	assert.Equal(t, "WARNING", body["status"])
	assert.Equal(t, false, body["overlay_found"])
}

func TestHandleStoriesCheck(t *testing.T) {
	app, _ := setupTestApp(t, "handler_stories")

	status, body := decode(t, app, "/integrity/stories")
	assert.Equal(t, 200, status)
	assert.Equal(t, []any{"stories/lost.z3"}, body["unknown_files"])
}

func TestHandleServerCheck(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		app, _ := setupTestApp(t, "")
		status, body := decode(t, app, "/integrity/server")
		assert.Equal(t, 500, status)
		assert.Equal(t, "database connection is nil", body["error"])
	})

	t.Run("Matched", func(t *testing.T) {
		app, _ := setupTestApp(t, "handler_server")
		status, body := decode(t, app, "/integrity/server")
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["matched"])
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, client := setupTestApp(t, "")
	client.On("BucketExists", mock.Anything, "bucket").Return(false, assert.AnError)

	status, body := decode(t, app, "/integrity")
	assert.Equal(t, 200, status)

	structure := body["structure"].(map[string]any)
	assert.Equal(t, "error", structure["status"])
	server := body["server"].(map[string]any)
	assert.Equal(t, "error", server["status"])
	assert.Contains(t, body, "catalog")
	assert.Contains(t, body, "stories")
}
