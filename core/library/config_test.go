package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	cfg := Config{
		StoriesPrefix: "/stories/",
		FontsPrefix:   "fonts",
		SavesPrefix:   "saves",
		CatalogObject: "meta/frotz.json",
	}

	assert.Equal(t, []string{"meta", "fonts", "saves", "stories"}, cfg.Folders())
	assert.Equal(t, "stories/", cfg.StoriesPath())
	assert.Equal(t, "fonts/", cfg.FontsPath())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 1, cfg.WorkerCount())

	cfg.CatalogObject = "frotz.json"
	cfg.CacheTTLSeconds = 10
	cfg.Workers = 4
	assert.Equal(t, "catalog", cfg.CatalogFolder())
	assert.Equal(t, 10*time.Second, cfg.CacheTTL())
	assert.Equal(t, 4, cfg.WorkerCount())
}
