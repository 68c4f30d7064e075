package library

import (
	"strings"
	"time"
)

// Config describes where the library keeps its objects in the bucket.
type Config struct {
	// StoriesPrefix is the folder holding story files.
	StoriesPrefix string `mapstructure:"stories_prefix" default:"stories"`
	// FontsPrefix is the folder holding interpreter fonts.
	FontsPrefix string `mapstructure:"fonts_prefix" default:"fonts"`
	// SavesPrefix is the folder holding saved games.
	SavesPrefix string `mapstructure:"saves_prefix" default:"saves"`
	// CatalogObject is the JSON catalog layered over the built-in table.
	CatalogObject string `mapstructure:"catalog_object" default:"catalog/frotz.json"`
	// CacheTTLSeconds is how long loaded indexes stay valid.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// Workers bounds concurrent object downloads.
	Workers int `mapstructure:"workers" default:"8"`
}

// CacheTTL returns the cache lifetime, defaulting to five minutes.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// WorkerCount returns the download parallelism, at least 1.
func (c Config) WorkerCount() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}

// CatalogFolder is the folder of the catalog object.
func (c Config) CatalogFolder() string {
	if i := strings.LastIndex(c.CatalogObject, "/"); i > 0 {
		return c.CatalogObject[:i]
	}
	return "catalog"
}

// Folders lists the top-level folders a library bucket must contain.
func (c Config) Folders() []string {
	return []string{c.CatalogFolder(), dir(c.FontsPrefix), dir(c.SavesPrefix), dir(c.StoriesPrefix)}
}

// StoriesPath returns the listing prefix for story files.
func (c Config) StoriesPath() string {
	return dir(c.StoriesPrefix) + "/"
}

// FontsPath returns the listing prefix for fonts.
func (c Config) FontsPath() string {
	return dir(c.FontsPrefix) + "/"
}

func dir(p string) string {
	return strings.Trim(p, "/")
}
