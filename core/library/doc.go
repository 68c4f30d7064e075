// Package library holds the bucket layout of an interactive-fiction library:
// the story, font and save folders and the catalog object.
package library
