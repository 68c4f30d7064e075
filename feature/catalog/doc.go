// Package catalog serves the game detection catalog.
//
// The effective table is the compiled-in frotz table with the JSON catalog
// object from storage layered on top. It is loaded lazily and cached for the
// library cache TTL.
//
// # Endpoints
//
//   - GET /catalog: list games
//   - GET /catalog/validate: data-integrity report
//   - GET /catalog/:gameId: one game with its fingerprints
//   - POST /catalog/detect: identify an uploaded story file
package catalog
