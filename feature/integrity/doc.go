// Package integrity provides health checks for a story library.
//
// The stories package reconciles individual records. This package checks the
// library as a whole.
//
// # Checks Provided
//
//   - Structure: the catalog, fonts, saves and stories folders exist in the bucket.
//   - Catalog: the built-in table merged with the catalog object is consistent.
//   - Stories: stored files against the catalog and the database (delegates to the stories package).
//   - Server: the library table matches the model of the configured profile.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog check.
//   - GET /integrity/stories : Runs story scan.
//   - GET /integrity/server : Runs server schema check.
package integrity
