// Package server holds the HTTP server configuration and constants.
//
// The Config struct defines the HTTP port, the API key and the library
// database profile. A profile names the table layout that the story adapter
// and the server integrity check expect:
//
//   - library: the native story_files table
//   - legacy: the games table of older interpreter front-ends
package server
