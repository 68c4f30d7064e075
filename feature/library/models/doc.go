// Package models contains the GORM models of the library database.
//
// Two layouts are supported:
//
//   - library: the 'story_files' table keyed by md5 and filesize.
//   - legacy: the 'games' table of older front-ends.
//
// The server integrity check reflects over these models to verify the live
// schema, and the migrate command creates them.
package models
