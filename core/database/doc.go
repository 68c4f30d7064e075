// Package database handles the library database connection and schema
// inspection.
//
// It wraps GORM with the MySQL and SQLite dialectors. MySQL is the production
// target; SQLite serves local libraries and tests.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table in a dialect-neutral form. The
// server integrity check compares them with the library models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "story_files")
package database
