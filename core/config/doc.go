// Package config provides configuration management for the Story Manager.
//
// It uses Viper for environment variables and godotenv for an optional .env
// file. Defaults live in the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and database profile
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Library: bucket folders, catalog object and cache settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
