package config

import (
	"fmt"
	"reflect"
	"strings"

	"story-manager/core/database"
	"story-manager/core/library"
	"story-manager/core/logger"
	"story-manager/core/server"
	"story-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the library database connection.
	Database database.Config `mapstructure:"database"`
	// Library holds the bucket layout and cache settings.
	Library library.Config `mapstructure:"library"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is fine (e.g. production).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the services cannot start with.
func (c *Config) Validate() error {
	if !c.Server.IsValidProfile() {
		return fmt.Errorf("unknown library profile: %s", c.Server.Profile)
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	if c.Library.CatalogObject == "" {
		return fmt.Errorf("library catalog object is required")
	}
	return nil
}

// bindValues walks the struct and registers every 'mapstructure' key in Viper
// with its 'default' tag value.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Empty defaults are still set so AutomaticEnv sees the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
