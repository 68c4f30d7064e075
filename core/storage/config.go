package storage

// Config holds configuration for the S3-compatible object store.
type Config struct {
	// Endpoint is host:port, optionally with an http:// or https:// scheme.
	// An https scheme turns on TLS regardless of UseSSL.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the whole library: catalog, fonts, saves and stories.
	Bucket string `mapstructure:"bucket" default:"library"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS setup and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxConns is the number of idle connections kept to the endpoint. It
	// should not be lower than the library worker count.
	MaxConns int `mapstructure:"max_conns" default:"16"`
}
