package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Profile selects the library database layout (library, legacy).
	Profile string `mapstructure:"profile" default:"library"`
}

const (
	ProfileLibrary = "library"
	ProfileLegacy  = "legacy"
)

// IsValidProfile checks if the configured profile is known.
func (c Config) IsValidProfile() bool {
	switch c.Profile {
	case ProfileLibrary, ProfileLegacy:
		return true
	default:
		return false
	}
}
