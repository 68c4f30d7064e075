package reconcile

// ServerProfile maps the logical story fields to a library table layout.
type ServerProfile struct {
	// TableName is the name of the story table in the database.
	TableName string

	// Columns maps logical field names to actual database column names.
	Columns map[string]string
}

// Logical field names.
const (
	ColID         = "id"
	ColMD5        = "md5"
	ColFileSize   = "filesize"
	ColGameID     = "game_id"
	ColExtra      = "extra"
	ColLanguage   = "language"
	ColObjectName = "object_name"
)

// LibraryProfile is the native story_files layout.
func LibraryProfile() ServerProfile {
	return ServerProfile{
		TableName: "story_files",
		Columns: map[string]string{
			ColID:         "id",
			ColMD5:        "md5",
			ColFileSize:   "filesize",
			ColGameID:     "game_id",
			ColExtra:      "extra",
			ColLanguage:   "language",
			ColObjectName: "object_name",
		},
	}
}

// LegacyProfile is the games table of older front-ends.
func LegacyProfile() ServerProfile {
	return ServerProfile{
		TableName: "games",
		Columns: map[string]string{
			ColID:         "id",
			ColMD5:        "checksum",
			ColFileSize:   "size",
			ColGameID:     "slug",
			ColExtra:      "variant",
			ColLanguage:   "lang",
			ColObjectName: "path",
		},
	}
}

// GetProfileByName returns the profile for name, defaulting to library.
func GetProfileByName(name string) ServerProfile {
	switch name {
	case "legacy":
		return LegacyProfile()
	default:
		return LibraryProfile()
	}
}
