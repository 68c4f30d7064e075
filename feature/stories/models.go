package stories

// Report contains the results of a story library scan.
type Report struct {
	TotalCatalogued int `json:"total_catalogued"`
	TotalFound      int `json:"total_found"`

	// UnknownFiles are stored objects that match no catalog record.
	UnknownFiles []string `json:"unknown_files"`

	// MissingFiles are registered stories without a stored file.
	MissingFiles []string `json:"missing_files"`

	// UnregisteredFiles are catalogued stored objects without a DB row.
	UnregisteredFiles []string `json:"unregistered_files"`

	FieldMismatches []string `json:"field_mismatches,omitempty"`
	GeneratedAt     string   `json:"generated_at"`
	ExecutionTime   string   `json:"execution_time"`
}

// StoryDetailReport contains the integrity check of a single story.
type StoryDetailReport struct {
	Key             string   `json:"key"`
	GameID          string   `json:"game_id"`
	Description     string   `json:"description,omitempty"`
	Extra           string   `json:"extra,omitempty"`
	Language        string   `json:"language,omitempty"`
	Objects         []string `json:"objects,omitempty"`
	InCatalog       bool     `json:"in_catalog"`
	InStorage       bool     `json:"in_storage"`
	InDB            bool     `json:"in_db"`
	IntegrityStatus string   `json:"integrity_status"` // "PASS", "FAIL", "WARNING"
	Mismatches      []string `json:"mismatches,omitempty"`
}
