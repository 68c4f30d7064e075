package catalog

import "story-manager/feature/catalog/frotz"

// Status values shared by catalog and story reports.
const (
	StatusPass    = "PASS"
	StatusWarning = "WARNING"
	StatusFail    = "FAIL"
)

// GameSummary is one row of the catalog listing.
type GameSummary struct {
	GameID       string `json:"id"`
	Description  string `json:"description"`
	Fingerprints int    `json:"fingerprints"`
}

// GameDetail is a descriptor with all of its fingerprint records.
type GameDetail struct {
	frotz.PlainGameDescriptor
	Fingerprints []frotz.GameDescription `json:"fingerprints"`
}

// ValidationReport is the outcome of validating the effective table.
type ValidationReport struct {
	Status        string          `json:"status"`
	OverlayFound  bool            `json:"overlay_found"`
	Games         int             `json:"games"`
	Fingerprints  int             `json:"fingerprints"`
	Problems      []frotz.Problem `json:"problems"`
	ExecutionTime string          `json:"execution_time"`
}
