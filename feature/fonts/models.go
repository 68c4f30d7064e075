package fonts

import (
	"time"

	"story-manager/core/psfont"
)

// FontSummary is one row of the font listing.
type FontSummary struct {
	Name         string    `json:"name"`
	Object       string    `json:"object"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// FontReport describes a font. Capabilities the font's driver does not
// provide are null.
type FontReport struct {
	Name           string `json:"name"`
	Driver         string `json:"driver"`
	FamilyName     string `json:"family_name"`
	StyleName      string `json:"style_name"`
	PostScriptName string `json:"postscript_name"`
	NumGlyphs      int    `json:"num_glyphs"`
	FixedWidth     bool   `json:"fixed_width"`
	CIDKeyed       bool   `json:"cid_keyed"`

	HasPSGlyphNames bool                `json:"has_ps_glyph_names"`
	FontInfo        *psfont.FontInfo    `json:"font_info"`
	Private         *psfont.Private     `json:"private"`
	MultiMaster     *psfont.MultiMaster `json:"multi_master"`
	CID             *psfont.CIDFaceInfo `json:"cid"`
}

// BlendReport is a Multiple Master font at a design position: its weight
// vector and the FontInfo and Private values interpolated with it.
type BlendReport struct {
	Name         string           `json:"name"`
	Design       []int            `json:"design"`
	WeightVector []float64        `json:"weight_vector"`
	FontInfo     *psfont.FontInfo `json:"font_info"`
	Private      *psfont.Private  `json:"private"`
}
