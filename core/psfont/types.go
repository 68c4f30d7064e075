package psfont

// Limits of the Multiple Master model.
const (
	// MaxMMAxis is the maximum number of design axes.
	MaxMMAxis = 4
	// MaxMMDesigns is the maximum number of master designs.
	MaxMMDesigns = 16
	// MaxMMMapPoints is the maximum number of points in a design map.
	MaxMMMapPoints = 20
)

// Limits of the Private dictionary arrays.
const (
	MaxBlueValues = 14
	MaxOtherBlues = 10
	MaxStemSnaps  = 13
)

const (
	defaultLenIV           = 4
	defaultPassword        = 5839
	defaultBlueScale       = 0.039625
	defaultBlueShift       = 7
	defaultBlueFuzz        = 1
	defaultExpansionFactor = 0.06
)

// FontInfo holds the entries of a PostScript /FontInfo dictionary.
type FontInfo struct {
	Version            string  `json:"version"`
	Notice             string  `json:"notice"`
	FullName           string  `json:"full_name"`
	FamilyName         string  `json:"family_name"`
	Weight             string  `json:"weight"`
	ItalicAngle        float64 `json:"italic_angle"`
	IsFixedPitch       bool    `json:"is_fixed_pitch"`
	UnderlinePosition  float64 `json:"underline_position"`
	UnderlineThickness float64 `json:"underline_thickness"`
}

// Private holds the hinting values of a Type 1 /Private dictionary.
type Private struct {
	UniqueID int `json:"unique_id"`
	LenIV    int `json:"len_iv"`

	BlueValues       []int `json:"blue_values"`
	OtherBlues       []int `json:"other_blues"`
	FamilyBlues      []int `json:"family_blues"`
	FamilyOtherBlues []int `json:"family_other_blues"`

	BlueScale float64 `json:"blue_scale"`
	BlueShift int     `json:"blue_shift"`
	BlueFuzz  int     `json:"blue_fuzz"`

	StandardWidth  float64   `json:"standard_width"`
	StandardHeight float64   `json:"standard_height"`
	SnapWidths     []float64 `json:"snap_widths"`
	SnapHeights    []float64 `json:"snap_heights"`

	ForceBold       bool    `json:"force_bold"`
	RoundStemUp     bool    `json:"round_stem_up"`
	ExpansionFactor float64 `json:"expansion_factor"`
	LanguageGroup   int     `json:"language_group"`
	Password        int     `json:"password"`
	MinFeature      [2]int  `json:"min_feature"`
}

// DefaultPrivate returns a Private dictionary filled with the values a Type 1
// interpreter assumes when an entry is absent.
func DefaultPrivate() Private {
	return Private{
		LenIV:           defaultLenIV,
		BlueScale:       defaultBlueScale,
		BlueShift:       defaultBlueShift,
		BlueFuzz:        defaultBlueFuzz,
		ExpansionFactor: defaultExpansionFactor,
		Password:        defaultPassword,
		MinFeature:      [2]int{16, 16},
	}
}

func (p Private) clone() *Private {
	c := p
	c.BlueValues = append([]int(nil), p.BlueValues...)
	c.OtherBlues = append([]int(nil), p.OtherBlues...)
	c.FamilyBlues = append([]int(nil), p.FamilyBlues...)
	c.FamilyOtherBlues = append([]int(nil), p.FamilyOtherBlues...)
	c.SnapWidths = append([]float64(nil), p.SnapWidths...)
	c.SnapHeights = append([]float64(nil), p.SnapHeights...)
	return &c
}

// BlendFlags records which dictionary entries carry per-design values in a
// Multiple Master font.
type BlendFlags uint32

const (
	BlendUnderlinePosition BlendFlags = 1 << iota
	BlendUnderlineThickness
	BlendItalicAngle
	BlendBlueValues
	BlendOtherBlues
	BlendStandardWidth
	BlendStandardHeight
	BlendStemSnapWidths
	BlendStemSnapHeights
	BlendBlueScale
	BlendBlueShift
	BlendFamilyBlues
	BlendFamilyOtherBlues
	BlendForceBold
)

// Has reports whether all bits of flag are set.
func (f BlendFlags) Has(flag BlendFlags) bool {
	return f&flag == flag
}

// DesignMap is the piecewise-linear mapping of one axis from design units to
// normalized blend coordinates.
type DesignMap struct {
	DesignPoints []int     `json:"design_points"`
	BlendPoints  []float64 `json:"blend_points"`
}

// Blend describes the master designs of a Multiple Master font.
type Blend struct {
	NumDesigns int      `json:"num_designs"`
	NumAxis    int      `json:"num_axis"`
	AxisNames  []string `json:"axis_names"`

	// DesignPos holds, per design, its corner position on every axis.
	DesignPos [][]float64 `json:"design_pos"`
	// DesignMap holds one map per axis.
	DesignMap []DesignMap `json:"design_map"`

	WeightVector        []float64 `json:"weight_vector"`
	DefaultWeightVector []float64 `json:"default_weight_vector"`

	// FontInfos and Privates hold per-design values, indexed by design.
	FontInfos []*FontInfo `json:"font_infos,omitempty"`
	Privates  []*Private  `json:"privates,omitempty"`

	BlendBitflags BlendFlags `json:"blend_bitflags"`
}

// MMAxis describes a single design axis.
type MMAxis struct {
	Name    string `json:"name"`
	Minimum int    `json:"minimum"`
	Maximum int    `json:"maximum"`
}

// MultiMaster is the public description of a Multiple Master font.
type MultiMaster struct {
	NumAxis    int      `json:"num_axis"`
	NumDesigns int      `json:"num_designs"`
	Axis       []MMAxis `json:"axis"`
}

// CIDFaceDict is one entry of the /FDArray of a CID-keyed font.
type CIDFaceDict struct {
	Private            Private    `json:"private"`
	LenBuildCharArray  int        `json:"len_build_char_array"`
	ForceBoldThreshold float64    `json:"force_bold_threshold"`
	StrokeWidth        float64    `json:"stroke_width"`
	ExpansionFactor    float64    `json:"expansion_factor"`
	PaintType          int        `json:"paint_type"`
	FontType           int        `json:"font_type"`
	FontMatrix         [6]float64 `json:"font_matrix"`
	FontOffset         [2]float64 `json:"font_offset"`
	NumSubrs           int        `json:"num_subrs"`
	SubrmapOffset      int        `json:"subrmap_offset"`
	SDBytes            int        `json:"sd_bytes"`
}

// CIDFaceInfo is the top level dictionary of a CID-keyed font.
type CIDFaceInfo struct {
	CIDFontName  string        `json:"cid_font_name"`
	CIDVersion   float64       `json:"cid_version"`
	CIDFontType  int           `json:"cid_font_type"`
	Registry     string        `json:"registry"`
	Ordering     string        `json:"ordering"`
	Supplement   int           `json:"supplement"`
	FontInfo     FontInfo      `json:"font_info"`
	FontBBox     [4]float64    `json:"font_bbox"`
	UIDBase      int           `json:"uid_base"`
	NumXUID      int           `json:"num_xuid"`
	XUID         []int         `json:"xuid,omitempty"`
	CIDMapOffset int           `json:"cid_map_offset"`
	FDBytes      int           `json:"fd_bytes"`
	GDBytes      int           `json:"gd_bytes"`
	CIDCount     int           `json:"cid_count"`
	FontDicts    []CIDFaceDict `json:"font_dicts"`
	DataOffset   int           `json:"data_offset"`
}
