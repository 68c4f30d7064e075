package psfont

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// SFNTDriver loads TrueType and OpenType fonts. It provides no PostScript
// dictionaries and no Multiple Master service.
type SFNTDriver struct{}

// Name implements Driver.
func (SFNTDriver) Name() string { return "sfnt" }

// Probe implements Driver.
func (SFNTDriver) Probe(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	tag := data[:4]
	return bytes.Equal(tag, []byte{0, 1, 0, 0}) ||
		bytes.Equal(tag, []byte("OTTO")) ||
		bytes.Equal(tag, []byte("true"))
}

// Load implements Driver.
func (SFNTDriver) Load(data []byte) (*Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}

	var buf sfnt.Buffer
	name := func(id sfnt.NameID) string {
		s, err := f.Name(&buf, id)
		if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
			return ""
		}
		return s
	}

	face := &Face{
		FamilyName:     name(sfnt.NameIDFamily),
		StyleName:      name(sfnt.NameIDSubfamily),
		PostScriptName: name(sfnt.NameIDPostScript),
		NumGlyphs:      f.NumGlyphs(),
		data:           f,
	}
	if post := f.PostTable(); post != nil && post.IsFixedPitch {
		face.Flags |= FaceFlagFixedWidth
	}
	if face.NumGlyphs > 0 {
		if g, err := f.GlyphName(&buf, 0); err == nil && g != "" {
			face.Flags |= FaceFlagGlyphNames
		}
	}
	return face, nil
}
