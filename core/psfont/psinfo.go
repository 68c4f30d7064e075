package psfont

// GetPSFontInfo returns a copy of the FontInfo dictionary of face.
func GetPSFontInfo(face *Face) (*FontInfo, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(PSInfoService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.FontInfo(face)
}

// GetPSFontPrivate returns a copy of the Private dictionary of face.
func GetPSFontPrivate(face *Face) (*Private, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(PSPrivateService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.Private(face)
}

// HasPSGlyphNames reports whether the glyphs of face are addressed by
// PostScript name. It is false for a nil face or a driver without PS info.
func HasPSGlyphNames(face *Face) bool {
	if checkFace(face) != nil {
		return false
	}
	svc, ok := face.Driver.(PSInfoService)
	if !ok {
		return false
	}
	return svc.HasGlyphNames(face)
}

// GetCIDFaceInfo returns the top level dictionary of a CID-keyed face.
func GetCIDFaceInfo(face *Face) (*CIDFaceInfo, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(CIDInfoService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.CIDInfo(face)
}
