package psfont

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/postscript"
)

// CIDDriver loads CID-keyed Type 1 font resources. The resource is executed
// up to StartData; the binary glyph data after it is located but not decoded.
type CIDDriver struct{}

type cidFace struct {
	info CIDFaceInfo
}

// Name implements Driver.
func (CIDDriver) Name() string { return "cid" }

// Probe implements Driver.
func (CIDDriver) Probe(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%!PS-Adobe-3.0 Resource-CIDFont"))
}

// Load implements Driver.
func (CIDDriver) Load(data []byte) (*Face, error) {
	intp, err := runHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	cd, err := cidFontDict(intp)
	if err != nil {
		return nil, err
	}
	name, ok := psText(cd["CIDFontName"])
	if !ok {
		return nil, fmt.Errorf("missing /CIDFontName: %w", ErrInvalidFileFormat)
	}

	info := CIDFaceInfo{CIDFontName: name}
	if fi, ok := psDict(cd, "FontInfo"); ok {
		info.FontInfo = fontInfo(fi)
	}
	info.CIDVersion = dictFloat(cd, "CIDFontVersion")
	info.CIDFontType = dictInt(cd, "CIDFontType")
	info.UIDBase = dictInt(cd, "UIDBase")
	info.CIDMapOffset = dictInt(cd, "CIDMapOffset")
	info.FDBytes = dictInt(cd, "FDBytes")
	info.GDBytes = dictInt(cd, "GDBytes")
	info.CIDCount = dictInt(cd, "CIDCount")
	if xuid, ok := psInts(cd["XUID"]); ok {
		info.XUID = xuid
		info.NumXUID = len(xuid)
	}
	if bbox, ok := psFloats(cd["FontBBox"]); ok && len(bbox) == 4 {
		copy(info.FontBBox[:], bbox)
	}
	if sys, ok := psDict(cd, "CIDSystemInfo"); ok {
		info.Registry = dictText(sys, "Registry")
		info.Ordering = dictText(sys, "Ordering")
		info.Supplement = dictInt(sys, "Supplement")
	}

	fds, _ := psItems(cd["FDArray"])
	for _, fd := range fds {
		d, ok := fd.(postscript.Dict)
		if !ok {
			return nil, fmt.Errorf("bad /FDArray entry: %w", ErrInvalidFileFormat)
		}
		info.FontDicts = append(info.FontDicts, parseFontDict(d))
	}
	if len(info.FontDicts) == 0 {
		return nil, fmt.Errorf("empty /FDArray: %w", ErrInvalidFileFormat)
	}
	info.DataOffset = dataOffset(data)

	face := &Face{
		PostScriptName: info.CIDFontName,
		FamilyName:     info.FontInfo.FamilyName,
		StyleName:      styleName(info.FontInfo),
		NumGlyphs:      info.CIDCount,
		Flags:          FaceFlagCIDKeyed,
		data:           &cidFace{info: info},
	}
	if face.FamilyName == "" {
		face.FamilyName = info.CIDFontName
	}
	if info.FontInfo.IsFixedPitch {
		face.Flags |= FaceFlagFixedWidth
	}
	return face, nil
}

// dataOffset returns where the binary data after StartData begins, or 0.
func dataOffset(data []byte) int {
	i := bytes.Index(data, []byte("StartData"))
	if i < 0 {
		return 0
	}
	off := i + len("StartData") + 1
	if off > len(data) {
		return 0
	}
	return off
}

func parseFontDict(fd postscript.Dict) CIDFaceDict {
	d := CIDFaceDict{Private: DefaultPrivate(), FontType: 1}
	if m, ok := psFloats(fd["FontMatrix"]); ok && len(m) == 6 {
		copy(d.FontMatrix[:], m)
	}
	if m, ok := psFloats(fd["FontOffset"]); ok && len(m) == 2 {
		copy(d.FontOffset[:], m)
	}
	if n, ok := psInt(fd["PaintType"]); ok {
		d.PaintType = n
	}
	if n, ok := psInt(fd["FontType"]); ok {
		d.FontType = n
	}
	if f, ok := psFloat(fd["StrokeWidth"]); ok {
		d.StrokeWidth = f
	}

	priv, ok := psDict(fd, "Private")
	if !ok {
		d.ExpansionFactor = d.Private.ExpansionFactor
		return d
	}
	d.Private = privateDict(priv)
	d.ExpansionFactor = d.Private.ExpansionFactor
	d.NumSubrs = dictInt(priv, "SubrCount")
	d.SubrmapOffset = dictInt(priv, "SubrMapOffset")
	d.SDBytes = dictInt(priv, "SDBytes")
	d.LenBuildCharArray = dictInt(priv, "lenBuildCharArray")
	d.ForceBoldThreshold = dictFloat(priv, "ForceBoldThreshold")
	return d
}

func cidData(face *Face) (*cidFace, error) {
	cf, ok := face.data.(*cidFace)
	if !ok {
		return nil, ErrInvalidFaceHandle
	}
	return cf, nil
}

// FontInfo implements PSInfoService.
func (CIDDriver) FontInfo(face *Face) (*FontInfo, error) {
	cf, err := cidData(face)
	if err != nil {
		return nil, err
	}
	fi := cf.info.FontInfo
	return &fi, nil
}

// HasGlyphNames implements PSInfoService. CID-keyed glyphs have no names.
func (CIDDriver) HasGlyphNames(*Face) bool { return false }

// CIDInfo implements CIDInfoService.
func (CIDDriver) CIDInfo(face *Face) (*CIDFaceInfo, error) {
	cf, err := cidData(face)
	if err != nil {
		return nil, err
	}
	info := cf.info
	info.XUID = append([]int(nil), cf.info.XUID...)
	info.FontDicts = make([]CIDFaceDict, len(cf.info.FontDicts))
	for i, fd := range cf.info.FontDicts {
		fd.Private = *fd.Private.clone()
		info.FontDicts[i] = fd
	}
	return &info, nil
}
