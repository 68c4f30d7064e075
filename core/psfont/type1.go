package psfont

import (
	"bytes"
	"fmt"
	"strings"

	"seehuhn.de/go/postscript"
	pstype1 "seehuhn.de/go/postscript/type1"
)

// Type1Driver loads PFA and PFB fonts, including Multiple Master fonts.
type Type1Driver struct{}

type type1Face struct {
	info    FontInfo
	private Private
	blend   *Blend
}

// Name implements Driver.
func (Type1Driver) Name() string { return "type1" }

// Probe implements Driver.
func (Type1Driver) Probe(data []byte) bool {
	if len(data) >= 2 && data[0] == 0x80 && data[1] == 0x01 {
		return true
	}
	return bytes.HasPrefix(data, []byte("%!PS-AdobeFont")) || bytes.HasPrefix(data, []byte("%!FontType1"))
}

// Load implements Driver. Font programs are read with the type1 package. The
// blend description of Multiple Master fonts comes from the clear-text header,
// which is also used on its own when the program cannot be decoded.
func (Type1Driver) Load(data []byte) (*Face, error) {
	text, err := cleartext(data)
	if err != nil {
		return nil, err
	}
	intp, err := runHeader(bytes.NewReader(text))
	if err != nil {
		return nil, err
	}
	fd, ok := topDict(intp)
	if !ok {
		return nil, fmt.Errorf("no font dictionary: %w", ErrInvalidFileFormat)
	}
	info, _ := psDict(fd, "FontInfo")

	font, readErr := pstype1.Read(bytes.NewReader(data))
	if readErr != nil {
		if _, ok := lookup("BlendAxisTypes", info, fd); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, readErr)
		}
		font = nil
	}

	tf := &type1Face{private: DefaultPrivate()}
	face := &Face{Flags: FaceFlagGlyphNames, data: tf}

	if font != nil {
		fillFromProgram(face, tf, font)
	} else {
		tf.info = fontInfo(info)
		face.PostScriptName = dictText(fd, "FontName")
		face.FamilyName = tf.info.FamilyName
	}
	if id, ok := psInt(fd["UniqueID"]); ok {
		tf.private.UniqueID = id
	}
	if face.FamilyName == "" {
		face.FamilyName = face.PostScriptName
	}
	face.StyleName = styleName(tf.info)
	if tf.info.IsFixedPitch {
		face.Flags |= FaceFlagFixedWidth
	}

	blend, err := parseBlend(fd, info, tf.info, tf.private)
	if err != nil {
		return nil, err
	}
	if blend != nil {
		tf.blend = blend
		face.Flags |= FaceFlagMultipleMasters
	}
	return face, nil
}

func fillFromProgram(face *Face, tf *type1Face, font *pstype1.Font) {
	if fi := font.FontInfo; fi != nil {
		face.PostScriptName = fi.FontName
		face.FamilyName = fi.FamilyName
		tf.info = FontInfo{
			Version:            fi.Version,
			Notice:             fi.Notice,
			FullName:           fi.FullName,
			FamilyName:         fi.FamilyName,
			Weight:             fi.Weight,
			ItalicAngle:        fi.ItalicAngle,
			IsFixedPitch:       fi.IsFixedPitch,
			UnderlinePosition:  float64(fi.UnderlinePosition),
			UnderlineThickness: float64(fi.UnderlineThickness),
		}
	}
	if font.Outlines == nil {
		return
	}
	face.NumGlyphs = len(font.Glyphs)
	if p := font.Private; p != nil {
		tf.private.BlueValues = toInts(p.BlueValues)
		tf.private.OtherBlues = toInts(p.OtherBlues)
		tf.private.BlueScale = p.BlueScale
		tf.private.BlueShift = int(p.BlueShift)
		tf.private.BlueFuzz = int(p.BlueFuzz)
		tf.private.StandardHeight = p.StdHW
		tf.private.StandardWidth = p.StdVW
		tf.private.ForceBold = p.ForceBold
	}
}

func toInts[T ~int16 | ~int32 | ~int | ~int64](v []T) []int {
	if len(v) == 0 {
		return nil
	}
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

// styleName derives the style from the full name, falling back to the weight.
func styleName(fi FontInfo) string {
	if fi.FamilyName != "" && strings.HasPrefix(fi.FullName, fi.FamilyName) {
		if s := strings.TrimSpace(strings.TrimPrefix(fi.FullName, fi.FamilyName)); s != "" {
			return s
		}
	}
	if fi.Weight != "" {
		return fi.Weight
	}
	return "Regular"
}

// parseBlend builds the Blend of a Multiple Master font from the font and
// FontInfo dictionaries. It returns nil when there is no /BlendAxisTypes.
func parseBlend(fd, info postscript.Dict, base FontInfo, basePrivate Private) (*Blend, error) {
	axesV, ok := lookup("BlendAxisTypes", info, fd)
	if !ok {
		return nil, nil
	}
	axes, ok := psItems(axesV)
	if !ok || len(axes) == 0 || len(axes) > MaxMMAxis {
		return nil, fmt.Errorf("bad /BlendAxisTypes: %w", ErrInvalidFileFormat)
	}
	b := &Blend{NumAxis: len(axes)}
	for _, it := range axes {
		name, _ := psText(it)
		b.AxisNames = append(b.AxisNames, name)
	}

	if v, ok := lookup("BlendDesignPositions", info, fd); ok {
		positions, ok := psItems(v)
		if !ok || len(positions) == 0 || len(positions) > MaxMMDesigns {
			return nil, fmt.Errorf("bad /BlendDesignPositions: %w", ErrInvalidFileFormat)
		}
		for _, it := range positions {
			pos, ok := psFloats(it)
			if !ok || len(pos) != b.NumAxis {
				return nil, fmt.Errorf("bad design position: %w", ErrInvalidFileFormat)
			}
			b.DesignPos = append(b.DesignPos, pos)
		}
		b.NumDesigns = len(b.DesignPos)
	} else {
		b.NumDesigns = 1 << b.NumAxis
		for n := 0; n < b.NumDesigns; n++ {
			pos := make([]float64, b.NumAxis)
			for m := range pos {
				if n&(1<<m) != 0 {
					pos[m] = 1
				}
			}
			b.DesignPos = append(b.DesignPos, pos)
		}
	}

	mapV, _ := lookup("BlendDesignMap", info, fd)
	maps, ok := psItems(mapV)
	if !ok || len(maps) != b.NumAxis {
		return nil, fmt.Errorf("bad /BlendDesignMap: %w", ErrInvalidFileFormat)
	}
	for _, axis := range maps {
		pairs, ok := psItems(axis)
		if !ok || len(pairs) == 0 || len(pairs) > MaxMMMapPoints {
			return nil, fmt.Errorf("bad design map: %w", ErrInvalidFileFormat)
		}
		var dm DesignMap
		for _, pair := range pairs {
			p, ok := psFloats(pair)
			if !ok || len(p) != 2 {
				return nil, fmt.Errorf("bad design map point: %w", ErrInvalidFileFormat)
			}
			dm.DesignPoints = append(dm.DesignPoints, int(p[0]))
			dm.BlendPoints = append(dm.BlendPoints, p[1])
		}
		b.DesignMap = append(b.DesignMap, dm)
	}

	if v, ok := lookup("WeightVector", fd, info); ok {
		w, ok := psFloats(v)
		if !ok || len(w) != b.NumDesigns {
			return nil, fmt.Errorf("bad /WeightVector: %w", ErrInvalidFileFormat)
		}
		b.WeightVector = w
	} else if err := b.SetBlendCoordinates(nil); err != nil {
		return nil, err
	}
	b.DefaultWeightVector = append([]float64(nil), b.WeightVector...)

	b.FontInfos = make([]*FontInfo, b.NumDesigns)
	b.Privates = make([]*Private, b.NumDesigns)
	for n := 0; n < b.NumDesigns; n++ {
		fi := base
		b.FontInfos[n] = &fi
		b.Privates[n] = basePrivate.clone()
	}
	if blend, ok := psDict(fd, "Blend"); ok {
		if d, ok := psDict(blend, "FontInfo"); ok {
			b.blendFontInfo(d)
		}
		if d, ok := psDict(blend, "Private"); ok {
			b.blendPrivate(d)
		}
	}
	return b, nil
}

// perDesign returns key as one number per design.
func (b *Blend) perDesign(d postscript.Dict, key string) ([]float64, bool) {
	f, ok := psFloats(d[postscript.Name(key)])
	if !ok || len(f) != b.NumDesigns {
		return nil, false
	}
	return f, true
}

// perDesignArrays returns key as one array per design.
func (b *Blend) perDesignArrays(d postscript.Dict, key string) ([][]float64, bool) {
	items, ok := psItems(d[postscript.Name(key)])
	if !ok || len(items) != b.NumDesigns {
		return nil, false
	}
	out := make([][]float64, b.NumDesigns)
	for n, it := range items {
		f, ok := psFloats(it)
		if !ok {
			return nil, false
		}
		out[n] = f
	}
	return out, true
}

func (b *Blend) blendFontInfo(d postscript.Dict) {
	fields := []struct {
		key  string
		flag BlendFlags
		set  func(*FontInfo, float64)
	}{
		{"ItalicAngle", BlendItalicAngle, func(fi *FontInfo, v float64) { fi.ItalicAngle = v }},
		{"UnderlinePosition", BlendUnderlinePosition, func(fi *FontInfo, v float64) { fi.UnderlinePosition = v }},
		{"UnderlineThickness", BlendUnderlineThickness, func(fi *FontInfo, v float64) { fi.UnderlineThickness = v }},
	}
	for _, f := range fields {
		values, ok := b.perDesign(d, f.key)
		if !ok {
			continue
		}
		for n, v := range values {
			f.set(b.FontInfos[n], v)
		}
		b.BlendBitflags |= f.flag
	}
}

func (b *Blend) blendPrivate(d postscript.Dict) {
	arrays := []struct {
		key  string
		flag BlendFlags
		max  int
		set  func(*Private, []float64)
	}{
		{"BlueValues", BlendBlueValues, MaxBlueValues, func(p *Private, v []float64) { p.BlueValues = floatsToInts(v) }},
		{"OtherBlues", BlendOtherBlues, MaxOtherBlues, func(p *Private, v []float64) { p.OtherBlues = floatsToInts(v) }},
		{"FamilyBlues", BlendFamilyBlues, MaxBlueValues, func(p *Private, v []float64) { p.FamilyBlues = floatsToInts(v) }},
		{"FamilyOtherBlues", BlendFamilyOtherBlues, MaxOtherBlues, func(p *Private, v []float64) { p.FamilyOtherBlues = floatsToInts(v) }},
		{"StemSnapH", BlendStemSnapHeights, MaxStemSnaps, func(p *Private, v []float64) { p.SnapHeights = v }},
		{"StemSnapV", BlendStemSnapWidths, MaxStemSnaps, func(p *Private, v []float64) { p.SnapWidths = v }},
		{"StdHW", BlendStandardHeight, 1, func(p *Private, v []float64) { p.StandardHeight = v[0] }},
		{"StdVW", BlendStandardWidth, 1, func(p *Private, v []float64) { p.StandardWidth = v[0] }},
	}
	for _, a := range arrays {
		values, ok := b.perDesignArrays(d, a.key)
		if !ok || !validLengths(values, a.max) {
			continue
		}
		for n, v := range values {
			a.set(b.Privates[n], v)
		}
		b.BlendBitflags |= a.flag
	}

	if values, ok := b.perDesign(d, "BlueScale"); ok {
		for n, v := range values {
			b.Privates[n].BlueScale = v
		}
		b.BlendBitflags |= BlendBlueScale
	}
	if values, ok := b.perDesign(d, "BlueShift"); ok {
		for n, v := range values {
			b.Privates[n].BlueShift = int(v)
		}
		b.BlendBitflags |= BlendBlueShift
	}
	if items, ok := psItems(d["ForceBold"]); ok && len(items) == b.NumDesigns {
		for n, it := range items {
			b.Privates[n].ForceBold, _ = psBool(it)
		}
		b.BlendBitflags |= BlendForceBold
	}
}

func validLengths(values [][]float64, max int) bool {
	for _, v := range values {
		if len(v) == 0 || len(v) > max {
			return false
		}
	}
	return true
}

func floatsToInts(v []float64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

func type1Data(face *Face) (*type1Face, error) {
	tf, ok := face.data.(*type1Face)
	if !ok {
		return nil, ErrInvalidFaceHandle
	}
	return tf, nil
}

func type1Blend(face *Face) (*Blend, error) {
	tf, err := type1Data(face)
	if err != nil {
		return nil, err
	}
	if tf.blend == nil {
		return nil, ErrInvalidArgument
	}
	return tf.blend, nil
}

// MultiMaster implements MultiMasterService.
func (Type1Driver) MultiMaster(face *Face) (*MultiMaster, error) {
	b, err := type1Blend(face)
	if err != nil {
		return nil, err
	}
	face.mu.Lock()
	defer face.mu.Unlock()
	return b.MultiMaster()
}

// SetDesignCoordinates implements MultiMasterService.
func (Type1Driver) SetDesignCoordinates(face *Face, coords []int) error {
	b, err := type1Blend(face)
	if err != nil {
		return err
	}
	face.mu.Lock()
	defer face.mu.Unlock()
	return b.SetDesignCoordinates(coords)
}

// SetBlendCoordinates implements MultiMasterService.
func (Type1Driver) SetBlendCoordinates(face *Face, coords []float64) error {
	b, err := type1Blend(face)
	if err != nil {
		return err
	}
	face.mu.Lock()
	defer face.mu.Unlock()
	return b.SetBlendCoordinates(coords)
}

// WeightVector implements MultiMasterService.
func (Type1Driver) WeightVector(face *Face) ([]float64, error) {
	b, err := type1Blend(face)
	if err != nil {
		return nil, err
	}
	face.mu.Lock()
	defer face.mu.Unlock()
	return append([]float64(nil), b.WeightVector...), nil
}

// Blend returns a snapshot of the blend description of face.
func (Type1Driver) Blend(face *Face) (*Blend, error) {
	b, err := type1Blend(face)
	if err != nil {
		return nil, err
	}
	face.mu.Lock()
	defer face.mu.Unlock()
	return b.clone(), nil
}

// FontInfo implements PSInfoService.
func (Type1Driver) FontInfo(face *Face) (*FontInfo, error) {
	tf, err := type1Data(face)
	if err != nil {
		return nil, err
	}
	fi := tf.info
	return &fi, nil
}

// HasGlyphNames implements PSInfoService.
func (Type1Driver) HasGlyphNames(*Face) bool { return true }

// Private implements PSPrivateService.
func (Type1Driver) Private(face *Face) (*Private, error) {
	tf, err := type1Data(face)
	if err != nil {
		return nil, err
	}
	return tf.private.clone(), nil
}
