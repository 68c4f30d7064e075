package psfont

import "fmt"

// GetMultiMaster returns the axis description of a Multiple Master face.
func GetMultiMaster(face *Face) (*MultiMaster, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(MultiMasterService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.MultiMaster(face)
}

// SetMMDesignCoordinates selects an instance of a Multiple Master face by
// design coordinates, one per axis.
func SetMMDesignCoordinates(face *Face, coords []int) error {
	if err := checkFace(face); err != nil {
		return err
	}
	svc, ok := face.Driver.(MultiMasterService)
	if !ok {
		return ErrInvalidArgument
	}
	return svc.SetDesignCoordinates(face, coords)
}

// SetMMBlendCoordinates selects an instance of a Multiple Master face by
// normalized blend coordinates in [0,1].
func SetMMBlendCoordinates(face *Face, coords []float64) error {
	if err := checkFace(face); err != nil {
		return err
	}
	svc, ok := face.Driver.(MultiMasterService)
	if !ok {
		return ErrInvalidArgument
	}
	return svc.SetBlendCoordinates(face, coords)
}

// GetMMWeightVector returns the design weights of the current instance.
func GetMMWeightVector(face *Face) ([]float64, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(MultiMasterService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.WeightVector(face)
}

// GetMMBlend returns a snapshot of the blend description of face at its
// current instance.
func GetMMBlend(face *Face) (*Blend, error) {
	if err := checkFace(face); err != nil {
		return nil, err
	}
	svc, ok := face.Driver.(BlendService)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return svc.Blend(face)
}

// MultiMaster describes the axes of the blend. The range of each axis is
// given by the first and last point of its design map.
func (b *Blend) MultiMaster() (*MultiMaster, error) {
	if b == nil || b.NumAxis == 0 {
		return nil, ErrInvalidArgument
	}
	mm := &MultiMaster{
		NumAxis:    b.NumAxis,
		NumDesigns: b.NumDesigns,
		Axis:       make([]MMAxis, b.NumAxis),
	}
	for n := 0; n < b.NumAxis; n++ {
		axis := MMAxis{}
		if n < len(b.AxisNames) {
			axis.Name = b.AxisNames[n]
		}
		if n < len(b.DesignMap) {
			points := b.DesignMap[n].DesignPoints
			if len(points) > 0 {
				axis.Minimum = points[0]
				axis.Maximum = points[len(points)-1]
			}
		}
		mm.Axis[n] = axis
	}
	return mm, nil
}

// SetBlendCoordinates recomputes the weight vector. Coordinates are clamped to
// [0,1] and axes without a coordinate use 0.5.
func (b *Blend) SetBlendCoordinates(coords []float64) error {
	if b == nil || b.NumAxis == 0 {
		return ErrInvalidArgument
	}
	if len(coords) > b.NumAxis {
		return fmt.Errorf("%d coordinates for %d axes: %w", len(coords), b.NumAxis, ErrInvalidArgument)
	}
	weights := make([]float64, b.NumDesigns)
	for n := range weights {
		result := 1.0
		for m := 0; m < b.NumAxis; m++ {
			factor := 0.5
			if m < len(coords) {
				factor = clamp01(coords[m])
			}
			if n&(1<<m) != 0 {
				result *= factor
			} else {
				result *= 1 - factor
			}
		}
		weights[n] = result
	}
	b.WeightVector = weights
	return nil
}

// DesignToBlend maps design coordinates to blend coordinates with the design
// map of each axis. Values outside a map are clamped to its ends.
func (b *Blend) DesignToBlend(coords []int) ([]float64, error) {
	if b == nil || b.NumAxis == 0 {
		return nil, ErrInvalidArgument
	}
	if len(coords) != b.NumAxis {
		return nil, fmt.Errorf("%d coordinates for %d axes: %w", len(coords), b.NumAxis, ErrInvalidArgument)
	}
	if len(b.DesignMap) < b.NumAxis {
		return nil, fmt.Errorf("missing design map: %w", ErrInvalidArgument)
	}
	out := make([]float64, b.NumAxis)
	for n, design := range coords {
		v, err := b.DesignMap[n].blendValue(design)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", n, err)
		}
		out[n] = v
	}
	return out, nil
}

// SetDesignCoordinates converts coords with DesignToBlend and applies them.
func (b *Blend) SetDesignCoordinates(coords []int) error {
	blend, err := b.DesignToBlend(coords)
	if err != nil {
		return err
	}
	return b.SetBlendCoordinates(blend)
}

func (m DesignMap) blendValue(design int) (float64, error) {
	points := m.DesignPoints
	blends := m.BlendPoints
	if len(points) == 0 || len(points) != len(blends) {
		return 0, ErrInvalidArgument
	}

	before, after := -1, -1
	for p, d := range points {
		if design == d {
			return blends[p], nil
		}
		if design < d {
			after = p
			break
		}
		before = p
	}

	switch {
	case before < 0:
		return blends[0], nil
	case after < 0:
		return blends[len(blends)-1], nil
	}
	span := float64(points[after] - points[before])
	return blends[before] + (blends[after]-blends[before])*float64(design-points[before])/span, nil
}

// BlendedFontInfo interpolates the per-design FontInfo values with the current
// weight vector. Fields that are not blended come from the first design.
func (b *Blend) BlendedFontInfo() *FontInfo {
	if b == nil || len(b.FontInfos) == 0 || b.FontInfos[0] == nil {
		return nil
	}
	out := *b.FontInfos[0]
	if b.BlendBitflags.Has(BlendItalicAngle) {
		out.ItalicAngle = b.weigh(func(fi *FontInfo) float64 { return fi.ItalicAngle })
	}
	if b.BlendBitflags.Has(BlendUnderlinePosition) {
		out.UnderlinePosition = b.weigh(func(fi *FontInfo) float64 { return fi.UnderlinePosition })
	}
	if b.BlendBitflags.Has(BlendUnderlineThickness) {
		out.UnderlineThickness = b.weigh(func(fi *FontInfo) float64 { return fi.UnderlineThickness })
	}
	return &out
}

// BlendedPrivate interpolates the per-design Private values with the current
// weight vector.
func (b *Blend) BlendedPrivate() *Private {
	if b == nil || len(b.Privates) == 0 || b.Privates[0] == nil {
		return nil
	}
	out := b.Privates[0].clone()
	weigh := func(get func(*Private) float64) float64 {
		var sum float64
		for n, w := range b.WeightVector {
			if n < len(b.Privates) && b.Privates[n] != nil {
				sum += w * get(b.Privates[n])
			}
		}
		return sum
	}
	if b.BlendBitflags.Has(BlendStandardWidth) {
		out.StandardWidth = weigh(func(p *Private) float64 { return p.StandardWidth })
	}
	if b.BlendBitflags.Has(BlendStandardHeight) {
		out.StandardHeight = weigh(func(p *Private) float64 { return p.StandardHeight })
	}
	if b.BlendBitflags.Has(BlendBlueScale) {
		out.BlueScale = weigh(func(p *Private) float64 { return p.BlueScale })
	}
	if b.BlendBitflags.Has(BlendBlueValues) {
		for i := range out.BlueValues {
			out.BlueValues[i] = int(weigh(func(p *Private) float64 { return intAt(p.BlueValues, i) }) + 0.5)
		}
	}
	if b.BlendBitflags.Has(BlendOtherBlues) {
		for i := range out.OtherBlues {
			out.OtherBlues[i] = int(weigh(func(p *Private) float64 { return intAt(p.OtherBlues, i) }) + 0.5)
		}
	}
	return out
}

func (b *Blend) weigh(get func(*FontInfo) float64) float64 {
	var sum float64
	for n, w := range b.WeightVector {
		if n < len(b.FontInfos) && b.FontInfos[n] != nil {
			sum += w * get(b.FontInfos[n])
		}
	}
	return sum
}

func (b *Blend) clone() *Blend {
	c := *b
	c.AxisNames = append([]string(nil), b.AxisNames...)
	c.WeightVector = append([]float64(nil), b.WeightVector...)
	c.DefaultWeightVector = append([]float64(nil), b.DefaultWeightVector...)
	c.DesignPos = make([][]float64, len(b.DesignPos))
	for i, p := range b.DesignPos {
		c.DesignPos[i] = append([]float64(nil), p...)
	}
	c.DesignMap = make([]DesignMap, len(b.DesignMap))
	for i, m := range b.DesignMap {
		c.DesignMap[i] = DesignMap{
			DesignPoints: append([]int(nil), m.DesignPoints...),
			BlendPoints:  append([]float64(nil), m.BlendPoints...),
		}
	}
	c.FontInfos = make([]*FontInfo, len(b.FontInfos))
	for i, fi := range b.FontInfos {
		if fi != nil {
			cp := *fi
			c.FontInfos[i] = &cp
		}
	}
	c.Privates = make([]*Private, len(b.Privates))
	for i, p := range b.Privates {
		if p != nil {
			c.Privates[i] = p.clone()
		}
	}
	return &c
}

func intAt(v []int, i int) float64 {
	if i < len(v) {
		return float64(v[i])
	}
	return 0
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
