package psfont

import (
	"bytes"
	"fmt"
	"io"

	"seehuhn.de/go/postscript"
	"seehuhn.de/go/postscript/pfb"
)

const (
	// maxHeaderSize bounds the clear-text PostScript executed per font.
	maxHeaderSize = 1 << 20
	// maxHeaderOps bounds the operators executed per font header.
	maxHeaderOps = 1_000_000
)

// startData ends execution at the binary section of a CID font resource.
var startData = postscript.Procedure{
	postscript.Operator("pop"),
	postscript.Operator("pop"),
	postscript.Operator("stop"),
}

// runHeader executes the clear-text part of a font program and returns the
// interpreter holding the resulting dictionaries.
func runHeader(r io.Reader) (*postscript.Interpreter, error) {
	intp := postscript.NewInterpreter()
	intp.MaxOps = maxHeaderOps
	intp.UserDict["StartData"] = startData
	if err := intp.Execute(io.LimitReader(r, maxHeaderSize)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}
	return intp, nil
}

// cleartext returns the program text before eexec. PFB files are decoded
// first.
func cleartext(data []byte) ([]byte, error) {
	var r io.Reader = bytes.NewReader(data)
	if len(data) > 0 && data[0] == 0x80 {
		r = pfb.Decode(r)
	}
	buf, err := io.ReadAll(io.LimitReader(r, maxHeaderSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}
	if i := bytes.Index(buf, []byte("eexec")); i >= 0 {
		buf = bytes.TrimRight(buf[:i], " \t\r\n")
		return bytes.TrimSuffix(buf, []byte("currentfile")), nil
	}
	if len(buf) > maxHeaderSize {
		return nil, fmt.Errorf("clear text exceeds %d bytes: %w", maxHeaderSize, ErrInvalidFileFormat)
	}
	return buf, nil
}

// topDict returns the font dictionary of a Type 1 header: the innermost
// dictionary still open when eexec is reached, the one left on the operand
// stack by "currentdict end", or a defined font.
func topDict(intp *postscript.Interpreter) (postscript.Dict, bool) {
	if n := len(intp.DictStack); n > 2 {
		return intp.DictStack[n-1], true
	}
	for i := len(intp.Stack) - 1; i >= 0; i-- {
		if d, ok := intp.Stack[i].(postscript.Dict); ok {
			return d, true
		}
	}
	for _, v := range intp.FontDirectory {
		if d, ok := v.(postscript.Dict); ok {
			return d, true
		}
	}
	return nil, false
}

// cidFontDict returns the single dictionary registered as a CIDFont resource.
func cidFontDict(intp *postscript.Interpreter) (postscript.Dict, error) {
	fonts, _ := intp.Resources["CIDFont"].(postscript.Dict)
	var out postscript.Dict
	for _, v := range fonts {
		d, ok := v.(postscript.Dict)
		if !ok {
			continue
		}
		if out != nil {
			return nil, fmt.Errorf("more than one CIDFont resource: %w", ErrInvalidFileFormat)
		}
		out = d
	}
	if out == nil {
		return nil, fmt.Errorf("no CIDFont resource: %w", ErrInvalidFileFormat)
	}
	return out, nil
}

func psFloat(o postscript.Object) (float64, bool) {
	switch v := o.(type) {
	case postscript.Integer:
		return float64(v), true
	case postscript.Real:
		return float64(v), true
	}
	return 0, false
}

func psInt(o postscript.Object) (int, bool) {
	f, ok := psFloat(o)
	return int(f), ok
}

func psBool(o postscript.Object) (bool, bool) {
	b, ok := o.(postscript.Boolean)
	return bool(b), ok
}

func psText(o postscript.Object) (string, bool) {
	switch v := o.(type) {
	case postscript.String:
		return string(v), true
	case postscript.Name:
		return string(v), true
	}
	return "", false
}

// psItems returns the elements of an array or a procedure body.
func psItems(o postscript.Object) ([]postscript.Object, bool) {
	switch v := o.(type) {
	case postscript.Array:
		return v, true
	case postscript.Procedure:
		return v, true
	}
	return nil, false
}

func psFloats(o postscript.Object) ([]float64, bool) {
	items, ok := psItems(o)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, ok := psFloat(it)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func psInts(o postscript.Object) ([]int, bool) {
	f, ok := psFloats(o)
	if !ok {
		return nil, false
	}
	return floatsToInts(f), true
}

func psDict(d postscript.Dict, key string) (postscript.Dict, bool) {
	sub, ok := d[postscript.Name(key)].(postscript.Dict)
	return sub, ok
}

// lookup returns key from the first dictionary that has it.
func lookup(key string, dicts ...postscript.Dict) (postscript.Object, bool) {
	for _, d := range dicts {
		if v, ok := d[postscript.Name(key)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func dictText(d postscript.Dict, key string) string {
	s, _ := psText(d[postscript.Name(key)])
	return s
}

func dictFloat(d postscript.Dict, key string) float64 {
	f, _ := psFloat(d[postscript.Name(key)])
	return f
}

func dictInt(d postscript.Dict, key string) int {
	n, _ := psInt(d[postscript.Name(key)])
	return n
}

// fontInfo reads a FontInfo dictionary.
func fontInfo(d postscript.Dict) FontInfo {
	fi := FontInfo{
		Version:            dictText(d, "version"),
		Notice:             dictText(d, "Notice"),
		FullName:           dictText(d, "FullName"),
		FamilyName:         dictText(d, "FamilyName"),
		Weight:             dictText(d, "Weight"),
		ItalicAngle:        dictFloat(d, "ItalicAngle"),
		UnderlinePosition:  dictFloat(d, "UnderlinePosition"),
		UnderlineThickness: dictFloat(d, "UnderlineThickness"),
	}
	fi.IsFixedPitch, _ = psBool(d["isFixedPitch"])
	return fi
}

// privateDict reads a clear-text Private dictionary.
func privateDict(d postscript.Dict) Private {
	p := DefaultPrivate()
	ints := func(key string, max int) []int {
		out, ok := psInts(d[postscript.Name(key)])
		if !ok || len(out) > max {
			return nil
		}
		return out
	}
	floats := func(key string, max int) []float64 {
		out, ok := psFloats(d[postscript.Name(key)])
		if !ok || len(out) > max {
			return nil
		}
		return out
	}
	num := func(key string, dst *float64) {
		if f, ok := psFloat(d[postscript.Name(key)]); ok {
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if n, ok := psInt(d[postscript.Name(key)]); ok {
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if b, ok := psBool(d[postscript.Name(key)]); ok {
			*dst = b
		}
	}

	p.BlueValues = ints("BlueValues", MaxBlueValues)
	p.OtherBlues = ints("OtherBlues", MaxOtherBlues)
	p.FamilyBlues = ints("FamilyBlues", MaxBlueValues)
	p.FamilyOtherBlues = ints("FamilyOtherBlues", MaxOtherBlues)
	p.SnapWidths = floats("StemSnapV", MaxStemSnaps)
	p.SnapHeights = floats("StemSnapH", MaxStemSnaps)
	if v := floats("StdHW", 1); len(v) == 1 {
		p.StandardHeight = v[0]
	}
	if v := floats("StdVW", 1); len(v) == 1 {
		p.StandardWidth = v[0]
	}
	if v := ints("MinFeature", 2); len(v) == 2 {
		p.MinFeature = [2]int{v[0], v[1]}
	}
	num("BlueScale", &p.BlueScale)
	num("ExpansionFactor", &p.ExpansionFactor)
	integer("BlueShift", &p.BlueShift)
	integer("BlueFuzz", &p.BlueFuzz)
	integer("UniqueID", &p.UniqueID)
	integer("lenIV", &p.LenIV)
	integer("LanguageGroup", &p.LanguageGroup)
	integer("password", &p.Password)
	boolean("ForceBold", &p.ForceBold)
	boolean("RoundStemUp", &p.RoundStemUp)
	return p
}
