// Package psfont exposes PostScript font metadata and Multiple Master blending.
//
// Fonts are opened through a small driver registry. Every driver turns raw font
// bytes into a Face, and optionally implements capability interfaces that the
// package level accessors discover by type assertion:
//
//   - MultiMasterService: axis description and blend/design coordinate setting.
//   - PSInfoService: the PostScript FontInfo dictionary and glyph name support.
//   - PSPrivateService: the Private dictionary hinting values.
//   - CIDInfoService: the top level dictionary of a CID-keyed font.
//
// # Drivers
//
//   - type1: PFA/PFB fonts, parsed with seehuhn.de/go/postscript/type1. Multiple
//     Master data (/BlendAxisTypes, /BlendDesignPositions, /BlendDesignMap) is read
//     by running the clear-text header up to eexec in a PostScript interpreter.
//   - cid: CID-keyed Type 1 resources (%!PS-Adobe-3.0 Resource-CIDFont). The
//     resource is executed up to StartData.
//
// Header execution is limited in size and operator count. Hostile input fails
// with ErrInvalidFileFormat.
//   - sfnt: TrueType and OpenType fonts via golang.org/x/image/font/sfnt. This
//     driver has no PostScript info or Multiple Master support.
//
// # Errors
//
// Accessors return ErrInvalidFaceHandle for a nil face and ErrInvalidArgument when
// the face's driver does not provide the requested capability.
//
// # Usage
//
//	face, err := psfont.OpenFile("fonts/MinionMM.pfb")
//	if err != nil {
//	    return err
//	}
//	mm, err := psfont.GetMultiMaster(face)
//	if errors.Is(err, psfont.ErrInvalidArgument) {
//	    // not a Multiple Master font
//	}
//	err = psfont.SetMMDesignCoordinates(face, []int{400, 600})
package psfont
