// Package fonts inspects the PostScript and TrueType fonts an interpreter
// loads from the library's fonts folder, and computes Multiple Master weight
// vectors for a design position.
package fonts
