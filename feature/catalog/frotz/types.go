package frotz

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

const (
	// GenericGameID is reported for Z-code files that match no fingerprint.
	GenericGameID = "zcode"
	// GenericDescription describes GenericGameID.
	GenericDescription = "Unknown Z-code game"
	// DetectionBytes is the length of the file prefix that is hashed.
	DetectionBytes = 5000
)

var (
	ErrUnsupportedExtension = errors.New("unsupported story file extension")
	ErrNotDetected          = errors.New("no story found in file")
	ErrNotZcode             = errors.New("not a Z-code story file")
	ErrInvalidHeader        = errors.New("invalid Z-machine header")
)

// PlainGameDescriptor is a human readable catalog entry.
type PlainGameDescriptor struct {
	GameID      string `json:"id"`
	Description string `json:"description"`
}

// GUIOption is a display option the interpreter applies to a game.
type GUIOption string

const (
	GUIONoSpeech    GUIOption = "nospeech"
	GUIONoMusic     GUIOption = "nomusic"
	GUIONoSubtitles GUIOption = "nosubtitles"
	GUIOBeyondZork  GUIOption = "beyondzork"
	GUIOColors      GUIOption = "colors"
	GUIONoUndo      GUIOption = "noundo"
)

var knownOptions = []GUIOption{GUIONoSpeech, GUIONoMusic, GUIONoSubtitles, GUIOBeyondZork, GUIOColors, GUIONoUndo}

// GUIOptions is a set of display options.
type GUIOptions []GUIOption

// Has reports whether o is in the set.
func (g GUIOptions) Has(o GUIOption) bool {
	return slices.Contains(g, o)
}

// GameDescription is a fingerprint record. The md5 is taken over the first
// DetectionBytes bytes of the file.
type GameDescription struct {
	GameID     string       `json:"id"`
	Extra      string       `json:"extra"`
	MD5        string       `json:"md5"`
	FileSize   int64        `json:"filesize"`
	Language   language.Tag `json:"language"`
	GUIOptions GUIOptions   `json:"gui_options,omitempty"`
}

// Key identifies a release by md5 and file size.
func (g GameDescription) Key() string {
	return FingerprintKey(g.MD5, g.FileSize)
}

// FingerprintKey formats the unique key of an md5 and size pair.
func FingerprintKey(md5 string, size int64) string {
	return fmt.Sprintf("%s:%d", md5, size)
}

// Table is an immutable detection table.
type Table struct {
	Descriptors []PlainGameDescriptor
	Games       []GameDescription
}

// ZHeader holds the parts of the Z-machine story header used for detection.
type ZHeader struct {
	Version  int    `json:"version"`
	Release  int    `json:"release"`
	Serial   string `json:"serial"`
	Checksum uint16 `json:"checksum"`
	// Length is the declared story length in bytes, or 0 when unset.
	Length int64 `json:"length"`
}

// Fingerprint is what the detector derives from a story file.
type Fingerprint struct {
	MD5      string `json:"md5"`
	FileSize int64  `json:"filesize"`
	IsBlorb  bool   `json:"is_blorb"`
	// EmptyBlorb is set for Blorb files without an executable Z-code chunk.
	EmptyBlorb bool     `json:"empty_blorb,omitempty"`
	Header     *ZHeader `json:"header,omitempty"`
}

// Key returns the fingerprint key of the file.
func (f *Fingerprint) Key() string {
	return FingerprintKey(f.MD5, f.FileSize)
}

// DetectedGame is the result of detecting one file.
type DetectedGame struct {
	GameID       string       `json:"game_id"`
	Description  string       `json:"description"`
	Extra        string       `json:"extra"`
	Language     language.Tag `json:"language"`
	LanguageName string       `json:"language_name"`
	GUIOptions   GUIOptions   `json:"gui_options,omitempty"`
	Known        bool         `json:"known"`
	MD5          string       `json:"md5"`
	FileSize     int64        `json:"filesize"`
	Filename     string       `json:"filename"`
	Version      int          `json:"version,omitempty"`
	Release      int          `json:"release,omitempty"`
	Serial       string       `json:"serial,omitempty"`
}

// Key returns the fingerprint key of the detected file.
func (d *DetectedGame) Key() string {
	return FingerprintKey(d.MD5, d.FileSize)
}
