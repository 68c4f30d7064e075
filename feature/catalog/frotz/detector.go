package frotz

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var storyExtensions = map[string]bool{
	".z1": false, ".z2": false, ".z3": false, ".z4": false,
	".z5": false, ".z6": false, ".z7": false, ".z8": false,
	".dat":    false,
	".zblorb": true,
	".zlb":    true,
	".blb":    true,
}

// HasSupportedExtension reports whether name has a story file extension.
func HasSupportedExtension(name string) bool {
	_, ok := storyExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

func hasBlorbExtension(name string) bool {
	return storyExtensions[strings.ToLower(path.Ext(name))]
}

// ComputeFingerprint hashes the first DetectionBytes bytes of r and reads the
// story header, looking inside Blorb containers.
func ComputeFingerprint(r io.ReadSeeker) (*Fingerprint, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to size story: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind story: %w", err)
	}
	head := make([]byte, min(size, DetectionBytes))
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("failed to read story: %w", err)
	}

	var body io.ReaderAt = bytes.NewReader(head)
	if ra, ok := r.(io.ReaderAt); ok {
		body = ra
	}
	return fingerprint(head, size, body), nil
}

// FingerprintHead builds a fingerprint from a file prefix and the full file
// size. The header of a Blorb story outside the prefix is not available.
func FingerprintHead(head []byte, size int64) *Fingerprint {
	if len(head) > DetectionBytes {
		head = head[:DetectionBytes]
	}
	return fingerprint(head, size, bytes.NewReader(head))
}

func fingerprint(head []byte, size int64, body io.ReaderAt) *Fingerprint {
	sum := md5.Sum(head)
	fp := &Fingerprint{MD5: hex.EncodeToString(sum[:]), FileSize: size}

	if !isBlorb(head) {
		fp.Header, _ = ParseZHeader(head)
		return fp
	}

	fp.IsBlorb = true
	offset, found, err := findStory(body)
	switch {
	case err != nil:
		return fp
	case !found:
		fp.EmptyBlorb = true
		return fp
	}
	hdr := make([]byte, HeaderSize)
	if _, err := body.ReadAt(hdr, offset); err == nil || errors.Is(err, io.EOF) {
		fp.Header, _ = ParseZHeader(hdr)
	}
	return fp
}

// Detector matches story files against a table.
type Detector struct {
	table *Table
}

// NewDetector returns a detector over t.
func NewDetector(t *Table) *Detector {
	return &Detector{table: t}
}

// Table returns the table the detector matches against.
func (d *Detector) Table() *Table {
	return d.table
}

// Detect identifies the story in r.
func (d *Detector) Detect(filename string, r io.ReadSeeker) (*DetectedGame, error) {
	if !HasSupportedExtension(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, path.Ext(filename))
	}
	fp, err := ComputeFingerprint(r)
	if err != nil {
		return nil, err
	}
	return d.Match(filename, fp)
}

// Match identifies a story from its fingerprint. Unknown Z-code files are
// reported as the generic game.
func (d *Detector) Match(filename string, fp *Fingerprint) (*DetectedGame, error) {
	if hasBlorbExtension(filename) && !fp.IsBlorb {
		return nil, fmt.Errorf("%w: %s is not a Blorb file", ErrNotDetected, filename)
	}
	if fp.EmptyBlorb {
		return nil, fmt.Errorf("%w: %s has no Z-code resource", ErrNotDetected, filename)
	}

	res := &DetectedGame{
		MD5:      fp.MD5,
		FileSize: fp.FileSize,
		Filename: filename,
	}
	if h := fp.Header; h != nil {
		res.Version = h.Version
		res.Release = h.Release
		res.Serial = h.Serial
	}

	if g, ok := d.table.Lookup(fp.MD5, fp.FileSize, fp.IsBlorb); ok {
		res.GameID = g.GameID
		res.Extra = g.Extra
		res.Language = g.Language
		res.GUIOptions = append(GUIOptions(nil), g.GUIOptions...)
		res.Known = true
		if desc, ok := d.table.FindGame(g.GameID); ok {
			res.Description = desc.Description
		}
	} else {
		if fp.Header == nil && !fp.IsBlorb {
			return nil, fmt.Errorf("%w: %s", ErrNotZcode, filename)
		}
		res.GameID = GenericGameID
		res.Description = GenericDescription
		res.Language = language.Und
		if fp.Header != nil {
			res.Extra = fp.Header.Extra()
		}
	}
	res.LanguageName = LanguageName(res.Language)
	return res, nil
}

// LanguageName returns the English name of a language.
func LanguageName(tag language.Tag) string {
	if tag == language.Und {
		return "Unknown"
	}
	return display.English.Tags().Name(tag)
}
