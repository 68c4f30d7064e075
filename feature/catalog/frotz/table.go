package frotz

import (
	"fmt"
	"regexp"
	"slices"

	"golang.org/x/text/language"
)

var md5Pattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Problem is one failed data-integrity assertion.
type Problem struct {
	Index   int    `json:"index"`
	GameID  string `json:"game_id,omitempty"`
	MD5     string `json:"md5,omitempty"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.Index < 0 {
		return fmt.Sprintf("descriptor %s: %s", p.GameID, p.Message)
	}
	return fmt.Sprintf("record %d (%s): %s", p.Index, p.GameID, p.Message)
}

// FindGame returns the descriptor for id.
func (t *Table) FindGame(id string) (PlainGameDescriptor, bool) {
	for _, d := range t.Descriptors {
		if d.GameID == id {
			return d, true
		}
	}
	return PlainGameDescriptor{}, false
}

// Lookup returns the first record matching md5. The file size must match as
// well for Blorb files only, since plain story files are often padded.
func (t *Table) Lookup(md5 string, size int64, isBlorb bool) (GameDescription, bool) {
	for _, g := range t.Games {
		if g.MD5 != md5 {
			continue
		}
		if isBlorb && g.FileSize != size {
			continue
		}
		return g, true
	}
	return GameDescription{}, false
}

// GamesFor returns every record of a game.
func (t *Table) GamesFor(id string) []GameDescription {
	var out []GameDescription
	for _, g := range t.Games {
		if g.GameID == id {
			out = append(out, g)
		}
	}
	return out
}

// Merge returns a new table in which other takes precedence. Records are
// replaced by fingerprint key and descriptors by game id. Records of other are
// placed first so that they win md5-only lookups.
func (t *Table) Merge(other *Table) *Table {
	out := &Table{}
	if other == nil {
		out.Descriptors = append(out.Descriptors, t.Descriptors...)
		out.Games = append(out.Games, t.Games...)
		return out
	}

	overrides := make(map[string]PlainGameDescriptor, len(other.Descriptors))
	for _, d := range other.Descriptors {
		overrides[d.GameID] = d
	}
	for _, d := range t.Descriptors {
		if o, ok := overrides[d.GameID]; ok {
			d = o
			delete(overrides, d.GameID)
		}
		out.Descriptors = append(out.Descriptors, d)
	}
	for _, d := range other.Descriptors {
		if _, ok := overrides[d.GameID]; ok {
			out.Descriptors = append(out.Descriptors, d)
		}
	}

	replaced := make(map[string]struct{}, len(other.Games))
	for _, g := range other.Games {
		replaced[g.Key()] = struct{}{}
		out.Games = append(out.Games, g)
	}
	for _, g := range t.Games {
		if _, ok := replaced[g.Key()]; !ok {
			out.Games = append(out.Games, g)
		}
	}
	return out
}

// Validate checks the table data and returns every problem found. Descriptor
// problems carry an Index of -1.
func (t *Table) Validate() []Problem {
	var problems []Problem

	ids := make(map[string]struct{}, len(t.Descriptors))
	for _, d := range t.Descriptors {
		if d.GameID == "" {
			problems = append(problems, Problem{Index: -1, Message: "descriptor without game id"})
			continue
		}
		if _, dup := ids[d.GameID]; dup {
			problems = append(problems, Problem{Index: -1, GameID: d.GameID, Message: "duplicate descriptor"})
		}
		ids[d.GameID] = struct{}{}
	}

	keys := make(map[string]int, len(t.Games))
	for i, g := range t.Games {
		report := func(format string, args ...any) {
			problems = append(problems, Problem{Index: i, GameID: g.GameID, MD5: g.MD5, Message: fmt.Sprintf(format, args...)})
		}
		if g.GameID == "" {
			report("missing game id")
		} else if _, ok := ids[g.GameID]; !ok {
			report("game id not in descriptor list")
		}
		if !md5Pattern.MatchString(g.MD5) {
			report("md5 %q is not 32 lowercase hex characters", g.MD5)
		}
		if g.FileSize <= 0 {
			report("file size %d is not positive", g.FileSize)
		}
		if g.Language == language.Und {
			report("undefined language")
		}
		for _, o := range g.GUIOptions {
			if !slices.Contains(knownOptions, o) {
				report("unknown gui option %q", o)
			}
		}
		if first, dup := keys[g.Key()]; dup {
			report("duplicate fingerprint of record %d", first)
		} else {
			keys[g.Key()] = i
		}
	}
	return problems
}
