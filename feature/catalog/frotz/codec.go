package frotz

import (
	"encoding/json"
	"fmt"
	"io"
)

// catalogFile is the JSON layout of a catalog object.
type catalogFile struct {
	Games        []PlainGameDescriptor `json:"games"`
	Fingerprints []GameDescription     `json:"fingerprints"`
}

// DecodeCatalog reads a catalog object.
func DecodeCatalog(r io.Reader) (*Table, error) {
	var f catalogFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &Table{Descriptors: f.Games, Games: f.Fingerprints}, nil
}

// EncodeCatalog writes t as a catalog object.
func EncodeCatalog(w io.Writer, t *Table) error {
	f := catalogFile{Games: t.Descriptors, Fingerprints: t.Games}
	if f.Games == nil {
		f.Games = []PlainGameDescriptor{}
	}
	if f.Fingerprints == nil {
		f.Fingerprints = []GameDescription{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}
