package frotz

import (
	"bytes"
	"encoding/binary"
	"io"
)

const maxBlorbResources = 4096

var (
	blorbForm  = []byte("FORM")
	blorbIFRS  = []byte("IFRS")
	blorbIndex = []byte("RIdx")
	blorbExec  = []byte("Exec")
	blorbZCode = []byte("ZCOD")
)

// isBlorb reports whether head starts with an IFF FORM of type IFRS.
func isBlorb(head []byte) bool {
	return len(head) >= 12 && bytes.Equal(head[:4], blorbForm) && bytes.Equal(head[8:12], blorbIFRS)
}

// findStory locates the data of the executable ZCOD chunk through the resource
// index. found is false when the Blorb has no Z-code story. Read errors are
// returned as is so callers can tell a truncated prefix from an empty Blorb.
func findStory(r io.ReaderAt) (offset int64, found bool, err error) {
	chunk := make([]byte, 12)
	if _, err := r.ReadAt(chunk, 12); err != nil {
		return 0, false, err
	}
	if !bytes.Equal(chunk[:4], blorbIndex) {
		return 0, false, nil
	}
	count := binary.BigEndian.Uint32(chunk[8:12])
	if count > maxBlorbResources {
		return 0, false, nil
	}

	index := make([]byte, 12*int(count))
	if _, err := r.ReadAt(index, 24); err != nil {
		return 0, false, err
	}
	for i := 0; i < int(count); i++ {
		entry := index[12*i : 12*i+12]
		if !bytes.Equal(entry[:4], blorbExec) {
			continue
		}
		start := int64(binary.BigEndian.Uint32(entry[8:12]))
		hdr := make([]byte, 8)
		if _, err := r.ReadAt(hdr, start); err != nil {
			return 0, false, err
		}
		if bytes.Equal(hdr[:4], blorbZCode) {
			return start + 8, true, nil
		}
	}
	return 0, false, nil
}
