package frotz

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the Z-machine story header.
const HeaderSize = 64

const (
	hdrVersion  = 0
	hdrRelease  = 2
	hdrSerial   = 18
	hdrLength   = 26
	hdrChecksum = 28
)

// ParseZHeader reads the story header at the start of b.
func ParseZHeader(b []byte) (*ZHeader, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(b))
	}
	version := int(b[hdrVersion])
	if version < 1 || version > 8 {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidHeader, version)
	}
	serial := b[hdrSerial : hdrSerial+6]
	for _, c := range serial {
		if c < 0x20 || c > 0x7e {
			return nil, fmt.Errorf("%w: serial is not printable", ErrInvalidHeader)
		}
	}

	return &ZHeader{
		Version:  version,
		Release:  int(binary.BigEndian.Uint16(b[hdrRelease:])),
		Serial:   string(serial),
		Checksum: binary.BigEndian.Uint16(b[hdrChecksum:]),
		Length:   int64(binary.BigEndian.Uint16(b[hdrLength:])) * lengthScale(version),
	}, nil
}

// lengthScale converts the packed length field to bytes.
func lengthScale(version int) int64 {
	switch {
	case version <= 3:
		return 2
	case version <= 5:
		return 4
	default:
		return 8
	}
}

// Extra formats the release and serial the way catalog records do.
func (h *ZHeader) Extra() string {
	return fmt.Sprintf("R%d-S%s", h.Release, h.Serial)
}
