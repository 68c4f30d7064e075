// Package frotztest builds synthetic story files for tests.
package frotztest

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
)

// Story returns a plain Z-code file of size bytes with a valid header.
func Story(version byte, release uint16, serial string, size int) []byte {
	b := make([]byte, size)
	b[0] = version
	binary.BigEndian.PutUint16(b[2:], release)
	copy(b[18:24], serial)
	binary.BigEndian.PutUint16(b[26:], uint16(size/2))
	binary.BigEndian.PutUint16(b[28:], 0xbeef)
	for i := 64; i < size; i++ {
		b[i] = byte(i * 7)
	}
	return b
}

// Blorb wraps story in a Blorb with one resource of the given usage and
// chunk type, e.g. "Exec" and "ZCOD".
func Blorb(story []byte, usage, chunkType string) []byte {
	var body bytes.Buffer
	body.WriteString("IFRS")
	body.WriteString("RIdx")
	binary.Write(&body, binary.BigEndian, uint32(16))
	binary.Write(&body, binary.BigEndian, uint32(1))
	body.WriteString(usage)
	binary.Write(&body, binary.BigEndian, uint32(0))
	binary.Write(&body, binary.BigEndian, uint32(36))
	body.WriteString(chunkType)
	binary.Write(&body, binary.BigEndian, uint32(len(story)))
	body.Write(story)
	if len(story)%2 == 1 {
		body.WriteByte(0)
	}

	var out bytes.Buffer
	out.WriteString("FORM")
	binary.Write(&out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// HeadMD5 returns the detection md5 of b.
func HeadMD5(b []byte) string {
	if len(b) > 5000 {
		b = b[:5000]
	}
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
