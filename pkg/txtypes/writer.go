package txtypes

import "encoding/binary"

// appendWord appends v widened to an 8-byte little-endian word. Every
// integer field (u8, u16, u32, or Word) shares this one append primitive,
// per the wire format's widening rule.
func appendWord(dst []byte, v Word) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func appendArray32(dst []byte, v [32]byte) []byte {
	return append(dst, v[:]...)
}

// padLen returns the number of zero bytes needed to round n up to the
// next 8-byte boundary.
func padLen(n int) int {
	r := n % 8
	if r == 0 {
		return 0
	}
	return 8 - r
}

// appendBytesBlob appends data as an 8-byte length prefix, the bytes
// themselves, then zero padding to the next 8-byte boundary.
func appendBytesBlob(dst []byte, data []byte) []byte {
	dst = appendWord(dst, Word(len(data)))
	dst = append(dst, data...)
	if p := padLen(len(data)); p > 0 {
		var zero [8]byte
		dst = append(dst, zero[:p]...)
	}
	return dst
}

func bytesBlobSize(n int) int {
	return 8 + n + padLen(n)
}
