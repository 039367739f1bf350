package txtypes

import "encoding/binary"

// cursor reads canonical wire bytes sequentially, failing closed on any
// truncation.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b, pos: 0}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, errTruncated
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

// readWord reads an 8-byte little-endian integer. Every field in the wire
// format -- regardless of its logical width (u8, u16, u32, Word) -- is
// widened to 8 bytes, so this is the sole integer-reading primitive.
func (c *cursor) readWord() (Word, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readArray32() ([32]byte, error) {
	var out [32]byte
	b, err := c.readExact(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// readBytesBlob reads an 8-byte length, that many bytes, then discards the
// zero padding up to the next 8-byte boundary.
func (c *cursor) readBytesBlob(maxLen int) ([]byte, error) {
	n, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if n > uint64(maxLen) {
		return nil, errInvalidField("bytes length exceeds bound")
	}
	data, err := c.readExact(int(n))
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), data...)
	pad := padLen(int(n))
	if pad > 0 {
		if _, err := c.readExact(pad); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *cursor) done() bool { return c.pos == len(c.b) }
