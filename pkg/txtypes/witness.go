package txtypes

// Witness is a length-prefixed, 8-byte-padded byte blob. It carries a
// signature, a contract's deployed bytecode, or any other out-of-band
// data an input's witness_index points at.
type Witness struct {
	Data []byte
}

func (w Witness) sizeStatic() int  { return 8 }
func (w Witness) sizeDynamic() int { return bytesBlobSize(len(w.Data)) - 8 }
func (w Witness) encodeStatic(dst []byte) []byte {
	return appendWord(dst, Word(len(w.Data)))
}
func (w Witness) encodeDynamic(dst []byte) []byte {
	dst = append(dst, w.Data...)
	if p := padLen(len(w.Data)); p > 0 {
		var zero [8]byte
		dst = append(dst, zero[:p]...)
	}
	return dst
}

func encodeWitness(w Witness) []byte {
	dst := make([]byte, 0, bytesBlobSize(len(w.Data)))
	dst = w.encodeStatic(dst)
	dst = w.encodeDynamic(dst)
	return dst
}

func witnessEncodedSize(w Witness) int { return bytesBlobSize(len(w.Data)) }

// zeroed returns a witness of the same length with its body zero-filled,
// used by the transaction-id normalization in id.go.
func (w Witness) zeroed() Witness {
	return Witness{Data: make([]byte, len(w.Data))}
}

func decodeWitness(c *cursor) (Witness, error) {
	n, err := c.readWord()
	if err != nil {
		return Witness{}, err
	}
	if n > maxBlobLen {
		return Witness{}, errInvalidField("witness length exceeds bound")
	}
	data, err := c.readExact(int(n))
	if err != nil {
		return Witness{}, err
	}
	data = append([]byte(nil), data...)
	if pad := padLen(int(n)); pad > 0 {
		if _, err := c.readExact(pad); err != nil {
			return Witness{}, err
		}
	}
	return Witness{Data: data}, nil
}
