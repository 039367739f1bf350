package txtypes

// Encode returns the canonical wire bytes of tx: the static section for
// every field (including each sequence's length), followed by the
// dynamic section (sequence elements and variable-length blobs), each
// in the field order of the variant's encodeStatic/encodeDynamic.
func Encode(tx Tx) []byte {
	dst := make([]byte, 0, tx.sizeStatic()+tx.sizeDynamic())
	dst = tx.encodeStatic(dst)
	dst = tx.encodeDynamic(dst)
	return dst
}

// SizeStatic returns the length of tx's static section.
func SizeStatic(tx Tx) int { return tx.sizeStatic() }

// SizeDynamic returns the length of tx's dynamic section.
func SizeDynamic(tx Tx) int { return tx.sizeDynamic() }

// Size returns the full canonical encoded length of tx.
func Size(tx Tx) int { return tx.sizeStatic() + tx.sizeDynamic() }

// MeteredBytesSize returns the size of tx's encoding with its witness
// section entirely excluded: not zeroed, removed. Attaching, detaching
// or rewriting witnesses therefore never changes the metered size of a
// transaction, which is what lets a predicate owner or gas accounting
// rule charge on a quantity that is fixed before signatures exist.
func MeteredBytesSize(tx Tx) int {
	full := tx.sizeStatic() + tx.sizeDynamic()
	if hw, ok := tx.(HasWitnesses); ok {
		witnessBytes := 0
		for _, w := range hw.Witnesses() {
			witnessBytes += witnessEncodedSize(w)
		}
		return full - witnessBytes
	}
	return full
}

// Decode parses b as a canonical transaction.
func Decode(b []byte) (Tx, error) {
	c := newCursor(b)
	kindWord, err := c.readWord()
	if err != nil {
		return nil, err
	}
	switch TxKind(kindWord) {
	case TxKindScript:
		return decodeScript(c)
	case TxKindCreate:
		return decodeCreate(c)
	case TxKindMint:
		return decodeMint(c)
	default:
		return nil, errInvalidDiscriminant("unknown transaction kind")
	}
}

func decodeScript(c *cursor) (*Script, error) {
	t := &Script{}
	var err error
	if t.GasPrice_, err = c.readWord(); err != nil {
		return nil, err
	}
	if t.GasLimit_, err = c.readWord(); err != nil {
		return nil, err
	}
	mat, err := c.readWord()
	if err != nil {
		return nil, err
	}
	t.Maturity_ = BlockHeight(mat)
	if t.ReceiptsRoot, err = c.readArray32(); err != nil {
		return nil, err
	}
	scriptLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	scriptDataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nInputs, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nOutputs, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nWitnesses, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if scriptLen > maxBlobLen || scriptDataLen > maxBlobLen {
		return nil, errInvalidField("script length exceeds bound")
	}
	if t.ScriptBytes, err = c.readBytesBlob(int(scriptLen)); err != nil {
		return nil, err
	}
	if t.ScriptData, err = c.readBytesBlob(int(scriptDataLen)); err != nil {
		return nil, err
	}
	if t.Inputs_, err = decodeInputs(c, nInputs); err != nil {
		return nil, err
	}
	if t.Outputs_, err = decodeOutputs(c, nOutputs); err != nil {
		return nil, err
	}
	if t.Witnesses_, err = decodeWitnesses(c, nWitnesses); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeCreate(c *cursor) (*Create, error) {
	t := &Create{}
	var err error
	if t.GasPrice_, err = c.readWord(); err != nil {
		return nil, err
	}
	if t.GasLimit_, err = c.readWord(); err != nil {
		return nil, err
	}
	mat, err := c.readWord()
	if err != nil {
		return nil, err
	}
	t.Maturity_ = BlockHeight(mat)
	// bytecodeLength is recomputed from the referenced witness rather
	// than trusted from the wire; read and discard it here.
	if _, err = c.readWord(); err != nil {
		return nil, err
	}
	bwi, err := c.readWord()
	if err != nil {
		return nil, err
	}
	t.BytecodeWitnessIndex_ = uint8(bwi)
	if t.Salt, err = c.readArray32(); err != nil {
		return nil, err
	}
	nSlots, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nInputs, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nOutputs, err := c.readWord()
	if err != nil {
		return nil, err
	}
	nWitnesses, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if t.StorageSlots_, err = decodeStorageSlots(c, nSlots); err != nil {
		return nil, err
	}
	if t.Inputs_, err = decodeInputs(c, nInputs); err != nil {
		return nil, err
	}
	if t.Outputs_, err = decodeOutputs(c, nOutputs); err != nil {
		return nil, err
	}
	if t.Witnesses_, err = decodeWitnesses(c, nWitnesses); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeMint(c *cursor) (*Mint, error) {
	t := &Mint{}
	var err error
	if t.TxPointer, err = decodeTxPointer(c); err != nil {
		return nil, err
	}
	inTag, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if InputTag(inTag) != InputTagContract {
		return nil, errInvalidDiscriminant("mint input must be Contract")
	}
	in, err := decodeInputContract(c)
	if err != nil {
		return nil, err
	}
	t.InputContract = *in
	outTag, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if OutputTag(outTag) != OutputTagContract {
		return nil, errInvalidDiscriminant("mint output must be Contract")
	}
	out, err := decodeOutputContractValue(c)
	if err != nil {
		return nil, err
	}
	t.OutputContract = out
	if t.MintAmount, err = c.readWord(); err != nil {
		return nil, err
	}
	if t.MintAssetID, err = c.readArray32(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeOutputContractValue decodes an OutputContract's fields without
// its tag word, used by Mint where the contract output is an embedded
// static field rather than a tagged Output in a sequence.
func decodeOutputContractValue(c *cursor) (OutputContract, error) {
	var o OutputContract
	w, err := c.readWord()
	if err != nil {
		return o, err
	}
	o.InputIndex = uint8(w)
	if o.BalanceRoot, err = c.readArray32(); err != nil {
		return o, err
	}
	if o.StateRoot, err = c.readArray32(); err != nil {
		return o, err
	}
	return o, nil
}

const maxSeqLen = 1 << 20

func decodeInputs(c *cursor, n Word) ([]Input, error) {
	if n > maxSeqLen {
		return nil, errInvalidField("input count exceeds bound")
	}
	out := make([]Input, 0, n)
	for i := Word(0); i < n; i++ {
		in, err := decodeInput(c)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func decodeOutputs(c *cursor, n Word) ([]Output, error) {
	if n > maxSeqLen {
		return nil, errInvalidField("output count exceeds bound")
	}
	out := make([]Output, 0, n)
	for i := Word(0); i < n; i++ {
		o, err := decodeOutput(c)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func decodeWitnesses(c *cursor, n Word) ([]Witness, error) {
	if n > maxSeqLen {
		return nil, errInvalidField("witness count exceeds bound")
	}
	out := make([]Witness, 0, n)
	for i := Word(0); i < n; i++ {
		w, err := decodeWitness(c)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func decodeStorageSlots(c *cursor, n Word) ([]StorageSlot, error) {
	if n > maxSeqLen {
		return nil, errInvalidField("storage slot count exceeds bound")
	}
	out := make([]StorageSlot, 0, n)
	for i := Word(0); i < n; i++ {
		s, err := decodeStorageSlot(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
