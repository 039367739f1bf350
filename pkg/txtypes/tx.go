package txtypes

// TxKind discriminates the three transaction variants. Encoded as the
// first widened word (offset 0) of every transaction's canonical bytes.
type TxKind Word

const (
	TxKindScript TxKind = iota
	TxKindCreate
	TxKindMint
)

// Tx is implemented by Script, Create and Mint. Field access beyond the
// discriminant goes through the capability interfaces in capabilities.go
// (HasInputs, HasOutputs, ...), implemented only by the variants that
// actually carry that field -- see spec.md's field-accessor protocol.
type Tx interface {
	Kind() TxKind

	sizeStatic() int
	sizeDynamic() int
	encodeStatic(dst []byte) []byte
	encodeDynamic(dst []byte) []byte

	// clone returns a deep copy, used by id.go to build a normalized
	// (witness-zeroed) copy without mutating the caller's transaction.
	clone() Tx
}

// Script is a transaction that runs bytecode against the UTXO set.
type Script struct {
	GasPrice_    Word
	GasLimit_    Word
	Maturity_    BlockHeight
	ReceiptsRoot Bytes32
	ScriptBytes  []byte
	ScriptData   []byte
	Inputs_      []Input
	Outputs_     []Output
	Witnesses_   []Witness
}

func (t *Script) Kind() TxKind { return TxKindScript }

func (t *Script) sizeStatic() int {
	return 8 + 8 + 8 + 8 + 32 + 8 + 8 + 8 + 8 + 8
}

func (t *Script) sizeDynamic() int {
	n := bytesBlobSize(len(t.ScriptBytes)) + bytesBlobSize(len(t.ScriptData))
	for _, in := range t.Inputs_ {
		n += inputEncodedSize(in)
	}
	for _, out := range t.Outputs_ {
		n += outputEncodedSize(out)
	}
	for _, w := range t.Witnesses_ {
		n += witnessEncodedSize(w)
	}
	return n
}

func (t *Script) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(t.Kind()))
	dst = appendWord(dst, t.GasPrice_)
	dst = appendWord(dst, t.GasLimit_)
	dst = appendWord(dst, Word(t.Maturity_))
	dst = appendArray32(dst, t.ReceiptsRoot)
	dst = appendWord(dst, Word(len(t.ScriptBytes)))
	dst = appendWord(dst, Word(len(t.ScriptData)))
	dst = appendWord(dst, Word(len(t.Inputs_)))
	dst = appendWord(dst, Word(len(t.Outputs_)))
	dst = appendWord(dst, Word(len(t.Witnesses_)))
	return dst
}

func (t *Script) encodeDynamic(dst []byte) []byte {
	dst = appendBytesBlob(dst, t.ScriptBytes)
	dst = appendBytesBlob(dst, t.ScriptData)
	for _, in := range t.Inputs_ {
		dst = append(dst, encodeInput(in)...)
	}
	for _, out := range t.Outputs_ {
		dst = append(dst, encodeOutput(out)...)
	}
	for _, w := range t.Witnesses_ {
		dst = append(dst, encodeWitness(w)...)
	}
	return dst
}

func (t *Script) clone() Tx {
	c := *t
	c.ScriptBytes = append([]byte(nil), t.ScriptBytes...)
	c.ScriptData = append([]byte(nil), t.ScriptData...)
	c.Inputs_ = append([]Input(nil), t.Inputs_...)
	c.Outputs_ = append([]Output(nil), t.Outputs_...)
	c.Witnesses_ = append([]Witness(nil), t.Witnesses_...)
	return &c
}

// Create deploys a new contract.
type Create struct {
	GasPrice_             Word
	GasLimit_             Word
	Maturity_             BlockHeight
	BytecodeWitnessIndex_ uint8
	Salt                  Salt
	StorageSlots_         []StorageSlot
	Inputs_               []Input
	Outputs_              []Output
	Witnesses_            []Witness
}

func (t *Create) Kind() TxKind { return TxKindCreate }

// BytecodeWitnessIndex returns the index into Witnesses() that holds the
// contract's deployed bytecode.
func (t *Create) BytecodeWitnessIndex() uint8 { return t.BytecodeWitnessIndex_ }

// BytecodeLength returns witnesses[BytecodeWitnessIndex].len() / 4, per
// invariant 2 in spec.md §3.4; it returns 0 if the index is out of
// bounds (the validity checker is what rejects that case).
func (t *Create) BytecodeLength() Word {
	if int(t.BytecodeWitnessIndex_) >= len(t.Witnesses_) {
		return 0
	}
	return Word(len(t.Witnesses_[t.BytecodeWitnessIndex_].Data) / 4)
}

func (t *Create) sizeStatic() int {
	return 8 + 8 + 8 + 8 + 8 + 8 + 32 + 8 + 8 + 8 + 8
}

func (t *Create) sizeDynamic() int {
	n := 0
	for _, s := range t.StorageSlots_ {
		n += s.sizeStatic()
	}
	for _, in := range t.Inputs_ {
		n += inputEncodedSize(in)
	}
	for _, out := range t.Outputs_ {
		n += outputEncodedSize(out)
	}
	for _, w := range t.Witnesses_ {
		n += witnessEncodedSize(w)
	}
	return n
}

func (t *Create) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(t.Kind()))
	dst = appendWord(dst, t.GasPrice_)
	dst = appendWord(dst, t.GasLimit_)
	dst = appendWord(dst, Word(t.Maturity_))
	dst = appendWord(dst, t.BytecodeLength())
	dst = appendWord(dst, Word(t.BytecodeWitnessIndex_))
	dst = appendArray32(dst, t.Salt)
	dst = appendWord(dst, Word(len(t.StorageSlots_)))
	dst = appendWord(dst, Word(len(t.Inputs_)))
	dst = appendWord(dst, Word(len(t.Outputs_)))
	dst = appendWord(dst, Word(len(t.Witnesses_)))
	return dst
}

func (t *Create) encodeDynamic(dst []byte) []byte {
	for _, s := range t.StorageSlots_ {
		dst = append(dst, encodeStorageSlot(s)...)
	}
	for _, in := range t.Inputs_ {
		dst = append(dst, encodeInput(in)...)
	}
	for _, out := range t.Outputs_ {
		dst = append(dst, encodeOutput(out)...)
	}
	for _, w := range t.Witnesses_ {
		dst = append(dst, encodeWitness(w)...)
	}
	return dst
}

func (t *Create) clone() Tx {
	c := *t
	c.StorageSlots_ = append([]StorageSlot(nil), t.StorageSlots_...)
	c.Inputs_ = append([]Input(nil), t.Inputs_...)
	c.Outputs_ = append([]Output(nil), t.Outputs_...)
	c.Witnesses_ = append([]Witness(nil), t.Witnesses_...)
	return &c
}

// Mint is the coinbase-like transaction that settles a contract call's
// fees at the end of a block.
type Mint struct {
	TxPointer      TxPointer
	InputContract  InputContract
	OutputContract OutputContract
	MintAmount     Word
	MintAssetID    AssetId
}

func (t *Mint) Kind() TxKind { return TxKindMint }

func (t *Mint) sizeStatic() int {
	return 8 + t.TxPointer.sizeStatic() + t.InputContract.sizeStatic() +
		t.OutputContract.sizeStatic() + 8 + 32
}

func (t *Mint) sizeDynamic() int { return 0 }

func (t *Mint) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(t.Kind()))
	dst = t.TxPointer.encodeStatic(dst)
	dst = t.InputContract.encodeStatic(dst)
	dst = t.OutputContract.encodeStatic(dst)
	dst = appendWord(dst, t.MintAmount)
	dst = appendArray32(dst, t.MintAssetID)
	return dst
}

func (t *Mint) encodeDynamic(dst []byte) []byte { return dst }

func (t *Mint) clone() Tx {
	c := *t
	return &c
}
