package txtypes

// InputTag discriminates the seven Input variants. Encoded as the first
// widened word of every input's static header.
type InputTag Word

const (
	InputTagCoinSigned InputTag = iota
	InputTagCoinPredicate
	InputTagContract
	InputTagMessageCoinSigned
	InputTagMessageCoinPredicate
	InputTagMessageDataSigned
	InputTagMessageDataPredicate
)

// maxBlobLen bounds any single length-prefixed field during decode, ahead
// of the real consensus-parameter bound enforced by pkg/txcheck. It exists
// only to stop a corrupt length prefix from driving an enormous allocation.
const maxBlobLen = 1 << 24

// Input is implemented by each of the seven input variants. Input itself
// only carries the codec contract and the discriminant; generic code
// that needs a variant's fields (owner, witness index, predicate)
// type-switches on the concrete variant types.
type Input interface {
	Tag() InputTag

	sizeStatic() int
	sizeDynamic() int
	encodeStatic(dst []byte) []byte
	encodeDynamic(dst []byte) []byte
}

// encodeInput returns the full, self-contained encoding of a single input:
// its static header immediately followed by its own dynamic tail. Placing
// an element's dynamic tail directly after its own static header (rather
// than grouping all elements' statics before any dynamic tail, as a literal
// reading of the sequence-encoding rule might suggest) is what lets
// InputStart/InputLength return one contiguous span per element -- see
// DESIGN.md for the reasoning.
func encodeInput(in Input) []byte {
	dst := make([]byte, 0, in.sizeStatic()+in.sizeDynamic())
	dst = in.encodeStatic(dst)
	dst = in.encodeDynamic(dst)
	return dst
}

func inputEncodedSize(in Input) int { return in.sizeStatic() + in.sizeDynamic() }

// --- CoinSigned ---

type InputCoinSigned struct {
	UtxoID       UtxoId
	Owner        Address
	Amount       Word
	AssetID      AssetId
	TxPointer    TxPointer
	WitnessIndex uint8
	Maturity     BlockHeight
}

func (i *InputCoinSigned) Tag() InputTag { return InputTagCoinSigned }
func (i *InputCoinSigned) sizeStatic() int {
	return 8 + 32 + 8 + 32 + 8 + 32 + 16 + 8 + 8
}
func (i *InputCoinSigned) sizeDynamic() int { return 0 }
func (i *InputCoinSigned) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.UtxoID.TxID)
	dst = appendWord(dst, Word(i.UtxoID.OutputIndex))
	dst = appendArray32(dst, i.Owner)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.AssetID)
	dst = i.TxPointer.encodeStatic(dst)
	dst = appendWord(dst, Word(i.WitnessIndex))
	dst = appendWord(dst, Word(i.Maturity))
	return dst
}
func (i *InputCoinSigned) encodeDynamic(dst []byte) []byte { return dst }

func decodeInputCoinSigned(c *cursor) (*InputCoinSigned, error) {
	in := &InputCoinSigned{}
	txid, err := c.readArray32()
	if err != nil {
		return nil, err
	}
	idx, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.UtxoID = UtxoId{TxID: txid, OutputIndex: uint16(idx)}
	if in.Owner, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.AssetID, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.TxPointer, err = decodeTxPointer(c); err != nil {
		return nil, err
	}
	w, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.WitnessIndex = uint8(w)
	m, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.Maturity = BlockHeight(m)
	return in, nil
}

// --- CoinPredicate ---

type InputCoinPredicate struct {
	UtxoID           UtxoId
	Owner            Address
	Amount           Word
	AssetID          AssetId
	TxPointer        TxPointer
	Maturity         BlockHeight
	PredicateGasUsed Word
	Predicate        []byte
	PredicateData    []byte
}

func (i *InputCoinPredicate) Tag() InputTag { return InputTagCoinPredicate }
func (i *InputCoinPredicate) sizeStatic() int {
	return 8 + 32 + 8 + 32 + 8 + 32 + 16 + 8 + 8 + 8 + 8
}
func (i *InputCoinPredicate) sizeDynamic() int {
	return bytesBlobSize(len(i.Predicate)) + bytesBlobSize(len(i.PredicateData))
}
func (i *InputCoinPredicate) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.UtxoID.TxID)
	dst = appendWord(dst, Word(i.UtxoID.OutputIndex))
	dst = appendArray32(dst, i.Owner)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.AssetID)
	dst = i.TxPointer.encodeStatic(dst)
	dst = appendWord(dst, Word(i.Maturity))
	dst = appendWord(dst, i.PredicateGasUsed)
	dst = appendWord(dst, Word(len(i.Predicate)))
	dst = appendWord(dst, Word(len(i.PredicateData)))
	return dst
}
func (i *InputCoinPredicate) encodeDynamic(dst []byte) []byte {
	dst = appendBytesBlob(dst, i.Predicate)
	dst = appendBytesBlob(dst, i.PredicateData)
	return dst
}

func decodeInputCoinPredicate(c *cursor) (*InputCoinPredicate, error) {
	in := &InputCoinPredicate{}
	txid, err := c.readArray32()
	if err != nil {
		return nil, err
	}
	idx, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.UtxoID = UtxoId{TxID: txid, OutputIndex: uint16(idx)}
	if in.Owner, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.AssetID, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.TxPointer, err = decodeTxPointer(c); err != nil {
		return nil, err
	}
	m, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.Maturity = BlockHeight(m)
	if in.PredicateGasUsed, err = c.readWord(); err != nil {
		return nil, err
	}
	predLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	predDataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if predLen > maxBlobLen || predDataLen > maxBlobLen {
		return nil, errInvalidField("predicate length exceeds bound")
	}
	if in.Predicate, err = c.readBytesBlob(int(predLen)); err != nil {
		return nil, err
	}
	if in.PredicateData, err = c.readBytesBlob(int(predDataLen)); err != nil {
		return nil, err
	}
	return in, nil
}

// --- Contract ---

type InputContract struct {
	UtxoID      UtxoId
	BalanceRoot Bytes32
	StateRoot   Bytes32
	TxPointer   TxPointer
	ContractID  ContractId
}

func (i *InputContract) Tag() InputTag { return InputTagContract }
func (i *InputContract) sizeStatic() int {
	return 8 + 32 + 8 + 32 + 32 + 16 + 32
}
func (i *InputContract) sizeDynamic() int { return 0 }
func (i *InputContract) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.UtxoID.TxID)
	dst = appendWord(dst, Word(i.UtxoID.OutputIndex))
	dst = appendArray32(dst, i.BalanceRoot)
	dst = appendArray32(dst, i.StateRoot)
	dst = i.TxPointer.encodeStatic(dst)
	dst = appendArray32(dst, i.ContractID)
	return dst
}
func (i *InputContract) encodeDynamic(dst []byte) []byte { return dst }

func decodeInputContract(c *cursor) (*InputContract, error) {
	in := &InputContract{}
	txid, err := c.readArray32()
	if err != nil {
		return nil, err
	}
	idx, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.UtxoID = UtxoId{TxID: txid, OutputIndex: uint16(idx)}
	if in.BalanceRoot, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.StateRoot, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.TxPointer, err = decodeTxPointer(c); err != nil {
		return nil, err
	}
	if in.ContractID, err = c.readArray32(); err != nil {
		return nil, err
	}
	return in, nil
}

// --- MessageCoinSigned ---

type InputMessageCoinSigned struct {
	Sender       Address
	Recipient    Address
	Amount       Word
	Nonce        Nonce
	WitnessIndex uint8
}

func (i *InputMessageCoinSigned) Tag() InputTag { return InputTagMessageCoinSigned }
func (i *InputMessageCoinSigned) sizeStatic() int {
	return 8 + 32 + 32 + 8 + 32 + 8
}
func (i *InputMessageCoinSigned) sizeDynamic() int { return 0 }
func (i *InputMessageCoinSigned) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.Sender)
	dst = appendArray32(dst, i.Recipient)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.Nonce)
	dst = appendWord(dst, Word(i.WitnessIndex))
	return dst
}
func (i *InputMessageCoinSigned) encodeDynamic(dst []byte) []byte { return dst }

func decodeInputMessageCoinSigned(c *cursor) (*InputMessageCoinSigned, error) {
	in := &InputMessageCoinSigned{}
	var err error
	if in.Sender, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Recipient, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.Nonce, err = c.readArray32(); err != nil {
		return nil, err
	}
	w, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.WitnessIndex = uint8(w)
	return in, nil
}

// --- MessageCoinPredicate ---

type InputMessageCoinPredicate struct {
	Sender           Address
	Recipient        Address
	Amount           Word
	Nonce            Nonce
	PredicateGasUsed Word
	Predicate        []byte
	PredicateData    []byte
}

func (i *InputMessageCoinPredicate) Tag() InputTag { return InputTagMessageCoinPredicate }
func (i *InputMessageCoinPredicate) sizeStatic() int {
	return 8 + 32 + 32 + 8 + 32 + 8 + 8 + 8
}
func (i *InputMessageCoinPredicate) sizeDynamic() int {
	return bytesBlobSize(len(i.Predicate)) + bytesBlobSize(len(i.PredicateData))
}
func (i *InputMessageCoinPredicate) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.Sender)
	dst = appendArray32(dst, i.Recipient)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.Nonce)
	dst = appendWord(dst, i.PredicateGasUsed)
	dst = appendWord(dst, Word(len(i.Predicate)))
	dst = appendWord(dst, Word(len(i.PredicateData)))
	return dst
}
func (i *InputMessageCoinPredicate) encodeDynamic(dst []byte) []byte {
	dst = appendBytesBlob(dst, i.Predicate)
	dst = appendBytesBlob(dst, i.PredicateData)
	return dst
}

func decodeInputMessageCoinPredicate(c *cursor) (*InputMessageCoinPredicate, error) {
	in := &InputMessageCoinPredicate{}
	var err error
	if in.Sender, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Recipient, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.Nonce, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.PredicateGasUsed, err = c.readWord(); err != nil {
		return nil, err
	}
	predLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	predDataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if predLen > maxBlobLen || predDataLen > maxBlobLen {
		return nil, errInvalidField("predicate length exceeds bound")
	}
	if in.Predicate, err = c.readBytesBlob(int(predLen)); err != nil {
		return nil, err
	}
	if in.PredicateData, err = c.readBytesBlob(int(predDataLen)); err != nil {
		return nil, err
	}
	return in, nil
}

// --- MessageDataSigned ---

type InputMessageDataSigned struct {
	Sender       Address
	Recipient    Address
	Amount       Word
	Nonce        Nonce
	WitnessIndex uint8
	Data         []byte
}

func (i *InputMessageDataSigned) Tag() InputTag { return InputTagMessageDataSigned }
func (i *InputMessageDataSigned) sizeStatic() int {
	return 8 + 32 + 32 + 8 + 32 + 8 + 8
}
func (i *InputMessageDataSigned) sizeDynamic() int { return bytesBlobSize(len(i.Data)) }
func (i *InputMessageDataSigned) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.Sender)
	dst = appendArray32(dst, i.Recipient)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.Nonce)
	dst = appendWord(dst, Word(i.WitnessIndex))
	dst = appendWord(dst, Word(len(i.Data)))
	return dst
}
func (i *InputMessageDataSigned) encodeDynamic(dst []byte) []byte {
	return appendBytesBlob(dst, i.Data)
}

func decodeInputMessageDataSigned(c *cursor) (*InputMessageDataSigned, error) {
	in := &InputMessageDataSigned{}
	var err error
	if in.Sender, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Recipient, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.Nonce, err = c.readArray32(); err != nil {
		return nil, err
	}
	w, err := c.readWord()
	if err != nil {
		return nil, err
	}
	in.WitnessIndex = uint8(w)
	dataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if dataLen > maxBlobLen {
		return nil, errInvalidField("data length exceeds bound")
	}
	if in.Data, err = c.readBytesBlob(int(dataLen)); err != nil {
		return nil, err
	}
	return in, nil
}

// --- MessageDataPredicate ---

type InputMessageDataPredicate struct {
	Sender           Address
	Recipient        Address
	Amount           Word
	Nonce            Nonce
	PredicateGasUsed Word
	Data             []byte
	Predicate        []byte
	PredicateData    []byte
}

func (i *InputMessageDataPredicate) Tag() InputTag { return InputTagMessageDataPredicate }
func (i *InputMessageDataPredicate) sizeStatic() int {
	return 8 + 32 + 32 + 8 + 32 + 8 + 8 + 8 + 8
}
func (i *InputMessageDataPredicate) sizeDynamic() int {
	return bytesBlobSize(len(i.Data)) + bytesBlobSize(len(i.Predicate)) + bytesBlobSize(len(i.PredicateData))
}
func (i *InputMessageDataPredicate) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(i.Tag()))
	dst = appendArray32(dst, i.Sender)
	dst = appendArray32(dst, i.Recipient)
	dst = appendWord(dst, i.Amount)
	dst = appendArray32(dst, i.Nonce)
	dst = appendWord(dst, i.PredicateGasUsed)
	dst = appendWord(dst, Word(len(i.Data)))
	dst = appendWord(dst, Word(len(i.Predicate)))
	dst = appendWord(dst, Word(len(i.PredicateData)))
	return dst
}
func (i *InputMessageDataPredicate) encodeDynamic(dst []byte) []byte {
	dst = appendBytesBlob(dst, i.Data)
	dst = appendBytesBlob(dst, i.Predicate)
	dst = appendBytesBlob(dst, i.PredicateData)
	return dst
}

func decodeInputMessageDataPredicate(c *cursor) (*InputMessageDataPredicate, error) {
	in := &InputMessageDataPredicate{}
	var err error
	if in.Sender, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Recipient, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.Amount, err = c.readWord(); err != nil {
		return nil, err
	}
	if in.Nonce, err = c.readArray32(); err != nil {
		return nil, err
	}
	if in.PredicateGasUsed, err = c.readWord(); err != nil {
		return nil, err
	}
	dataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	predLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	predDataLen, err := c.readWord()
	if err != nil {
		return nil, err
	}
	if dataLen > maxBlobLen || predLen > maxBlobLen || predDataLen > maxBlobLen {
		return nil, errInvalidField("length exceeds bound")
	}
	if in.Data, err = c.readBytesBlob(int(dataLen)); err != nil {
		return nil, err
	}
	if in.Predicate, err = c.readBytesBlob(int(predLen)); err != nil {
		return nil, err
	}
	if in.PredicateData, err = c.readBytesBlob(int(predDataLen)); err != nil {
		return nil, err
	}
	return in, nil
}

func decodeInput(c *cursor) (Input, error) {
	tagWord, err := c.readWord()
	if err != nil {
		return nil, err
	}
	switch InputTag(tagWord) {
	case InputTagCoinSigned:
		return decodeInputCoinSigned(c)
	case InputTagCoinPredicate:
		return decodeInputCoinPredicate(c)
	case InputTagContract:
		return decodeInputContract(c)
	case InputTagMessageCoinSigned:
		return decodeInputMessageCoinSigned(c)
	case InputTagMessageCoinPredicate:
		return decodeInputMessageCoinPredicate(c)
	case InputTagMessageDataSigned:
		return decodeInputMessageDataSigned(c)
	case InputTagMessageDataPredicate:
		return decodeInputMessageDataPredicate(c)
	default:
		return nil, errInvalidDiscriminant("unknown input tag")
	}
}
