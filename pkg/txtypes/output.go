package txtypes

// OutputTag discriminates the five Output variants.
type OutputTag Word

const (
	OutputTagCoin OutputTag = iota
	OutputTagContract
	OutputTagChange
	OutputTagVariable
	OutputTagContractCreated
)

// Output is implemented by each of the five output variants.
type Output interface {
	Tag() OutputTag

	sizeStatic() int
	sizeDynamic() int
	encodeStatic(dst []byte) []byte
	encodeDynamic(dst []byte) []byte
}

func encodeOutput(o Output) []byte {
	dst := make([]byte, 0, o.sizeStatic()+o.sizeDynamic())
	dst = o.encodeStatic(dst)
	dst = o.encodeDynamic(dst)
	return dst
}

func outputEncodedSize(o Output) int { return o.sizeStatic() + o.sizeDynamic() }

// coinLikeOutput is the shared shape of Coin, Change and Variable: a
// destination address, an amount and an asset id.
type coinLikeOutput struct {
	To      Address
	Amount  Word
	AssetID AssetId
}

func (o coinLikeOutput) sizeStatic() int { return 8 + 32 + 8 + 32 }
func (o coinLikeOutput) sizeDynamic() int { return 0 }
func (o coinLikeOutput) encodeFields(tag OutputTag, dst []byte) []byte {
	dst = appendWord(dst, Word(tag))
	dst = appendArray32(dst, o.To)
	dst = appendWord(dst, o.Amount)
	dst = appendArray32(dst, o.AssetID)
	return dst
}

func decodeCoinLikeOutput(c *cursor) (coinLikeOutput, error) {
	var o coinLikeOutput
	var err error
	if o.To, err = c.readArray32(); err != nil {
		return o, err
	}
	if o.Amount, err = c.readWord(); err != nil {
		return o, err
	}
	if o.AssetID, err = c.readArray32(); err != nil {
		return o, err
	}
	return o, nil
}

type OutputCoin struct{ coinLikeOutput }

func (o *OutputCoin) Tag() OutputTag { return OutputTagCoin }
func (o *OutputCoin) encodeStatic(dst []byte) []byte {
	return o.coinLikeOutput.encodeFields(OutputTagCoin, dst)
}
func (o *OutputCoin) encodeDynamic(dst []byte) []byte { return dst }

type OutputChange struct{ coinLikeOutput }

func (o *OutputChange) Tag() OutputTag { return OutputTagChange }
func (o *OutputChange) encodeStatic(dst []byte) []byte {
	return o.coinLikeOutput.encodeFields(OutputTagChange, dst)
}
func (o *OutputChange) encodeDynamic(dst []byte) []byte { return dst }

type OutputVariable struct{ coinLikeOutput }

func (o *OutputVariable) Tag() OutputTag { return OutputTagVariable }
func (o *OutputVariable) encodeStatic(dst []byte) []byte {
	return o.coinLikeOutput.encodeFields(OutputTagVariable, dst)
}
func (o *OutputVariable) encodeDynamic(dst []byte) []byte { return dst }

type OutputContract struct {
	InputIndex  uint8
	BalanceRoot Bytes32
	StateRoot   Bytes32
}

func (o *OutputContract) Tag() OutputTag   { return OutputTagContract }
func (o *OutputContract) sizeStatic() int  { return 8 + 8 + 32 + 32 }
func (o *OutputContract) sizeDynamic() int { return 0 }
func (o *OutputContract) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(o.Tag()))
	dst = appendWord(dst, Word(o.InputIndex))
	dst = appendArray32(dst, o.BalanceRoot)
	dst = appendArray32(dst, o.StateRoot)
	return dst
}
func (o *OutputContract) encodeDynamic(dst []byte) []byte { return dst }

type OutputContractCreated struct {
	ContractID ContractId
	StateRoot  Bytes32
}

func (o *OutputContractCreated) Tag() OutputTag   { return OutputTagContractCreated }
func (o *OutputContractCreated) sizeStatic() int  { return 8 + 32 + 32 }
func (o *OutputContractCreated) sizeDynamic() int { return 0 }
func (o *OutputContractCreated) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(o.Tag()))
	dst = appendArray32(dst, o.ContractID)
	dst = appendArray32(dst, o.StateRoot)
	return dst
}
func (o *OutputContractCreated) encodeDynamic(dst []byte) []byte { return dst }

func decodeOutput(c *cursor) (Output, error) {
	tagWord, err := c.readWord()
	if err != nil {
		return nil, err
	}
	switch OutputTag(tagWord) {
	case OutputTagCoin:
		f, err := decodeCoinLikeOutput(c)
		if err != nil {
			return nil, err
		}
		return &OutputCoin{f}, nil
	case OutputTagChange:
		f, err := decodeCoinLikeOutput(c)
		if err != nil {
			return nil, err
		}
		return &OutputChange{f}, nil
	case OutputTagVariable:
		f, err := decodeCoinLikeOutput(c)
		if err != nil {
			return nil, err
		}
		return &OutputVariable{f}, nil
	case OutputTagContract:
		w, err := c.readWord()
		if err != nil {
			return nil, err
		}
		o := &OutputContract{InputIndex: uint8(w)}
		if o.BalanceRoot, err = c.readArray32(); err != nil {
			return nil, err
		}
		if o.StateRoot, err = c.readArray32(); err != nil {
			return nil, err
		}
		return o, nil
	case OutputTagContractCreated:
		o := &OutputContractCreated{}
		var err error
		if o.ContractID, err = c.readArray32(); err != nil {
			return nil, err
		}
		if o.StateRoot, err = c.readArray32(); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, errInvalidDiscriminant("unknown output tag")
	}
}
