// Package txtypes implements the canonical transaction data model: the
// Script/Create/Mint algebraic type, its field types, and the
// deterministic static+dynamic wire codec described by the chain's
// transaction format.
package txtypes

// Word is the chain's native 64-bit integer width. Every integer field,
// regardless of its logical bit width, is widened to a Word on the wire.
type Word = uint64

// BlockHeight identifies a block by its position in the chain.
type BlockHeight = uint32

// Address identifies a coin owner or message recipient/sender.
type Address [32]byte

// AssetId identifies a fungible asset.
type AssetId [32]byte

// Bytes32 is a generic 32-byte digest (Merkle roots, state roots, ...).
type Bytes32 [32]byte

// ContractId identifies a deployed contract.
type ContractId [32]byte

// Nonce is a message's unique, sender-chosen nonce.
type Nonce [32]byte

// Salt is the Create transaction's contract-address salt.
type Salt [32]byte

// UtxoId references a prior transaction output by (txid, output_index).
type UtxoId struct {
	TxID        Bytes32
	OutputIndex uint16
}

// TxPointer identifies a previously included transaction by coordinate.
type TxPointer struct {
	BlockHeight BlockHeight
	TxIndex     uint16
}

func (p TxPointer) sizeStatic() int { return 8 + 8 }

func (p TxPointer) encodeStatic(dst []byte) []byte {
	dst = appendWord(dst, Word(p.BlockHeight))
	dst = appendWord(dst, Word(p.TxIndex))
	return dst
}

func decodeTxPointer(c *cursor) (TxPointer, error) {
	h, err := c.readWord()
	if err != nil {
		return TxPointer{}, err
	}
	idx, err := c.readWord()
	if err != nil {
		return TxPointer{}, err
	}
	return TxPointer{BlockHeight: BlockHeight(h), TxIndex: uint16(idx)}, nil
}
