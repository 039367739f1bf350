package store

import (
	"encoding/binary"
	"fmt"

	"go.chainvm.dev/core/pkg/txtypes"
)

// UTXOEntry is the denormalized record kept per live unspent output:
// enough of the originating Output to check ownership and balance
// without re-decoding and re-walking the whole owning transaction.
type UTXOEntry struct {
	Owner          txtypes.Address
	Amount         txtypes.Word
	AssetID        txtypes.AssetId
	BlockHeight    txtypes.BlockHeight
	IsCoinbaseMint bool
}

// encodeUTXOEntry is a small fixed-width, non-canonical record format:
// it is an index entry, not wire-consensus data, so it is free to
// diverge from the transaction codec's widening/tagging rules.
func encodeUTXOEntry(e UTXOEntry) []byte {
	buf := make([]byte, 32+8+32+4+1)
	copy(buf[0:32], e.Owner[:])
	binary.LittleEndian.PutUint64(buf[32:40], e.Amount)
	copy(buf[40:72], e.AssetID[:])
	binary.LittleEndian.PutUint32(buf[72:76], e.BlockHeight)
	if e.IsCoinbaseMint {
		buf[76] = 1
	}
	return buf
}

func decodeUTXOEntry(b []byte) (UTXOEntry, error) {
	var e UTXOEntry
	if len(b) != 32+8+32+4+1 {
		return e, fmt.Errorf("store: corrupt UTXO entry: %d bytes", len(b))
	}
	copy(e.Owner[:], b[0:32])
	e.Amount = binary.LittleEndian.Uint64(b[32:40])
	copy(e.AssetID[:], b[40:72])
	e.BlockHeight = binary.LittleEndian.Uint32(b[72:76])
	e.IsCoinbaseMint = b[76] != 0
	return e, nil
}
