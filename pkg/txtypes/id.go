package txtypes

import (
	"crypto/sha256"
	"encoding/binary"
)

// TxId computes a transaction's content-addressed identifier under the
// given chain id: SHA-256(chain_id || normalize(tx).encode()).
//
// Normalization exists because a transaction's id is the message that
// gets signed into its own witnesses -- so a signature must not depend
// on its own bytes. normalize zeroes the body of every witness a
// signed input's WitnessIndex points at (preserving its length, so the
// encoding's size and layout are unchanged) and, for a Script, zeroes
// receipts_root, which is only filled in after execution. Witnesses no
// signed input references -- notably a Create's bytecode witness --
// are left untouched, so the id still depends on their contents.
func TxId(tx Tx, chainID uint64) Bytes32 {
	norm := normalize(tx)
	h := sha256.New()
	var chainIDBytes [8]byte
	binary.LittleEndian.PutUint64(chainIDBytes[:], chainID)
	h.Write(chainIDBytes[:])
	h.Write(Encode(norm))
	var out Bytes32
	copy(out[:], h.Sum(nil))
	return out
}

func normalize(tx Tx) Tx {
	c := tx.clone()
	if hw, ok := c.(HasWitnesses); ok {
		ws := hw.Witnesses()
		zeroed := make([]Witness, len(ws))
		copy(zeroed, ws)
		for _, idx := range signedWitnessIndices(c) {
			if int(idx) < len(zeroed) {
				zeroed[idx] = zeroed[idx].zeroed()
			}
		}
		hw.SetWitnesses(zeroed)
	}
	if s, ok := c.(*Script); ok {
		s.ReceiptsRoot = Bytes32{}
	}
	return c
}

// signedWitnessIndices collects the WitnessIndex of every CoinSigned,
// MessageCoinSigned or MessageDataSigned input in tx -- the inputs
// whose spending condition is a signature over the transaction id,
// rather than a predicate or a contract reference.
func signedWitnessIndices(tx Tx) []uint8 {
	hi, ok := tx.(HasInputs)
	if !ok {
		return nil
	}
	var idxs []uint8
	for _, in := range hi.Inputs() {
		switch v := in.(type) {
		case *InputCoinSigned:
			idxs = append(idxs, v.WitnessIndex)
		case *InputMessageCoinSigned:
			idxs = append(idxs, v.WitnessIndex)
		case *InputMessageDataSigned:
			idxs = append(idxs, v.WitnessIndex)
		}
	}
	return idxs
}
