// Package txbuilder assembles Script, Create and Mint transactions
// field by field and signs their inputs, mirroring the fluent
// transaction-construction helpers a client SDK exposes.
package txbuilder

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/xsig"
)

// ScriptBuilder accumulates a Script transaction's fields.
type ScriptBuilder struct {
	tx *txtypes.Script
}

// NewScript starts a Script transaction with the given gas price,
// gas limit and maturity.
func NewScript(gasPrice, gasLimit txtypes.Word, maturity txtypes.BlockHeight) *ScriptBuilder {
	return &ScriptBuilder{tx: &txtypes.Script{
		GasPrice_: gasPrice,
		GasLimit_: gasLimit,
		Maturity_: maturity,
	}}
}

// Bytecode sets the script's executable bytes and its input data.
func (b *ScriptBuilder) Bytecode(script, scriptData []byte) *ScriptBuilder {
	b.tx.ScriptBytes = script
	b.tx.ScriptData = scriptData
	return b
}

// AddInput appends in to the transaction's input list and returns its
// index.
func (b *ScriptBuilder) AddInput(in txtypes.Input) int {
	b.tx.Inputs_ = append(b.tx.Inputs_, in)
	return len(b.tx.Inputs_) - 1
}

// AddOutput appends out to the transaction's output list and returns
// its index.
func (b *ScriptBuilder) AddOutput(out txtypes.Output) int {
	b.tx.Outputs_ = append(b.tx.Outputs_, out)
	return len(b.tx.Outputs_) - 1
}

// AddUnsignedCoinInput appends an InputCoinSigned spending utxo, owned
// by the address that will later sign it, and returns the witness
// index reserved for its signature (a blank Witness appended now, to be
// filled in by SignInputs).
func (b *ScriptBuilder) AddUnsignedCoinInput(utxo txtypes.UtxoId, owner txtypes.Address, amount txtypes.Word, assetID txtypes.AssetId, ptr txtypes.TxPointer, maturity txtypes.BlockHeight) int {
	wIdx := b.reserveWitness()
	b.AddInput(&txtypes.InputCoinSigned{
		UtxoID: utxo, Owner: owner, Amount: amount, AssetID: assetID,
		TxPointer: ptr, WitnessIndex: uint8(wIdx), Maturity: maturity,
	})
	return wIdx
}

// AddUnsignedMessageInput appends an InputMessageCoinSigned spending a
// bridge message, and returns the witness index reserved for its
// signature.
func (b *ScriptBuilder) AddUnsignedMessageInput(sender, recipient txtypes.Address, amount txtypes.Word, nonce txtypes.Nonce) int {
	wIdx := b.reserveWitness()
	b.AddInput(&txtypes.InputMessageCoinSigned{
		Sender: sender, Recipient: recipient, Amount: amount, Nonce: nonce,
		WitnessIndex: uint8(wIdx),
	})
	return wIdx
}

// reserveWitness appends a placeholder empty witness and returns its
// index, reserved for a signature SignInputs will later fill in.
func (b *ScriptBuilder) reserveWitness() int {
	b.tx.Witnesses_ = append(b.tx.Witnesses_, txtypes.Witness{})
	return len(b.tx.Witnesses_) - 1
}

// Build finalizes the transaction.
func (b *ScriptBuilder) Build() *txtypes.Script { return b.tx }

// CreateBuilder accumulates a Create transaction's fields.
type CreateBuilder struct {
	tx *txtypes.Create
}

// NewCreate starts a Create transaction.
func NewCreate(gasPrice, gasLimit txtypes.Word, maturity txtypes.BlockHeight, salt txtypes.Salt) *CreateBuilder {
	return &CreateBuilder{tx: &txtypes.Create{
		GasPrice_: gasPrice,
		GasLimit_: gasLimit,
		Maturity_: maturity,
		Salt:      salt,
	}}
}

// Bytecode appends bytecode as a new witness and records that
// witness's index as BytecodeWitnessIndex.
func (b *CreateBuilder) Bytecode(bytecode []byte) *CreateBuilder {
	idx := len(b.tx.Witnesses_)
	b.tx.Witnesses_ = append(b.tx.Witnesses_, txtypes.Witness{Data: bytecode})
	b.tx.BytecodeWitnessIndex_ = uint8(idx)
	return b
}

// AddStorageSlot seeds a (key, value) pair into the deployed contract's
// initial storage. Slots are kept sorted by Build via SortStorageSlots.
func (b *CreateBuilder) AddStorageSlot(key, value txtypes.Bytes32) *CreateBuilder {
	b.tx.StorageSlots_ = append(b.tx.StorageSlots_, txtypes.StorageSlot{Key: key, Value: value})
	return b
}

// AddInput appends in to the transaction's input list and returns its
// index.
func (b *CreateBuilder) AddInput(in txtypes.Input) int {
	b.tx.Inputs_ = append(b.tx.Inputs_, in)
	return len(b.tx.Inputs_) - 1
}

// AddOutput appends out to the transaction's output list and returns
// its index.
func (b *CreateBuilder) AddOutput(out txtypes.Output) int {
	b.tx.Outputs_ = append(b.tx.Outputs_, out)
	return len(b.tx.Outputs_) - 1
}

// AddUnsignedCoinInput appends an InputCoinSigned and returns the
// witness index reserved for its signature.
func (b *CreateBuilder) AddUnsignedCoinInput(utxo txtypes.UtxoId, owner txtypes.Address, amount txtypes.Word, assetID txtypes.AssetId, ptr txtypes.TxPointer, maturity txtypes.BlockHeight) int {
	wIdx := len(b.tx.Witnesses_)
	b.tx.Witnesses_ = append(b.tx.Witnesses_, txtypes.Witness{})
	b.AddInput(&txtypes.InputCoinSigned{
		UtxoID: utxo, Owner: owner, Amount: amount, AssetID: assetID,
		TxPointer: ptr, WitnessIndex: uint8(wIdx), Maturity: maturity,
	})
	return wIdx
}

// Build sorts the accumulated storage slots and finalizes the
// transaction.
func (b *CreateBuilder) Build() *txtypes.Create {
	g := b.tx.StorageSlotsGuard()
	g.Close()
	return b.tx
}

// MintTx builds a Mint transaction's static fields directly; Mint
// carries no witnesses or dynamic sections to accumulate.
func MintTx(ptr txtypes.TxPointer, in txtypes.InputContract, out txtypes.OutputContract, amount txtypes.Word, assetID txtypes.AssetId) *txtypes.Mint {
	return &txtypes.Mint{
		TxPointer: ptr, InputContract: in, OutputContract: out,
		MintAmount: amount, MintAssetID: assetID,
	}
}

// Id returns tx's normalized transaction id under chainID.
func Id(tx txtypes.Tx, chainID uint64) txtypes.Bytes32 {
	return txtypes.TxId(tx, chainID)
}

// SignInputs signs every CoinSigned, MessageCoinSigned and
// MessageDataSigned input in tx whose WitnessIndex addresses an empty
// placeholder witness, writing the recoverable signature into that
// witness slot. It signs the id computed under chainID, with the
// normalization TxId applies (receipts root zeroed, and the witness
// bodies of signed inputs zeroed with their lengths kept).
func SignInputs(tx txtypes.HasWitnesses, chainID uint64, sk *btcec.PrivateKey) {
	digest := txtypes.TxId(tx.(txtypes.Tx), chainID)
	sig := xsig.Sign(sk, digest)
	witnesses := tx.Witnesses()
	for _, idx := range signedWitnessIndices(tx.(txtypes.Tx)) {
		if int(idx) < len(witnesses) && len(witnesses[idx].Data) == 0 {
			witnesses[idx] = txtypes.Witness{Data: sig}
		}
	}
	tx.SetWitnesses(witnesses)
}

// signedWitnessIndices collects the WitnessIndex of every CoinSigned,
// MessageCoinSigned or MessageDataSigned input in tx.
func signedWitnessIndices(tx txtypes.Tx) []uint8 {
	hi, ok := tx.(txtypes.HasInputs)
	if !ok {
		return nil
	}
	var idxs []uint8
	for _, in := range hi.Inputs() {
		switch v := in.(type) {
		case *txtypes.InputCoinSigned:
			idxs = append(idxs, v.WitnessIndex)
		case *txtypes.InputMessageCoinSigned:
			idxs = append(idxs, v.WitnessIndex)
		case *txtypes.InputMessageDataSigned:
			idxs = append(idxs, v.WitnessIndex)
		}
	}
	return idxs
}

// NewDefaultScriptForTest returns a minimal, well-formed Script with no
// inputs, outputs or witnesses -- a convenient starting point for unit
// tests that only care about one field under construction.
func NewDefaultScriptForTest() *txtypes.Script {
	return NewScript(0, 1_000_000, 0).Build()
}
