package txbuilder_test

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"go.chainvm.dev/core/pkg/txbuilder"
	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/xsig"
)

func TestScriptBuilderRoundTrips(t *testing.T) {
	b := txbuilder.NewScript(1, 1_000_000, 0)
	b.Bytecode([]byte{0x10, 0x20}, []byte{0xaa})
	idx := b.AddUnsignedCoinInput(txtypes.UtxoId{}, txtypes.Address{1}, 100, txtypes.AssetId{}, txtypes.TxPointer{}, 0)
	if idx != 0 {
		t.Fatalf("expected witness index 0, got %d", idx)
	}
	tx := b.Build()

	encoded := txtypes.Encode(tx)
	decoded, err := txtypes.Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s, ok := decoded.(*txtypes.Script)
	if !ok {
		t.Fatalf("expected *Script, got %T", decoded)
	}
	if !bytes.Equal(s.ScriptBytes, tx.ScriptBytes) || !bytes.Equal(s.ScriptData, tx.ScriptData) {
		t.Errorf("round-trip mismatch on script bytes/data")
	}
	if len(s.Inputs_) != 1 || len(s.Witnesses_) != 1 {
		t.Errorf("expected 1 input and 1 witness, got %d/%d", len(s.Inputs_), len(s.Witnesses_))
	}
}

func TestCreateBuilderSortsStorageSlots(t *testing.T) {
	b := txbuilder.NewCreate(1, 1_000_000, 0, txtypes.Salt{})
	b.Bytecode(make([]byte, 64))
	b.AddStorageSlot(txtypes.Bytes32{0x02}, txtypes.Bytes32{0xAA})
	b.AddStorageSlot(txtypes.Bytes32{0x01}, txtypes.Bytes32{0xBB})
	tx := b.Build()

	if !txtypes.IsStorageSlotsSorted(tx.StorageSlots_) {
		t.Fatalf("storage slots not sorted: %+v", tx.StorageSlots_)
	}
	if tx.StorageSlots_[0].Key != (txtypes.Bytes32{0x01}) {
		t.Errorf("expected slot 0 key 0x01, got %x", tx.StorageSlots_[0].Key)
	}

	encoded := txtypes.Encode(tx)
	decoded, err := txtypes.Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c, ok := decoded.(*txtypes.Create)
	if !ok {
		t.Fatalf("expected *Create, got %T", decoded)
	}
	if len(c.StorageSlots_) != 2 || c.StorageSlots_[0].Key != (txtypes.Bytes32{0x01}) {
		t.Errorf("round-tripped Create has wrong storage slots: %+v", c.StorageSlots_)
	}
}

func TestIdStableAcrossSignInputs(t *testing.T) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	owner := xsig.AddressOf(sk.PubKey())

	b := txbuilder.NewScript(1, 1_000_000, 0)
	b.AddUnsignedCoinInput(txtypes.UtxoId{}, owner, 100, txtypes.AssetId{}, txtypes.TxPointer{}, 0)
	tx := b.Build()

	const chainID = uint64(1234)
	idBefore := txbuilder.Id(tx, chainID)
	txbuilder.SignInputs(tx, chainID, sk)
	idAfter := txbuilder.Id(tx, chainID)

	if idBefore != idAfter {
		t.Errorf("transaction id changed after signing: %x != %x", idBefore, idAfter)
	}
	if len(tx.Witnesses_[0].Data) == 0 {
		t.Errorf("expected SignInputs to fill the placeholder witness")
	}
}
