package introspect_test

import (
	"bytes"
	"reflect"
	"testing"

	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/vm/introspect"
)

func twoCoinSignedInputsScript() *txtypes.Script {
	mk := func(idx uint16) *txtypes.InputCoinSigned {
		return &txtypes.InputCoinSigned{
			UtxoID:       txtypes.UtxoId{OutputIndex: idx},
			Amount:       100,
			WitnessIndex: uint8(idx),
		}
	}
	return &txtypes.Script{
		Inputs_: []txtypes.Input{mk(0), mk(1)},
	}
}

// TestInputIntrospectionAgreesWithCodec builds a Script with two
// CoinSigned inputs and checks that InputStart(1) picks up exactly
// where inputs[0]'s encoding ends, and that the bytes at each input's
// reported span decode back to that same input.
func TestInputIntrospectionAgreesWithCodec(t *testing.T) {
	tx := twoCoinSignedInputsScript()
	const vmTxMemory = 0

	start0, err := introspect.InputStart(tx, 0, vmTxMemory)
	if err != nil {
		t.Fatalf("InputStart(0): %v", err)
	}
	len0, err := introspect.InputLength(tx, 0)
	if err != nil {
		t.Fatalf("InputLength(0): %v", err)
	}
	start1, err := introspect.InputStart(tx, 1, vmTxMemory)
	if err != nil {
		t.Fatalf("InputStart(1): %v", err)
	}
	len1, err := introspect.InputLength(tx, 1)
	if err != nil {
		t.Fatalf("InputLength(1): %v", err)
	}

	if start1 != start0+len0 {
		t.Fatalf("InputStart(1) = %d, want %d (InputStart(0)+InputLength(0))", start1, start0+len0)
	}

	full := txtypes.Encode(tx)
	span0 := full[start0 : start0+len0]
	span1 := full[start1 : start1+len1]

	// Each input's own span, decoded as a standalone one-input Script,
	// must round-trip to the original input.
	one0 := &txtypes.Script{}
	prefixAndDecode(t, one0, span0)
	if !reflect.DeepEqual(one0.Inputs_[0], tx.Inputs_[0]) {
		t.Errorf("inputs[0] span does not decode back to the original input")
	}
	one1 := &txtypes.Script{}
	prefixAndDecode(t, one1, span1)
	if !reflect.DeepEqual(one1.Inputs_[0], tx.Inputs_[1]) {
		t.Errorf("inputs[1] span does not decode back to the original input")
	}
}

// prefixAndDecode wraps a raw input span with a minimal Script header
// (zero gas/maturity, empty script/data blobs, one input, no
// outputs/witnesses)
// and decodes it, so the standalone span can be verified through the
// public Decode entry point without reaching into unexported codec
// internals.
func prefixAndDecode(t *testing.T, into *txtypes.Script, inputSpan []byte) {
	t.Helper()
	var header bytes.Buffer
	writeWord := func(v uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(v >> (8 * i))
		}
		header.Write(b[:])
	}
	writeWord(0) // kind: Script
	writeWord(0) // gas_price
	writeWord(0) // gas_limit
	writeWord(0) // maturity
	header.Write(make([]byte, 32)) // receipts_root
	writeWord(0)                   // script length
	writeWord(0)                   // script_data length
	writeWord(1)                   // inputs count
	writeWord(0)                   // outputs count
	writeWord(0)                   // witnesses count
	writeWord(0)                   // script blob length prefix (dynamic section)
	writeWord(0)                   // script_data blob length prefix (dynamic section)
	header.Write(inputSpan)

	decoded, err := txtypes.Decode(header.Bytes())
	if err != nil {
		t.Fatalf("decode synthetic single-input script: %v", err)
	}
	s, ok := decoded.(*txtypes.Script)
	if !ok || len(s.Inputs_) != 1 {
		t.Fatalf("expected a one-input Script, got %#v", decoded)
	}
	*into = *s
}

func TestMissingFieldsReturnTypedPanics(t *testing.T) {
	tx := &txtypes.Mint{}
	if _, err := introspect.InputStart(tx, 0, 0); err == nil {
		t.Error("expected InputNotFound for a Mint transaction")
	}
	if _, err := introspect.OutputStart(tx, 0, 0); err == nil {
		t.Error("expected OutputNotFound for a Mint transaction")
	}
	if _, err := introspect.WitnessStart(tx, 0, 0); err == nil {
		t.Error("expected WitnessNotFound for a Mint transaction")
	}

	script := &txtypes.Script{}
	_, err := introspect.WitnessStart(script, 0, 0)
	pe, ok := err.(*introspect.PanicError)
	if !ok || pe.Reason != introspect.WitnessNotFound {
		t.Errorf("want WitnessNotFound for an out-of-range witness, got %v", err)
	}
}
