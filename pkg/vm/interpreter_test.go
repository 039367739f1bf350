package vm_test

import (
	"bytes"
	"testing"

	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/vm"
)

func twoInputScript() *txtypes.Script {
	mk := func(idx uint16) *txtypes.InputCoinSigned {
		return &txtypes.InputCoinSigned{UtxoID: txtypes.UtxoId{OutputIndex: idx}, Amount: 50}
	}
	return &txtypes.Script{Inputs_: []txtypes.Input{mk(0), mk(1)}}
}

func TestInitScriptLoadsCanonicalBytesAtVMTxMemory(t *testing.T) {
	tx := twoInputScript()
	interp := vm.New()
	if err := interp.InitScript(tx); err != nil {
		t.Fatalf("InitScript: %v", err)
	}

	want := txtypes.Encode(tx)
	got := interp.Mem.Bytes[vm.VMTxMemory : vm.VMTxMemory+len(want)]
	if !bytes.Equal(got, want) {
		t.Error("loaded transaction bytes do not match its canonical encoding")
	}
}

func TestInputIntrospectionThroughInterpreter(t *testing.T) {
	tx := twoInputScript()
	interp := vm.New()
	if err := interp.InitScript(tx); err != nil {
		t.Fatalf("InitScript: %v", err)
	}

	start0, err := interp.InputStart(0)
	if err != nil {
		t.Fatalf("InputStart(0): %v", err)
	}
	len0, err := interp.InputLength(0)
	if err != nil {
		t.Fatalf("InputLength(0): %v", err)
	}
	start1, err := interp.InputStart(1)
	if err != nil {
		t.Fatalf("InputStart(1): %v", err)
	}
	if start1 != start0+len0 {
		t.Errorf("InputStart(1) = %d, want %d", start1, start0+len0)
	}
}

func TestMissingOutputReturnsTypedPanic(t *testing.T) {
	tx := &txtypes.Script{}
	interp := vm.New()
	if err := interp.InitScript(tx); err != nil {
		t.Fatalf("InitScript: %v", err)
	}
	_, err := interp.OutputStart(0)
	if err == nil {
		t.Fatal("expected an error for a missing output")
	}
	pr, ok := err.(*vm.PanicReceipt)
	if !ok || pr.Reason != vm.OutputNotFound {
		t.Errorf("want OutputNotFound, got %v", err)
	}
}

func TestRunPredicateIsUnimplemented(t *testing.T) {
	interp := vm.New()
	_, err := interp.RunPredicate(nil, nil, 1000)
	pr, ok := err.(*vm.PanicReceipt)
	if !ok || pr.Reason != vm.Unimplemented {
		t.Errorf("want Unimplemented, got %v", err)
	}
}
