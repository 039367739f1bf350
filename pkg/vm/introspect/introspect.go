// Package introspect answers the VM's transaction-introspection
// queries: given (field, index), where in VM memory does that field's
// bytes live, and how long is it. Offsets are computed by
// pkg/txtypes, which owns the codec layout; this package only adds the
// VM_TX_MEMORY base and maps "not present" into the VM's panic
// vocabulary.
package introspect

import "go.chainvm.dev/core/pkg/txtypes"

// PanicReason enumerates the ways an introspection query can fail.
type PanicReason string

const (
	InputNotFound   PanicReason = "INPUT_NOT_FOUND"
	OutputNotFound  PanicReason = "OUTPUT_NOT_FOUND"
	WitnessNotFound PanicReason = "WITNESS_NOT_FOUND"
)

// PanicError is returned by every query in this package.
type PanicError struct {
	Reason PanicReason
}

func (e *PanicError) Error() string { return string(e.Reason) }

// InputStart returns the VM memory address of inputs[i], given the
// transaction's base load address.
func InputStart(tx txtypes.Tx, i int, vmTxMemory int) (int, error) {
	off, _, ok := txtypes.InputOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: InputNotFound}
	}
	return vmTxMemory + off, nil
}

// InputLength returns the encoded length of inputs[i].
func InputLength(tx txtypes.Tx, i int) (int, error) {
	_, length, ok := txtypes.InputOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: InputNotFound}
	}
	return length, nil
}

// OutputStart returns the VM memory address of outputs[i].
func OutputStart(tx txtypes.Tx, i int, vmTxMemory int) (int, error) {
	off, _, ok := txtypes.OutputOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: OutputNotFound}
	}
	return vmTxMemory + off, nil
}

// OutputLength returns the encoded length of outputs[i].
func OutputLength(tx txtypes.Tx, i int) (int, error) {
	_, length, ok := txtypes.OutputOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: OutputNotFound}
	}
	return length, nil
}

// WitnessStart returns the VM memory address of witnesses[i].
//
// Per the open question recorded in the design notes, this package
// uses WitnessNotFound consistently for a missing witness field --
// never OutputNotFound -- regardless of what any historical
// implementation did.
func WitnessStart(tx txtypes.Tx, i int, vmTxMemory int) (int, error) {
	off, _, ok := txtypes.WitnessOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: WitnessNotFound}
	}
	return vmTxMemory + off, nil
}

// WitnessLength returns the encoded length of witnesses[i].
func WitnessLength(tx txtypes.Tx, i int) (int, error) {
	_, length, ok := txtypes.WitnessOffset(tx, i)
	if !ok {
		return 0, &PanicError{Reason: WitnessNotFound}
	}
	return length, nil
}
