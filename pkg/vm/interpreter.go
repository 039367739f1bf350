// Package vm assembles the memory region, ownership registers and
// transaction-introspection primitives into the interpreter boundary
// an opcode dispatcher would sit behind. The dispatcher itself -- the
// full instruction set and gas table -- is out of scope; this package
// exposes only what C5-C8 of the execution substrate require.
package vm

import (
	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/vm/introspect"
	"go.chainvm.dev/core/pkg/vm/memory"
)

// PanicReason is the VM's unified runtime-failure vocabulary: every
// PanicError from pkg/vm/memory and every PanicError from
// pkg/vm/introspect maps onto one of these.
type PanicReason string

const (
	MemoryOwnership PanicReason = "MEMORY_OWNERSHIP"
	MemoryOverflow  PanicReason = "MEMORY_OVERFLOW"
	MemoryWriteSize PanicReason = "MEMORY_WRITE_SIZE"
	InputNotFound   PanicReason = "INPUT_NOT_FOUND"
	OutputNotFound  PanicReason = "OUTPUT_NOT_FOUND"
	WitnessNotFound PanicReason = "WITNESS_NOT_FOUND"
	Unimplemented   PanicReason = "UNIMPLEMENTED"
)

// PanicReceipt records why execution halted. It is produced at the
// interpreter boundary, never by pkg/vm/memory or pkg/vm/introspect
// directly -- they raise their own narrower error types, which
// asPanicReason translates here.
type PanicReceipt struct {
	Reason PanicReason
	Msg    string
}

func (p *PanicReceipt) Error() string {
	if p.Msg == "" {
		return string(p.Reason)
	}
	return string(p.Reason) + ": " + p.Msg
}

func asPanicReason(err error) *PanicReceipt {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *memory.PanicError:
		return &PanicReceipt{Reason: PanicReason(e.Reason)}
	case *introspect.PanicError:
		return &PanicReceipt{Reason: PanicReason(e.Reason)}
	default:
		return &PanicReceipt{Reason: Unimplemented, Msg: err.Error()}
	}
}

// VMTxMemory is the fixed address within the memory region at which a
// loaded transaction's canonical bytes begin.
const VMTxMemory = 0

// Interpreter owns one VM instance's memory region, ownership
// registers and loaded transaction. It is not safe for concurrent use;
// independent Interpreters sharing no state may run on separate
// goroutines freely (see the concurrency notes in SPEC_FULL.md).
type Interpreter struct {
	Mem  *memory.Memory
	Regs memory.OwnershipRegisters
	Tx   txtypes.Tx
}

// New returns an Interpreter with a freshly zeroed memory region.
func New() *Interpreter {
	return &Interpreter{Mem: memory.New()}
}

// InitScript loads tx's canonical encoding at VMTxMemory and resets the
// ownership registers to a fresh Script-context frame with an empty
// stack starting just past the transaction bytes and an empty heap
// (HP at MemSize) at the top of the address space.
func (vm *Interpreter) InitScript(tx txtypes.Tx) error {
	encoded := txtypes.Encode(tx)
	if err := memory.TryMemWrite(VMTxMemory, encoded, memory.OwnershipRegisters{
		SSP: 0, SP: memory.MemSize, HP: 0, PrevHP: memory.MemSize,
		Context: memory.ScriptContext(),
	}, vm.Mem); err != nil {
		return asPanicReason(err)
	}
	vm.Tx = tx
	vm.Regs = memory.OwnershipRegisters{
		SSP: memory.Word(len(encoded)), SP: memory.Word(len(encoded)),
		HP: memory.MemSize, PrevHP: memory.MemSize,
		Context: memory.ScriptContext(),
	}
	return nil
}

// InputStart returns the VM memory address of inputs[i] in the loaded
// transaction.
func (vm *Interpreter) InputStart(i int) (int, error) {
	start, err := introspect.InputStart(vm.Tx, i, VMTxMemory)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return start, nil
}

// InputLength returns the encoded length of inputs[i].
func (vm *Interpreter) InputLength(i int) (int, error) {
	length, err := introspect.InputLength(vm.Tx, i)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return length, nil
}

// OutputStart returns the VM memory address of outputs[i].
func (vm *Interpreter) OutputStart(i int) (int, error) {
	start, err := introspect.OutputStart(vm.Tx, i, VMTxMemory)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return start, nil
}

// OutputLength returns the encoded length of outputs[i].
func (vm *Interpreter) OutputLength(i int) (int, error) {
	length, err := introspect.OutputLength(vm.Tx, i)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return length, nil
}

// WitnessStart returns the VM memory address of witnesses[i].
func (vm *Interpreter) WitnessStart(i int) (int, error) {
	start, err := introspect.WitnessStart(vm.Tx, i, VMTxMemory)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return start, nil
}

// WitnessLength returns the encoded length of witnesses[i].
func (vm *Interpreter) WitnessLength(i int) (int, error) {
	length, err := introspect.WitnessLength(vm.Tx, i)
	if err != nil {
		return 0, asPanicReason(err)
	}
	return length, nil
}

// TryMemWrite writes data at addr under the interpreter's current
// ownership registers.
func (vm *Interpreter) TryMemWrite(addr uint64, data []byte) error {
	if err := memory.TryMemWrite(addr, data, vm.Regs, vm.Mem); err != nil {
		return asPanicReason(err)
	}
	return nil
}

// RunPredicate is the entry point a CoinPredicate/MessagePredicate
// input's spending condition would run through: a restricted recursive
// sub-run of this same interpreter, with its own gas budget and no
// state-mutating opcodes enabled. The opcode dispatcher that would
// drive that sub-run is out of scope for this package (see PURPOSE &
// SCOPE in SPEC_FULL.md) -- this stub documents the contract a
// dispatcher must fulfill rather than faking one:
//
//   - predicateBytes is loaded into a fresh Interpreter's memory at
//     VMTxMemory, exactly like a top-level script.
//   - The sub-run's gas budget is capped by
//     params.PredicateParams.MaxGasPerPredicate, independent of the
//     parent transaction's remaining gas.
//   - Opcodes that create contracts, transfer balances, or otherwise
//     mutate chain state outside the sub-run's own memory MUST be
//     rejected by the dispatcher before they execute.
//   - The sub-run succeeds iff it halts having set register 0x10 (the
//     predicate's boolean result register) to a nonzero value before
//     running out of gas or memory.
func (vm *Interpreter) RunPredicate(predicateBytes, predicateData []byte, gasLimit uint64) (bool, error) {
	return false, &PanicReceipt{Reason: Unimplemented, Msg: "predicate opcode dispatch is out of scope"}
}
