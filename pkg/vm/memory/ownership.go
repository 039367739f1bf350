package memory

// ContextKind distinguishes top-level script execution from a nested
// contract call: the two differ in where the heap's upper bound sits.
type ContextKind int

const (
	ContextScript ContextKind = iota
	ContextCall
)

// Context is the VM's current execution context. BlockHeight is only
// meaningful when Kind is ContextCall.
type Context struct {
	Kind        ContextKind
	BlockHeight BlockHeight
}

// BlockHeight mirrors txtypes.BlockHeight without importing it, keeping
// this package free of a dependency on the transaction model.
type BlockHeight = uint32

func ScriptContext() Context { return Context{Kind: ContextScript} }

func CallContext(h BlockHeight) Context { return Context{Kind: ContextCall, BlockHeight: h} }

// OwnershipRegisters is the six-register partition of the address
// space at a single instant: SSP/SP bound the current frame's stack,
// HP/PrevHP bound its heap, and Context selects which upper bound
// (MemSize, or the parent frame's HP) applies to the heap.
type OwnershipRegisters struct {
	SSP     Word
	SP      Word
	HP      Word
	PrevHP  Word
	Context Context
}

// heapTop returns the current frame's heap upper bound: MemSize in
// Script (external) context, since the heap may grow all the way to
// the top of the address space; the parent frame's HP in Call context,
// since a nested call must not reach into its caller's heap.
func (r OwnershipRegisters) heapTop() Word {
	if r.Context.Kind == ContextScript {
		return MemSize
	}
	return r.PrevHP
}

// VerifyOwnership reports whether rng lies wholly inside the current
// frame's stack range [SSP, SP) or its heap range [HP, heapTop). Both
// bounds are checked with the same non-strict start/end comparison, so
// an empty range is owned exactly when its single address falls inside
// a (possibly also empty, coincident) owned region -- no separate
// empty-range case is needed.
func (r OwnershipRegisters) VerifyOwnership(rng MemoryRange) bool {
	stackOK := r.SSP <= rng.Start && rng.End <= r.SP
	heapOK := r.HP <= rng.Start && rng.End <= r.heapTop()
	return stackOK || heapOK
}

// VerifyOwnershipErr is VerifyOwnership wrapped as the PanicReason the
// VM's write primitives surface on failure.
func (r OwnershipRegisters) VerifyOwnershipErr(rng MemoryRange) error {
	if !r.VerifyOwnership(rng) {
		return &PanicError{Reason: MemoryOwnership}
	}
	return nil
}
