package memory

import (
	"bytes"
	"testing"
)

// A write that overruns the heap's upper bound must fail with
// MemoryOwnership and leave memory untouched.
func TestWritePastHeapBoundaryLeavesMemoryUnchanged(t *testing.T) {
	r := regs(0, 0, 60, 100, CallContext(0))
	mem := New()
	before := append([]byte(nil), mem.Bytes[:200]...)

	err := TryMemWrite(61, bytes.Repeat([]byte{2}, 50), r, mem)

	pe, ok := err.(*PanicError)
	if !ok || pe.Reason != MemoryOwnership {
		t.Fatalf("want MemoryOwnership, got %v", err)
	}
	if !bytes.Equal(mem.Bytes[:200], before) {
		t.Error("memory must be unchanged after a rejected write")
	}
}
