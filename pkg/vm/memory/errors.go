package memory

// PanicReason enumerates the ways a memory operation can fail. The
// interpreter boundary in pkg/vm wraps these into a PanicReceipt.
type PanicReason string

const (
	MemoryOwnership PanicReason = "MEMORY_OWNERSHIP"
	MemoryOverflow  PanicReason = "MEMORY_OVERFLOW"
	MemoryWriteSize PanicReason = "MEMORY_WRITE_SIZE"
)

// PanicError is returned by every fallible operation in this package.
type PanicError struct {
	Reason PanicReason
}

func (e *PanicError) Error() string { return string(e.Reason) }
