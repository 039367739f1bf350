package memory

// TryMemWrite copies data into mem at addr, after checking addr+len(data)
// fits in the address space and is owned by the current frame under
// regs. Rejects an empty write outright: a write primitive exists to
// move bytes, and a zero-length call is always a caller bug rather
// than a no-op.
func TryMemWrite(addr Word, data []byte, regs OwnershipRegisters, mem *Memory) error {
	if len(data) == 0 {
		return &PanicError{Reason: MemoryWriteSize}
	}
	rng, err := NewRange(addr, Word(len(data)))
	if err != nil {
		return err
	}
	if err := regs.VerifyOwnershipErr(rng); err != nil {
		return err
	}
	copy(mem.Bytes[rng.Start:rng.End], data)
	return nil
}

// TryZeroize fills mem[addr:addr+length] with zeros under the same
// ownership contract as TryMemWrite.
func TryZeroize(addr, length Word, regs OwnershipRegisters, mem *Memory) error {
	if length == 0 {
		return &PanicError{Reason: MemoryWriteSize}
	}
	rng, err := NewRange(addr, length)
	if err != nil {
		return err
	}
	if err := regs.VerifyOwnershipErr(rng); err != nil {
		return err
	}
	clear(mem.Bytes[rng.Start:rng.End])
	return nil
}

// CopyFromSliceZeroFillNoOwnerChecks copies
// min(length, saturating_sub(len(src), srcOffset)) bytes from
// src[srcOffset:] into mem[dstAddr:], then zero-fills whatever is left
// of the requested length. It performs no ownership check -- only a
// bounds check against MemSize -- because it exists for opcodes that
// load out-of-VM data (script data, witness bytes) the caller has
// already cleared to write into its own declared destination.
func CopyFromSliceZeroFillNoOwnerChecks(mem *Memory, src []byte, dstAddr, srcOffset, length Word) error {
	rng, err := NewRange(dstAddr, length)
	if err != nil {
		return err
	}
	var available Word
	if srcOffset < Word(len(src)) {
		available = Word(len(src)) - srcOffset
	}
	copied := length
	if available < copied {
		copied = available
	}
	if copied > 0 {
		copy(mem.Bytes[rng.Start:rng.Start+copied], src[srcOffset:srcOffset+copied])
	}
	if copied < length {
		clear(mem.Bytes[rng.Start+copied : rng.End])
	}
	return nil
}
