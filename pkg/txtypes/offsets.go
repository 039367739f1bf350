package txtypes

// This file answers "what is the byte offset and length, within
// Encode(tx), of sequence element i?" -- the question the VM's
// transaction-introspection opcodes ask -- without re-encoding the
// whole transaction: it sums the encoded sizes of the fields and
// elements that precede element i, so the cost grows with i. It relies on the
// per-element contiguous layout chosen in input.go/output.go: each
// sequence element's own static header is immediately followed by its
// own dynamic tail, so one element occupies one contiguous span.

// InputOffset returns the byte offset and length of inputs[i] within
// Encode(tx), or ok=false if tx has no Inputs or i is out of range.
func InputOffset(tx Tx, i int) (offset, length int, ok bool) {
	hi, isHi := tx.(HasInputs)
	if !isHi {
		return 0, 0, false
	}
	inputs := hi.Inputs()
	if i < 0 || i >= len(inputs) {
		return 0, 0, false
	}
	base := inputsSectionOffset(tx)
	for j := 0; j < i; j++ {
		base += inputEncodedSize(inputs[j])
	}
	return base, inputEncodedSize(inputs[i]), true
}

// OutputOffset returns the byte offset and length of outputs[i] within
// Encode(tx), or ok=false if tx has no Outputs or i is out of range.
func OutputOffset(tx Tx, i int) (offset, length int, ok bool) {
	ho, isHo := tx.(HasOutputs)
	if !isHo {
		return 0, 0, false
	}
	outputs := ho.Outputs()
	if i < 0 || i >= len(outputs) {
		return 0, 0, false
	}
	base := outputsSectionOffset(tx)
	for j := 0; j < i; j++ {
		base += outputEncodedSize(outputs[j])
	}
	return base, outputEncodedSize(outputs[i]), true
}

// WitnessOffset returns the byte offset and length of witnesses[i]
// within Encode(tx), or ok=false if tx has no Witnesses or i is out
// of range.
func WitnessOffset(tx Tx, i int) (offset, length int, ok bool) {
	hw, isHw := tx.(HasWitnesses)
	if !isHw {
		return 0, 0, false
	}
	witnesses := hw.Witnesses()
	if i < 0 || i >= len(witnesses) {
		return 0, 0, false
	}
	base := witnessesSectionOffset(tx)
	for j := 0; j < i; j++ {
		base += witnessEncodedSize(witnesses[j])
	}
	return base, witnessEncodedSize(witnesses[i]), true
}

// inputsSectionOffset returns where the Inputs sequence begins within
// Encode(tx): past the static header and whatever dynamic fields a
// variant places before Inputs.
func inputsSectionOffset(tx Tx) int {
	switch t := tx.(type) {
	case *Script:
		return t.sizeStatic() + bytesBlobSize(len(t.ScriptBytes)) + bytesBlobSize(len(t.ScriptData))
	case *Create:
		n := t.sizeStatic()
		for _, s := range t.StorageSlots_ {
			n += s.sizeStatic()
		}
		return n
	default:
		return tx.sizeStatic()
	}
}

func outputsSectionOffset(tx Tx) int {
	n := inputsSectionOffset(tx)
	if hi, ok := tx.(HasInputs); ok {
		for _, in := range hi.Inputs() {
			n += inputEncodedSize(in)
		}
	}
	return n
}

func witnessesSectionOffset(tx Tx) int {
	n := outputsSectionOffset(tx)
	if ho, ok := tx.(HasOutputs); ok {
		for _, out := range ho.Outputs() {
			n += outputEncodedSize(out)
		}
	}
	return n
}
