package txtypes

// This file defines one capability interface per field shared across more
// than one transaction variant, instead of one interface per variant.
// Generic code (the validity checker, the builder, the introspection
// opcodes) type-asserts a Tx against the capability it needs -- a
// Script and a Create both satisfy HasInputs, but only Mint does not.

// HasInputs is satisfied by transactions that spend UTXOs.
type HasInputs interface {
	Inputs() []Input
	SetInputs([]Input)
}

func (t *Script) Inputs() []Input     { return t.Inputs_ }
func (t *Script) SetInputs(in []Input) { t.Inputs_ = in }
func (t *Create) Inputs() []Input     { return t.Inputs_ }
func (t *Create) SetInputs(in []Input) { t.Inputs_ = in }

// HasOutputs is satisfied by transactions that create UTXOs.
type HasOutputs interface {
	Outputs() []Output
	SetOutputs([]Output)
}

func (t *Script) Outputs() []Output      { return t.Outputs_ }
func (t *Script) SetOutputs(o []Output)  { t.Outputs_ = o }
func (t *Create) Outputs() []Output      { return t.Outputs_ }
func (t *Create) SetOutputs(o []Output)  { t.Outputs_ = o }

// HasWitnesses is satisfied by transactions that carry a witness section.
type HasWitnesses interface {
	Witnesses() []Witness
	SetWitnesses([]Witness)
}

func (t *Script) Witnesses() []Witness     { return t.Witnesses_ }
func (t *Script) SetWitnesses(w []Witness) { t.Witnesses_ = w }
func (t *Create) Witnesses() []Witness     { return t.Witnesses_ }
func (t *Create) SetWitnesses(w []Witness) { t.Witnesses_ = w }

// HasGasPrice is satisfied by transactions that pay for their own
// execution (Mint settles fees instead of paying them).
type HasGasPrice interface {
	GasPrice() Word
	SetGasPrice(Word)
	GasLimit() Word
}

func (t *Script) GasPrice() Word     { return t.GasPrice_ }
func (t *Script) SetGasPrice(w Word) { t.GasPrice_ = w }
func (t *Script) GasLimit() Word     { return t.GasLimit_ }
func (t *Create) GasPrice() Word     { return t.GasPrice_ }
func (t *Create) SetGasPrice(w Word) { t.GasPrice_ = w }
func (t *Create) GasLimit() Word     { return t.GasLimit_ }

// HasMaturity is satisfied by transactions with a minimum activation
// block height.
type HasMaturity interface {
	Maturity() BlockHeight
}

func (t *Script) Maturity() BlockHeight { return t.Maturity_ }
func (t *Create) Maturity() BlockHeight { return t.Maturity_ }

// HasStorageSlots is satisfied only by Create: the initial key/value
// pairs seeded into the deployed contract's storage.
type HasStorageSlots interface {
	StorageSlots() []StorageSlot
	// StorageSlotsGuard opens a scoped mutation: callers may append,
	// remove or rewrite slots through the returned guard, and Close
	// re-sorts the underlying slice ascending by key before returning,
	// so a Create transaction can never observably hold unsorted slots
	// between mutations.
	StorageSlotsGuard() *StorageSlotsGuard
}

func (t *Create) StorageSlots() []StorageSlot { return t.StorageSlots_ }

func (t *Create) StorageSlotsGuard() *StorageSlotsGuard {
	return &StorageSlotsGuard{owner: t, Slots: t.StorageSlots_}
}

// StorageSlotsGuard scopes a mutation of a Create transaction's storage
// slots. Slots is the live backing slice; assign through it (or replace
// it wholesale) and call Close to commit and re-sort.
type StorageSlotsGuard struct {
	owner *Create
	Slots []StorageSlot
}

func (g *StorageSlotsGuard) Close() {
	g.owner.StorageSlots_ = SortStorageSlots(g.Slots)
}

// HasBytecodeWitnessIndex is satisfied only by Create.
type HasBytecodeWitnessIndex interface {
	BytecodeWitnessIndex() uint8
}
