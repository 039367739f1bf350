// Package params carries the consensus-critical limits a transaction is
// checked against: compiled-in defaults, not operator configuration.
package params

// TxParams bounds the shape of any transaction.
type TxParams struct {
	MaxInputs    uint64
	MaxOutputs   uint64
	MaxWitnesses uint64
	MaxSize      uint64
	MaxGasPerTx  uint64
}

// ContractParams bounds a deployed contract.
type ContractParams struct {
	ContractMaxSize uint64
	MaxStorageSlots uint64
}

// FeeParams converts metered bytes and gas into a fee.
type FeeParams struct {
	GasPriceFactor uint64
	GasPerByte     uint64
}

// PredicateParams bounds predicate programs carried by predicate inputs.
type PredicateParams struct {
	MaxPredicateLength     uint64
	MaxPredicateDataLength uint64
	MaxGasPerPredicate     uint64
}

// ScriptParams bounds a Script transaction's bytecode and script data.
type ScriptParams struct {
	MaxScriptLength     uint64
	MaxScriptDataLength uint64
}

// GasCosts is a lookup table from opcode name to its fixed gas cost.
// The dispatcher that would consult it is out of scope here; it is
// carried so ConsensusParameters has somewhere for that table to live.
type GasCosts map[string]uint64

// ConsensusParameters bundles every consensus-critical limit a
// transaction is checked against.
type ConsensusParameters struct {
	TxParams        TxParams
	ContractParams  ContractParams
	FeeParams       FeeParams
	PredicateParams PredicateParams
	ScriptParams    ScriptParams
	ChainID         uint64
	GasCosts        GasCosts
}

// Standard returns a reasonable default parameter set for a single chain
// instance.
func Standard() ConsensusParameters {
	return ConsensusParameters{
		TxParams: TxParams{
			MaxInputs:    255,
			MaxOutputs:   255,
			MaxWitnesses: 255,
			MaxSize:      110 * 1024,
			MaxGasPerTx:  100_000_000,
		},
		ContractParams: ContractParams{
			ContractMaxSize: 100 * 1024,
			MaxStorageSlots: 255,
		},
		FeeParams: FeeParams{
			GasPriceFactor: 92_428,
			GasPerByte:     4,
		},
		PredicateParams: PredicateParams{
			MaxPredicateLength:     100 * 1024,
			MaxPredicateDataLength: 100 * 1024,
			MaxGasPerPredicate:     100_000_000,
		},
		ScriptParams: ScriptParams{
			MaxScriptLength:     100 * 1024,
			MaxScriptDataLength: 100 * 1024,
		},
		ChainID:  0,
		GasCosts: GasCosts{},
	}
}

// WithChainID returns a copy of p with ChainID overridden.
func (p ConsensusParameters) WithChainID(id uint64) ConsensusParameters {
	p.ChainID = id
	return p
}
