// Package txcheck validates a built transaction's structural and
// semantic invariants against a set of consensus parameters, and
// bundles the validated transaction with the derived metadata
// downstream code needs so it never has to re-parse the transaction.
package txcheck

import (
	"go.chainvm.dev/core/pkg/params"
	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/xsig"
)

// CheckErrorCode enumerates the violated rule behind a CheckError, one
// variant per invariant in the data model's size, uniqueness,
// cross-reference, balance, maturity, predicate and signature rules.
type CheckErrorCode string

const (
	ErrTooManyInputs              CheckErrorCode = "TOO_MANY_INPUTS"
	ErrTooManyOutputs             CheckErrorCode = "TOO_MANY_OUTPUTS"
	ErrTooManyWitnesses           CheckErrorCode = "TOO_MANY_WITNESSES"
	ErrTransactionSizeLimit       CheckErrorCode = "TRANSACTION_SIZE_LIMIT_EXCEEDED"
	ErrDuplicateUtxoID            CheckErrorCode = "DUPLICATE_UTXO_ID"
	ErrDuplicateContractID        CheckErrorCode = "DUPLICATE_CONTRACT_ID"
	ErrDuplicateMessageNonce      CheckErrorCode = "DUPLICATE_MESSAGE_NONCE"
	ErrInputContractOutputMissing CheckErrorCode = "INPUT_CONTRACT_OUTPUT_MISSING"
	ErrBytecodeWitnessIndexBounds CheckErrorCode = "BYTECODE_WITNESS_INDEX_OUT_OF_BOUNDS"
	ErrBytecodeLengthMismatch     CheckErrorCode = "BYTECODE_LENGTH_MISMATCH"
	ErrArithmeticOverflow         CheckErrorCode = "ARITHMETIC_OVERFLOW"
	ErrUnbalanced                 CheckErrorCode = "UNBALANCED"
	ErrMaturity                   CheckErrorCode = "MATURITY_NOT_REACHED"
	ErrPredicateOwnerInvalid      CheckErrorCode = "PREDICATE_OWNER_INVALID"
	ErrInvalidSignature           CheckErrorCode = "INVALID_SIGNATURE"
	ErrScriptNotAllowedOnCreate   CheckErrorCode = "SCRIPT_NOT_ALLOWED_ON_CREATE"
	ErrOutputKindNotAllowed       CheckErrorCode = "OUTPUT_KIND_NOT_ALLOWED"
)

// CheckError names the rule a transaction failed.
type CheckError struct {
	Code CheckErrorCode
	Msg  string
}

func (e *CheckError) Error() string {
	if e.Msg == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Msg
}

func fail(code CheckErrorCode, msg string) error { return &CheckError{Code: code, Msg: msg} }

// Checked bundles a validated transaction with the metadata Check
// derived while validating it, so downstream code (the interpreter,
// the store) never has to recompute it.
type Checked struct {
	Tx             txtypes.Tx
	ChainID        uint64
	BlockHeight    txtypes.BlockHeight
	Id             txtypes.Bytes32
	MeteredBytes   int
	BalancesByAsset map[txtypes.AssetId]assetBalance
}

type assetBalance struct {
	Inputs, Outputs uint64
}

// Check validates tx against consensusParams at blockHeight, without
// verifying signatures (use CheckSignatures for that once the witness
// section is final). On success it returns a Checked bundle.
func Check(tx txtypes.Tx, blockHeight txtypes.BlockHeight, cp params.ConsensusParameters) (*Checked, error) {
	if err := checkSizeBounds(tx, cp); err != nil {
		return nil, err
	}
	if err := checkUniqueness(tx); err != nil {
		return nil, err
	}
	if err := checkContractInputOutputPairing(tx); err != nil {
		return nil, err
	}
	if err := checkBytecode(tx); err != nil {
		return nil, err
	}
	if err := checkOutputKinds(tx); err != nil {
		return nil, err
	}
	if err := checkMaturity(tx, blockHeight); err != nil {
		return nil, err
	}
	if err := checkPredicateOwners(tx); err != nil {
		return nil, err
	}
	balances, err := checkBalance(tx, cp)
	if err != nil {
		return nil, err
	}
	return &Checked{
		Tx:              tx,
		ChainID:         cp.ChainID,
		BlockHeight:     blockHeight,
		Id:              txtypes.TxId(tx, cp.ChainID),
		MeteredBytes:    txtypes.MeteredBytesSize(tx),
		BalancesByAsset: balances,
	}, nil
}

// CheckSignatures verifies, for every signed input, that its witness
// is a valid recoverable signature of c.Id producing that input's
// owner. It is separate from Check because signatures only make sense
// once witnesses are final, whereas the other rules hold at any point
// after finalization.
func CheckSignatures(c *Checked) error {
	hw, ok := c.Tx.(txtypes.HasWitnesses)
	if !ok {
		return nil
	}
	hi, ok := c.Tx.(txtypes.HasInputs)
	if !ok {
		return nil
	}
	witnesses := hw.Witnesses()
	for _, in := range hi.Inputs() {
		owner, widx, signed := signedOwner(in)
		if !signed {
			continue
		}
		if int(widx) >= len(witnesses) {
			return fail(ErrInvalidSignature, "witness index out of bounds")
		}
		if !xsig.Verify(witnesses[widx].Data, c.Id, owner) {
			return fail(ErrInvalidSignature, "")
		}
	}
	return nil
}

func signedOwner(in txtypes.Input) (owner txtypes.Address, witnessIndex uint8, ok bool) {
	switch v := in.(type) {
	case *txtypes.InputCoinSigned:
		return v.Owner, v.WitnessIndex, true
	case *txtypes.InputMessageCoinSigned:
		return v.Recipient, v.WitnessIndex, true
	case *txtypes.InputMessageDataSigned:
		return v.Recipient, v.WitnessIndex, true
	default:
		return txtypes.Address{}, 0, false
	}
}

func checkSizeBounds(tx txtypes.Tx, cp params.ConsensusParameters) error {
	if hi, ok := tx.(txtypes.HasInputs); ok && uint64(len(hi.Inputs())) > cp.TxParams.MaxInputs {
		return fail(ErrTooManyInputs, "")
	}
	if ho, ok := tx.(txtypes.HasOutputs); ok && uint64(len(ho.Outputs())) > cp.TxParams.MaxOutputs {
		return fail(ErrTooManyOutputs, "")
	}
	if hw, ok := tx.(txtypes.HasWitnesses); ok && uint64(len(hw.Witnesses())) > cp.TxParams.MaxWitnesses {
		return fail(ErrTooManyWitnesses, "")
	}
	if uint64(txtypes.Size(tx)) > cp.TxParams.MaxSize {
		return fail(ErrTransactionSizeLimit, "")
	}
	if s, ok := tx.(*txtypes.Script); ok {
		if uint64(len(s.ScriptBytes)) > cp.ScriptParams.MaxScriptLength {
			return fail(ErrTransactionSizeLimit, "script exceeds max_script_length")
		}
		if uint64(len(s.ScriptData)) > cp.ScriptParams.MaxScriptDataLength {
			return fail(ErrTransactionSizeLimit, "script_data exceeds max_script_data_length")
		}
	}
	if c, ok := tx.(*txtypes.Create); ok {
		if uint64(len(c.StorageSlots_)) > cp.ContractParams.MaxStorageSlots {
			return fail(ErrTransactionSizeLimit, "storage_slots exceeds max_storage_slots")
		}
	}
	return nil
}

func checkUniqueness(tx txtypes.Tx) error {
	hi, ok := tx.(txtypes.HasInputs)
	if !ok {
		return nil
	}
	utxoSeen := map[txtypes.UtxoId]struct{}{}
	contractSeen := map[txtypes.ContractId]struct{}{}
	nonceSeen := map[txtypes.Nonce]struct{}{}
	for _, in := range hi.Inputs() {
		switch v := in.(type) {
		case *txtypes.InputCoinSigned:
			if _, dup := utxoSeen[v.UtxoID]; dup {
				return fail(ErrDuplicateUtxoID, "")
			}
			utxoSeen[v.UtxoID] = struct{}{}
		case *txtypes.InputCoinPredicate:
			if _, dup := utxoSeen[v.UtxoID]; dup {
				return fail(ErrDuplicateUtxoID, "")
			}
			utxoSeen[v.UtxoID] = struct{}{}
		case *txtypes.InputContract:
			if _, dup := contractSeen[v.ContractID]; dup {
				return fail(ErrDuplicateContractID, "")
			}
			contractSeen[v.ContractID] = struct{}{}
		case *txtypes.InputMessageCoinSigned:
			if _, dup := nonceSeen[v.Nonce]; dup {
				return fail(ErrDuplicateMessageNonce, "")
			}
			nonceSeen[v.Nonce] = struct{}{}
		case *txtypes.InputMessageCoinPredicate:
			if _, dup := nonceSeen[v.Nonce]; dup {
				return fail(ErrDuplicateMessageNonce, "")
			}
			nonceSeen[v.Nonce] = struct{}{}
		case *txtypes.InputMessageDataSigned:
			if _, dup := nonceSeen[v.Nonce]; dup {
				return fail(ErrDuplicateMessageNonce, "")
			}
			nonceSeen[v.Nonce] = struct{}{}
		case *txtypes.InputMessageDataPredicate:
			if _, dup := nonceSeen[v.Nonce]; dup {
				return fail(ErrDuplicateMessageNonce, "")
			}
			nonceSeen[v.Nonce] = struct{}{}
		}
	}
	return nil
}

// checkContractInputOutputPairing enforces invariant 3: every
// Input::Contract at position i in the contract-input sequence must
// have a corresponding Output::Contract whose InputIndex == i.
func checkContractInputOutputPairing(tx txtypes.Tx) error {
	hi, hasIn := tx.(txtypes.HasInputs)
	ho, hasOut := tx.(txtypes.HasOutputs)
	if !hasIn || !hasOut {
		return nil
	}
	var contractInputIdx []int
	for i, in := range hi.Inputs() {
		if _, ok := in.(*txtypes.InputContract); ok {
			contractInputIdx = append(contractInputIdx, i)
		}
	}
	paired := make(map[int]bool, len(contractInputIdx))
	for _, out := range ho.Outputs() {
		if oc, ok := out.(*txtypes.OutputContract); ok {
			paired[int(oc.InputIndex)] = true
		}
	}
	for _, idx := range contractInputIdx {
		if !paired[idx] {
			return fail(ErrInputContractOutputMissing, "")
		}
	}
	return nil
}

// checkBytecode enforces invariant 2 for Create transactions.
func checkBytecode(tx txtypes.Tx) error {
	c, ok := tx.(*txtypes.Create)
	if !ok {
		return nil
	}
	if int(c.BytecodeWitnessIndex_) >= len(c.Witnesses_) {
		return fail(ErrBytecodeWitnessIndexBounds, "")
	}
	want := txtypes.Word(len(c.Witnesses_[c.BytecodeWitnessIndex_].Data) / 4)
	if c.BytecodeLength() != want {
		return fail(ErrBytecodeLengthMismatch, "")
	}
	return nil
}

// checkOutputKinds enforces invariant 4: a Script carries no
// ContractCreated output; a Create carries no Variable output and no
// non-empty script field (trivially true, Create has no script field).
func checkOutputKinds(tx txtypes.Tx) error {
	switch t := tx.(type) {
	case *txtypes.Script:
		for _, out := range t.Outputs_ {
			if out.Tag() == txtypes.OutputTagContractCreated {
				return fail(ErrOutputKindNotAllowed, "script may not create a contract output")
			}
		}
	case *txtypes.Create:
		for _, out := range t.Outputs_ {
			if out.Tag() == txtypes.OutputTagVariable {
				return fail(ErrOutputKindNotAllowed, "create may not have a variable output")
			}
		}
	}
	return nil
}

func checkMaturity(tx txtypes.Tx, blockHeight txtypes.BlockHeight) error {
	if hm, ok := tx.(txtypes.HasMaturity); ok && hm.Maturity() > blockHeight {
		return fail(ErrMaturity, "transaction maturity not reached")
	}
	if hi, ok := tx.(txtypes.HasInputs); ok {
		for _, in := range hi.Inputs() {
			if cs, ok := in.(*txtypes.InputCoinSigned); ok && cs.Maturity > blockHeight {
				return fail(ErrMaturity, "input maturity not reached")
			}
			if cp, ok := in.(*txtypes.InputCoinPredicate); ok && cp.Maturity > blockHeight {
				return fail(ErrMaturity, "input maturity not reached")
			}
		}
	}
	return nil
}

// checkPredicateOwners enforces invariant 7: for every predicate
// input, address_of(sha256(predicate_bytes)) == owner.
func checkPredicateOwners(tx txtypes.Tx) error {
	hi, ok := tx.(txtypes.HasInputs)
	if !ok {
		return nil
	}
	for _, in := range hi.Inputs() {
		switch v := in.(type) {
		case *txtypes.InputCoinPredicate:
			if xsig.HashAddress(v.Predicate) != v.Owner {
				return fail(ErrPredicateOwnerInvalid, "")
			}
		case *txtypes.InputMessageCoinPredicate:
			if xsig.HashAddress(v.Predicate) != v.Recipient {
				return fail(ErrPredicateOwnerInvalid, "")
			}
		case *txtypes.InputMessageDataPredicate:
			if xsig.HashAddress(v.Predicate) != v.Recipient {
				return fail(ErrPredicateOwnerInvalid, "")
			}
		}
	}
	return nil
}

// checkBalance enforces invariant 4: per-asset, inputs must equal
// outputs plus fee (and plus mint_amount for a same-asset Mint), using
// saturating arithmetic so overflow is detected rather than wrapped.
func checkBalance(tx txtypes.Tx, cp params.ConsensusParameters) (map[txtypes.AssetId]assetBalance, error) {
	balances := map[txtypes.AssetId]assetBalance{}
	addInput := func(asset txtypes.AssetId, amount uint64) error {
		b := balances[asset]
		sum, ok := saturatingAdd(b.Inputs, amount)
		if !ok {
			return fail(ErrArithmeticOverflow, "input sum overflow")
		}
		b.Inputs = sum
		balances[asset] = b
		return nil
	}
	addOutput := func(asset txtypes.AssetId, amount uint64) error {
		b := balances[asset]
		sum, ok := saturatingAdd(b.Outputs, amount)
		if !ok {
			return fail(ErrArithmeticOverflow, "output sum overflow")
		}
		b.Outputs = sum
		balances[asset] = b
		return nil
	}

	if hi, ok := tx.(txtypes.HasInputs); ok {
		for _, in := range hi.Inputs() {
			switch v := in.(type) {
			case *txtypes.InputCoinSigned:
				if err := addInput(v.AssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.InputCoinPredicate:
				if err := addInput(v.AssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.InputMessageCoinSigned:
				if err := addInput(baseAssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.InputMessageCoinPredicate:
				if err := addInput(baseAssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.InputMessageDataSigned:
				if err := addInput(baseAssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.InputMessageDataPredicate:
				if err := addInput(baseAssetID, v.Amount); err != nil {
					return nil, err
				}
			}
		}
	}
	if ho, ok := tx.(txtypes.HasOutputs); ok {
		for _, out := range ho.Outputs() {
			switch v := out.(type) {
			case *txtypes.OutputCoin:
				if err := addOutput(v.AssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.OutputChange:
				if err := addOutput(v.AssetID, v.Amount); err != nil {
					return nil, err
				}
			case *txtypes.OutputVariable:
				if err := addOutput(v.AssetID, v.Amount); err != nil {
					return nil, err
				}
			}
		}
	}
	if m, ok := tx.(*txtypes.Mint); ok {
		if err := addOutput(m.MintAssetID, m.MintAmount); err != nil {
			return nil, err
		}
	}

	fee, feeOK := computeFee(tx, cp)
	if !feeOK {
		return nil, fail(ErrArithmeticOverflow, "fee overflow")
	}
	if fee > 0 {
		if err := addOutput(baseAssetID, fee); err != nil {
			return nil, err
		}
	}

	for asset, b := range balances {
		if b.Inputs != b.Outputs {
			return nil, fail(ErrUnbalanced, "asset "+assetIDHex(asset)+" inputs != outputs")
		}
	}
	return balances, nil
}

// baseAssetID is the implicit asset of bridged messages and of gas fees:
// the all-zero AssetId.
var baseAssetID txtypes.AssetId

func computeFee(tx txtypes.Tx, cp params.ConsensusParameters) (uint64, bool) {
	hg, ok := tx.(txtypes.HasGasPrice)
	if !ok {
		return 0, true
	}
	meteredBytes, ok := saturatingMulU64(uint64(txtypes.MeteredBytesSize(tx)), cp.FeeParams.GasPerByte)
	if !ok {
		return 0, false
	}
	gasUsed, ok := saturatingAdd(meteredBytes, hg.GasLimit())
	if !ok {
		return 0, false
	}
	priced, ok := saturatingMulU64(gasUsed, hg.GasPrice())
	if !ok {
		return 0, false
	}
	return priced / cp.FeeParams.GasPriceFactor, true
}

func saturatingAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

func saturatingMulU64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/a != b {
		return 0, false
	}
	return p, true
}

func assetIDHex(a txtypes.AssetId) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 8)
	for i := 0; i < 4; i++ {
		out[i*2] = hexDigits[a[i]>>4]
		out[i*2+1] = hexDigits[a[i]&0xf]
	}
	return string(out) + "..."
}
