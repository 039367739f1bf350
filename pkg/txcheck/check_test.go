package txcheck_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"go.chainvm.dev/core/pkg/params"
	"go.chainvm.dev/core/pkg/txbuilder"
	"go.chainvm.dev/core/pkg/txcheck"
	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/xsig"
)

func TestCheckBalancedScriptPasses(t *testing.T) {
	cp := params.Standard().WithChainID(1)

	b := txbuilder.NewScript(0, 0, 0)
	b.AddUnsignedCoinInput(txtypes.UtxoId{OutputIndex: 1}, txtypes.Address{1}, 100, txtypes.AssetId{9}, txtypes.TxPointer{}, 0)
	out := &txtypes.OutputCoin{}
	out.To = txtypes.Address{2}
	out.Amount = 100
	out.AssetID = txtypes.AssetId{9}
	b.AddOutput(out)
	tx := b.Build()

	if _, err := txcheck.Check(tx, 0, cp); err != nil {
		t.Fatalf("expected balanced script to pass, got %v", err)
	}
}

func TestCheckUnbalancedScriptFails(t *testing.T) {
	cp := params.Standard().WithChainID(1)

	b := txbuilder.NewScript(0, 0, 0)
	b.AddUnsignedCoinInput(txtypes.UtxoId{}, txtypes.Address{1}, 100, txtypes.AssetId{9}, txtypes.TxPointer{}, 0)
	tx := b.Build()

	_, err := txcheck.Check(tx, 0, cp)
	if err == nil {
		t.Fatal("expected an unbalanced transaction to fail")
	}
	ce, ok := err.(*txcheck.CheckError)
	if !ok || ce.Code != txcheck.ErrUnbalanced {
		t.Errorf("want ErrUnbalanced, got %v", err)
	}
}

func TestCheckDuplicateUtxoIdFails(t *testing.T) {
	cp := params.Standard().WithChainID(1)

	b := txbuilder.NewScript(0, 0, 0)
	utxo := txtypes.UtxoId{OutputIndex: 1}
	b.AddUnsignedCoinInput(utxo, txtypes.Address{1}, 100, txtypes.AssetId{9}, txtypes.TxPointer{}, 0)
	b.AddUnsignedCoinInput(utxo, txtypes.Address{1}, 100, txtypes.AssetId{9}, txtypes.TxPointer{}, 0)
	tx := b.Build()

	_, err := txcheck.Check(tx, 0, cp)
	ce, ok := err.(*txcheck.CheckError)
	if !ok || ce.Code != txcheck.ErrDuplicateUtxoID {
		t.Errorf("want ErrDuplicateUtxoID, got %v", err)
	}
}

func TestCheckMaturityNotReachedFails(t *testing.T) {
	cp := params.Standard().WithChainID(1)

	b := txbuilder.NewScript(0, 0, 10)
	b.AddUnsignedCoinInput(txtypes.UtxoId{}, txtypes.Address{1}, 100, txtypes.AssetId{9}, txtypes.TxPointer{}, 0)
	tx := b.Build()

	_, err := txcheck.Check(tx, 5, cp)
	ce, ok := err.(*txcheck.CheckError)
	if !ok || ce.Code != txcheck.ErrMaturity {
		t.Errorf("want ErrMaturity, got %v", err)
	}
}

func TestCheckSignaturesAcceptsValidSignature(t *testing.T) {
	cp := params.Standard().WithChainID(7)
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	owner := xsig.AddressOf(sk.PubKey())

	b := txbuilder.NewScript(1, 1_000_000, 0)
	b.AddUnsignedCoinInput(txtypes.UtxoId{}, owner, 100, txtypes.AssetId{}, txtypes.TxPointer{}, 0)
	tx := b.Build()
	txbuilder.SignInputs(tx, cp.ChainID, sk)

	checked := &txcheck.Checked{Tx: tx, Id: txbuilder.Id(tx, cp.ChainID)}
	if err := txcheck.CheckSignatures(checked); err != nil {
		t.Errorf("expected a validly signed input to verify, got %v", err)
	}
}

func TestCheckSignaturesRejectsWrongKey(t *testing.T) {
	cp := params.Standard().WithChainID(7)
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	wrongKey, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	owner := xsig.AddressOf(sk.PubKey())

	b := txbuilder.NewScript(1, 1_000_000, 0)
	b.AddUnsignedCoinInput(txtypes.UtxoId{}, owner, 100, txtypes.AssetId{}, txtypes.TxPointer{}, 0)
	tx := b.Build()
	txbuilder.SignInputs(tx, cp.ChainID, wrongKey)

	checked := &txcheck.Checked{Tx: tx, Id: txbuilder.Id(tx, cp.ChainID)}
	if err := txcheck.CheckSignatures(checked); err == nil {
		t.Error("expected a signature from the wrong key to be rejected")
	}
}
