package xsig_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"

	"go.chainvm.dev/core/pkg/txtypes"
	"go.chainvm.dev/core/pkg/xsig"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	owner := xsig.AddressOf(sk.PubKey())
	digest := txtypes.Bytes32{1, 2, 3}

	sig := xsig.Sign(sk, digest)
	if !xsig.Verify(sig, digest, owner) {
		t.Fatal("expected a freshly produced signature to verify")
	}
}

func TestVerifyRejectsWrongOwner(t *testing.T) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	digest := txtypes.Bytes32{1, 2, 3}
	sig := xsig.Sign(sk, digest)

	if xsig.Verify(sig, digest, txtypes.Address{0xff}) {
		t.Error("expected verification against an unrelated owner to fail")
	}
}

func TestVerifyRejectsTamperedDigest(t *testing.T) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	owner := xsig.AddressOf(sk.PubKey())
	digest := txtypes.Bytes32{1, 2, 3}
	sig := xsig.Sign(sk, digest)

	tampered := digest
	tampered[0] ^= 0xff
	if xsig.Verify(sig, tampered, owner) {
		t.Error("expected verification against a tampered digest to fail")
	}
}

func TestHashAddressIsDeterministic(t *testing.T) {
	predicate := []byte{0xde, 0xad, 0xbe, 0xef}
	a := xsig.HashAddress(predicate)
	b := xsig.HashAddress(predicate)
	if a != b {
		t.Error("expected HashAddress to be deterministic")
	}
}
