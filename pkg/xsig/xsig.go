// Package xsig is the concrete signature scheme behind the core spec's
// "external collaborator": secp256k1 ECDSA, recoverable, over a 32-byte
// digest, via github.com/btcsuite/btcd/btcec/v2.
package xsig

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"go.chainvm.dev/core/pkg/txtypes"
)

// ErrInvalidSignature is returned by RecoverCompact when no public key
// can be recovered from a signature. Verify reports failure as false
// instead of returning it.
var ErrInvalidSignature = errors.New("xsig: invalid signature")

// Sign produces a 65-byte recoverable signature over digest using sk.
func Sign(sk *btcec.PrivateKey, digest txtypes.Bytes32) []byte {
	sig := ecdsa.SignCompact(sk, digest[:], true)
	return sig
}

// Verify reports whether sig is a valid recoverable signature over
// digest, produced by the holder of owner.
func Verify(sig []byte, digest txtypes.Bytes32, owner txtypes.Address) bool {
	pub, err := RecoverCompact(sig, digest)
	if err != nil {
		return false
	}
	return AddressOf(pub) == owner
}

// RecoverCompact recovers the public key that produced sig over digest.
func RecoverCompact(sig []byte, digest txtypes.Bytes32) (*btcec.PublicKey, error) {
	pub, _, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return pub, nil
}

// AddressOf derives an Address from a public key: SHA-256 of its
// compressed serialization, matching the predicate-owner derivation
// address_of(hash(bytes)) used elsewhere for predicate ownership.
func AddressOf(pub *btcec.PublicKey) txtypes.Address {
	return HashAddress(pub.SerializeCompressed())
}

// HashAddress derives an Address from arbitrary bytes via SHA-256,
// the same shape spec.md's predicate-owner rule uses:
// address_of(sha256(predicate_bytes)) == owner.
func HashAddress(b []byte) txtypes.Address {
	return txtypes.Address(sha256.Sum256(b))
}
