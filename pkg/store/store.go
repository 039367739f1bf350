// Package store is the key-value transactional layer behind the UTXO
// set, the transaction index and a small chain manifest, backed by
// go.etcd.io/bbolt.
package store

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
	"golang.org/x/crypto/sha3"

	"go.chainvm.dev/core/pkg/txtypes"
)

var (
	bucketUTXOByOutpoint = []byte("utxo_by_outpoint")
	bucketTxByID         = []byte("tx_by_id")
	bucketManifest       = []byte("manifest")

	manifestKeySchemaVersion = []byte("schema_version")
	manifestKeyChecksum      = []byte("checksum")
)

const schemaVersion = 1

// DB wraps a bbolt database holding the chain's UTXO set, transaction
// index and manifest.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (creating if necessary) a store at path and ensures its
// buckets exist.
func Open(path string) (*DB, error) {
	b, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db := &DB{bolt: b}
	if err := db.bolt.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketUTXOByOutpoint, bucketTxByID, bucketManifest} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		b.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}
	if err := db.ensureManifest(); err != nil {
		b.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying database.
func (db *DB) Close() error { return db.bolt.Close() }

func outpointKey(id txtypes.UtxoId) []byte {
	key := make([]byte, 32+2)
	copy(key, id.TxID[:])
	binary.BigEndian.PutUint16(key[32:], id.OutputIndex)
	return key
}

// PutUTXO records a live unspent output under its UtxoId.
func (db *DB) PutUTXO(id txtypes.UtxoId, entry UTXOEntry) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUTXOByOutpoint)
		return b.Put(outpointKey(id), encodeUTXOEntry(entry))
	})
}

// GetUTXO looks up a live unspent output by UtxoId. ok is false if it
// does not exist (already spent, or never existed).
func (db *DB) GetUTXO(id txtypes.UtxoId) (entry UTXOEntry, ok bool, err error) {
	err = db.bolt.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUTXOByOutpoint)
		v := b.Get(outpointKey(id))
		if v == nil {
			return nil
		}
		e, decErr := decodeUTXOEntry(v)
		if decErr != nil {
			return decErr
		}
		entry, ok = e, true
		return nil
	})
	return entry, ok, err
}

// DeleteUTXO removes an outpoint, marking it spent.
func (db *DB) DeleteUTXO(id txtypes.UtxoId) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUTXOByOutpoint).Delete(outpointKey(id))
	})
}

// PutTx indexes tx's canonical encoding under its id.
func (db *DB) PutTx(id txtypes.Bytes32, encoded []byte) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTxByID).Put(id[:], encoded)
	})
}

// GetTx retrieves a transaction's canonical encoding by id.
func (db *DB) GetTx(id txtypes.Bytes32) (encoded []byte, ok bool, err error) {
	err = db.bolt.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketTxByID).Get(id[:])
		if v == nil {
			return nil
		}
		encoded = append([]byte(nil), v...)
		ok = true
		return nil
	})
	return encoded, ok, err
}

// ensureManifest writes the schema version on first open and
// refreshes the non-consensus integrity checksum over both data
// buckets on every open.
func (db *DB) ensureManifest() error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(bucketManifest)
		var versionBytes [8]byte
		binary.LittleEndian.PutUint64(versionBytes[:], schemaVersion)
		if err := mb.Put(manifestKeySchemaVersion, versionBytes[:]); err != nil {
			return err
		}
		sum := sha3.New256()
		for _, name := range [][]byte{bucketUTXOByOutpoint, bucketTxByID} {
			b := tx.Bucket(name)
			if err := b.ForEach(func(k, v []byte) error {
				sum.Write(k)
				sum.Write(v)
				return nil
			}); err != nil {
				return err
			}
		}
		return mb.Put(manifestKeyChecksum, sum.Sum(nil))
	})
}

// ManifestChecksum returns the manifest's current, non-consensus
// SHA3-256 integrity checksum over the UTXO and transaction buckets.
// It has no bearing on any consensus rule -- it exists only so an
// operator can detect silent on-disk corruption between opens.
func (db *DB) ManifestChecksum() ([]byte, error) {
	var sum []byte
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		sum = append([]byte(nil), tx.Bucket(bucketManifest).Get(manifestKeyChecksum)...)
		return nil
	})
	return sum, err
}
