package store_test

import (
	"path/filepath"
	"testing"

	"go.chainvm.dev/core/pkg/store"
	"go.chainvm.dev/core/pkg/txtypes"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "chain.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGetDeleteUTXO(t *testing.T) {
	db := openTestDB(t)
	id := txtypes.UtxoId{TxID: txtypes.Bytes32{1}, OutputIndex: 3}
	entry := store.UTXOEntry{Owner: txtypes.Address{9}, Amount: 42, AssetID: txtypes.AssetId{1}, BlockHeight: 7}

	if err := db.PutUTXO(id, entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := db.GetUTXO(id)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != entry {
		t.Errorf("got %+v, want %+v", got, entry)
	}

	if err := db.DeleteUTXO(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, err = db.GetUTXO(id)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if ok {
		t.Error("expected UTXO to be gone after delete")
	}
}

func TestPutGetTx(t *testing.T) {
	db := openTestDB(t)
	id := txtypes.Bytes32{5}
	encoded := []byte{1, 2, 3, 4}

	if err := db.PutTx(id, encoded); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := db.GetTx(id)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != string(encoded) {
		t.Errorf("got %v, want %v", got, encoded)
	}
}

func TestManifestChecksumChangesWithData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.db")

	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	before, err := db.ManifestChecksum()
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if err := db.PutTx(txtypes.Bytes32{1}, []byte{0xaa}); err != nil {
		t.Fatalf("put: %v", err)
	}
	db.Close()

	// PutTx alone doesn't refresh the manifest; only Open recomputes it.
	// Re-opening the same file should pick up the new transaction.
	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	after, err := reopened.ManifestChecksum()
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if string(before) == string(after) {
		t.Error("expected checksum to change after adding data and reopening")
	}
}
