package ldb

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kaspanet/genesisproof/infrastructure/db/database"
	"github.com/syndtr/goleveldb/leveldb"
)

// prepareDatabase writes a leveldb instance the way a node would, then
// closes it so the read-only wrapper can take over.
func prepareDatabase(t *testing.T, entries map[string][]byte) string {
	path := filepath.Join(t.TempDir(), "db")
	writer, err := leveldb.OpenFile(path, nil)
	if err != nil {
		t.Fatalf("opening leveldb for writing: %+v", err)
	}
	for key, value := range entries {
		err := writer.Put([]byte(key), value, nil)
		if err != nil {
			t.Fatalf("putting %x: %+v", key, err)
		}
	}
	err = writer.Close()
	if err != nil {
		t.Fatalf("closing the writer: %+v", err)
	}
	return path
}

func TestLevelDBGetAndHas(t *testing.T) {
	path := prepareDatabase(t, map[string][]byte{
		"\x08key": {0x01, 0x02, 0x03},
	})
	db, err := NewLevelDB(path)
	if err != nil {
		t.Fatalf("NewLevelDB: %+v", err)
	}
	defer db.Close()

	value, err := db.Get([]byte("\x08key"))
	if err != nil {
		t.Fatalf("Get: %+v", err)
	}
	if !bytes.Equal(value, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("Get returned %x", value)
	}

	exists, err := db.Has([]byte("\x08key"))
	if err != nil {
		t.Fatalf("Has: %+v", err)
	}
	if !exists {
		t.Fatalf("Has returned false for an existing key")
	}
	exists, err = db.Has([]byte("absent"))
	if err != nil {
		t.Fatalf("Has: %+v", err)
	}
	if exists {
		t.Fatalf("Has returned true for an absent key")
	}
}

func TestLevelDBGetNotFound(t *testing.T) {
	db, err := NewLevelDB(prepareDatabase(t, nil))
	if err != nil {
		t.Fatalf("NewLevelDB: %+v", err)
	}
	defer db.Close()

	_, err = db.Get([]byte("absent"))
	if !database.IsNotFoundError(err) {
		t.Fatalf("expected a not-found error, got %+v", err)
	}
}

// TestLevelDBMissingDatabase checks that a nonexistent database is reported
// as unavailable rather than silently created.
func TestLevelDBMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-db")
	_, err := NewLevelDB(path)
	if !database.IsDatabaseUnavailableError(err) {
		t.Fatalf("expected a database-unavailable error, got %+v", err)
	}
}
