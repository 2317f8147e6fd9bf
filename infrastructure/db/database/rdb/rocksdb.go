package rdb

import (
	"github.com/kaspanet/genesisproof/infrastructure/db/database"
	"github.com/linxGnu/grocksdb"
	"github.com/pkg/errors"
)

// RocksDB defines a thin wrapper around rocksdb.
type RocksDB struct {
	rdb         *grocksdb.DB
	readOptions *grocksdb.ReadOptions
}

// NewRocksDB opens, in read-only mode, the existing rocksdb instance at the
// given path.
func NewRocksDB(path string) (*RocksDB, error) {
	options := grocksdb.NewDefaultOptions()
	defer options.Destroy()
	options.SetCreateIfMissing(false)

	rdb, err := grocksdb.OpenDbForReadOnly(options, path, false)
	if err != nil {
		return nil, errors.Wrapf(database.ErrDatabaseUnavailable, "opening rocksdb at %s: %s", path, err)
	}

	log.Debugf("Opened rocksdb at %s", path)
	db := &RocksDB{
		rdb:         rdb,
		readOptions: grocksdb.NewDefaultReadOptions(),
	}
	return db, nil
}

// Close closes the rocksdb instance.
func (db *RocksDB) Close() error {
	db.readOptions.Destroy()
	db.rdb.Close()
	return nil
}

// Get gets the value for the given key. It returns an error that satisfies
// database.IsNotFoundError if the given key does not exist.
func (db *RocksDB) Get(key []byte) ([]byte, error) {
	slice, err := db.rdb.Get(db.readOptions, key)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer slice.Free()
	if !slice.Exists() {
		return nil, errors.Wrapf(database.ErrNotFound, "key %x not found", key)
	}

	// The slice's backing array is owned by rocksdb and freed above, so
	// copy it out.
	data := make([]byte, slice.Size())
	copy(data, slice.Data())
	return data, nil
}

// Has returns true if the database contains the given key.
func (db *RocksDB) Has(key []byte) (bool, error) {
	slice, err := db.rdb.Get(db.readOptions, key)
	if err != nil {
		return false, errors.WithStack(err)
	}
	defer slice.Free()
	return slice.Exists(), nil
}
