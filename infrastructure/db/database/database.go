package database

// Database is a read-only key/value database. Both the leveldb and the
// rocksdb engines implement it, so everything above this interface is
// engine-agnostic.
type Database interface {
	// Get gets the value for the given key. It returns an error that
	// satisfies IsNotFoundError if the given key does not exist.
	Get(key []byte) ([]byte, error)

	// Has returns true if the database contains the given key.
	Has(key []byte) (bool, error)

	// Close closes the database.
	Close() error
}
