package database

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kaspanet/genesisproof/domain/database/binaryserialization"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/genesisproof/infrastructure/db/database"
	"github.com/pkg/errors"
)

// Store provides read access to the header records of a consensus database.
type Store interface {
	// GetRawHeader fetches and decodes the header stored under the given
	// hash. It returns an error that satisfies database.IsNotFoundError if
	// no such header exists.
	GetRawHeader(hash *model.DomainHash) (model.BlockHeader, error)

	// Tips returns the current DAG tips and the headers selected tip.
	Tips() ([]*model.DomainHash, *model.DomainHash, error)

	// PruningPoint returns the current pruning point.
	PruningPoint() (*model.DomainHash, error)

	// Close releases the underlying database.
	Close() error
}

const decodedHeadersCacheSize = 2000

// dbStore is a Store over a key/value database engine. The record format is
// fixed per database, so one implementation serves both backends.
type dbStore struct {
	db     database.Database
	format binaryserialization.Format

	decodedHeadersCache *lru.Cache[model.DomainHash, model.BlockHeader]
}

// NewStore wraps an open database engine in a Store that decodes records in
// the given format.
func NewStore(db database.Database, format binaryserialization.Format) (Store, error) {
	decodedHeadersCache, err := lru.New[model.DomainHash, model.BlockHeader](decodedHeadersCacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &dbStore{
		db:                  db,
		format:              format,
		decodedHeadersCache: decodedHeadersCache,
	}, nil
}

func (s *dbStore) GetRawHeader(hash *model.DomainHash) (model.BlockHeader, error) {
	if header, ok := s.decodedHeadersCache.Get(*hash); ok {
		return header, nil
	}

	headerBytes, err := s.db.Get(headerKey(hash))
	if err != nil {
		return nil, err
	}
	header, err := binaryserialization.DeserializeHeader(headerBytes, s.format)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding the header stored under %s", hash)
	}

	// Formats that store the header's own hash declare, in effect, which
	// record this is. A record declaring a hash other than the one it is
	// keyed under is a corrupt database, not a lookup miss.
	if storedHash := header.StoredHash(); storedHash != nil && !storedHash.Equal(hash) {
		return nil, errors.Errorf("the header stored under %s declares itself to be %s",
			hash, storedHash)
	}

	s.decodedHeadersCache.Add(*hash, header)
	return header, nil
}

func (s *dbStore) Tips() ([]*model.DomainHash, *model.DomainHash, error) {
	tipsBytes, err := s.db.Get(tipsKey())
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching the DAG tips")
	}
	tips, err := binaryserialization.DeserializeTips(tipsBytes, s.format)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding the DAG tips")
	}

	selectedTipBytes, err := s.db.Get(headersSelectedTipKey())
	if err != nil {
		return nil, nil, errors.Wrap(err, "fetching the headers selected tip")
	}
	selectedTip, err := binaryserialization.DeserializeHashRecord(selectedTipBytes, s.format)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding the headers selected tip")
	}

	log.Debugf("Database has %d tips, headers selected tip %s", len(tips), selectedTip)
	return tips, selectedTip, nil
}

func (s *dbStore) PruningPoint() (*model.DomainHash, error) {
	pruningPointBytes, err := s.db.Get(pruningPointKey())
	if err != nil {
		return nil, errors.Wrap(err, "fetching the pruning point")
	}
	pruningPoint, err := binaryserialization.DeserializeHashRecord(pruningPointBytes, s.format)
	if err != nil {
		return nil, errors.Wrap(err, "decoding the pruning point")
	}
	return pruningPoint, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}
