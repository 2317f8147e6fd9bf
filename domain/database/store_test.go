package database

import (
	"math/big"
	"testing"

	"github.com/kaspanet/genesisproof/domain/consensushashing"
	"github.com/kaspanet/genesisproof/domain/database/binaryserialization"
	"github.com/kaspanet/genesisproof/domain/model"
	infradatabase "github.com/kaspanet/genesisproof/infrastructure/db/database"
	"github.com/pkg/errors"
)

type fakeDatabase struct {
	data map[string][]byte
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{data: make(map[string][]byte)}
}

func (d *fakeDatabase) Get(key []byte) ([]byte, error) {
	value, ok := d.data[string(key)]
	if !ok {
		return nil, errors.Wrapf(infradatabase.ErrNotFound, "key %x not found", key)
	}
	return value, nil
}

func (d *fakeDatabase) Has(key []byte) (bool, error) {
	_, ok := d.data[string(key)]
	return ok, nil
}

func (d *fakeDatabase) Close() error {
	return nil
}

func hashFromByte(b byte) *model.DomainHash {
	return model.NewDomainHashFromByteArray(&[model.DomainHashSize]byte{b})
}

// storedTestHeader returns a header whose stored hash is its real hash,
// together with that hash.
func storedTestHeader(t *testing.T, nonce uint64) (model.BlockHeader, *model.DomainHash) {
	content := model.NewImmutableBlockHeader(1,
		[]model.BlockLevelParents{{hashFromByte(1)}},
		hashFromByte(2), hashFromByte(3), hashFromByte(4),
		1637609671037, 0x207fffff, nonce, 9, big.NewInt(42), 10, hashFromByte(5))
	hash := consensushashing.HeaderHash(content)
	header := model.NewImmutableBlockHeaderWithStoredHash(hash, content.Version(),
		content.Parents(), content.HashMerkleRoot(), content.AcceptedIDMerkleRoot(),
		content.UTXOCommitment(), content.TimeInMilliseconds(), content.Bits(),
		content.Nonce(), content.DAAScore(), content.BlueWork(), content.BlueScore(),
		content.PruningPoint())
	return header, hash
}

func putHeader(t *testing.T, db *fakeDatabase, header model.BlockHeader, hash *model.DomainHash,
	format binaryserialization.Format) {

	headerBytes, err := binaryserialization.SerializeHeader(header, format)
	if err != nil {
		t.Fatalf("SerializeHeader: %+v", err)
	}
	db.data[string(headerKey(hash))] = headerBytes
}

func TestGetRawHeader(t *testing.T) {
	db := newFakeDatabase()
	store, err := NewStore(db, binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("NewStore: %+v", err)
	}

	header, hash := storedTestHeader(t, 1)
	putHeader(t, db, header, hash, binaryserialization.FormatBincode)

	got, err := store.GetRawHeader(hash)
	if err != nil {
		t.Fatalf("GetRawHeader: %+v", err)
	}
	if !header.Equal(got) {
		t.Fatalf("the fetched header differs from the stored one")
	}

	// A second fetch must be served from the cache: corrupting the raw
	// record under the store's feet must not be noticed.
	db.data[string(headerKey(hash))] = []byte{0x00}
	got, err = store.GetRawHeader(hash)
	if err != nil {
		t.Fatalf("GetRawHeader after corruption: %+v", err)
	}
	if !header.Equal(got) {
		t.Fatalf("the cached header differs from the stored one")
	}
}

func TestGetRawHeaderNotFound(t *testing.T) {
	store, err := NewStore(newFakeDatabase(), binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("NewStore: %+v", err)
	}
	_, err = store.GetRawHeader(hashFromByte(0x99))
	if !infradatabase.IsNotFoundError(err) {
		t.Fatalf("expected a not-found error, got %+v", err)
	}
}

// TestGetRawHeaderStoredHashMismatch checks that a record keyed under one
// hash but declaring another is reported as corruption, not returned.
func TestGetRawHeaderStoredHashMismatch(t *testing.T) {
	db := newFakeDatabase()
	store, err := NewStore(db, binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("NewStore: %+v", err)
	}

	header, _ := storedTestHeader(t, 1)
	wrongKey := hashFromByte(0x77)
	putHeader(t, db, header, wrongKey, binaryserialization.FormatBincode)

	_, err = store.GetRawHeader(wrongKey)
	if err == nil {
		t.Fatalf("expected an error for a header stored under the wrong key")
	}
	if infradatabase.IsNotFoundError(err) {
		t.Fatalf("a corrupt record must not be reported as not found, got %+v", err)
	}
}

func TestTipsAndPruningPoint(t *testing.T) {
	for _, format := range []binaryserialization.Format{
		binaryserialization.FormatBincode,
		binaryserialization.FormatProtobuf,
	} {
		db := newFakeDatabase()
		store, err := NewStore(db, format)
		if err != nil {
			t.Fatalf("NewStore: %+v", err)
		}

		expectedTips := []*model.DomainHash{hashFromByte(1), hashFromByte(2)}
		tipsBytes, err := binaryserialization.SerializeTips(expectedTips, format)
		if err != nil {
			t.Fatalf("%s: SerializeTips: %+v", format, err)
		}
		db.data[string(tipsKey())] = tipsBytes

		expectedSelectedTip := hashFromByte(2)
		selectedTipBytes, err := binaryserialization.SerializeHashRecord(expectedSelectedTip, format)
		if err != nil {
			t.Fatalf("%s: SerializeHashRecord: %+v", format, err)
		}
		db.data[string(headersSelectedTipKey())] = selectedTipBytes

		expectedPruningPoint := hashFromByte(3)
		pruningPointBytes, err := binaryserialization.SerializeHashRecord(expectedPruningPoint, format)
		if err != nil {
			t.Fatalf("%s: SerializeHashRecord: %+v", format, err)
		}
		db.data[string(pruningPointKey())] = pruningPointBytes

		tips, selectedTip, err := store.Tips()
		if err != nil {
			t.Fatalf("%s: Tips: %+v", format, err)
		}
		if !model.HashesEqual(expectedTips, tips) {
			t.Fatalf("%s: got %d tips, expected %d", format, len(tips), len(expectedTips))
		}
		if !expectedSelectedTip.Equal(selectedTip) {
			t.Fatalf("%s: selected tip is %s, expected %s", format, selectedTip, expectedSelectedTip)
		}

		pruningPoint, err := store.PruningPoint()
		if err != nil {
			t.Fatalf("%s: PruningPoint: %+v", format, err)
		}
		if !expectedPruningPoint.Equal(pruningPoint) {
			t.Fatalf("%s: pruning point is %s, expected %s", format, pruningPoint, expectedPruningPoint)
		}
	}
}

// TestGetRawHeaderTagged exercises the protobuf-format path end to end
// through the store.
func TestGetRawHeaderTagged(t *testing.T) {
	db := newFakeDatabase()
	store, err := NewStore(db, binaryserialization.FormatProtobuf)
	if err != nil {
		t.Fatalf("NewStore: %+v", err)
	}

	content := model.NewImmutableBlockHeader(1,
		[]model.BlockLevelParents{{hashFromByte(1)}},
		hashFromByte(2), hashFromByte(3), hashFromByte(4),
		1637609671037, 0x207fffff, 5, 9, big.NewInt(42), 10, hashFromByte(5))
	hash := consensushashing.HeaderHash(content)
	putHeader(t, db, content, hash, binaryserialization.FormatProtobuf)

	got, err := store.GetRawHeader(hash)
	if err != nil {
		t.Fatalf("GetRawHeader: %+v", err)
	}
	if !content.Equal(got) {
		t.Fatalf("the fetched header differs from the stored one")
	}
	if got.StoredHash() != nil {
		t.Fatalf("a tagged record must not carry a stored hash")
	}
}
