package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaspanet/genesisproof/domain/model"
	infradatabase "github.com/kaspanet/genesisproof/infrastructure/db/database"
)

const testCheckpointJSON = `{
	"headers_chain": [
		{
			"hash": "1b2a2ec51a8d0807bcc8a5bdc0a5ab257b6a2e9bd959999b475a4af26e2eba60",
			"version": 1,
			"parents": [
				["0101010101010101010101010101010101010101010101010101010101010101"],
				["0202020202020202020202020202020202020202020202020202020202020202",
				 "0303030303030303030303030303030303030303030303030303030303030303"]
			],
			"hashMerkleRoot": "0404040404040404040404040404040404040404040404040404040404040404",
			"acceptedIDMerkleRoot": "0505050505050505050505050505050505050505050505050505050505050505",
			"utxoCommitment": "0606060606060606060606060606060606060606060606060606060606060606",
			"timeInMilliseconds": 1637609671037,
			"bits": 545259519,
			"nonce": 12345678901234567890,
			"daaScore": 1234,
			"blueScore": 5678,
			"blueWork": "0201",
			"pruningPoint": "0707070707070707070707070707070707070707070707070707070707070707"
		}
	]
}`

func writeTestCheckpointData(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "checkpoint_data.json")
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatalf("writing checkpoint data: %+v", err)
	}
	return path
}

func TestCheckpointStore(t *testing.T) {
	store, err := NewCheckpointStore(writeTestCheckpointData(t, testCheckpointJSON))
	if err != nil {
		t.Fatalf("NewCheckpointStore: %+v", err)
	}
	defer store.Close()

	hash, err := model.NewDomainHashFromString("1b2a2ec51a8d0807bcc8a5bdc0a5ab257b6a2e9bd959999b475a4af26e2eba60")
	if err != nil {
		t.Fatalf("parsing hash: %+v", err)
	}
	header, err := store.GetRawHeader(hash)
	if err != nil {
		t.Fatalf("GetRawHeader: %+v", err)
	}

	if header.Version() != 1 {
		t.Errorf("version is %d, expected 1", header.Version())
	}
	if len(header.Parents()) != 2 || len(header.Parents()[1]) != 2 {
		t.Errorf("parents were not reconstructed level by level")
	}
	if header.Nonce() != 12345678901234567890 {
		t.Errorf("nonce is %d, expected 12345678901234567890", header.Nonce())
	}
	if header.BlueWork().Int64() != 0x0201 {
		t.Errorf("blue work is %s, expected 513", header.BlueWork())
	}
	if !header.StoredHash().Equal(hash) {
		t.Errorf("stored hash is %s, expected %s", header.StoredHash(), hash)
	}

	_, _, err = store.Tips()
	if err == nil {
		t.Errorf("Tips must be unsupported for checkpoint data")
	}
	_, err = store.PruningPoint()
	if err == nil {
		t.Errorf("PruningPoint must be unsupported for checkpoint data")
	}
}

func TestCheckpointStoreNotFound(t *testing.T) {
	store, err := NewCheckpointStore(writeTestCheckpointData(t, testCheckpointJSON))
	if err != nil {
		t.Fatalf("NewCheckpointStore: %+v", err)
	}
	defer store.Close()

	_, err = store.GetRawHeader(hashFromByte(0x99))
	if !infradatabase.IsNotFoundError(err) {
		t.Fatalf("expected a not-found error, got %+v", err)
	}
}

func TestCheckpointStoreMissingFile(t *testing.T) {
	_, err := NewCheckpointStore(filepath.Join(t.TempDir(), "no-such-file.json"))
	if !infradatabase.IsDatabaseUnavailableError(err) {
		t.Fatalf("expected a database-unavailable error, got %+v", err)
	}
}

func TestCheckpointStoreMalformedData(t *testing.T) {
	_, err := NewCheckpointStore(writeTestCheckpointData(t, `{"headers_chain": [{"hash": "zz"}]}`))
	if err == nil {
		t.Fatalf("expected an error for malformed checkpoint data")
	}
}
