package database

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/genesisproof/infrastructure/db/database"
	"github.com/pkg/errors"
)

// checkpointHeaderData is one header record of the checkpoint snapshot file.
// All hashes are hex strings; blueWork is the canonical trimmed big-endian
// form in hex.
type checkpointHeaderData struct {
	Hash                 string     `json:"hash"`
	Version              uint16     `json:"version"`
	Parents              [][]string `json:"parents"`
	HashMerkleRoot       string     `json:"hashMerkleRoot"`
	AcceptedIDMerkleRoot string     `json:"acceptedIDMerkleRoot"`
	UTXOCommitment       string     `json:"utxoCommitment"`
	TimeInMilliseconds   int64      `json:"timeInMilliseconds"`
	Bits                 uint32     `json:"bits"`
	Nonce                uint64     `json:"nonce"`
	DAAScore             uint64     `json:"daaScore"`
	BlueScore            uint64     `json:"blueScore"`
	BlueWork             string     `json:"blueWork"`
	PruningPoint         string     `json:"pruningPoint"`
}

type checkpointData struct {
	HeadersChain []checkpointHeaderData `json:"headers_chain"`
}

// checkpointStore is a Store over a flat JSON snapshot of the pre-checkpoint
// header chain, for when the full historical database is not at hand.
type checkpointStore struct {
	headers map[model.DomainHash]model.BlockHeader
}

// NewCheckpointStore reads the snapshot file at the given path fully into
// memory and serves header lookups from it.
func NewCheckpointStore(jsonPath string) (Store, error) {
	jsonBytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrapf(database.ErrDatabaseUnavailable,
			"reading checkpoint data at %s: %s", jsonPath, err)
	}
	var data checkpointData
	err = json.Unmarshal(jsonBytes, &data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing checkpoint data at %s", jsonPath)
	}

	headers := make(map[model.DomainHash]model.BlockHeader, len(data.HeadersChain))
	for i, headerData := range data.HeadersChain {
		hash, header, err := headerData.toHeader()
		if err != nil {
			return nil, errors.Wrapf(err, "parsing checkpoint header %d", i)
		}
		headers[*hash] = header
	}
	log.Debugf("Loaded %d checkpoint headers from %s", len(headers), jsonPath)

	return &checkpointStore{headers: headers}, nil
}

func (s *checkpointStore) GetRawHeader(hash *model.DomainHash) (model.BlockHeader, error) {
	header, ok := s.headers[*hash]
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound,
			"header %s is not part of the checkpoint data", hash)
	}
	return header, nil
}

func (s *checkpointStore) Tips() ([]*model.DomainHash, *model.DomainHash, error) {
	return nil, nil, errors.Errorf("checkpoint data carries no DAG tips")
}

func (s *checkpointStore) PruningPoint() (*model.DomainHash, error) {
	return nil, errors.Errorf("checkpoint data carries no pruning point")
}

func (s *checkpointStore) Close() error {
	return nil
}

func (d *checkpointHeaderData) toHeader() (*model.DomainHash, model.BlockHeader, error) {
	hash, err := model.NewDomainHashFromString(d.Hash)
	if err != nil {
		return nil, nil, err
	}
	parents := make([]model.BlockLevelParents, 0, len(d.Parents))
	for _, levelHashes := range d.Parents {
		blockLevelParents := make(model.BlockLevelParents, 0, len(levelHashes))
		for _, parentString := range levelHashes {
			parent, err := model.NewDomainHashFromString(parentString)
			if err != nil {
				return nil, nil, err
			}
			blockLevelParents = append(blockLevelParents, parent)
		}
		parents = append(parents, blockLevelParents)
	}
	hashMerkleRoot, err := model.NewDomainHashFromString(d.HashMerkleRoot)
	if err != nil {
		return nil, nil, err
	}
	acceptedIDMerkleRoot, err := model.NewDomainHashFromString(d.AcceptedIDMerkleRoot)
	if err != nil {
		return nil, nil, err
	}
	utxoCommitment, err := model.NewDomainHashFromString(d.UTXOCommitment)
	if err != nil {
		return nil, nil, err
	}
	pruningPoint, err := model.NewDomainHashFromString(d.PruningPoint)
	if err != nil {
		return nil, nil, err
	}
	blueWorkBytes, err := hex.DecodeString(d.BlueWork)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing blueWork")
	}
	blueWork := new(big.Int).SetBytes(blueWorkBytes)

	header := model.NewImmutableBlockHeaderWithStoredHash(hash, d.Version, parents,
		hashMerkleRoot, acceptedIDMerkleRoot, utxoCommitment, d.TimeInMilliseconds,
		d.Bits, d.Nonce, d.DAAScore, blueWork, d.BlueScore, pruningPoint)
	return hash, header, nil
}
