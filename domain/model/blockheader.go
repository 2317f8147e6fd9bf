package model

import (
	"math/big"
)

type blockHeader struct {
	version              uint16
	parents              []BlockLevelParents
	hashMerkleRoot       *DomainHash
	acceptedIDMerkleRoot *DomainHash
	utxoCommitment       *DomainHash
	timeInMilliseconds   int64
	bits                 uint32
	nonce                uint64
	daaScore             uint64
	blueWork             *big.Int
	blueScore            uint64
	pruningPoint         *DomainHash

	// storedHash is the header's own hash as it appears on disk. Only one of
	// the two backend layouts stores it; it is nil for the other, and it is
	// never part of the header's hashed content.
	storedHash *DomainHash
}

// BlockHeader represents an immutable block header record, as decoded out of
// a consensus database
type BlockHeader interface {
	Version() uint16
	Parents() []BlockLevelParents
	DirectParents() BlockLevelParents
	HashMerkleRoot() *DomainHash
	AcceptedIDMerkleRoot() *DomainHash
	UTXOCommitment() *DomainHash
	TimeInMilliseconds() int64
	Bits() uint32
	Nonce() uint64
	DAAScore() uint64
	BlueWork() *big.Int
	BlueScore() uint64
	PruningPoint() *DomainHash
	StoredHash() *DomainHash
	Equal(other BlockHeader) bool
}

func (header *blockHeader) Version() uint16 {
	return header.version
}

func (header *blockHeader) Parents() []BlockLevelParents {
	return header.parents
}

// DirectParents returns the header's direct (level 0) parents
func (header *blockHeader) DirectParents() BlockLevelParents {
	if len(header.parents) == 0 {
		return BlockLevelParents{}
	}
	return header.parents[0]
}

func (header *blockHeader) HashMerkleRoot() *DomainHash {
	return header.hashMerkleRoot
}

func (header *blockHeader) AcceptedIDMerkleRoot() *DomainHash {
	return header.acceptedIDMerkleRoot
}

func (header *blockHeader) UTXOCommitment() *DomainHash {
	return header.utxoCommitment
}

func (header *blockHeader) TimeInMilliseconds() int64 {
	return header.timeInMilliseconds
}

func (header *blockHeader) Bits() uint32 {
	return header.bits
}

func (header *blockHeader) Nonce() uint64 {
	return header.nonce
}

func (header *blockHeader) DAAScore() uint64 {
	return header.daaScore
}

func (header *blockHeader) BlueWork() *big.Int {
	return header.blueWork
}

func (header *blockHeader) BlueScore() uint64 {
	return header.blueScore
}

func (header *blockHeader) PruningPoint() *DomainHash {
	return header.pruningPoint
}

func (header *blockHeader) StoredHash() *DomainHash {
	return header.storedHash
}

func (header *blockHeader) Equal(other BlockHeader) bool {
	if header == nil || other == nil {
		return BlockHeader(header) == other
	}

	// If only the underlying value of other is nil it'll
	// make `other == nil` return false, so we check it
	// explicitly.
	downcastedOther := other.(*blockHeader)
	if downcastedOther == nil {
		return false
	}

	if header.version != downcastedOther.version {
		return false
	}
	if !ParentsEqual(header.parents, downcastedOther.parents) {
		return false
	}
	if !header.hashMerkleRoot.Equal(downcastedOther.hashMerkleRoot) {
		return false
	}
	if !header.acceptedIDMerkleRoot.Equal(downcastedOther.acceptedIDMerkleRoot) {
		return false
	}
	if !header.utxoCommitment.Equal(downcastedOther.utxoCommitment) {
		return false
	}
	if header.timeInMilliseconds != downcastedOther.timeInMilliseconds {
		return false
	}
	if header.bits != downcastedOther.bits {
		return false
	}
	if header.nonce != downcastedOther.nonce {
		return false
	}
	if header.daaScore != downcastedOther.daaScore {
		return false
	}
	if header.blueWork.Cmp(downcastedOther.blueWork) != 0 {
		return false
	}
	if header.blueScore != downcastedOther.blueScore {
		return false
	}
	if !header.pruningPoint.Equal(downcastedOther.pruningPoint) {
		return false
	}

	return true
}

// NewImmutableBlockHeader returns a new immutable block header
func NewImmutableBlockHeader(
	version uint16,
	parents []BlockLevelParents,
	hashMerkleRoot *DomainHash,
	acceptedIDMerkleRoot *DomainHash,
	utxoCommitment *DomainHash,
	timeInMilliseconds int64,
	bits uint32,
	nonce uint64,
	daaScore uint64,
	blueWork *big.Int,
	blueScore uint64,
	pruningPoint *DomainHash) BlockHeader {

	return &blockHeader{
		version:              version,
		parents:              parents,
		hashMerkleRoot:       hashMerkleRoot,
		acceptedIDMerkleRoot: acceptedIDMerkleRoot,
		utxoCommitment:       utxoCommitment,
		timeInMilliseconds:   timeInMilliseconds,
		bits:                 bits,
		nonce:                nonce,
		daaScore:             daaScore,
		blueWork:             blueWork,
		blueScore:            blueScore,
		pruningPoint:         pruningPoint,
	}
}

// NewImmutableBlockHeaderWithStoredHash returns a new immutable block header that
// additionally carries the self-hash field stored by the positional backend layout
func NewImmutableBlockHeaderWithStoredHash(
	storedHash *DomainHash,
	version uint16,
	parents []BlockLevelParents,
	hashMerkleRoot *DomainHash,
	acceptedIDMerkleRoot *DomainHash,
	utxoCommitment *DomainHash,
	timeInMilliseconds int64,
	bits uint32,
	nonce uint64,
	daaScore uint64,
	blueWork *big.Int,
	blueScore uint64,
	pruningPoint *DomainHash) BlockHeader {

	header := NewImmutableBlockHeader(version, parents, hashMerkleRoot, acceptedIDMerkleRoot,
		utxoCommitment, timeInMilliseconds, bits, nonce, daaScore, blueWork, blueScore,
		pruningPoint).(*blockHeader)
	header.storedHash = storedHash
	return header
}
