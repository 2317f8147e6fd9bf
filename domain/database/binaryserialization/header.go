package binaryserialization

import (
	"math/big"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// headerBuilder accumulates decoded header fields until build() turns them
// into an immutable header record.
type headerBuilder struct {
	storedHash           *model.DomainHash
	version              uint16
	parents              []model.BlockLevelParents
	hashMerkleRoot       *model.DomainHash
	acceptedIDMerkleRoot *model.DomainHash
	utxoCommitment       *model.DomainHash
	timeInMilliseconds   int64
	bits                 uint32
	nonce                uint64
	daaScore             uint64
	blueWork             *big.Int
	blueScore            uint64
	pruningPoint         *model.DomainHash
}

func (builder *headerBuilder) build(format Format) (model.BlockHeader, error) {
	for fieldName, hash := range map[string]*model.DomainHash{
		"hashMerkleRoot":       builder.hashMerkleRoot,
		"acceptedIDMerkleRoot": builder.acceptedIDMerkleRoot,
		"utxoCommitment":       builder.utxoCommitment,
		"pruningPoint":         builder.pruningPoint,
	} {
		if hash == nil {
			return nil, errors.Errorf("header record is missing its %s field", fieldName)
		}
	}
	if builder.blueWork == nil {
		builder.blueWork = new(big.Int)
	}

	if format.IncludesSelfHash() {
		if builder.storedHash == nil {
			return nil, errors.Errorf("header record is missing its stored hash field")
		}
		return model.NewImmutableBlockHeaderWithStoredHash(builder.storedHash, builder.version,
			builder.parents, builder.hashMerkleRoot, builder.acceptedIDMerkleRoot,
			builder.utxoCommitment, builder.timeInMilliseconds, builder.bits, builder.nonce,
			builder.daaScore, builder.blueWork, builder.blueScore, builder.pruningPoint), nil
	}
	return model.NewImmutableBlockHeader(builder.version, builder.parents, builder.hashMerkleRoot,
		builder.acceptedIDMerkleRoot, builder.utxoCommitment, builder.timeInMilliseconds,
		builder.bits, builder.nonce, builder.daaScore, builder.blueWork, builder.blueScore,
		builder.pruningPoint), nil
}

// headerField describes one header field for both wire encodings at once.
type headerField struct {
	name string

	// selfHash marks the field that exists only in formats that store the
	// header's own hash.
	selfHash bool

	// fieldNumber is the field's number in the tagged layout, or 0 when the
	// tagged layout has no such field.
	fieldNumber protowire.Number

	readPositional func(r *positionalReader, builder *headerBuilder) error
	readTagged     func(payload taggedPayload, builder *headerBuilder) error
}

// headerSchema describes the header's fields exactly once, in the positional
// layout's declaration order, with the tagged layout's field numbers attached.
// Both decoders consume this schema, so the two backends cannot drift apart.
var headerSchema = []headerField{
	{
		name:     "hash",
		selfHash: true,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			hash, err := r.readHash()
			builder.storedHash = hash
			return err
		},
	},
	{
		name:        "version",
		fieldNumber: headerVersionFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			version, err := r.readUint16()
			builder.version = version
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			version, err := payload.varintUint16("version")
			builder.version = version
			return err
		},
	},
	{
		name:        "parentsByLevel",
		fieldNumber: headerParentsFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			// Each level is itself a length-prefixed sequence of hashes. A
			// level needs at least its own 8-byte prefix to exist.
			numLevels, err := r.readLength(8)
			if err != nil {
				return err
			}
			parents := make([]model.BlockLevelParents, 0, numLevels)
			for i := 0; i < numLevels; i++ {
				numParents, err := r.readLength(model.DomainHashSize)
				if err != nil {
					return err
				}
				blockLevelParents := make(model.BlockLevelParents, 0, numParents)
				for j := 0; j < numParents; j++ {
					parent, err := r.readHash()
					if err != nil {
						return err
					}
					blockLevelParents = append(blockLevelParents, parent)
				}
				parents = append(parents, blockLevelParents)
			}
			builder.parents = parents
			return nil
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			// One DbBlockLevelParents message per occurrence, in level order.
			levelBytes, err := payload.bytesValue("parents")
			if err != nil {
				return err
			}
			blockLevelParents := model.BlockLevelParents{}
			err = forEachTaggedField(levelBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
				if fieldNumber != levelParentHashesFieldNumber {
					return nil
				}
				hashMessageBytes, err := payload.bytesValue("parentHashes")
				if err != nil {
					return err
				}
				parent, err := unwrapHashMessage(hashMessageBytes)
				if err != nil {
					return err
				}
				blockLevelParents = append(blockLevelParents, parent)
				return nil
			})
			if err != nil {
				return err
			}
			builder.parents = append(builder.parents, blockLevelParents)
			return nil
		},
	},
	{
		name:           "hashMerkleRoot",
		fieldNumber:    headerHashMerkleRootFieldNumber,
		readPositional: positionalHashField(func(builder *headerBuilder) **model.DomainHash { return &builder.hashMerkleRoot }),
		readTagged:     taggedHashField("hashMerkleRoot", func(builder *headerBuilder) **model.DomainHash { return &builder.hashMerkleRoot }),
	},
	{
		name:           "acceptedIDMerkleRoot",
		fieldNumber:    headerAcceptedIDMerkleRootFieldNumber,
		readPositional: positionalHashField(func(builder *headerBuilder) **model.DomainHash { return &builder.acceptedIDMerkleRoot }),
		readTagged:     taggedHashField("acceptedIDMerkleRoot", func(builder *headerBuilder) **model.DomainHash { return &builder.acceptedIDMerkleRoot }),
	},
	{
		name:           "utxoCommitment",
		fieldNumber:    headerUTXOCommitmentFieldNumber,
		readPositional: positionalHashField(func(builder *headerBuilder) **model.DomainHash { return &builder.utxoCommitment }),
		readTagged:     taggedHashField("utxoCommitment", func(builder *headerBuilder) **model.DomainHash { return &builder.utxoCommitment }),
	},
	{
		name:        "timeInMilliseconds",
		fieldNumber: headerTimeInMillisecondsFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			timestamp, err := r.readUint64()
			builder.timeInMilliseconds = int64(timestamp)
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			timestamp, err := payload.varintUint64("timeInMilliseconds")
			builder.timeInMilliseconds = int64(timestamp)
			return err
		},
	},
	{
		name:        "bits",
		fieldNumber: headerBitsFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			bits, err := r.readUint32()
			builder.bits = bits
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			bits, err := payload.varintUint32("bits")
			builder.bits = bits
			return err
		},
	},
	{
		name:        "nonce",
		fieldNumber: headerNonceFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			nonce, err := r.readUint64()
			builder.nonce = nonce
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			nonce, err := payload.varintUint64("nonce")
			builder.nonce = nonce
			return err
		},
	},
	{
		name:        "daaScore",
		fieldNumber: headerDAAScoreFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			daaScore, err := r.readUint64()
			builder.daaScore = daaScore
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			daaScore, err := payload.varintUint64("daaScore")
			builder.daaScore = daaScore
			return err
		},
	},
	{
		name:        "blueWork",
		fieldNumber: headerBlueWorkFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			// The positional layout stores blue work as a fixed-width
			// little-endian block rather than in its canonical form.
			blueWorkBytes, err := r.readBytes(blueWorkSize)
			if err != nil {
				return err
			}
			builder.blueWork = blueWorkFromLittleEndian(blueWorkBytes)
			return nil
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			// The tagged layout already stores the canonical trimmed
			// big-endian form.
			blueWorkBytes, err := payload.bytesValue("blueWork")
			if err != nil {
				return err
			}
			builder.blueWork = new(big.Int).SetBytes(blueWorkBytes)
			return nil
		},
	},
	{
		name:        "blueScore",
		fieldNumber: headerBlueScoreFieldNumber,
		readPositional: func(r *positionalReader, builder *headerBuilder) error {
			blueScore, err := r.readUint64()
			builder.blueScore = blueScore
			return err
		},
		readTagged: func(payload taggedPayload, builder *headerBuilder) error {
			blueScore, err := payload.varintUint64("blueScore")
			builder.blueScore = blueScore
			return err
		},
	},
	{
		name:           "pruningPoint",
		fieldNumber:    headerPruningPointFieldNumber,
		readPositional: positionalHashField(func(builder *headerBuilder) **model.DomainHash { return &builder.pruningPoint }),
		readTagged:     taggedHashField("pruningPoint", func(builder *headerBuilder) **model.DomainHash { return &builder.pruningPoint }),
	},
}

func positionalHashField(target func(builder *headerBuilder) **model.DomainHash) func(*positionalReader, *headerBuilder) error {
	return func(r *positionalReader, builder *headerBuilder) error {
		hash, err := r.readHash()
		if err != nil {
			return err
		}
		*target(builder) = hash
		return nil
	}
}

func taggedHashField(fieldName string, target func(builder *headerBuilder) **model.DomainHash) func(taggedPayload, *headerBuilder) error {
	return func(payload taggedPayload, builder *headerBuilder) error {
		hashMessageBytes, err := payload.bytesValue(fieldName)
		if err != nil {
			return err
		}
		hash, err := unwrapHashMessage(hashMessageBytes)
		if err != nil {
			return err
		}
		*target(builder) = hash
		return nil
	}
}

var headerFieldsByNumber = func() map[protowire.Number]*headerField {
	fieldsByNumber := make(map[protowire.Number]*headerField, len(headerSchema))
	for i := range headerSchema {
		field := &headerSchema[i]
		if field.fieldNumber != 0 {
			fieldsByNumber[field.fieldNumber] = field
		}
	}
	return fieldsByNumber
}()

// DeserializeHeader decodes a raw header record in the given wire format into
// an immutable header. The decoder performs no semantic validation; checking
// the decoded content against its hash is the verification engine's job.
func DeserializeHeader(headerBytes []byte, format Format) (model.BlockHeader, error) {
	switch format {
	case FormatBincode:
		return deserializeHeaderPositional(headerBytes, format)
	case FormatProtobuf:
		return deserializeHeaderTagged(headerBytes)
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

func deserializeHeaderPositional(headerBytes []byte, format Format) (model.BlockHeader, error) {
	r := newPositionalReader(headerBytes)
	builder := &headerBuilder{}
	for i := range headerSchema {
		field := &headerSchema[i]
		if field.selfHash && !format.IncludesSelfHash() {
			continue
		}
		err := field.readPositional(r, builder)
		if err != nil {
			return nil, errors.Wrapf(err, "deserializing header field %s", field.name)
		}
	}
	return builder.build(format)
}

func deserializeHeaderTagged(headerBytes []byte) (model.BlockHeader, error) {
	builder := &headerBuilder{}
	err := forEachTaggedField(headerBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
		field, known := headerFieldsByNumber[fieldNumber]
		if !known {
			// Unknown fields are skipped, matching protobuf semantics.
			return nil
		}
		err := field.readTagged(payload, builder)
		if err != nil {
			return errors.Wrapf(err, "deserializing header field %s", field.name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return builder.build(FormatProtobuf)
}
