package binaryserialization

import (
	"encoding/binary"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// SerializeHeader encodes a header into a raw record in the given wire
// format. It is the exact inverse of DeserializeHeader and exists mainly for
// building database fixtures.
func SerializeHeader(header model.BlockHeader, format Format) ([]byte, error) {
	switch format {
	case FormatBincode:
		return serializeHeaderPositional(header)
	case FormatProtobuf:
		return serializeHeaderTagged(header), nil
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

func serializeHeaderPositional(header model.BlockHeader) ([]byte, error) {
	storedHash := header.StoredHash()
	if storedHash == nil {
		return nil, errors.Errorf("the positional layout stores the header's own hash, " +
			"but this header does not carry one")
	}
	blueWorkBytes, err := blueWorkToLittleEndian(header.BlueWork())
	if err != nil {
		return nil, err
	}

	record := storedHash.ByteSlice()
	record = appendUint16LE(record, header.Version())
	parents := header.Parents()
	record = appendUint64LE(record, uint64(len(parents)))
	for _, blockLevelParents := range parents {
		record = appendUint64LE(record, uint64(len(blockLevelParents)))
		for _, parent := range blockLevelParents {
			record = append(record, parent.ByteSlice()...)
		}
	}
	record = append(record, header.HashMerkleRoot().ByteSlice()...)
	record = append(record, header.AcceptedIDMerkleRoot().ByteSlice()...)
	record = append(record, header.UTXOCommitment().ByteSlice()...)
	record = appendUint64LE(record, uint64(header.TimeInMilliseconds()))
	record = appendUint32LE(record, header.Bits())
	record = appendUint64LE(record, header.Nonce())
	record = appendUint64LE(record, header.DAAScore())
	record = append(record, blueWorkBytes...)
	record = appendUint64LE(record, header.BlueScore())
	record = append(record, header.PruningPoint().ByteSlice()...)
	return record, nil
}

func serializeHeaderTagged(header model.BlockHeader) []byte {
	var record []byte
	record = appendTaggedVarint(record, headerVersionFieldNumber, uint64(header.Version()))
	for _, blockLevelParents := range header.Parents() {
		var level []byte
		for _, parent := range blockLevelParents {
			level = appendTaggedHashMessage(level, levelParentHashesFieldNumber, parent)
		}
		record = appendTaggedBytes(record, headerParentsFieldNumber, level)
	}
	record = appendTaggedHashMessage(record, headerHashMerkleRootFieldNumber, header.HashMerkleRoot())
	record = appendTaggedHashMessage(record, headerAcceptedIDMerkleRootFieldNumber, header.AcceptedIDMerkleRoot())
	record = appendTaggedHashMessage(record, headerUTXOCommitmentFieldNumber, header.UTXOCommitment())
	record = appendTaggedVarint(record, headerTimeInMillisecondsFieldNumber, uint64(header.TimeInMilliseconds()))
	record = appendTaggedVarint(record, headerBitsFieldNumber, uint64(header.Bits()))
	record = appendTaggedVarint(record, headerNonceFieldNumber, header.Nonce())
	record = appendTaggedVarint(record, headerDAAScoreFieldNumber, header.DAAScore())
	record = appendTaggedBytes(record, headerBlueWorkFieldNumber, header.BlueWork().Bytes())
	record = appendTaggedHashMessage(record, headerPruningPointFieldNumber, header.PruningPoint())
	record = appendTaggedVarint(record, headerBlueScoreFieldNumber, header.BlueScore())
	return record
}

// SerializeTransaction encodes a transaction into a raw record in the given
// wire format.
func SerializeTransaction(transaction *model.DomainTransaction, format Format) ([]byte, error) {
	switch format {
	case FormatBincode:
		return serializeTransactionPositional(transaction), nil
	case FormatProtobuf:
		return serializeTransactionTagged(transaction), nil
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

func serializeTransactionPositional(transaction *model.DomainTransaction) []byte {
	var record []byte
	record = appendUint16LE(record, transaction.Version)
	record = appendUint64LE(record, uint64(len(transaction.Inputs)))
	for _, input := range transaction.Inputs {
		record = append(record, input.PreviousOutpoint.TransactionID.ByteSlice()...)
		record = appendUint32LE(record, input.PreviousOutpoint.Index)
		record = appendUint64LE(record, uint64(len(input.SignatureScript)))
		record = append(record, input.SignatureScript...)
		record = appendUint64LE(record, input.Sequence)
	}
	record = appendUint64LE(record, uint64(len(transaction.Outputs)))
	for _, output := range transaction.Outputs {
		record = appendUint64LE(record, output.Value)
		record = appendUint16LE(record, output.ScriptPublicKey.Version)
		record = appendUint64LE(record, uint64(len(output.ScriptPublicKey.Script)))
		record = append(record, output.ScriptPublicKey.Script...)
	}
	record = appendUint64LE(record, transaction.LockTime)
	record = append(record, transaction.SubnetworkID[:]...)
	record = appendUint64LE(record, transaction.Gas)
	record = appendUint64LE(record, uint64(len(transaction.Payload)))
	record = append(record, transaction.Payload...)
	return record
}

func serializeTransactionTagged(transaction *model.DomainTransaction) []byte {
	var record []byte
	record = appendTaggedVarint(record, transactionVersionFieldNumber, uint64(transaction.Version))
	for _, input := range transaction.Inputs {
		var outpoint []byte
		outpoint = appendTaggedHashMessage(outpoint, outpointTransactionIDFieldNumber,
			(*model.DomainHash)(&input.PreviousOutpoint.TransactionID))
		outpoint = appendTaggedVarint(outpoint, outpointIndexFieldNumber, uint64(input.PreviousOutpoint.Index))

		var inputMessage []byte
		inputMessage = appendTaggedBytes(inputMessage, inputPreviousOutpointFieldNumber, outpoint)
		inputMessage = appendTaggedBytes(inputMessage, inputSignatureScriptFieldNumber, input.SignatureScript)
		inputMessage = appendTaggedVarint(inputMessage, inputSequenceFieldNumber, input.Sequence)
		record = appendTaggedBytes(record, transactionInputsFieldNumber, inputMessage)
	}
	for _, output := range transaction.Outputs {
		var scriptPublicKey []byte
		scriptPublicKey = appendTaggedBytes(scriptPublicKey, scriptPublicKeyScriptFieldNumber,
			output.ScriptPublicKey.Script)
		scriptPublicKey = appendTaggedVarint(scriptPublicKey, scriptPublicKeyVersionFieldNumber,
			uint64(output.ScriptPublicKey.Version))

		var outputMessage []byte
		outputMessage = appendTaggedVarint(outputMessage, outputValueFieldNumber, output.Value)
		outputMessage = appendTaggedBytes(outputMessage, outputScriptPublicKeyFieldNumber, scriptPublicKey)
		record = appendTaggedBytes(record, transactionOutputsFieldNumber, outputMessage)
	}
	record = appendTaggedVarint(record, transactionLockTimeFieldNumber, transaction.LockTime)
	var subnetworkIDMessage []byte
	subnetworkIDMessage = appendTaggedBytes(subnetworkIDMessage, subnetworkIDBytesFieldNumber,
		transaction.SubnetworkID[:])
	record = appendTaggedBytes(record, transactionSubnetworkIDFieldNumber, subnetworkIDMessage)
	record = appendTaggedVarint(record, transactionGasFieldNumber, transaction.Gas)
	record = appendTaggedBytes(record, transactionPayloadFieldNumber, transaction.Payload)
	return record
}

// SerializeHashRecord encodes a single-hash registry record.
func SerializeHashRecord(hash *model.DomainHash, format Format) ([]byte, error) {
	switch format {
	case FormatBincode:
		return hash.ByteSlice(), nil
	case FormatProtobuf:
		return appendTaggedBytes(nil, hashBytesFieldNumber, hash.ByteSlice()), nil
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

// SerializeTips encodes the DAG tips registry record.
func SerializeTips(tips []*model.DomainHash, format Format) ([]byte, error) {
	switch format {
	case FormatBincode:
		record := appendUint64LE(nil, uint64(len(tips)))
		for _, tip := range tips {
			record = append(record, tip.ByteSlice()...)
		}
		return record, nil
	case FormatProtobuf:
		var record []byte
		for _, tip := range tips {
			record = appendTaggedHashMessage(record, tipsTipFieldNumber, tip)
		}
		return record, nil
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

func appendUint16LE(record []byte, value uint16) []byte {
	var buffer [2]byte
	binary.LittleEndian.PutUint16(buffer[:], value)
	return append(record, buffer[:]...)
}

func appendUint32LE(record []byte, value uint32) []byte {
	var buffer [4]byte
	binary.LittleEndian.PutUint32(buffer[:], value)
	return append(record, buffer[:]...)
}

func appendUint64LE(record []byte, value uint64) []byte {
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], value)
	return append(record, buffer[:]...)
}

func appendTaggedVarint(record []byte, fieldNumber protowire.Number, value uint64) []byte {
	record = protowire.AppendTag(record, fieldNumber, protowire.VarintType)
	return protowire.AppendVarint(record, value)
}

func appendTaggedBytes(record []byte, fieldNumber protowire.Number, value []byte) []byte {
	record = protowire.AppendTag(record, fieldNumber, protowire.BytesType)
	return protowire.AppendBytes(record, value)
}

func appendTaggedHashMessage(record []byte, fieldNumber protowire.Number, hash *model.DomainHash) []byte {
	hashMessage := appendTaggedBytes(nil, hashBytesFieldNumber, hash.ByteSlice())
	return appendTaggedBytes(record, fieldNumber, hashMessage)
}
