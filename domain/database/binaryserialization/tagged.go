package binaryserialization

import (
	"math"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// taggedPayload carries the decoded value of a single tagged field. Exactly
// one of varint and bytes is meaningful, depending on the field's wire type.
type taggedPayload struct {
	wireType protowire.Type
	varint   uint64
	bytes    []byte
}

func (p taggedPayload) varintUint16(fieldName string) (uint16, error) {
	if p.wireType != protowire.VarintType {
		return 0, errors.Wrapf(ErrTruncatedRecord, "field %s has wire type %d, expected varint", fieldName, p.wireType)
	}
	if p.varint > math.MaxUint16 {
		return 0, errors.Errorf("field %s value %d doesn't fit in uint16", fieldName, p.varint)
	}
	return uint16(p.varint), nil
}

func (p taggedPayload) varintUint32(fieldName string) (uint32, error) {
	if p.wireType != protowire.VarintType {
		return 0, errors.Wrapf(ErrTruncatedRecord, "field %s has wire type %d, expected varint", fieldName, p.wireType)
	}
	if p.varint > math.MaxUint32 {
		return 0, errors.Errorf("field %s value %d doesn't fit in uint32", fieldName, p.varint)
	}
	return uint32(p.varint), nil
}

func (p taggedPayload) varintUint64(fieldName string) (uint64, error) {
	if p.wireType != protowire.VarintType {
		return 0, errors.Wrapf(ErrTruncatedRecord, "field %s has wire type %d, expected varint", fieldName, p.wireType)
	}
	return p.varint, nil
}

func (p taggedPayload) bytesValue(fieldName string) ([]byte, error) {
	if p.wireType != protowire.BytesType {
		return nil, errors.Wrapf(ErrTruncatedRecord, "field %s has wire type %d, expected bytes", fieldName, p.wireType)
	}
	return p.bytes, nil
}

// forEachTaggedField walks a tagged (protobuf wire format) message and calls
// fn once per field. Unknown fields are the caller's to skip; groups are
// rejected since no consensus record uses them.
func forEachTaggedField(data []byte, fn func(fieldNumber protowire.Number, payload taggedPayload) error) error {
	for len(data) > 0 {
		fieldNumber, wireType, tagLength := protowire.ConsumeTag(data)
		if tagLength < 0 {
			return errors.Wrap(ErrTruncatedRecord, "malformed field tag")
		}
		data = data[tagLength:]

		payload := taggedPayload{wireType: wireType}
		switch wireType {
		case protowire.VarintType:
			value, valueLength := protowire.ConsumeVarint(data)
			if valueLength < 0 {
				return errors.Wrapf(ErrTruncatedRecord, "malformed varint in field %d", fieldNumber)
			}
			payload.varint = value
			data = data[valueLength:]

		case protowire.BytesType:
			length, lengthLength := protowire.ConsumeVarint(data)
			if lengthLength < 0 {
				return errors.Wrapf(ErrTruncatedRecord, "malformed length prefix in field %d", fieldNumber)
			}
			data = data[lengthLength:]
			if length > uint64(len(data)) {
				return errors.Wrapf(ErrCorruptLength, "field %d declares %d bytes but only %d remain",
					fieldNumber, length, len(data))
			}
			payload.bytes = data[:length]
			data = data[length:]

		case protowire.Fixed32Type:
			value, valueLength := protowire.ConsumeFixed32(data)
			if valueLength < 0 {
				return errors.Wrapf(ErrTruncatedRecord, "malformed fixed32 in field %d", fieldNumber)
			}
			payload.varint = uint64(value)
			data = data[valueLength:]

		case protowire.Fixed64Type:
			value, valueLength := protowire.ConsumeFixed64(data)
			if valueLength < 0 {
				return errors.Wrapf(ErrTruncatedRecord, "malformed fixed64 in field %d", fieldNumber)
			}
			payload.varint = value
			data = data[valueLength:]

		default:
			return errors.Wrapf(ErrTruncatedRecord, "unsupported wire type %d in field %d", wireType, fieldNumber)
		}

		err := fn(fieldNumber, payload)
		if err != nil {
			return err
		}
	}
	return nil
}

// unwrapHashMessage decodes a DbHash message: a single bytes field holding the
// 32 hash bytes.
func unwrapHashMessage(data []byte) (*model.DomainHash, error) {
	var hash *model.DomainHash
	err := forEachTaggedField(data, func(fieldNumber protowire.Number, payload taggedPayload) error {
		if fieldNumber != hashBytesFieldNumber {
			return nil
		}
		hashBytes, err := payload.bytesValue("hash")
		if err != nil {
			return err
		}
		hash, err = model.NewDomainHashFromByteSlice(hashBytes)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return nil, errors.Errorf("hash message is missing its bytes field")
	}
	return hash, nil
}
