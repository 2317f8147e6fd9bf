package binaryserialization

import (
	"encoding/binary"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
)

// positionalReader walks a positional (bincode-style) record. It performs no
// semantic validation; it only guards against reading past the end of the
// buffer and against implausible length prefixes.
type positionalReader struct {
	data   []byte
	offset int
}

func newPositionalReader(data []byte) *positionalReader {
	return &positionalReader{data: data}
}

func (r *positionalReader) remaining() int {
	return len(r.data) - r.offset
}

func (r *positionalReader) readBytes(length int) ([]byte, error) {
	if r.remaining() < length {
		return nil, errors.Wrapf(ErrTruncatedRecord, "need %d bytes at offset %d, have %d",
			length, r.offset, r.remaining())
	}
	start := r.offset
	r.offset += length
	return r.data[start:r.offset], nil
}

func (r *positionalReader) readUint16() (uint16, error) {
	bytes, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bytes), nil
}

func (r *positionalReader) readUint32() (uint32, error) {
	bytes, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bytes), nil
}

func (r *positionalReader) readUint64() (uint64, error) {
	bytes, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bytes), nil
}

// readLength reads an 8-byte little-endian element count and checks it is
// plausible given the element size and the bytes left in the record.
func (r *positionalReader) readLength(elementSize int) (int, error) {
	length, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	if length > uint64(r.remaining())/uint64(elementSize) {
		return 0, errors.Wrapf(ErrCorruptLength, "%d elements of %d bytes at offset %d, but only %d bytes remain",
			length, elementSize, r.offset, r.remaining())
	}
	return int(length), nil
}

func (r *positionalReader) readHash() (*model.DomainHash, error) {
	hashBytes, err := r.readBytes(model.DomainHashSize)
	if err != nil {
		return nil, err
	}
	return model.NewDomainHashFromByteSlice(hashBytes)
}

// readVarBytes reads an 8-byte little-endian byte count followed by that many
// bytes. A count exceeding the whole record cannot be honest truncation and is
// reported as corrupt; a count within the record that overruns the remaining
// bytes is reported as truncation.
func (r *positionalReader) readVarBytes() ([]byte, error) {
	length, err := r.readUint64()
	if err != nil {
		return nil, err
	}
	if length > uint64(len(r.data)) {
		return nil, errors.Wrapf(ErrCorruptLength, "%d byte string at offset %d in a %d byte record",
			length, r.offset, len(r.data))
	}
	return r.readBytes(int(length))
}
