package binaryserialization

import (
	"math/big"

	"github.com/pkg/errors"
)

// blueWorkSize is the fixed width, in bytes, of the blue work block in the
// positional layout (a 192-bit little-endian unsigned integer).
const blueWorkSize = 24

// blueWorkFromLittleEndian converts a fixed-width little-endian blue work
// block into its canonical arbitrary-precision form. The canonical byte
// representation, as produced by big.Int.Bytes, is big-endian with leading
// zero bytes trimmed; an all-zero block canonicalizes to an empty sequence.
func blueWorkFromLittleEndian(blueWorkBytes []byte) *big.Int {
	bigEndian := make([]byte, len(blueWorkBytes))
	for i, b := range blueWorkBytes {
		bigEndian[len(blueWorkBytes)-1-i] = b
	}
	return new(big.Int).SetBytes(bigEndian)
}

// blueWorkToLittleEndian is the inverse conversion, used when serializing
// records back into the positional layout.
func blueWorkToLittleEndian(blueWork *big.Int) ([]byte, error) {
	bigEndian := blueWork.Bytes()
	if len(bigEndian) > blueWorkSize {
		return nil, errors.Errorf("blue work value needs %d bytes, the positional layout fits %d",
			len(bigEndian), blueWorkSize)
	}
	littleEndian := make([]byte, blueWorkSize)
	for i, b := range bigEndian {
		littleEndian[len(bigEndian)-1-i] = b
	}
	return littleEndian, nil
}
