package binaryserialization

import (
	"bytes"
	"math/big"
	"testing"
)

func TestBlueWorkFromLittleEndian(t *testing.T) {
	tests := []struct {
		name     string
		block    []byte
		expected *big.Int
	}{
		{"all zero", make([]byte, blueWorkSize), new(big.Int)},
		{"one", append([]byte{1}, make([]byte, blueWorkSize-1)...), big.NewInt(1)},
		{"two bytes", append([]byte{0x34, 0x12}, make([]byte, blueWorkSize-2)...), big.NewInt(0x1234)},
	}
	for _, test := range tests {
		blueWork := blueWorkFromLittleEndian(test.block)
		if blueWork.Cmp(test.expected) != 0 {
			t.Errorf("%s: got %s, expected %s", test.name, blueWork, test.expected)
		}
	}
}

// TestBlueWorkCanonicalForm checks that the canonical byte form is trimmed
// big-endian: no leading zeros, and zero is the empty sequence.
func TestBlueWorkCanonicalForm(t *testing.T) {
	zero := blueWorkFromLittleEndian(make([]byte, blueWorkSize))
	if len(zero.Bytes()) != 0 {
		t.Fatalf("zero blue work canonicalized to %x, expected an empty sequence", zero.Bytes())
	}

	block := make([]byte, blueWorkSize)
	block[0] = 0x01
	block[1] = 0x02
	one := blueWorkFromLittleEndian(block)
	if !bytes.Equal(one.Bytes(), []byte{0x02, 0x01}) {
		t.Fatalf("blue work canonicalized to %x, expected 0201", one.Bytes())
	}
}

func TestBlueWorkRoundTrip(t *testing.T) {
	original := make([]byte, blueWorkSize)
	original[0] = 0xaa
	original[10] = 0xbb
	roundTripped, err := blueWorkToLittleEndian(blueWorkFromLittleEndian(original))
	if err != nil {
		t.Fatalf("blueWorkToLittleEndian: %+v", err)
	}
	if !bytes.Equal(original, roundTripped) {
		t.Fatalf("round trip gave %x, expected %x", roundTripped, original)
	}
}

func TestBlueWorkTooLarge(t *testing.T) {
	tooLarge := new(big.Int).Lsh(big.NewInt(1), 8*blueWorkSize)
	_, err := blueWorkToLittleEndian(tooLarge)
	if err == nil {
		t.Fatalf("expected an error for a %d-bit blue work", 8*blueWorkSize+1)
	}
}
