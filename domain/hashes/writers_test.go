package hashes

import (
	"testing"
)

// TestDomainSeparation checks that the block and transaction hash keys
// actually separate the domains: the same bytes must hash differently under
// the two writers.
func TestDomainSeparation(t *testing.T) {
	payload := []byte("same bytes under two keys")

	blockWriter := NewBlockHashWriter()
	blockWriter.InfallibleWrite(payload)
	transactionWriter := NewTransactionHashWriter()
	transactionWriter.InfallibleWrite(payload)

	if blockWriter.Finalize().Equal(transactionWriter.Finalize()) {
		t.Fatalf("the block and transaction hash domains are not separated")
	}
}

func TestWriterDeterminism(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}

	first := NewBlockHashWriter()
	first.InfallibleWrite(payload)
	second := NewBlockHashWriter()
	second.InfallibleWrite(payload)

	if !first.Finalize().Equal(second.Finalize()) {
		t.Fatalf("two writers over the same bytes finalized to different hashes")
	}
}
