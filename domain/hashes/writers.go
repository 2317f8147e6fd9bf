package hashes

import (
	"hash"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	blockDomain       = "BlockHash"
	transactionDomain = "TransactionHash"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is blake2b.
// This can only be created via one of the domain separated constructors
type HashWriter struct {
	hash.Hash
}

func newKeyedWriter(key string) HashWriter {
	blake, err := blake2b.New256([]byte(key))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", key))
	}
	return HashWriter{blake}
}

// NewBlockHashWriter returns a new HashWriter used for block hashes
func NewBlockHashWriter() HashWriter {
	return newKeyedWriter(blockDomain)
}

// NewTransactionHashWriter returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return newKeyedWriter(transactionDomain)
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *model.DomainHash {
	var sum [model.DomainHashSize]byte
	// This should prevent `Sum` from allocating an output buffer, by using the
	// sum buffer. we still copy because we don't want to rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return model.NewDomainHashFromByteArray(&sum)
}
