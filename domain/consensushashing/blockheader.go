package consensushashing

import (
	"io"

	"github.com/kaspanet/genesisproof/domain/hashes"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/genesisproof/domain/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the given header's hash, computed over the header's
// content fields in canonical order. The self-hash stored by one of the
// backend layouts is never part of the hashed bytes.
func HeaderHash(header model.BlockHeader) *model.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serializeHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}

func serializeHeader(w io.Writer, header model.BlockHeader) error {
	timestamp := header.TimeInMilliseconds()
	blueWork := header.BlueWork().Bytes()

	numParentLevels := len(header.Parents())
	if err := serialization.WriteElements(w, header.Version(), uint64(numParentLevels)); err != nil {
		return err
	}
	for _, blockLevelParents := range header.Parents() {
		if err := serialization.WriteElement(w, uint64(len(blockLevelParents))); err != nil {
			return err
		}
		for _, parent := range blockLevelParents {
			if err := serialization.WriteElement(w, parent); err != nil {
				return err
			}
		}
	}
	if err := serialization.WriteElements(w, header.HashMerkleRoot(), header.AcceptedIDMerkleRoot(),
		header.UTXOCommitment(), timestamp, header.Bits(), header.Nonce(), header.DAAScore(),
		header.BlueScore(), uint64(len(blueWork))); err != nil {
		return err
	}
	if _, err := w.Write(blueWork); err != nil {
		return err
	}
	return serialization.WriteElement(w, header.PruningPoint())
}
