package consensushashing

import (
	"io"

	"github.com/kaspanet/genesisproof/domain/hashes"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/genesisproof/domain/serialization"
	"github.com/pkg/errors"
)

// TransactionHash returns the transaction hash.
func TransactionHash(tx *model.DomainTransaction) *model.DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := serializeTransaction(writer, tx)
	if err != nil {
		// this writer never returns errors (no allocations or possible failures) so errors can only come
		// from unknown types in `WriteElement`, and we assume we never construct malformed transactions.
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail for structurally-valid transactions"))
	}

	return writer.Finalize()
}

func serializeTransaction(w io.Writer, tx *model.DomainTransaction) error {
	err := serialization.WriteElements(w, tx.Version, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}

	for _, input := range tx.Inputs {
		err = writeTransactionInput(w, input)
		if err != nil {
			return err
		}
	}

	err = serialization.WriteElement(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}

	for _, output := range tx.Outputs {
		err = writeTransactionOutput(w, output)
		if err != nil {
			return err
		}
	}

	err = serialization.WriteElements(w, tx.LockTime, tx.SubnetworkID, tx.Gas)
	if err != nil {
		return err
	}

	return writeVarBytes(w, tx.Payload)
}

func writeTransactionInput(w io.Writer, input *model.DomainTransactionInput) error {
	err := writeOutpoint(w, &input.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = writeVarBytes(w, input.SignatureScript)
	if err != nil {
		return err
	}

	return serialization.WriteElement(w, input.Sequence)
}

func writeOutpoint(w io.Writer, outpoint *model.DomainOutpoint) error {
	_, err := w.Write(outpoint.TransactionID.ByteSlice())
	if err != nil {
		return err
	}

	return serialization.WriteElement(w, outpoint.Index)
}

func writeTransactionOutput(w io.Writer, output *model.DomainTransactionOutput) error {
	err := serialization.WriteElements(w, output.Value, output.ScriptPublicKey.Version)
	if err != nil {
		return err
	}

	return writeVarBytes(w, output.ScriptPublicKey.Script)
}

func writeVarBytes(w io.Writer, data []byte) error {
	err := serialization.WriteElement(w, uint64(len(data)))
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
