package binaryserialization_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/genesisproof/dagconfig"
	"github.com/kaspanet/genesisproof/domain/consensushashing"
	"github.com/kaspanet/genesisproof/domain/database/binaryserialization"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
)

func testTransaction(t *testing.T) *model.DomainTransaction {
	previousID, err := model.NewDomainTransactionIDFromByteSlice(hashFromByte(9).ByteSlice())
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromByteSlice: %+v", err)
	}
	return &model.DomainTransaction{
		Version: 1,
		Inputs: []*model.DomainTransactionInput{{
			PreviousOutpoint: model.DomainOutpoint{
				TransactionID: *previousID,
				Index:         3,
			},
			SignatureScript: []byte{0x01, 0x02, 0x03},
			Sequence:        7,
		}},
		Outputs: []*model.DomainTransactionOutput{{
			Value: 50_000_000,
			ScriptPublicKey: &model.ScriptPublicKey{
				Script:  []byte{0xaa, 0xbb},
				Version: 2,
			},
		}},
		LockTime:     11,
		SubnetworkID: *model.SubnetworkIDNative,
		Gas:          0,
		Payload:      []byte{0xfe},
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	for _, format := range []binaryserialization.Format{
		binaryserialization.FormatBincode,
		binaryserialization.FormatProtobuf,
	} {
		original := testTransaction(t)
		transactionBytes, err := binaryserialization.SerializeTransaction(original, format)
		if err != nil {
			t.Fatalf("%s: SerializeTransaction: %+v", format, err)
		}
		decoded, err := binaryserialization.DeserializeTransaction(transactionBytes, format)
		if err != nil {
			t.Fatalf("%s: DeserializeTransaction: %+v", format, err)
		}

		originalHash := consensushashing.TransactionHash(original)
		decodedHash := consensushashing.TransactionHash(decoded)
		if !originalHash.Equal(decodedHash) {
			t.Fatalf("%s: the decoded transaction hashes to %s, expected %s\noriginal: %s\ndecoded: %s",
				format, decodedHash, originalHash, spew.Sdump(original), spew.Sdump(decoded))
		}
	}
}

// TestGenesisCoinbaseRoundTrip round-trips the one transaction this tool
// actually reconstructs: no inputs, no outputs, a payload-only coinbase.
func TestGenesisCoinbaseRoundTrip(t *testing.T) {
	for _, format := range []binaryserialization.Format{
		binaryserialization.FormatBincode,
		binaryserialization.FormatProtobuf,
	} {
		original := dagconfig.GenesisCoinbaseTransaction()
		transactionBytes, err := binaryserialization.SerializeTransaction(original, format)
		if err != nil {
			t.Fatalf("%s: SerializeTransaction: %+v", format, err)
		}
		decoded, err := binaryserialization.DeserializeTransaction(transactionBytes, format)
		if err != nil {
			t.Fatalf("%s: DeserializeTransaction: %+v", format, err)
		}
		decodedHash := consensushashing.TransactionHash(decoded)
		if !decodedHash.Equal(dagconfig.GenesisHashMerkleRoot) {
			t.Fatalf("%s: the decoded genesis coinbase hashes to %s, expected %s",
				format, decodedHash, dagconfig.GenesisHashMerkleRoot)
		}
	}
}

// TestDeserializeTransactionTruncated checks that a record missing its final
// byte is reported as truncated, not as a corrupt length: the payload's length
// prefix is intact and plausible, only its bytes are missing.
func TestDeserializeTransactionTruncated(t *testing.T) {
	transactionBytes, err := binaryserialization.SerializeTransaction(testTransaction(t),
		binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}
	_, err = binaryserialization.DeserializeTransaction(transactionBytes[:len(transactionBytes)-1],
		binaryserialization.FormatBincode)
	if !errors.Is(err, binaryserialization.ErrTruncatedRecord) {
		t.Fatalf("expected ErrTruncatedRecord, got %+v", err)
	}
	if errors.Is(err, binaryserialization.ErrCorruptLength) {
		t.Fatalf("a plausible length prefix over missing bytes was reported as corrupt: %+v", err)
	}
}

// TestDeserializeTransactionPayloadLengthTooLarge checks the other side of
// the boundary: a payload length prefix exceeding the whole record is corrupt,
// not truncation.
func TestDeserializeTransactionPayloadLengthTooLarge(t *testing.T) {
	transactionBytes, err := binaryserialization.SerializeTransaction(testTransaction(t),
		binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}

	// The payload length prefix is the 8 bytes before the final payload byte.
	corrupt := append([]byte{}, transactionBytes...)
	for i := len(corrupt) - 9; i < len(corrupt)-1; i++ {
		corrupt[i] = 0xff
	}
	_, err = binaryserialization.DeserializeTransaction(corrupt, binaryserialization.FormatBincode)
	if !errors.Is(err, binaryserialization.ErrCorruptLength) {
		t.Fatalf("expected ErrCorruptLength, got %+v", err)
	}
}

func TestDeserializeTransactionCorruptScriptLength(t *testing.T) {
	transactionBytes, err := binaryserialization.SerializeTransaction(testTransaction(t),
		binaryserialization.FormatBincode)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}

	// The signature script length prefix sits after the version, the input
	// count, the outpoint transaction id and the outpoint index.
	scriptLengthOffset := 2 + 8 + model.DomainHashSize + 4
	corrupt := append([]byte{}, transactionBytes...)
	for i := scriptLengthOffset; i < scriptLengthOffset+8; i++ {
		corrupt[i] = 0xff
	}
	_, err = binaryserialization.DeserializeTransaction(corrupt, binaryserialization.FormatBincode)
	if !errors.Is(err, binaryserialization.ErrCorruptLength) {
		t.Fatalf("expected ErrCorruptLength, got %+v", err)
	}
}
