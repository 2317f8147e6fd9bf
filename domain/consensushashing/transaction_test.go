package consensushashing_test

import (
	"testing"

	"github.com/kaspanet/genesisproof/dagconfig"
	"github.com/kaspanet/genesisproof/domain/consensushashing"
	"github.com/kaspanet/genesisproof/domain/model"
)

// TestGenesisCoinbaseTransactionHash checks the transaction hashing against a
// known mainnet value: the reconstructed genesis coinbase transaction must
// hash to the genesis block's merkle root.
func TestGenesisCoinbaseTransactionHash(t *testing.T) {
	coinbaseHash := consensushashing.TransactionHash(dagconfig.GenesisCoinbaseTransaction())
	if !coinbaseHash.Equal(dagconfig.GenesisHashMerkleRoot) {
		t.Fatalf("genesis coinbase transaction hashes to %s, expected the genesis merkle root %s",
			coinbaseHash, dagconfig.GenesisHashMerkleRoot)
	}
}

func testTransaction(t *testing.T) *model.DomainTransaction {
	previousID, err := model.NewDomainTransactionIDFromByteSlice(make([]byte, model.DomainHashSize))
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromByteSlice: %+v", err)
	}
	return &model.DomainTransaction{
		Version: 1,
		Inputs: []*model.DomainTransactionInput{{
			PreviousOutpoint: model.DomainOutpoint{
				TransactionID: *previousID,
				Index:         2,
			},
			SignatureScript: []byte{0x01, 0x02, 0x03},
			Sequence:        7,
		}},
		Outputs: []*model.DomainTransactionOutput{{
			Value: 50_000_000,
			ScriptPublicKey: &model.ScriptPublicKey{
				Script:  []byte{0xaa, 0xbb},
				Version: 0,
			},
		}},
		LockTime:     0,
		SubnetworkID: *model.SubnetworkIDNative,
		Gas:          0,
		Payload:      []byte{},
	}
}

func TestTransactionHashSensitivity(t *testing.T) {
	baseHash := consensushashing.TransactionHash(testTransaction(t))
	if !baseHash.Equal(consensushashing.TransactionHash(testTransaction(t))) {
		t.Fatalf("hashing the same transaction twice gave different hashes")
	}

	tests := []struct {
		name   string
		mutate func(tx *model.DomainTransaction)
	}{
		{"version", func(tx *model.DomainTransaction) { tx.Version = 2 }},
		{"input sequence", func(tx *model.DomainTransaction) { tx.Inputs[0].Sequence = 8 }},
		{"signature script", func(tx *model.DomainTransaction) { tx.Inputs[0].SignatureScript[0] ^= 1 }},
		{"output value", func(tx *model.DomainTransaction) { tx.Outputs[0].Value++ }},
		{"lock time", func(tx *model.DomainTransaction) { tx.LockTime = 1 }},
		{"subnetwork", func(tx *model.DomainTransaction) { tx.SubnetworkID = *model.SubnetworkIDCoinbase }},
		{"payload", func(tx *model.DomainTransaction) { tx.Payload = []byte{0x00} }},
	}
	for _, test := range tests {
		tx := testTransaction(t)
		test.mutate(tx)
		if baseHash.Equal(consensushashing.TransactionHash(tx)) {
			t.Errorf("mutating %s did not change the transaction hash", test.name)
		}
	}
}
