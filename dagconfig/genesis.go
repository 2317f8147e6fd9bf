package dagconfig

import (
	"github.com/kaspanet/genesisproof/domain/model"
)

// GenesisHash is the hash of the genesis block of the main network. This is
// the hardwired genesis introduced at the checkpoint; its UTXO commitment
// carries the checkpoint UTXO set rather than an empty one.
var GenesisHash = model.NewDomainHashFromByteArray(&[model.DomainHashSize]byte{
	0x58, 0xc2, 0xd4, 0x19, 0x9e, 0x21, 0xf9, 0x10,
	0xd1, 0x57, 0x1d, 0x11, 0x49, 0x69, 0xce, 0xce,
	0xf4, 0x8f, 0x09, 0xf9, 0x34, 0xd4, 0x2c, 0xcb,
	0x6a, 0x28, 0x1a, 0x15, 0x86, 0x8f, 0x29, 0x99,
})

// GenesisHashMerkleRoot is the merkle root of the genesis block of the main
// network. The genesis block carries a single coinbase transaction, so this
// is that transaction's hash.
var GenesisHashMerkleRoot = model.NewDomainHashFromByteArray(&[model.DomainHashSize]byte{
	0x8e, 0xc8, 0x98, 0x56, 0x8c, 0x68, 0x01, 0xd1,
	0x3d, 0xf4, 0xee, 0x6e, 0x2a, 0x1b, 0x54, 0xb7,
	0xe6, 0x23, 0x6f, 0x67, 0x1f, 0x20, 0x95, 0x4f,
	0x05, 0x30, 0x64, 0x10, 0x51, 0x8e, 0xeb, 0x32,
})

// CheckpointHash is the hash of the last pre-checkpoint block. The genesis
// coinbase payload commits to it, tying the hardwired genesis to the
// pre-checkpoint chain.
var CheckpointHash = model.NewDomainHashFromByteArray(&[model.DomainHashSize]byte{
	0x0f, 0xca, 0x37, 0xca, 0x66, 0x7c, 0x2d, 0x55,
	0x0a, 0x6c, 0x44, 0x16, 0xda, 0xd9, 0x71, 0x7e,
	0x50, 0x92, 0x71, 0x28, 0xc4, 0x24, 0xfa, 0x4e,
	0xdb, 0xeb, 0xc4, 0x36, 0xab, 0x13, 0xae, 0xef,
})

// OriginalGenesisHash is the hash of the genesis block the network launched
// with, reachable from CheckpointHash via pruning points. Its UTXO commitment
// is the empty MuHash.
var OriginalGenesisHash = model.NewDomainHashFromByteArray(&[model.DomainHashSize]byte{
	0xca, 0xeb, 0x97, 0x96, 0x0a, 0x16, 0x0c, 0x21,
	0x1a, 0x6b, 0x21, 0x96, 0xbd, 0x78, 0x39, 0x9f,
	0xd4, 0xc4, 0xcc, 0x5b, 0x50, 0x9f, 0x55, 0xc1,
	0x2c, 0x8a, 0x7d, 0x81, 0x5f, 0x75, 0x36, 0xea,
})

// genesisTxPayload is the payload of the genesis coinbase transaction: the
// coinbase blue score and subsidy, a dedication script, the hash of a
// contemporary Bitcoin block and the checkpoint block hash.
var genesisTxPayload = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Blue score
	0x00, 0xE1, 0xF5, 0x05, 0x00, 0x00, 0x00, 0x00, // Subsidy
	0x00, 0x00, // Script version
	0x01, // Varint
	0x00, // OP-FALSE

	// ומה די עליך ועל אחיך ייטב בשאר כספא ודהבה למעבד כרעות אלהכם תעבדון
	0xd7, 0x95, 0xd7, 0x9e, 0xd7, 0x94, 0x20, 0xd7,
	0x93, 0xd7, 0x99, 0x20, 0xd7, 0xa2, 0xd7, 0x9c,
	0xd7, 0x99, 0xd7, 0x9a, 0x20, 0xd7, 0x95, 0xd7,
	0xa2, 0xd7, 0x9c, 0x20, 0xd7, 0x90, 0xd7, 0x97,
	0xd7, 0x99, 0xd7, 0x9a, 0x20, 0xd7, 0x99, 0xd7,
	0x99, 0xd7, 0x98, 0xd7, 0x91, 0x20, 0xd7, 0x91,
	0xd7, 0xa9, 0xd7, 0x90, 0xd7, 0xa8, 0x20, 0xd7,
	0x9b, 0xd7, 0xa1, 0xd7, 0xa4, 0xd7, 0x90, 0x20,
	0xd7, 0x95, 0xd7, 0x93, 0xd7, 0x94, 0xd7, 0x91,
	0xd7, 0x94, 0x20, 0xd7, 0x9c, 0xd7, 0x9e, 0xd7,
	0xa2, 0xd7, 0x91, 0xd7, 0x93, 0x20, 0xd7, 0x9b,
	0xd7, 0xa8, 0xd7, 0xa2, 0xd7, 0x95, 0xd7, 0xaa,
	0x20, 0xd7, 0x90, 0xd7, 0x9c, 0xd7, 0x94, 0xd7,
	0x9b, 0xd7, 0x9d, 0x20, 0xd7, 0xaa, 0xd7, 0xa2,
	0xd7, 0x91, 0xd7, 0x93, 0xd7, 0x95, 0xd7, 0x9f,

	// Hash of a contemporary Bitcoin block
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x0b, 0x1f, 0x8e, 0x1c, 0x17, 0xb0, 0x13,
	0x3d, 0x43, 0x91, 0x74, 0xe5, 0x2e, 0xfb, 0xb0,
	0xc4, 0x1c, 0x35, 0x83, 0xa8, 0xaa, 0x66, 0xb0,

	// Checkpoint block hash
	0x0f, 0xca, 0x37, 0xca, 0x66, 0x7c, 0x2d, 0x55,
	0x0a, 0x6c, 0x44, 0x16, 0xda, 0xd9, 0x71, 0x7e,
	0x50, 0x92, 0x71, 0x28, 0xc4, 0x24, 0xfa, 0x4e,
	0xdb, 0xeb, 0xc4, 0x36, 0xab, 0x13, 0xae, 0xef,
}

// GenesisCoinbaseTransaction reconstructs the genesis coinbase transaction
// from first principles. Its hash must equal GenesisHashMerkleRoot.
func GenesisCoinbaseTransaction() *model.DomainTransaction {
	return &model.DomainTransaction{
		Version:      0,
		Inputs:       []*model.DomainTransactionInput{},
		Outputs:      []*model.DomainTransactionOutput{},
		LockTime:     0,
		SubnetworkID: *model.SubnetworkIDCoinbase,
		Gas:          0,
		Payload:      genesisTxPayload,
	}
}
