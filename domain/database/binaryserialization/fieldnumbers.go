package binaryserialization

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers of the tagged (protobuf) record layouts. These mirror the
// kaspad database object definitions and are configuration, not decode logic.
const (
	// DbBlockHeader
	headerVersionFieldNumber              protowire.Number = 1
	headerHashMerkleRootFieldNumber       protowire.Number = 3
	headerAcceptedIDMerkleRootFieldNumber protowire.Number = 4
	headerUTXOCommitmentFieldNumber       protowire.Number = 5
	headerTimeInMillisecondsFieldNumber   protowire.Number = 6
	headerBitsFieldNumber                 protowire.Number = 7
	headerNonceFieldNumber                protowire.Number = 8
	headerDAAScoreFieldNumber             protowire.Number = 9
	headerBlueWorkFieldNumber             protowire.Number = 10
	headerPruningPointFieldNumber         protowire.Number = 11
	headerBlueScoreFieldNumber            protowire.Number = 12
	headerParentsFieldNumber              protowire.Number = 13

	// DbBlockLevelParents
	levelParentHashesFieldNumber protowire.Number = 1

	// DbHash
	hashBytesFieldNumber protowire.Number = 1

	// DbTips
	tipsTipFieldNumber protowire.Number = 1

	// DbTransaction
	transactionVersionFieldNumber      protowire.Number = 1
	transactionInputsFieldNumber       protowire.Number = 2
	transactionOutputsFieldNumber      protowire.Number = 3
	transactionLockTimeFieldNumber     protowire.Number = 4
	transactionSubnetworkIDFieldNumber protowire.Number = 5
	transactionGasFieldNumber          protowire.Number = 6
	transactionPayloadFieldNumber      protowire.Number = 8

	// DbTransactionInput
	inputPreviousOutpointFieldNumber protowire.Number = 1
	inputSignatureScriptFieldNumber  protowire.Number = 2
	inputSequenceFieldNumber         protowire.Number = 3

	// DbOutpoint
	outpointTransactionIDFieldNumber protowire.Number = 1
	outpointIndexFieldNumber         protowire.Number = 2

	// DbTransactionOutput
	outputValueFieldNumber           protowire.Number = 1
	outputScriptPublicKeyFieldNumber protowire.Number = 2

	// DbScriptPublicKey
	scriptPublicKeyScriptFieldNumber  protowire.Number = 1
	scriptPublicKeyVersionFieldNumber protowire.Number = 2

	// DbSubnetworkId
	subnetworkIDBytesFieldNumber protowire.Number = 1
)
