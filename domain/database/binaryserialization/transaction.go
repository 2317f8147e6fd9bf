package binaryserialization

import (
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// DeserializeTransaction decodes a raw transaction record in the given wire
// format. Like header decoding, this is purely structural.
func DeserializeTransaction(transactionBytes []byte, format Format) (*model.DomainTransaction, error) {
	switch format {
	case FormatBincode:
		return deserializeTransactionPositional(transactionBytes)
	case FormatProtobuf:
		return deserializeTransactionTagged(transactionBytes)
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

func deserializeTransactionPositional(transactionBytes []byte) (*model.DomainTransaction, error) {
	r := newPositionalReader(transactionBytes)

	version, err := r.readUint16()
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction version")
	}

	// Inputs are at least an outpoint, a signature script length prefix and
	// a sequence each.
	numInputs, err := r.readLength(model.DomainHashSize + 4 + 8 + 8)
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction input count")
	}
	inputs := make([]*model.DomainTransactionInput, 0, numInputs)
	for i := 0; i < numInputs; i++ {
		input, err := deserializeTransactionInputPositional(r)
		if err != nil {
			return nil, errors.Wrapf(err, "deserializing transaction input %d", i)
		}
		inputs = append(inputs, input)
	}

	numOutputs, err := r.readLength(8 + 2 + 8)
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction output count")
	}
	outputs := make([]*model.DomainTransactionOutput, 0, numOutputs)
	for i := 0; i < numOutputs; i++ {
		output, err := deserializeTransactionOutputPositional(r)
		if err != nil {
			return nil, errors.Wrapf(err, "deserializing transaction output %d", i)
		}
		outputs = append(outputs, output)
	}

	lockTime, err := r.readUint64()
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction lock time")
	}
	subnetworkIDBytes, err := r.readBytes(model.DomainSubnetworkIDSize)
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction subnetwork id")
	}
	subnetworkID, err := model.NewDomainSubnetworkIDFromByteSlice(subnetworkIDBytes)
	if err != nil {
		return nil, err
	}
	gas, err := r.readUint64()
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction gas")
	}
	payload, err := r.readVarBytes()
	if err != nil {
		return nil, errors.Wrap(err, "deserializing transaction payload")
	}

	return &model.DomainTransaction{
		Version:      version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     lockTime,
		SubnetworkID: *subnetworkID,
		Gas:          gas,
		Payload:      payload,
	}, nil
}

func deserializeTransactionInputPositional(r *positionalReader) (*model.DomainTransactionInput, error) {
	transactionIDBytes, err := r.readBytes(model.DomainHashSize)
	if err != nil {
		return nil, err
	}
	transactionID, err := model.NewDomainTransactionIDFromByteSlice(transactionIDBytes)
	if err != nil {
		return nil, err
	}
	index, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	signatureScript, err := r.readVarBytes()
	if err != nil {
		return nil, err
	}
	sequence, err := r.readUint64()
	if err != nil {
		return nil, err
	}

	return &model.DomainTransactionInput{
		PreviousOutpoint: model.DomainOutpoint{
			TransactionID: *transactionID,
			Index:         index,
		},
		SignatureScript: signatureScript,
		Sequence:        sequence,
	}, nil
}

func deserializeTransactionOutputPositional(r *positionalReader) (*model.DomainTransactionOutput, error) {
	value, err := r.readUint64()
	if err != nil {
		return nil, err
	}
	scriptVersion, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	script, err := r.readVarBytes()
	if err != nil {
		return nil, err
	}

	return &model.DomainTransactionOutput{
		Value: value,
		ScriptPublicKey: &model.ScriptPublicKey{
			Script:  script,
			Version: scriptVersion,
		},
	}, nil
}

func deserializeTransactionTagged(transactionBytes []byte) (*model.DomainTransaction, error) {
	transaction := &model.DomainTransaction{
		Inputs:  []*model.DomainTransactionInput{},
		Outputs: []*model.DomainTransactionOutput{},
	}
	err := forEachTaggedField(transactionBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
		switch fieldNumber {
		case transactionVersionFieldNumber:
			version, err := payload.varintUint16("version")
			transaction.Version = version
			return err

		case transactionInputsFieldNumber:
			inputBytes, err := payload.bytesValue("inputs")
			if err != nil {
				return err
			}
			input, err := deserializeTransactionInputTagged(inputBytes)
			if err != nil {
				return err
			}
			transaction.Inputs = append(transaction.Inputs, input)
			return nil

		case transactionOutputsFieldNumber:
			outputBytes, err := payload.bytesValue("outputs")
			if err != nil {
				return err
			}
			output, err := deserializeTransactionOutputTagged(outputBytes)
			if err != nil {
				return err
			}
			transaction.Outputs = append(transaction.Outputs, output)
			return nil

		case transactionLockTimeFieldNumber:
			lockTime, err := payload.varintUint64("lockTime")
			transaction.LockTime = lockTime
			return err

		case transactionSubnetworkIDFieldNumber:
			subnetworkMessageBytes, err := payload.bytesValue("subnetworkID")
			if err != nil {
				return err
			}
			subnetworkID, err := unwrapSubnetworkIDMessage(subnetworkMessageBytes)
			if err != nil {
				return err
			}
			transaction.SubnetworkID = *subnetworkID
			return nil

		case transactionGasFieldNumber:
			gas, err := payload.varintUint64("gas")
			transaction.Gas = gas
			return err

		case transactionPayloadFieldNumber:
			payloadBytes, err := payload.bytesValue("payload")
			transaction.Payload = payloadBytes
			return err

		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func deserializeTransactionInputTagged(inputBytes []byte) (*model.DomainTransactionInput, error) {
	input := &model.DomainTransactionInput{}
	err := forEachTaggedField(inputBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
		switch fieldNumber {
		case inputPreviousOutpointFieldNumber:
			outpointBytes, err := payload.bytesValue("previousOutpoint")
			if err != nil {
				return err
			}
			outpoint, err := deserializeOutpointTagged(outpointBytes)
			if err != nil {
				return err
			}
			input.PreviousOutpoint = *outpoint
			return nil

		case inputSignatureScriptFieldNumber:
			signatureScript, err := payload.bytesValue("signatureScript")
			input.SignatureScript = signatureScript
			return err

		case inputSequenceFieldNumber:
			sequence, err := payload.varintUint64("sequence")
			input.Sequence = sequence
			return err

		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func deserializeOutpointTagged(outpointBytes []byte) (*model.DomainOutpoint, error) {
	outpoint := &model.DomainOutpoint{}
	err := forEachTaggedField(outpointBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
		switch fieldNumber {
		case outpointTransactionIDFieldNumber:
			hashMessageBytes, err := payload.bytesValue("transactionID")
			if err != nil {
				return err
			}
			transactionIDHash, err := unwrapHashMessage(hashMessageBytes)
			if err != nil {
				return err
			}
			outpoint.TransactionID = model.DomainTransactionID(*transactionIDHash)
			return nil

		case outpointIndexFieldNumber:
			index, err := payload.varintUint32("index")
			outpoint.Index = index
			return err

		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return outpoint, nil
}

func deserializeTransactionOutputTagged(outputBytes []byte) (*model.DomainTransactionOutput, error) {
	output := &model.DomainTransactionOutput{
		ScriptPublicKey: &model.ScriptPublicKey{},
	}
	err := forEachTaggedField(outputBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
		switch fieldNumber {
		case outputValueFieldNumber:
			value, err := payload.varintUint64("value")
			output.Value = value
			return err

		case outputScriptPublicKeyFieldNumber:
			scriptPublicKeyBytes, err := payload.bytesValue("scriptPublicKey")
			if err != nil {
				return err
			}
			return forEachTaggedField(scriptPublicKeyBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
				switch fieldNumber {
				case scriptPublicKeyScriptFieldNumber:
					script, err := payload.bytesValue("script")
					output.ScriptPublicKey.Script = script
					return err
				case scriptPublicKeyVersionFieldNumber:
					version, err := payload.varintUint16("version")
					output.ScriptPublicKey.Version = version
					return err
				default:
					return nil
				}
			})

		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

func unwrapSubnetworkIDMessage(data []byte) (*model.DomainSubnetworkID, error) {
	var subnetworkID *model.DomainSubnetworkID
	err := forEachTaggedField(data, func(fieldNumber protowire.Number, payload taggedPayload) error {
		if fieldNumber != subnetworkIDBytesFieldNumber {
			return nil
		}
		subnetworkIDBytes, err := payload.bytesValue("subnetworkId")
		if err != nil {
			return err
		}
		subnetworkID, err = model.NewDomainSubnetworkIDFromByteSlice(subnetworkIDBytes)
		return err
	})
	if err != nil {
		return nil, err
	}
	if subnetworkID == nil {
		return nil, errors.Errorf("subnetwork id message is missing its bytes field")
	}
	return subnetworkID, nil
}
