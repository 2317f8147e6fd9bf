package binaryserialization

import (
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// DeserializeHashRecord decodes a single-hash registry record, such as the
// headers-selected-tip record. The positional layout stores the raw 32 bytes;
// the tagged layout wraps them in a hash message.
func DeserializeHashRecord(hashBytes []byte, format Format) (*model.DomainHash, error) {
	switch format {
	case FormatBincode:
		r := newPositionalReader(hashBytes)
		return r.readHash()
	case FormatProtobuf:
		return unwrapHashMessage(hashBytes)
	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}

// DeserializeTips decodes the DAG tips registry record: a sequence of hashes.
func DeserializeTips(tipsBytes []byte, format Format) ([]*model.DomainHash, error) {
	switch format {
	case FormatBincode:
		r := newPositionalReader(tipsBytes)
		numTips, err := r.readLength(model.DomainHashSize)
		if err != nil {
			return nil, err
		}
		tips := make([]*model.DomainHash, 0, numTips)
		for i := 0; i < numTips; i++ {
			tip, err := r.readHash()
			if err != nil {
				return nil, err
			}
			tips = append(tips, tip)
		}
		return tips, nil

	case FormatProtobuf:
		tips := []*model.DomainHash{}
		err := forEachTaggedField(tipsBytes, func(fieldNumber protowire.Number, payload taggedPayload) error {
			if fieldNumber != tipsTipFieldNumber {
				return nil
			}
			hashMessageBytes, err := payload.bytesValue("tips")
			if err != nil {
				return err
			}
			tip, err := unwrapHashMessage(hashMessageBytes)
			if err != nil {
				return err
			}
			tips = append(tips, tip)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return tips, nil

	default:
		return nil, errors.Errorf("unknown record format %d", format)
	}
}
