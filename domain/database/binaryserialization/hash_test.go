package binaryserialization_test

import (
	"testing"

	"github.com/kaspanet/genesisproof/domain/database/binaryserialization"
	"github.com/kaspanet/genesisproof/domain/model"
)

func TestHashRecordRoundTrip(t *testing.T) {
	for _, format := range []binaryserialization.Format{
		binaryserialization.FormatBincode,
		binaryserialization.FormatProtobuf,
	} {
		original := hashFromByte(0x42)
		recordBytes, err := binaryserialization.SerializeHashRecord(original, format)
		if err != nil {
			t.Fatalf("%s: SerializeHashRecord: %+v", format, err)
		}
		decoded, err := binaryserialization.DeserializeHashRecord(recordBytes, format)
		if err != nil {
			t.Fatalf("%s: DeserializeHashRecord: %+v", format, err)
		}
		if !original.Equal(decoded) {
			t.Fatalf("%s: decoded %s, expected %s", format, decoded, original)
		}
	}
}

func TestTipsRoundTrip(t *testing.T) {
	for _, format := range []binaryserialization.Format{
		binaryserialization.FormatBincode,
		binaryserialization.FormatProtobuf,
	} {
		for _, tips := range [][]*model.DomainHash{
			{},
			{hashFromByte(1)},
			{hashFromByte(1), hashFromByte(2), hashFromByte(3)},
		} {
			recordBytes, err := binaryserialization.SerializeTips(tips, format)
			if err != nil {
				t.Fatalf("%s: SerializeTips: %+v", format, err)
			}
			decoded, err := binaryserialization.DeserializeTips(recordBytes, format)
			if err != nil {
				t.Fatalf("%s: DeserializeTips: %+v", format, err)
			}
			if !model.HashesEqual(tips, decoded) {
				t.Fatalf("%s: decoded %d tips, expected %d", format, len(decoded), len(tips))
			}
		}
	}
}
