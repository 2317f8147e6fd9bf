package serialization

import (
	"encoding/binary"
	"io"

	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case uint8:
		_, err := w.Write([]byte{e})
		return err

	case uint16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], e)
		_, err := w.Write(buf[:])
		return err

	case uint32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e)
		_, err := w.Write(buf[:])
		return err

	case uint64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], e)
		_, err := w.Write(buf[:])
		return err

	case int64:
		return WriteElement(w, uint64(e))

	case model.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return err

	case *model.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return err

	case model.DomainSubnetworkID:
		_, err := w.Write(e[:])
		return err

	case *model.DomainSubnetworkID:
		_, err := w.Write(e[:])
		return err
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}
