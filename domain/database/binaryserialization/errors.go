package binaryserialization

import "github.com/pkg/errors"

// ErrTruncatedRecord denotes that a record ended before the current field was
// fully read.
var ErrTruncatedRecord = errors.New("record is truncated")

// ErrCorruptLength denotes that a length prefix inside a record is larger than
// the record's remaining bytes could possibly satisfy.
var ErrCorruptLength = errors.New("length prefix exceeds the remaining record bytes")

// IsMalformedRecordError returns whether the given error indicates that a
// record's raw bytes could not be decoded.
func IsMalformedRecordError(err error) bool {
	return errors.Is(err, ErrTruncatedRecord) || errors.Is(err, ErrCorruptLength)
}
