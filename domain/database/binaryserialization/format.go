package binaryserialization

// Format identifies the wire encoding a consensus database uses for its
// records. It is always passed explicitly; nothing in this package selects
// a format implicitly.
type Format int

const (
	// FormatProtobuf is the tagged, length-prefixed encoding used by kaspad
	// (LevelDB) databases. Every field is preceded by a field number and wire
	// type, so fields may appear in any order and unknown fields are skipped.
	FormatProtobuf Format = iota

	// FormatBincode is the positional encoding used by rusty-kaspa (RocksDB)
	// databases. Fields appear in strict declaration order with no tags;
	// fixed-size arrays carry no length prefix and variable-length containers
	// carry an 8-byte little-endian length prefix.
	FormatBincode
)

// IncludesSelfHash returns whether header records in this format store the
// header's own hash as a leading field. This is an explicit property of the
// format and is never inferred from the length of a record.
func (format Format) IncludesSelfHash() bool {
	return format == FormatBincode
}

func (format Format) String() string {
	switch format {
	case FormatProtobuf:
		return "protobuf"
	case FormatBincode:
		return "bincode"
	default:
		return "unknown"
	}
}
