package database

import "github.com/kaspanet/genesisproof/domain/model"

// Logical-table prefixes of the consensus database. Both backends keep the
// same registry, so these are plain configuration. A record key is the table
// prefix byte followed directly by the 32-byte hash, with no separator;
// singleton records are the prefix byte alone.
const (
	headersSelectedTipPrefix byte = 7
	headersPrefix            byte = 8
	pruningPointPrefix       byte = 13
	tipsPrefix               byte = 24
)

func headerKey(hash *model.DomainHash) []byte {
	key := make([]byte, 0, model.DomainHashSize+1)
	key = append(key, headersPrefix)
	return append(key, hash.ByteSlice()...)
}

func headersSelectedTipKey() []byte {
	return []byte{headersSelectedTipPrefix}
}

func pruningPointKey() []byte {
	return []byte{pruningPointPrefix}
}

func tipsKey() []byte {
	return []byte{tipsPrefix}
}
