package model

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainSubnetworkIDSize is the size of the array used to store subnetwork IDs.
const DomainSubnetworkIDSize = 20

// DomainSubnetworkID is the domain representation of a Subnetwork ID
type DomainSubnetworkID [DomainSubnetworkIDSize]byte

var (
	// SubnetworkIDNative is the default subnetwork ID which is used for transactions without related payload data
	SubnetworkIDNative = &DomainSubnetworkID{}

	// SubnetworkIDCoinbase is the subnetwork ID which is used for the coinbase transaction
	SubnetworkIDCoinbase = &DomainSubnetworkID{1}
)

// NewDomainSubnetworkIDFromByteSlice constructs a new DomainSubnetworkID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly `DomainSubnetworkIDSize`
func NewDomainSubnetworkIDFromByteSlice(subnetworkIDBytes []byte) (*DomainSubnetworkID, error) {
	if len(subnetworkIDBytes) != DomainSubnetworkIDSize {
		return nil, errors.Errorf("invalid subnetwork id size. Want: %d, got: %d",
			DomainSubnetworkIDSize, len(subnetworkIDBytes))
	}
	var domainSubnetworkID DomainSubnetworkID
	copy(domainSubnetworkID[:], subnetworkIDBytes)
	return &domainSubnetworkID, nil
}

// String stringifies a subnetwork ID.
func (id DomainSubnetworkID) String() string {
	return hex.EncodeToString(id[:])
}

// Equal returns whether id equals to other
func (id *DomainSubnetworkID) Equal(other *DomainSubnetworkID) bool {
	if id == nil || other == nil {
		return id == other
	}

	return *id == *other
}
