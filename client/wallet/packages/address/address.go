package address

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// Address is an extended version of the ledger Address that also pairs it with the derivation index it was created
// from. It is a value type, so it can be used as a map key.
type Address struct {
	AddressBytes [ledgerstate.AddressLength]byte
	Index        uint64
}

// AddressEmpty represents the zero value of an Address.
var AddressEmpty = Address{}

// New creates a wallet Address from the given ledger Address and derivation index.
func New(ledgerStateAddress ledgerstate.Address, index uint64) (walletAddress Address) {
	walletAddress.AddressBytes = ledgerStateAddress.Array()
	walletAddress.Index = index

	return
}

// Address returns the ledger Address.
func (a Address) Address() (ledgerStateAddress ledgerstate.Address) {
	ledgerStateAddress, _, err := ledgerstate.AddressFromBytes(a.AddressBytes[:])
	if err != nil {
		panic(err)
	}

	return
}

// Base58 returns a base58 encoded version of the Address.
func (a Address) Base58() string {
	return a.Address().Base58()
}

// String returns a human readable version of the Address.
func (a Address) String() string {
	return stringify.Struct("Address",
		stringify.StructField("address", a.Address()),
		stringify.StructField("index", a.Index),
	)
}
