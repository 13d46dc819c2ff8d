package wallet

import (
	"github.com/iotaledger/hive.go/bitmask"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
)

// AddressSource derives the wallet addresses. It is implemented by the secret store session, so the address manager
// never has access to key material.
type AddressSource interface {
	// Address returns the wallet address with the given derivation index.
	Address(index uint64) (address.Address, error)
}

// AddressManager is a manager struct that allows us to keep track of the used and spent addresses.
type AddressManager struct {
	// state of the wallet
	addressSource    AddressSource
	lastAddressIndex uint64
	spentAddresses   []bitmask.BitMask

	// cache of the derived addresses
	derivedAddresses map[uint64]address.Address

	// internal variables for faster access
	firstUnspentAddressIndex uint64
	lastUnspentAddressIndex  uint64
}

// NewAddressManager is the constructor for the AddressManager type.
func NewAddressManager(addressSource AddressSource, lastAddressIndex uint64, spentAddresses []bitmask.BitMask) (addressManager *AddressManager, err error) {
	addressManager = &AddressManager{
		addressSource:    addressSource,
		lastAddressIndex: lastAddressIndex,
		spentAddresses:   spentAddresses,
		derivedAddresses: make(map[uint64]address.Address),
	}
	addressManager.updateFirstUnspentAddressIndex()
	if err = addressManager.updateLastUnspentAddressIndex(); err != nil {
		return nil, err
	}

	return
}

// Address returns the address that belongs to the given index.
func (a *AddressManager) Address(addressIndex uint64) (walletAddress address.Address, err error) {
	// update lastUnspentAddressIndex if necessary
	a.spentAddressIndexes(addressIndex)

	if cachedAddress, cacheHit := a.derivedAddresses[addressIndex]; cacheHit {
		return cachedAddress, nil
	}

	if walletAddress, err = a.addressSource.Address(addressIndex); err != nil {
		return
	}
	a.derivedAddresses[addressIndex] = walletAddress

	return
}

// Addresses returns a list of all addresses of the wallet.
func (a *AddressManager) Addresses() (addresses []address.Address, err error) {
	addresses = make([]address.Address, a.lastAddressIndex+1)
	for i := uint64(0); i <= a.lastAddressIndex; i++ {
		if addresses[i], err = a.Address(i); err != nil {
			return nil, err
		}
	}

	return
}

// UnspentAddresses returns a list of all unspent addresses of the wallet.
func (a *AddressManager) UnspentAddresses() (addresses []address.Address, err error) {
	addresses = make([]address.Address, 0)
	for i := a.firstUnspentAddressIndex; i <= a.lastAddressIndex; i++ {
		if !a.IsAddressSpent(i) {
			unspentAddress, addressErr := a.Address(i)
			if addressErr != nil {
				return nil, addressErr
			}
			addresses = append(addresses, unspentAddress)
		}
	}

	return
}

// FirstUnspentAddress returns the first unspent address that we know.
func (a *AddressManager) FirstUnspentAddress() (address.Address, error) {
	return a.Address(a.firstUnspentAddressIndex)
}

// LastUnspentAddress returns the last unspent address that we know.
func (a *AddressManager) LastUnspentAddress() (address.Address, error) {
	return a.Address(a.lastUnspentAddressIndex)
}

// NewAddress generates and returns a new unused address.
func (a *AddressManager) NewAddress() (address.Address, error) {
	return a.Address(a.lastAddressIndex + 1)
}

// MarkAddressSpent marks the given address as spent.
func (a *AddressManager) MarkAddressSpent(addressIndex uint64) {
	// determine indexes
	sliceIndex, bitIndex := a.spentAddressIndexes(addressIndex)

	// mark address as spent
	a.spentAddresses[sliceIndex] = a.spentAddresses[sliceIndex].SetBit(uint(bitIndex))

	// update spent address indexes
	if addressIndex == a.firstUnspentAddressIndex {
		a.updateFirstUnspentAddressIndex()
	}
	if addressIndex == a.lastUnspentAddressIndex {
		_ = a.updateLastUnspentAddressIndex()
	}
}

// IsAddressSpent returns true if the address given by the address index was spent already.
func (a *AddressManager) IsAddressSpent(addressIndex uint64) bool {
	sliceIndex, bitIndex := a.spentAddressIndexes(addressIndex)

	return a.spentAddresses[sliceIndex].HasBit(uint(bitIndex))
}

// SpentAddressBitmask exposes the spent address tracking state, so it can be persisted alongside the wallet.
func (a *AddressManager) SpentAddressBitmask() []bitmask.BitMask {
	spentAddresses := make([]bitmask.BitMask, len(a.spentAddresses))
	copy(spentAddresses, a.spentAddresses)

	return spentAddresses
}

// LastAddressIndex returns the highest derivation index the manager handed out so far.
func (a *AddressManager) LastAddressIndex() uint64 {
	return a.lastAddressIndex
}

// spentAddressIndexes retrieves the indexes for the internal representation of the spent addresses bitmask slice that
// belongs to the given address index. It automatically increases the capacity and updates the lastAddressIndex and
// the lastUnspentAddressIndex if a new address is generated for the first time.
func (a *AddressManager) spentAddressIndexes(addressIndex uint64) (sliceIndex uint64, bitIndex uint64) {
	// calculate result
	spentAddressesCapacity := uint64(len(a.spentAddresses))
	sliceIndex = addressIndex / 8
	bitIndex = addressIndex % 8

	// extend capacity to make space for the requested index
	if sliceIndex+1 > spentAddressesCapacity {
		a.spentAddresses = append(a.spentAddresses, make([]bitmask.BitMask, sliceIndex-spentAddressesCapacity+1)...)
	}

	// update lastAddressIndex if the index is bigger
	if addressIndex > a.lastAddressIndex {
		a.lastAddressIndex = addressIndex
	}

	// update lastUnspentAddressIndex if necessary
	if addressIndex > a.lastUnspentAddressIndex && !a.spentAddresses[sliceIndex].HasBit(uint(bitIndex)) {
		a.lastUnspentAddressIndex = addressIndex
	}

	return
}

// updateFirstUnspentAddressIndex searches for the first unspent address and updates the firstUnspentAddressIndex.
func (a *AddressManager) updateFirstUnspentAddressIndex() {
	for i := a.firstUnspentAddressIndex; true; i++ {
		if !a.IsAddressSpent(i) {
			a.firstUnspentAddressIndex = i

			return
		}
	}
}

// updateLastUnspentAddressIndex searches for the last unspent address and updates the lastUnspentAddressIndex.
func (a *AddressManager) updateLastUnspentAddressIndex() (err error) {
	// search for last unspent address
	for i := a.lastUnspentAddressIndex; true; i-- {
		if !a.IsAddressSpent(i) {
			a.lastUnspentAddressIndex = i

			return
		}

		if i == 0 {
			break
		}
	}

	// or generate a new unspent address
	_, err = a.NewAddress()

	return
}
