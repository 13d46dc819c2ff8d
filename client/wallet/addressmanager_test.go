package wallet

import (
	"testing"

	"github.com/iotaledger/hive.go/bitmask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressManager_Address(t *testing.T) {
	manager, err := NewAddressManager(newTestSigner(t.Name()), 0, []bitmask.BitMask{})
	require.NoError(t, err)

	firstAddress, err := manager.Address(0)
	require.NoError(t, err)

	// derivation is deterministic, the cache must not change the result
	cachedAddress, err := manager.Address(0)
	require.NoError(t, err)
	assert.Equal(t, firstAddress, cachedAddress)

	otherAddress, err := manager.Address(1)
	require.NoError(t, err)
	assert.NotEqual(t, firstAddress.AddressBytes, otherAddress.AddressBytes)
	assert.EqualValues(t, 1, otherAddress.Index)
}

func TestAddressManager_NewAddress(t *testing.T) {
	manager, err := NewAddressManager(newTestSigner(t.Name()), 0, []bitmask.BitMask{})
	require.NoError(t, err)

	newAddress, err := manager.NewAddress()
	require.NoError(t, err)
	assert.EqualValues(t, 1, newAddress.Index)
	assert.EqualValues(t, 1, manager.LastAddressIndex())

	lastUnspent, err := manager.LastUnspentAddress()
	require.NoError(t, err)
	assert.Equal(t, newAddress, lastUnspent)

	addresses, err := manager.Addresses()
	require.NoError(t, err)
	assert.Len(t, addresses, 2)
}

func TestAddressManager_MarkAddressSpent(t *testing.T) {
	manager, err := NewAddressManager(newTestSigner(t.Name()), 0, []bitmask.BitMask{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = manager.NewAddress()
		require.NoError(t, err)
	}

	assert.False(t, manager.IsAddressSpent(0))
	manager.MarkAddressSpent(0)
	assert.True(t, manager.IsAddressSpent(0))

	// the first unspent address moved on
	firstUnspent, err := manager.FirstUnspentAddress()
	require.NoError(t, err)
	assert.EqualValues(t, 1, firstUnspent.Index)

	unspentAddresses, err := manager.UnspentAddresses()
	require.NoError(t, err)
	assert.Len(t, unspentAddresses, 3)
}

func TestAddressManager_SpendingTheLastAddressCreatesANewOne(t *testing.T) {
	manager, err := NewAddressManager(newTestSigner(t.Name()), 0, []bitmask.BitMask{})
	require.NoError(t, err)

	manager.MarkAddressSpent(0)

	// marking the only address as spent forces a fresh one into existence
	assert.EqualValues(t, 1, manager.LastAddressIndex())
	lastUnspent, err := manager.LastUnspentAddress()
	require.NoError(t, err)
	assert.EqualValues(t, 1, lastUnspent.Index)
}

func TestAddressManager_StateRoundTrip(t *testing.T) {
	manager, err := NewAddressManager(newTestSigner(t.Name()), 0, []bitmask.BitMask{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err = manager.NewAddress()
		require.NoError(t, err)
	}
	manager.MarkAddressSpent(0)
	manager.MarkAddressSpent(4)
	manager.MarkAddressSpent(9)

	restored, err := NewAddressManager(newTestSigner(t.Name()), manager.LastAddressIndex(), manager.SpentAddressBitmask())
	require.NoError(t, err)

	assert.Equal(t, manager.LastAddressIndex(), restored.LastAddressIndex())
	for i := uint64(0); i <= manager.LastAddressIndex(); i++ {
		assert.Equal(t, manager.IsAddressSpent(i), restored.IsAddressSpent(i), "spent state of address %d differs", i)
	}
}
