package wallet

import (
	"testing"

	"github.com/iotaledger/hive.go/bitmask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

func newTestOutputManager(t *testing.T, fundingAmounts ...uint64) (*UnspentOutputManager, *mockConnector, []outputFixture) {
	t.Helper()

	signer := newTestSigner(t.Name())
	connector := newMockConnector()

	fixtures := make([]outputFixture, len(fundingAmounts))
	for i, amount := range fundingAmounts {
		walletAddress, err := signer.Address(uint64(i))
		require.NoError(t, err)
		fixtures[i] = outputFixture{
			address:  walletAddress,
			outputID: connector.addOutput(t, walletAddress, amount, true),
		}
	}

	addressManager, err := NewAddressManager(signer, uint64(len(fundingAmounts)), []bitmask.BitMask{})
	require.NoError(t, err)

	manager, err := NewUnspentOutputManager(addressManager, connector)
	require.NoError(t, err)

	return manager, connector, fixtures
}

type outputFixture struct {
	address  address.Address
	outputID ledgerstate.OutputID
}

func TestUnspentOutputManager_Refresh(t *testing.T) {
	manager, _, fixtures := newTestOutputManager(t, 1_000_000, 2_000_000)

	unspentOutputs, err := manager.UnspentOutputs()
	require.NoError(t, err)

	require.Contains(t, unspentOutputs, fixtures[0].address)
	require.Contains(t, unspentOutputs[fixtures[0].address], fixtures[0].outputID)
	require.Contains(t, unspentOutputs, fixtures[1].address)
}

func TestUnspentOutputManager_PendingSpentLifecycle(t *testing.T) {
	manager, _, fixtures := newTestOutputManager(t, 1_000_000)
	funded := fixtures[0]

	// a pending-spent output disappears from the spendable set
	manager.MarkOutputPendingSpent(funded.address, funded.outputID)
	unspentOutputs, err := manager.UnspentOutputs()
	require.NoError(t, err)
	assert.NotContains(t, unspentOutputs, funded.address)

	// the mark survives a refresh, even though the node still serves the output as unspent
	require.NoError(t, manager.Refresh())
	unspentOutputs, err = manager.UnspentOutputs()
	require.NoError(t, err)
	assert.NotContains(t, unspentOutputs, funded.address)

	// reverting puts the output back
	manager.RevertPendingSpent(funded.outputID)
	unspentOutputs, err = manager.UnspentOutputs()
	require.NoError(t, err)
	assert.Contains(t, unspentOutputs[funded.address], funded.outputID)
}

func TestUnspentOutputManager_CommitPendingSpent(t *testing.T) {
	manager, _, fixtures := newTestOutputManager(t, 1_000_000)
	funded := fixtures[0]

	manager.MarkOutputPendingSpent(funded.address, funded.outputID)
	manager.CommitPendingSpent(funded.outputID)

	// the output is gone for good and the consumed address is retired
	unspentOutputs, err := manager.UnspentOutputs()
	require.NoError(t, err)
	assert.NotContains(t, unspentOutputs, funded.address)
	assert.True(t, manager.addressManager.IsAddressSpent(funded.address.Index))

	// a refresh does not resurrect it
	require.NoError(t, manager.Refresh(true))
	unspentOutputs, err = manager.UnspentOutputs()
	require.NoError(t, err)
	assert.NotContains(t, unspentOutputs, funded.address)
}
