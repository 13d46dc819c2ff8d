package sendoptions

import (
	"math/big"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

func randomAddressBase58(t *testing.T) string {
	t.Helper()

	keyPair := ed25519.GenerateKeyPair()
	return ledgerstate.NewEd25519Address(keyPair.PublicKey).Base58()
}

func TestBuild(t *testing.T) {
	firstAddress := randomAddressBase58(t)
	secondAddress := randomAddressBase58(t)

	options, err := Build(
		Destination(firstAddress, 100),
		Destination(secondAddress, 200),
		Tag([]byte("payment")),
		AttachSender(true),
	)
	require.NoError(t, err)

	// destinations keep the order they were supplied in
	require.Len(t, options.Destinations, 2)
	assert.Equal(t, firstAddress, options.Destinations[0].Address.Base58())
	assert.EqualValues(t, 100, options.Destinations[0].Amount)
	assert.Equal(t, secondAddress, options.Destinations[1].Address.Base58())
	assert.EqualValues(t, 200, options.Destinations[1].Amount)

	assert.NotNil(t, options.TagFeature)
	assert.Nil(t, options.MetadataFeature)
	assert.True(t, options.AttachSender)
	assert.False(t, options.UsePendingOutputs)
}

func TestBuild_RequiresDestination(t *testing.T) {
	_, err := Build(Tag([]byte("payment")))
	assert.Error(t, err)
}

func TestBuild_RejectsZeroAmount(t *testing.T) {
	_, err := Build(Destination(randomAddressBase58(t), 0))
	assert.Error(t, err)
}

func TestBuild_RejectsMalformedAddress(t *testing.T) {
	_, err := Build(Destination("not an address", 100))
	assert.Error(t, err)
}

func TestSendFundsOptions_RequiredFunds(t *testing.T) {
	tokenID := ledgerstate.TokenID{1, 2, 3}

	options, err := Build(
		Destination(randomAddressBase58(t), 100),
		DestinationWithNativeTokens(randomAddressBase58(t), 200, map[ledgerstate.TokenID]*big.Int{
			tokenID: big.NewInt(50),
		}),
		DestinationWithNativeTokens(randomAddressBase58(t), 300, map[ledgerstate.TokenID]*big.Int{
			tokenID: big.NewInt(25),
		}),
	)
	require.NoError(t, err)

	baseTokens, nativeTokens, err := options.RequiredFunds()
	require.NoError(t, err)
	assert.EqualValues(t, 600, baseTokens)
	require.Len(t, nativeTokens, 1)
	assert.Zero(t, nativeTokens[tokenID].Cmp(big.NewInt(75)))
}

func TestSendFundsOptions_RequiredFundsOverflow(t *testing.T) {
	options, err := Build(
		Destination(randomAddressBase58(t), ^uint64(0)),
		Destination(randomAddressBase58(t), 1),
	)
	require.NoError(t, err)

	_, _, err = options.RequiredFunds()
	assert.Error(t, err)
}
