package secretstore

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
)

func TestSession_Sign(t *testing.T) {
	session := newSession(testSeed(t.Name()))
	defer session.Lock()

	firstAddress, err := session.Address(0)
	require.NoError(t, err)
	secondAddress, err := session.Address(1)
	require.NoError(t, err)

	essenceBytes := []byte("transaction essence to be signed")
	signatures, err := session.Sign(essenceBytes, []address.Address{firstAddress, secondAddress})
	require.NoError(t, err)
	require.Len(t, signatures, 2)

	// every signature verifies against the address it was requested for
	assert.True(t, signatures[firstAddress].AddressSignatureValid(firstAddress.Address(), essenceBytes))
	assert.True(t, signatures[secondAddress].AddressSignatureValid(secondAddress.Address(), essenceBytes))

	// and not against any other address
	assert.False(t, signatures[firstAddress].AddressSignatureValid(secondAddress.Address(), essenceBytes))
}

func TestSession_Lock(t *testing.T) {
	session := newSession(testSeed(t.Name()))

	walletAddress, err := session.Address(0)
	require.NoError(t, err)

	assert.False(t, session.IsLocked())
	session.Lock()
	assert.True(t, session.IsLocked())

	_, err = session.Address(0)
	assert.True(t, errors.Is(err, ErrSignerLocked))

	_, err = session.Sign([]byte("essence"), []address.Address{walletAddress})
	assert.True(t, errors.Is(err, ErrSignerLocked))

	// locking again is a no-op
	session.Lock()
	assert.True(t, session.IsLocked())
}

func TestSession_DerivationIsIndependentOfCallOrder(t *testing.T) {
	firstSession := newSession(testSeed(t.Name()))
	defer firstSession.Lock()
	secondSession := newSession(testSeed(t.Name()))
	defer secondSession.Lock()

	highAddress, err := firstSession.Address(7)
	require.NoError(t, err)
	lowAddress, err := firstSession.Address(1)
	require.NoError(t, err)

	// deriving in a different order yields the same addresses
	sameLowAddress, err := secondSession.Address(1)
	require.NoError(t, err)
	sameHighAddress, err := secondSession.Address(7)
	require.NoError(t, err)

	assert.Equal(t, lowAddress, sameLowAddress)
	assert.Equal(t, highAddress, sameHighAddress)
}
