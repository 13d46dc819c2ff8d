package ledgerstate

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomEd25519Address() *Ed25519Address {
	keyPair := ed25519.GenerateKeyPair()

	return NewEd25519Address(keyPair.PublicKey)
}

func TestNewUnlockConditionsCanonicalOrder(t *testing.T) {
	address := randomEd25519Address()
	returnAddress := randomEd25519Address()
	deadline := time.Unix(1700000000, 0)

	// the constructor orders the conditions by type regardless of the supplied order
	conditions, err := NewUnlockConditions(
		NewExpirationUnlockCondition(returnAddress, deadline),
		NewAddressUnlockCondition(address),
		NewTimelockUnlockCondition(deadline),
	)
	require.NoError(t, err)

	require.Len(t, conditions, 3)
	assert.Equal(t, AddressUnlockConditionType, conditions[0].Type())
	assert.Equal(t, TimelockUnlockConditionType, conditions[1].Type())
	assert.Equal(t, ExpirationUnlockConditionType, conditions[2].Type())

	reorderedConditions, err := NewUnlockConditions(
		NewTimelockUnlockCondition(deadline),
		NewExpirationUnlockCondition(returnAddress, deadline),
		NewAddressUnlockCondition(address),
	)
	require.NoError(t, err)

	assert.Equal(t, conditions.Bytes(), reorderedConditions.Bytes())
}

func TestNewUnlockConditionsRejectsDuplicates(t *testing.T) {
	_, err := NewUnlockConditions(
		NewAddressUnlockCondition(randomEd25519Address()),
		NewAddressUnlockCondition(randomEd25519Address()),
	)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestUnlockConditionsBytesRoundTrip(t *testing.T) {
	conditions, err := NewUnlockConditions(
		NewAddressUnlockCondition(randomEd25519Address()),
		NewStorageDepositReturnUnlockCondition(randomEd25519Address(), 1337),
		NewTimelockUnlockCondition(time.Unix(1700000000, 0)),
	)
	require.NoError(t, err)

	restoredConditions, err := UnlockConditionsFromMarshalUtil(marshalutil.New(conditions.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, conditions.Bytes(), restoredConditions.Bytes())
	assert.Equal(t, uint64(1337), restoredConditions.StorageDepositReturn().Amount())
}

func TestUnlockConditionsFromMarshalUtilRejectsUnorderedConditions(t *testing.T) {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(2)
	marshalUtil.WriteBytes(NewTimelockUnlockCondition(time.Unix(1700000000, 0)).Bytes())
	marshalUtil.WriteBytes(NewAddressUnlockCondition(randomEd25519Address()).Bytes())

	_, err := UnlockConditionsFromMarshalUtil(marshalutil.New(marshalUtil.Bytes()))
	assert.Error(t, err)
}

func TestUnlockAddressNow(t *testing.T) {
	ownAddress := randomEd25519Address()
	returnAddress := randomEd25519Address()
	deadline := time.Unix(1700000000, 0)

	conditions, err := NewUnlockConditions(
		NewAddressUnlockCondition(ownAddress),
		NewExpirationUnlockCondition(returnAddress, deadline),
	)
	require.NoError(t, err)

	assert.True(t, ownAddress.Equals(conditions.UnlockAddressNow(deadline.Add(-time.Second))))
	assert.True(t, returnAddress.Equals(conditions.UnlockAddressNow(deadline)))
	assert.True(t, returnAddress.Equals(conditions.UnlockAddressNow(deadline.Add(time.Second))))
}

func TestTimeLockedNow(t *testing.T) {
	lockedUntil := time.Unix(1700000000, 0)

	conditions, err := NewUnlockConditions(
		NewAddressUnlockCondition(randomEd25519Address()),
		NewTimelockUnlockCondition(lockedUntil),
	)
	require.NoError(t, err)

	assert.True(t, conditions.TimeLockedNow(lockedUntil.Add(-time.Second)))
	assert.False(t, conditions.TimeLockedNow(lockedUntil))
}
