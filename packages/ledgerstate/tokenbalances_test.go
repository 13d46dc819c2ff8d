package ledgerstate

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenID(firstByte byte) (tokenID TokenID) {
	tokenID[0] = firstByte

	return
}

func TestNewTokenBalances(t *testing.T) {
	tokenBalances, err := NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(2): big.NewInt(500),
		testTokenID(1): big.NewInt(25),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tokenBalances.Size())

	quantity, exists := tokenBalances.Get(testTokenID(1))
	require.True(t, exists)
	assert.Equal(t, int64(25), quantity.Int64())

	// entries are exposed in ascending TokenID order regardless of the supplied map
	assert.Equal(t, []TokenID{testTokenID(1), testTokenID(2)}, tokenBalances.TokenIDs())
}

func TestNewTokenBalancesRejectsInvalidQuantities(t *testing.T) {
	_, err := NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(1): big.NewInt(0),
	})
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	_, err = NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(1): big.NewInt(-10),
	})
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	exceedingQuantity := new(big.Int).Add(MaxTokenQuantity, big.NewInt(1))
	_, err = NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(1): exceedingQuantity,
	})
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestTokenBalancesBytesRoundTrip(t *testing.T) {
	tokenBalances, err := NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(3): big.NewInt(1),
		testTokenID(1): new(big.Int).Set(MaxTokenQuantity),
		testTokenID(2): big.NewInt(123456789),
	})
	require.NoError(t, err)

	restoredBalances, err := TokenBalancesFromMarshalUtil(marshalutil.New(tokenBalances.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, tokenBalances.Bytes(), restoredBalances.Bytes())
	assert.Equal(t, tokenBalances.Map(), restoredBalances.Map())
}

func TestTokenBalancesFromMarshalUtilRejectsUnorderedEntries(t *testing.T) {
	first, err := NewTokenBalances(map[TokenID]*big.Int{testTokenID(2): big.NewInt(1)})
	require.NoError(t, err)
	second, err := NewTokenBalances(map[TokenID]*big.Int{testTokenID(1): big.NewInt(1)})
	require.NoError(t, err)

	// stitch together a byte stream whose entries violate the ascending order
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(2)
	marshalUtil.WriteBytes(first.Bytes()[marshalutil.Uint16Size:])
	marshalUtil.WriteBytes(second.Bytes()[marshalutil.Uint16Size:])

	_, err = TokenBalancesFromMarshalUtil(marshalutil.New(marshalUtil.Bytes()))
	assert.Error(t, err)
}
