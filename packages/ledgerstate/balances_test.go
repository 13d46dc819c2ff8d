package ledgerstate

import (
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceTestOutput(t *testing.T, amount uint64, nativeTokens map[TokenID]*big.Int) Output {
	t.Helper()

	tokenBalances, err := NewTokenBalances(nativeTokens)
	require.NoError(t, err)

	output, err := NewBasicOutput(amount, tokenBalances, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)

	return output
}

func TestSumBalances(t *testing.T) {
	outputs := Outputs{
		balanceTestOutput(t, 100000, map[TokenID]*big.Int{testTokenID(1): big.NewInt(10)}),
		balanceTestOutput(t, 250000, map[TokenID]*big.Int{testTokenID(1): big.NewInt(5), testTokenID(2): big.NewInt(7)}),
		balanceTestOutput(t, 50000, nil),
	}

	balances, err := SumBalances(outputs)
	require.NoError(t, err)

	assert.Equal(t, uint64(400000), balances.BaseTokens())

	firstTokenSum, exists := balances.NativeTokens().Get(testTokenID(1))
	require.True(t, exists)
	assert.Equal(t, int64(15), firstTokenSum.Int64())

	secondTokenSum, exists := balances.NativeTokens().Get(testTokenID(2))
	require.True(t, exists)
	assert.Equal(t, int64(7), secondTokenSum.Int64())
}

func TestSumBalancesIsAssociative(t *testing.T) {
	outputs := Outputs{
		balanceTestOutput(t, 100000, map[TokenID]*big.Int{testTokenID(1): big.NewInt(10)}),
		balanceTestOutput(t, 250000, map[TokenID]*big.Int{testTokenID(2): big.NewInt(7)}),
		balanceTestOutput(t, 50000, map[TokenID]*big.Int{testTokenID(1): big.NewInt(3)}),
	}

	allAtOnce, err := SumBalances(outputs)
	require.NoError(t, err)

	firstPartition, err := SumBalances(outputs[:1])
	require.NoError(t, err)
	secondPartition, err := SumBalances(outputs[1:])
	require.NoError(t, err)
	require.NoError(t, firstPartition.Add(secondPartition))

	assert.Equal(t, allAtOnce.BaseTokens(), firstPartition.BaseTokens())
	assert.Equal(t, allAtOnce.NativeTokens().Map(), firstPartition.NativeTokens().Map())
}

func TestSumBalancesBaseTokenOverflow(t *testing.T) {
	balances := NewBalances()
	require.NoError(t, balances.addBaseTokens(math.MaxUint64))

	err := balances.addBaseTokens(1)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestSumBalancesNativeTokenOverflow(t *testing.T) {
	outputs := Outputs{
		balanceTestOutput(t, 100000, map[TokenID]*big.Int{testTokenID(1): new(big.Int).Set(MaxTokenQuantity)}),
		balanceTestOutput(t, 100000, map[TokenID]*big.Int{testTokenID(1): big.NewInt(1)}),
	}

	_, err := SumBalances(outputs)
	assert.True(t, errors.Is(err, ErrOverflow))
}
