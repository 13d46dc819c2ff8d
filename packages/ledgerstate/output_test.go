package ledgerstate

import (
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicConditions(t *testing.T, address Address) UnlockConditions {
	t.Helper()

	conditions, err := NewUnlockConditions(NewAddressUnlockCondition(address))
	require.NoError(t, err)

	return conditions
}

func TestNewBasicOutput(t *testing.T) {
	address := randomEd25519Address()
	nativeTokens, err := NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(7): big.NewInt(1500),
	})
	require.NoError(t, err)

	metadataFeature, err := NewMetadataFeature([]byte("attached payload"))
	require.NoError(t, err)
	features, err := NewFeatures(NewSenderFeature(randomEd25519Address()), metadataFeature)
	require.NoError(t, err)

	output, err := NewBasicOutput(100000, nativeTokens, basicConditions(t, address), features)
	require.NoError(t, err)

	assert.Equal(t, BasicOutputType, output.Type())
	assert.Equal(t, uint64(100000), output.Amount())
	assert.Equal(t, 1, output.NativeTokens().Size())
	assert.True(t, address.Equals(output.Conditions().Address().UnlockAddress()))
}

func TestNewBasicOutputRequiresAddressCondition(t *testing.T) {
	conditions, err := NewUnlockConditions()
	require.NoError(t, err)

	_, err = NewBasicOutput(100000, nil, conditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewBasicOutputRejectsForeignConditions(t *testing.T) {
	conditions, err := NewUnlockConditions(
		NewAddressUnlockCondition(randomEd25519Address()),
		NewGovernorAddressUnlockCondition(randomEd25519Address()),
	)
	require.NoError(t, err)

	_, err = NewBasicOutput(100000, nil, conditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewBasicOutputRejectsForeignFeatures(t *testing.T) {
	features, err := NewFeatures(NewIssuerFeature(randomEd25519Address()))
	require.NoError(t, err)

	_, err = NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), features)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewBasicOutputAmountBounds(t *testing.T) {
	conditions := basicConditions(t, randomEd25519Address())

	_, err := NewBasicOutput(0, nil, conditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	_, err = NewBasicOutput(MaxTokenSupply+1, nil, conditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewBasicOutputEnforcesStorageDeposit(t *testing.T) {
	conditions := basicConditions(t, randomEd25519Address())

	// an amount below the byte cost of the serialized output is rejected
	_, err := NewBasicOutput(100, nil, conditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	output, err := NewBasicOutput(100000, nil, conditions, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, output.Amount(), MinStorageDeposit(output, DefaultParameters()))
}

func TestNewBasicOutputCanonicalizesConditionOrder(t *testing.T) {
	address := randomEd25519Address()

	// supplied out of wire order on purpose
	output, err := NewBasicOutput(100000, nil, UnlockConditions{
		NewTimelockUnlockCondition(time.Now().Add(time.Hour)),
		NewAddressUnlockCondition(address),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, AddressUnlockConditionType, output.Conditions()[0].Type())
	assert.Equal(t, TimelockUnlockConditionType, output.Conditions()[1].Type())

	restoredOutput, _, err := OutputFromBytes(output.Bytes())
	require.NoError(t, err)
	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
}

func TestNewBasicOutputRejectsDuplicateConditions(t *testing.T) {
	addressCondition := NewAddressUnlockCondition(randomEd25519Address())

	_, err := NewBasicOutput(100000, nil, UnlockConditions{addressCondition, addressCondition}, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewBasicOutputRejectsDuplicateFeatures(t *testing.T) {
	tagFeature, err := NewTagFeature([]byte("tag"))
	require.NoError(t, err)

	_, err = NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), Features{tagFeature, tagFeature})
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestValidateOutputWithCustomParameters(t *testing.T) {
	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)

	expensiveParams := &Parameters{
		NetworkID:   DefaultNetworkID,
		TokenSupply: MaxTokenSupply,
		MinDeposit:  ByteCostDeposit(10000),
	}
	err = ValidateOutput(output, expensiveParams)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
	assert.Greater(t, MinStorageDeposit(output, expensiveParams), output.Amount())
}

func TestOutputBytesRoundTrip(t *testing.T) {
	nativeTokens, err := NewTokenBalances(map[TokenID]*big.Int{
		testTokenID(1): big.NewInt(42),
	})
	require.NoError(t, err)

	metadataFeature, err := NewMetadataFeature([]byte("payload"))
	require.NoError(t, err)
	features, err := NewFeatures(metadataFeature)
	require.NoError(t, err)

	output, err := NewBasicOutput(100000, nativeTokens, basicConditions(t, randomEd25519Address()), features)
	require.NoError(t, err)

	restoredOutput, consumedBytes, err := OutputFromBytes(output.Bytes())
	require.NoError(t, err)

	assert.Equal(t, len(output.Bytes()), consumedBytes)
	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
}

func TestNewAliasOutput(t *testing.T) {
	conditions, err := NewUnlockConditions(
		NewStateControllerAddressUnlockCondition(randomEd25519Address()),
		NewGovernorAddressUnlockCondition(randomEd25519Address()),
	)
	require.NoError(t, err)

	output, err := NewAliasOutput(100000, nil, AliasID{1}, 7, conditions, nil)
	require.NoError(t, err)

	assert.Equal(t, AliasOutputType, output.Type())
	assert.Equal(t, uint32(7), output.StateIndex())

	restoredOutput, _, err := OutputFromBytes(output.Bytes())
	require.NoError(t, err)
	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())

	// both controller conditions are mandatory
	incompleteConditions, err := NewUnlockConditions(
		NewStateControllerAddressUnlockCondition(randomEd25519Address()),
	)
	require.NoError(t, err)

	_, err = NewAliasOutput(100000, nil, AliasID{1}, 0, incompleteConditions, nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewFoundryOutput(t *testing.T) {
	aliasAddress := NewAliasAddress([]byte("controlling alias"))
	conditions, err := NewUnlockConditions(NewImmutableAliasAddressUnlockCondition(aliasAddress))
	require.NoError(t, err)

	output, err := NewFoundryOutput(100000, nil, 3, conditions, nil)
	require.NoError(t, err)

	assert.Equal(t, FoundryOutputType, output.Type())
	assert.Equal(t, uint32(3), output.SerialNumber())
	assert.True(t, aliasAddress.Equals(output.UnlockAddressNow(time.Now())))

	restoredOutput, _, err := OutputFromBytes(output.Bytes())
	require.NoError(t, err)
	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
}

func TestNewNFTOutput(t *testing.T) {
	features, err := NewFeatures(NewIssuerFeature(randomEd25519Address()))
	require.NoError(t, err)

	output, err := NewNFTOutput(100000, nil, NFTID{9}, basicConditions(t, randomEd25519Address()), features)
	require.NoError(t, err)

	assert.Equal(t, NFTOutputType, output.Type())
	assert.Equal(t, NFTID{9}, output.NFTID())

	restoredOutput, _, err := OutputFromBytes(output.Bytes())
	require.NoError(t, err)
	assert.Equal(t, output.Bytes(), restoredOutput.Bytes())
}

func TestOutputID(t *testing.T) {
	transactionID := TransactionID{1, 2, 3}
	outputID := NewOutputID(transactionID, 5)

	assert.Equal(t, transactionID, outputID.TransactionID())
	assert.Equal(t, uint16(5), outputID.OutputIndex())

	restoredOutputID, err := OutputIDFromBase58(outputID.Base58())
	require.NoError(t, err)
	assert.Equal(t, outputID, restoredOutputID)
}

func TestNewOutputsRejectsDuplicates(t *testing.T) {
	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)

	_, err = NewOutputs(output, output)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestNewOutputsPreservesOrder(t *testing.T) {
	firstOutput, err := NewBasicOutput(200000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	secondOutput, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)

	outputs, err := NewOutputs(firstOutput, secondOutput)
	require.NoError(t, err)

	assert.Equal(t, firstOutput.Bytes(), outputs[0].Bytes())
	assert.Equal(t, secondOutput.Bytes(), outputs[1].Bytes())
}
