package ledgerstate

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionEssenceDeterminism(t *testing.T) {
	firstInput := NewUTXOInput(NewOutputID(TransactionID{1}, 0))
	secondInput := NewUTXOInput(NewOutputID(TransactionID{2}, 1))

	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	outputs, err := NewOutputs(output)
	require.NoError(t, err)

	// the input order is canonicalized, so the essence bytes do not depend on the supplied order
	firstEssence := NewTransactionEssence(DefaultNetworkID, NewInputs(firstInput, secondInput), outputs)
	secondEssence := NewTransactionEssence(DefaultNetworkID, NewInputs(secondInput, firstInput), outputs)

	assert.Equal(t, firstEssence.Bytes(), secondEssence.Bytes())
}

func TestTransactionEssenceBytesRoundTrip(t *testing.T) {
	input := NewUTXOInput(NewOutputID(TransactionID{1}, 0))
	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	outputs, err := NewOutputs(output)
	require.NoError(t, err)

	essence := NewTransactionEssence(DefaultNetworkID, NewInputs(input), outputs)

	restoredEssence, err := TransactionEssenceFromMarshalUtil(marshalutil.New(essence.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, essence.Bytes(), restoredEssence.Bytes())
	assert.Equal(t, uint64(DefaultNetworkID), restoredEssence.NetworkID())
}

func TestNewTransactionSetsOutputIDs(t *testing.T) {
	input := NewUTXOInput(NewOutputID(TransactionID{1}, 0))
	firstOutput, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	secondOutput, err := NewBasicOutput(200000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	outputs, err := NewOutputs(firstOutput, secondOutput)
	require.NoError(t, err)

	keyPair := ed25519.GenerateKeyPair()
	essence := NewTransactionEssence(DefaultNetworkID, NewInputs(input), outputs)
	signature := NewED25519Signature(keyPair.PublicKey, keyPair.PrivateKey.Sign(essence.Bytes()))

	transaction, err := NewTransaction(essence, UnlockBlocks{NewSignatureUnlockBlock(signature)})
	require.NoError(t, err)

	assert.Equal(t, transaction.ID(), firstOutput.ID().TransactionID())
	assert.Equal(t, uint16(0), firstOutput.ID().OutputIndex())
	assert.Equal(t, uint16(1), secondOutput.ID().OutputIndex())
}

func TestNewTransactionRejectsUnlockBlockCountMismatch(t *testing.T) {
	input := NewUTXOInput(NewOutputID(TransactionID{1}, 0))
	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	outputs, err := NewOutputs(output)
	require.NoError(t, err)

	essence := NewTransactionEssence(DefaultNetworkID, NewInputs(input), outputs)

	_, err = NewTransaction(essence, UnlockBlocks{})
	assert.True(t, errors.Is(err, ErrTransactionInvalid))
}

func TestTransactionBytesRoundTrip(t *testing.T) {
	input := NewUTXOInput(NewOutputID(TransactionID{1}, 0))
	output, err := NewBasicOutput(100000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	outputs, err := NewOutputs(output)
	require.NoError(t, err)

	keyPair := ed25519.GenerateKeyPair()
	essence := NewTransactionEssence(DefaultNetworkID, NewInputs(input), outputs)
	signature := NewED25519Signature(keyPair.PublicKey, keyPair.PrivateKey.Sign(essence.Bytes()))

	transaction, err := NewTransaction(essence, UnlockBlocks{NewSignatureUnlockBlock(signature)})
	require.NoError(t, err)

	restoredTransaction, consumedBytes, err := TransactionFromBytes(transaction.Bytes())
	require.NoError(t, err)

	assert.Equal(t, len(transaction.Bytes()), consumedBytes)
	assert.Equal(t, transaction.ID(), restoredTransaction.ID())
}

func TestTransactionBalancesValid(t *testing.T) {
	consumedOutput := balanceTestOutput(t, 300000, nil)
	balancedOutput := balanceTestOutput(t, 300000, nil)
	unbalancedOutput := balanceTestOutput(t, 200000, nil)

	assert.True(t, TransactionBalancesValid(Outputs{consumedOutput}, Outputs{balancedOutput}))
	assert.False(t, TransactionBalancesValid(Outputs{consumedOutput}, Outputs{unbalancedOutput}))
}

func TestUnlockBlocksValid(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	ownAddress := NewEd25519Address(keyPair.PublicKey)

	conditions, err := NewUnlockConditions(NewAddressUnlockCondition(ownAddress))
	require.NoError(t, err)
	consumedOutput, err := NewBasicOutput(300000, nil, conditions, nil)
	require.NoError(t, err)
	consumedOutput.SetID(NewOutputID(TransactionID{1}, 0))

	createdOutput, err := NewBasicOutput(300000, nil, basicConditions(t, randomEd25519Address()), nil)
	require.NoError(t, err)
	createdOutputs, err := NewOutputs(createdOutput)
	require.NoError(t, err)

	essence := NewTransactionEssence(DefaultNetworkID, NewInputs(NewUTXOInput(consumedOutput.ID())), createdOutputs)
	signature := NewED25519Signature(keyPair.PublicKey, keyPair.PrivateKey.Sign(essence.Bytes()))

	transaction, err := NewTransaction(essence, UnlockBlocks{NewSignatureUnlockBlock(signature)})
	require.NoError(t, err)

	assert.True(t, UnlockBlocksValid(Outputs{consumedOutput}, transaction))

	// a signature from a different key pair does not unlock the output
	foreignKeyPair := ed25519.GenerateKeyPair()
	foreignSignature := NewED25519Signature(foreignKeyPair.PublicKey, foreignKeyPair.PrivateKey.Sign(essence.Bytes()))
	foreignTransaction, err := NewTransaction(essence, UnlockBlocks{NewSignatureUnlockBlock(foreignSignature)})
	require.NoError(t, err)

	assert.False(t, UnlockBlocksValid(Outputs{consumedOutput}, foreignTransaction))
}
