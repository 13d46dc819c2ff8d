package wallet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/client/wallet/packages/confirmation"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

func TestWebConnector_UnspentOutputs(t *testing.T) {
	signer := newTestSigner(t.Name())
	walletAddress, err := signer.Address(0)
	require.NoError(t, err)

	conditions, err := ledgerstate.NewUnlockConditions(ledgerstate.NewAddressUnlockCondition(walletAddress.Address()))
	require.NoError(t, err)
	output, err := ledgerstate.NewBasicOutput(1_000_000, nil, conditions, nil)
	require.NoError(t, err)
	outputID := ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/"+routeUnspentOutputs, r.URL.Path)

		var request unspentOutputsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Equal(t, []string{walletAddress.Address().Base58()}, request.Addresses)

		response := unspentOutputsResponse{
			UnspentOutputs: []unspentOutputsOnAddress{{
				Address: walletAddress.Address().Base58(),
				Outputs: []outputModel{{
					OutputID:    outputID.Base58(),
					OutputBytes: base58.Encode(output.Bytes()),
					Confirmed:   true,
				}},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	connector := NewWebConnector(server.URL)
	unspentOutputs, err := connector.UnspentOutputs(walletAddress)
	require.NoError(t, err)

	require.Contains(t, unspentOutputs, walletAddress)
	require.Contains(t, unspentOutputs[walletAddress], outputID)
	parsedOutput := unspentOutputs[walletAddress][outputID]
	assert.EqualValues(t, 1_000_000, parsedOutput.Object.Amount())
	assert.True(t, parsedOutput.InclusionState.Confirmed)
	assert.False(t, parsedOutput.InclusionState.Spent)
}

func TestWebConnector_SubmitTransaction_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		require.NoError(t, json.NewEncoder(w).Encode(errorResponse{Error: "transaction is invalid"}))
	}))
	defer server.Close()

	connector := NewWebConnector(server.URL, RetryCount(0))

	tx := signedTestTransaction(t)
	_, err := connector.SubmitTransaction(tx)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestWebConnector_SubmitTransaction_NetworkUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	connector := NewWebConnector(server.URL, RetryCount(0))

	_, err := connector.SubmitTransaction(signedTestTransaction(t))
	assert.True(t, errors.Is(err, ErrNetworkUnavailable))
}

func TestWebConnector_TransactionState(t *testing.T) {
	transactionID := ledgerstate.GenesisTransactionID

	states := map[string]confirmation.State{
		"pending":     confirmation.Pending,
		"confirmed":   confirmation.Confirmed,
		"conflicting": confirmation.Conflicting,
	}

	for wireState, expectedState := range states {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(inclusionStateResponse{State: wireState}))
		}))

		connector := NewWebConnector(server.URL)
		inclusion, err := connector.TransactionState(transactionID)
		require.NoError(t, err)
		assert.Equal(t, expectedState, inclusion.State)

		server.Close()
	}
}

func TestWebConnector_TransactionState_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	connector := NewWebConnector(server.URL, RetryCount(0))
	inclusion, err := connector.TransactionState(ledgerstate.GenesisTransactionID)
	require.NoError(t, err)
	assert.Equal(t, confirmation.NotFound, inclusion.State)
}

// signedTestTransaction builds a minimal but fully signed transaction for connector tests.
func signedTestTransaction(t *testing.T) *ledgerstate.Transaction {
	t.Helper()

	signer := newTestSigner(t.Name())
	walletAddress, err := signer.Address(0)
	require.NoError(t, err)

	conditions, err := ledgerstate.NewUnlockConditions(ledgerstate.NewAddressUnlockCondition(walletAddress.Address()))
	require.NoError(t, err)
	output, err := ledgerstate.NewBasicOutput(1_000_000, nil, conditions, nil)
	require.NoError(t, err)
	outputs, err := ledgerstate.NewOutputs(output)
	require.NoError(t, err)

	inputs := ledgerstate.NewInputs(ledgerstate.NewUTXOInput(ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0)))
	essence := ledgerstate.NewTransactionEssence(ledgerstate.DefaultNetworkID, inputs, outputs)

	signatures, err := signer.Sign(essence.Bytes(), []address.Address{walletAddress})
	require.NoError(t, err)

	tx, err := ledgerstate.NewTransaction(essence, ledgerstate.UnlockBlocks{
		ledgerstate.NewSignatureUnlockBlock(signatures[walletAddress]),
	})
	require.NoError(t, err)

	return tx
}
