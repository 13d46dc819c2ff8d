package wallet

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/client/wallet/packages/confirmation"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// region WebConnector /////////////////////////////////////////////////////////////////////////////////////////////////

const (
	routeUnspentOutputs = "api/addresses/unspentOutputs"
	routeTransactions   = "api/transactions"
	routeInclusionState = "api/transactions/{txID}/inclusionState"
	defaultHTTPTimeout  = 30 * time.Second
	defaultHTTPRetries  = 2
)

// WebConnectorOption adjusts the behavior of a WebConnector.
type WebConnectorOption func(*WebConnector)

// Logger hands the connector a logger for its request logging. If the option is not provided the standard logger of
// logrus is used.
func Logger(log *logrus.Logger) WebConnectorOption {
	return func(connector *WebConnector) {
		connector.log = log
	}
}

// HTTPTimeout overrides the timeout of the underlying http client.
func HTTPTimeout(timeout time.Duration) WebConnectorOption {
	return func(connector *WebConnector) {
		connector.client.SetTimeout(timeout)
	}
}

// RetryCount overrides how often a failed request is retried before the connector reports the network as
// unavailable.
func RetryCount(retries int) WebConnectorOption {
	return func(connector *WebConnector) {
		connector.client.SetRetryCount(retries)
	}
}

// WebConnector is a Connector that talks to the web API of a node.
type WebConnector struct {
	client *resty.Client
	log    *logrus.Logger
}

// NewWebConnector creates a connector that connects to the node web API reachable under the given base url.
func NewWebConnector(baseURL string, setters ...WebConnectorOption) *WebConnector {
	connector := &WebConnector{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultHTTPTimeout).
			SetRetryCount(defaultHTTPRetries),
		log: logrus.StandardLogger(),
	}

	for _, setter := range setters {
		setter(connector)
	}

	return connector
}

// UnspentOutputs returns the outputs of the given addresses that have not been consumed yet.
func (w *WebConnector) UnspentOutputs(addresses ...address.Address) (unspentOutputs OutputsByAddressAndOutputID, err error) {
	request := &unspentOutputsRequest{
		Addresses: make([]string, len(addresses)),
	}
	addressesByBase58 := make(map[string]address.Address, len(addresses))
	for i, addr := range addresses {
		encodedAddress := addr.Address().Base58()
		request.Addresses[i] = encodedAddress
		addressesByBase58[encodedAddress] = addr
	}

	response := &unspentOutputsResponse{}
	restyResponse, err := w.client.R().
		SetBody(request).
		SetResult(response).
		SetError(&errorResponse{}).
		Post(routeUnspentOutputs)
	if err != nil {
		return nil, errors.Errorf("failed to fetch unspent outputs (%v): %w", err, ErrNetworkUnavailable)
	}
	if restyResponse.IsError() {
		return nil, errors.Errorf("node answered with status %s: %w", restyResponse.Status(), ErrNetworkUnavailable)
	}

	unspentOutputs = NewAddressToOutputs()
	for _, outputsOnAddress := range response.UnspentOutputs {
		walletAddress, addressKnown := addressesByBase58[outputsOnAddress.Address]
		if !addressKnown {
			w.log.WithField("address", outputsOnAddress.Address).Warn("node returned outputs for an address that was not queried")
			continue
		}

		for _, outputModel := range outputsOnAddress.Outputs {
			output, parseErr := outputModel.output(walletAddress)
			if parseErr != nil {
				return nil, parseErr
			}

			if _, addressExists := unspentOutputs[walletAddress]; !addressExists {
				unspentOutputs[walletAddress] = make(OutputsByID)
			}
			unspentOutputs[walletAddress][output.Object.ID()] = output
		}
	}

	w.log.WithFields(logrus.Fields{
		"addresses":            len(addresses),
		"addressesWithOutputs": len(unspentOutputs),
	}).Debug("fetched unspent outputs")

	return unspentOutputs, nil
}

// SubmitTransaction hands the given transaction to the node for processing.
func (w *WebConnector) SubmitTransaction(transaction *ledgerstate.Transaction) (handle *SubmissionHandle, err error) {
	response := &submitTransactionResponse{}
	restyResponse, err := w.client.R().
		SetBody(&submitTransactionRequest{TransactionBytes: base58.Encode(transaction.Bytes())}).
		SetResult(response).
		SetError(&errorResponse{}).
		Post(routeTransactions)
	if err != nil {
		return nil, errors.Errorf("failed to submit transaction (%v): %w", err, ErrNetworkUnavailable)
	}
	if restyResponse.IsError() {
		// a definitive answer by the node, not a transport problem
		if restyResponse.StatusCode() >= 400 && restyResponse.StatusCode() < 500 {
			nodeError, _ := restyResponse.Error().(*errorResponse)
			return nil, errors.Errorf("node refused transaction %s (%s): %w", transaction.ID().Base58(), nodeError.message(), ErrRejected)
		}
		return nil, errors.Errorf("node answered with status %s: %w", restyResponse.Status(), ErrNetworkUnavailable)
	}

	consumedOutputIDs := make([]ledgerstate.OutputID, len(transaction.Essence().Inputs()))
	for i, input := range transaction.Essence().Inputs() {
		consumedOutputIDs[i] = input.(*ledgerstate.UTXOInput).ReferencedOutputID()
	}

	w.log.WithField("transactionID", transaction.ID().Base58()).Info("submitted transaction")

	return &SubmissionHandle{
		TransactionID:     transaction.ID(),
		ConsumedOutputIDs: consumedOutputIDs,
		SubmittedAt:       time.Now(),
	}, nil
}

// TransactionState queries the inclusion state of a previously submitted transaction.
func (w *WebConnector) TransactionState(transactionID ledgerstate.TransactionID) (inclusion confirmation.Inclusion, err error) {
	response := &inclusionStateResponse{}
	restyResponse, err := w.client.R().
		SetPathParam("txID", transactionID.Base58()).
		SetResult(response).
		SetError(&errorResponse{}).
		Get(routeInclusionState)
	if err != nil {
		return inclusion, errors.Errorf("failed to fetch inclusion state (%v): %w", err, ErrNetworkUnavailable)
	}
	if restyResponse.StatusCode() == 404 {
		return confirmation.Inclusion{State: confirmation.NotFound}, nil
	}
	if restyResponse.IsError() {
		return inclusion, errors.Errorf("node answered with status %s: %w", restyResponse.Status(), ErrNetworkUnavailable)
	}

	return response.inclusion()
}

// code contract (make sure the type implements all required methods).
var _ Connector = &WebConnector{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region API models ///////////////////////////////////////////////////////////////////////////////////////////////////

type unspentOutputsRequest struct {
	Addresses []string `json:"addresses"`
}

type unspentOutputsResponse struct {
	UnspentOutputs []unspentOutputsOnAddress `json:"unspentOutputs"`
}

type unspentOutputsOnAddress struct {
	Address string        `json:"address"`
	Outputs []outputModel `json:"outputs"`
}

type outputModel struct {
	OutputID    string `json:"outputID"`
	OutputBytes string `json:"outputBytes"`
	Confirmed   bool   `json:"confirmed"`
}

// output converts the wire representation into the internal output model.
func (o *outputModel) output(walletAddress address.Address) (*Output, error) {
	outputID, err := ledgerstate.OutputIDFromBase58(o.OutputID)
	if err != nil {
		return nil, err
	}

	outputBytes, err := base58.Decode(o.OutputBytes)
	if err != nil {
		return nil, err
	}
	parsedOutput, _, err := ledgerstate.OutputFromBytes(outputBytes)
	if err != nil {
		return nil, err
	}
	parsedOutput.SetID(outputID)

	return &Output{
		Address: walletAddress,
		Object:  parsedOutput,
		InclusionState: InclusionState{
			Confirmed: o.Confirmed,
		},
	}, nil
}

type submitTransactionRequest struct {
	TransactionBytes string `json:"transactionBytes"`
}

type submitTransactionResponse struct {
	TransactionID string `json:"transactionID"`
}

type inclusionStateResponse struct {
	State     string `json:"state"`
	Reference string `json:"reference"`
}

// inclusion converts the wire representation of an inclusion state into the internal model.
func (i *inclusionStateResponse) inclusion() (confirmation.Inclusion, error) {
	var state confirmation.State
	switch i.State {
	case "pending":
		state = confirmation.Pending
	case "confirmed":
		state = confirmation.Confirmed
	case "conflicting":
		state = confirmation.Conflicting
	case "notFound":
		state = confirmation.NotFound
	default:
		return confirmation.Inclusion{}, errors.Errorf("unknown inclusion state %q received from node", i.State)
	}

	return confirmation.Inclusion{
		State:     state,
		Reference: i.Reference,
	}, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (e *errorResponse) message() string {
	if e == nil || e.Error == "" {
		return "no reason given"
	}
	return e.Error
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
