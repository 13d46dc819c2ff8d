package wallet

import (
	"time"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/client/wallet/packages/confirmation"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// Connector represents an interface that defines how the wallet interacts with the network. A wallet can either be
// used locally on a server or it can connect remotely using the web API.
type Connector interface {
	// UnspentOutputs returns the outputs of the given addresses that have not been consumed yet.
	UnspentOutputs(addresses ...address.Address) (unspentOutputs OutputsByAddressAndOutputID, err error)

	// SubmitTransaction hands the given transaction to the network for processing. Transport failures yield
	// ErrNetworkUnavailable, a definitive rejection by the node yields ErrRejected.
	SubmitTransaction(transaction *ledgerstate.Transaction) (handle *SubmissionHandle, err error)

	// TransactionState queries the inclusion state of a previously submitted transaction.
	TransactionState(transactionID ledgerstate.TransactionID) (inclusion confirmation.Inclusion, err error)
}

// SubmissionHandle identifies a successfully submitted transaction. It carries everything that is needed to track
// the transaction until the network reaches a decision about it.
type SubmissionHandle struct {
	// TransactionID is the identifier of the submitted transaction.
	TransactionID ledgerstate.TransactionID

	// ConsumedOutputIDs lists the outputs the transaction consumes. The wallet uses them to settle its local
	// pending-spent marks once the network decided about the transaction.
	ConsumedOutputIDs []ledgerstate.OutputID

	// SubmittedAt is the local time of the submission.
	SubmittedAt time.Time
}
