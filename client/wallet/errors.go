package wallet

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInsufficientFunds is returned if the unspent outputs of the wallet do not cover the requested transfer. The
	// error names the asset that is short.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNetworkUnavailable is returned if the node could not be reached or answered with a server side failure. The
	// submission may be retried, the transaction was not necessarily dropped.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrRejected is returned if the node deemed the submitted transaction invalid. Resubmitting the same
	// transaction will fail again.
	ErrRejected = errors.New("transaction rejected")

	// ErrConflictingTransaction is returned if a submitted transaction lost a conflict against another transaction
	// that consumed the same outputs.
	ErrConflictingTransaction = errors.New("transaction conflicting")

	// ErrConfirmationTimeout is returned if a transaction was not confirmed within the configured bounds. It is an
	// expected outcome of waiting, not an exceptional condition: the transaction may still confirm later.
	ErrConfirmationTimeout = errors.New("confirmation timed out")
)
