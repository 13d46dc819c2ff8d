package ledgerstate

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidOutput is returned if an output violates one of its construction-time constraints. It is never
	// retried, because the same input always produces the same violation.
	ErrInvalidOutput = errors.New("invalid output")

	// ErrOverflow is returned if a balance summation exceeds the value range of its asset. It indicates a violated
	// data model invariant and aborts the running operation.
	ErrOverflow = errors.New("balance overflow")

	// ErrIncompleteSignatures is returned if a transaction is about to be finalized without a signature for one of
	// its unlocking addresses. A transaction carrying this error must never be submitted.
	ErrIncompleteSignatures = errors.New("incomplete signatures")

	// ErrTransactionInvalid is returned if a transaction or any of its building blocks is considered to be invalid.
	ErrTransactionInvalid = errors.New("transaction invalid")
)
