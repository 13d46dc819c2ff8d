// Package confirmation contains the states a submitted transaction moves through while the network decides about its
// inclusion in the ledger.
package confirmation

// region State ////////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// Pending means the transaction is known to the network but no decision about its inclusion has been made yet.
	Pending State = iota

	// Confirmed means the transaction has been irreversibly included in the ledger.
	Confirmed

	// Conflicting means the transaction lost a conflict against another transaction that consumed the same outputs
	// and will never be included.
	Conflicting

	// NotFound means the queried node does not know the transaction.
	NotFound
)

// State represents the inclusion state of a transaction as reported by a node.
type State uint8

// String returns a human readable representation of the State.
func (s State) String() string {
	return [...]string{
		"Pending",
		"Confirmed",
		"Conflicting",
		"NotFound",
	}[s]
}

// IsFinal returns true if the State can not change anymore: a Confirmed transaction stays confirmed and a
// Conflicting transaction stays conflicting.
func (s State) IsFinal() bool {
	return s == Confirmed || s == Conflicting
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Inclusion ////////////////////////////////////////////////////////////////////////////////////////////////////

// Inclusion bundles the State of a transaction with the reference under which the deciding node tracks it.
type Inclusion struct {
	// State is the inclusion state of the transaction.
	State State

	// Reference identifies where the transaction was included (empty unless State is Confirmed).
	Reference string
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
