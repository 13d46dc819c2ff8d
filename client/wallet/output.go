package wallet

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// Output is a wallet specific representation of an output: the ledger Output paired with the wallet address that owns
// it and the wallet's local knowledge about its spent state.
type Output struct {
	Address        address.Address
	Object         ledgerstate.Output
	InclusionState InclusionState
}

// region InclusionState ///////////////////////////////////////////////////////////////////////////////////////////////

// InclusionState is a container for the different flags of an output that define if it is still spendable.
type InclusionState struct {
	// Confirmed is set once the transaction that created the output was confirmed.
	Confirmed bool

	// Spent is set once the wallet learned that the output was irreversibly consumed.
	Spent bool

	// PendingSpent is set while the output is consumed by a transaction of this wallet whose confirmation is still
	// outstanding. A pending-spent output is not selectable, but the mark can be reverted if the transaction fails.
	PendingSpent bool
}

// String returns a human-readable representation of the InclusionState.
func (i InclusionState) String() string {
	return stringify.Struct("InclusionState",
		stringify.StructField("Confirmed", i.Confirmed),
		stringify.StructField("Spent", i.Spent),
		stringify.StructField("PendingSpent", i.PendingSpent),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputsByID //////////////////////////////////////////////////////////////////////////////////////////////////

// OutputsByID is a collection of Outputs associated with their OutputID.
type OutputsByID map[ledgerstate.OutputID]*Output

// OutputsByAddressAndOutputID returns a collection of Outputs associated with their Address and OutputID.
func (o OutputsByID) OutputsByAddressAndOutputID() (outputsByAddressAndOutputID OutputsByAddressAndOutputID) {
	outputsByAddressAndOutputID = make(OutputsByAddressAndOutputID)
	for outputID, output := range o {
		outputsByAddress, exists := outputsByAddressAndOutputID[output.Address]
		if !exists {
			outputsByAddress = make(OutputsByID)
			outputsByAddressAndOutputID[output.Address] = outputsByAddress
		}

		outputsByAddress[outputID] = output
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputsByAddressAndOutputID //////////////////////////////////////////////////////////////////////////////////

// OutputsByAddressAndOutputID is a collection of Outputs associated with the Address that owns them and their
// OutputID.
type OutputsByAddressAndOutputID map[address.Address]map[ledgerstate.OutputID]*Output

// NewAddressToOutputs creates an empty OutputsByAddressAndOutputID collection.
func NewAddressToOutputs() OutputsByAddressAndOutputID {
	return make(OutputsByAddressAndOutputID)
}

// OutputsByID returns a collection of Outputs associated with their OutputID.
func (o OutputsByAddressAndOutputID) OutputsByID() (outputsByID OutputsByID) {
	outputsByID = make(OutputsByID)
	for _, outputs := range o {
		for outputID, output := range outputs {
			outputsByID[outputID] = output
		}
	}

	return
}

// ToLedgerStateOutputs flattens the collection into a plain list of ledger Outputs.
func (o OutputsByAddressAndOutputID) ToLedgerStateOutputs() ledgerstate.Outputs {
	outputs := ledgerstate.Outputs{}
	for _, outputIDMapping := range o {
		for _, output := range outputIDMapping {
			outputs = append(outputs, output.Object)
		}
	}

	return outputs
}

// TotalFundsInOutputs aggregates the funds held by all Outputs of the collection.
func (o OutputsByAddressAndOutputID) TotalFundsInOutputs() (*ledgerstate.Balances, error) {
	return ledgerstate.SumBalances(o.ToLedgerStateOutputs())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
