package wallet

import (
	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// UnspentOutputManager is a manager for the unspent outputs of the addresses of a wallet. It allows us to keep track
// of the spent state of outputs using our local knowledge about outputs that have already been consumed, including
// the provisional pending-spent marks of transactions that are still awaiting confirmation.
type UnspentOutputManager struct {
	addressManager *AddressManager
	connector      Connector
	unspentOutputs OutputsByAddressAndOutputID
}

// NewUnspentOutputManager creates a new UnspentOutputManager and performs an initial refresh against the node.
func NewUnspentOutputManager(addressManager *AddressManager, connector Connector) (outputManager *UnspentOutputManager, err error) {
	outputManager = &UnspentOutputManager{
		addressManager: addressManager,
		connector:      connector,
		unspentOutputs: NewAddressToOutputs(),
	}

	if err = outputManager.Refresh(true); err != nil {
		return nil, err
	}

	return
}

// Refresh retrieves the unspent outputs from the node. If includeSpentAddresses is set to true, then it also scans
// the addresses from which we previously spent already.
func (u *UnspentOutputManager) Refresh(includeSpentAddresses ...bool) (err error) {
	var addressesToRefresh []address.Address
	if len(includeSpentAddresses) >= 1 && includeSpentAddresses[0] {
		if addressesToRefresh, err = u.addressManager.Addresses(); err != nil {
			return
		}
	} else {
		if addressesToRefresh, err = u.addressManager.UnspentAddresses(); err != nil {
			return
		}
	}

	unspentOutputs, err := u.connector.UnspentOutputs(addressesToRefresh...)
	if err != nil {
		return
	}

	for outputAddress, outputsOnAddress := range unspentOutputs {
		for outputID, output := range outputsOnAddress {
			if _, addressExists := u.unspentOutputs[outputAddress]; !addressExists {
				u.unspentOutputs[outputAddress] = make(OutputsByID)
			}

			// carry over local knowledge that the node does not have yet
			if existingOutput, outputExists := u.unspentOutputs[outputAddress][outputID]; outputExists {
				output.InclusionState.Spent = output.InclusionState.Spent || existingOutput.InclusionState.Spent
				output.InclusionState.PendingSpent = existingOutput.InclusionState.PendingSpent
			}

			u.unspentOutputs[outputAddress][outputID] = output
		}
	}

	return
}

// UnspentOutputs returns the outputs that are neither spent nor pending-spent.
func (u *UnspentOutputManager) UnspentOutputs(addresses ...address.Address) (unspentOutputs OutputsByAddressAndOutputID, err error) {
	// prepare result
	unspentOutputs = NewAddressToOutputs()

	// retrieve the list of addresses from the address manager if none was provided
	if len(addresses) == 0 {
		if addresses, err = u.addressManager.Addresses(); err != nil {
			return
		}
	}

	// iterate through addresses and scan for spendable outputs
	for _, addr := range addresses {
		// skip the address if we have no outputs for it stored
		unspentOutputsOnAddress, addressExistsInStoredOutputs := u.unspentOutputs[addr]
		if !addressExistsInStoredOutputs {
			continue
		}

		// iterate through outputs
		for outputID, output := range unspentOutputsOnAddress {
			// skip outputs that are not selectable anymore
			if output.InclusionState.Spent || output.InclusionState.PendingSpent {
				continue
			}

			// store spendable outputs in result
			if _, addressExists := unspentOutputs[addr]; !addressExists {
				unspentOutputs[addr] = make(OutputsByID)
			}
			unspentOutputs[addr][outputID] = output
		}
	}

	return
}

// MarkOutputPendingSpent marks the output identified by the given parameters as being consumed by a transaction
// whose confirmation is still outstanding. A pending-spent output is excluded from selection but the mark can be
// reverted.
func (u *UnspentOutputManager) MarkOutputPendingSpent(outputAddress address.Address, outputID ledgerstate.OutputID) {
	if output := u.output(outputAddress, outputID); output != nil {
		output.InclusionState.PendingSpent = true
	}
}

// CommitPendingSpent finalizes a pending-spent mark after the consuming transaction was confirmed. The output is
// removed from the spendable set permanently.
func (u *UnspentOutputManager) CommitPendingSpent(outputID ledgerstate.OutputID) {
	for _, outputsOnAddress := range u.unspentOutputs {
		if output, outputExists := outputsOnAddress[outputID]; outputExists {
			output.InclusionState.PendingSpent = false
			output.InclusionState.Spent = true

			u.addressManager.MarkAddressSpent(output.Address.Index)
		}
	}
}

// RevertPendingSpent removes a pending-spent mark after the consuming transaction failed, returning the output to
// the spendable set.
func (u *UnspentOutputManager) RevertPendingSpent(outputID ledgerstate.OutputID) {
	for _, outputsOnAddress := range u.unspentOutputs {
		if output, outputExists := outputsOnAddress[outputID]; outputExists {
			output.InclusionState.PendingSpent = false
		}
	}
}

// MarkOutputSpent marks the output identified by the given parameters as irreversibly spent.
func (u *UnspentOutputManager) MarkOutputSpent(outputAddress address.Address, outputID ledgerstate.OutputID) {
	if output := u.output(outputAddress, outputID); output != nil {
		output.InclusionState.Spent = true
	}
}

// output resolves the locally tracked output with the given address and id.
func (u *UnspentOutputManager) output(outputAddress address.Address, outputID ledgerstate.OutputID) *Output {
	outputsOnAddress, addressExists := u.unspentOutputs[outputAddress]
	if !addressExists {
		return nil
	}

	return outputsOnAddress[outputID]
}
