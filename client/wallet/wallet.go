package wallet

import (
	"bytes"
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/bitmask"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/client/wallet/packages/confirmation"
	"github.com/anistark/iota-sdk/client/wallet/packages/sendoptions"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// region Wallet ///////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// DefaultPollingInterval is the polling interval of the wallet when waiting for confirmation.
	DefaultPollingInterval = 500 * time.Millisecond
	// DefaultConfirmationTimeout is the timeout of waiting for confirmation.
	DefaultConfirmationTimeout = 150000 * time.Millisecond
)

// ErrTooManyOutputs is an error returned when the number of outputs/inputs exceeds the protocol wide constant.
var ErrTooManyOutputs = errors.New("number of outputs is more, than supported for a single transaction")

// Signer produces the addresses of a wallet and the signatures for its transactions without ever exposing the
// underlying key material. It is usually backed by an unlocked secretstore.Session.
type Signer interface {
	AddressSource

	// Sign produces one signature of the given essence bytes for every required address.
	Sign(essenceBytes []byte, requiredAddresses []address.Address) (signatures map[address.Address]*ledgerstate.ED25519Signature, err error)
}

// Wallet is a wallet that tracks the funds of the addresses derived from a signer and that can transfer them by
// building, signing and submitting transactions.
type Wallet struct {
	addressManager *AddressManager
	outputManager  *UnspentOutputManager
	connector      Connector
	signer         Signer
	params         *ledgerstate.Parameters

	// if this option is enabled the wallet will use a single reusable address instead of changing addresses.
	reusableAddress          bool
	ConfirmationPollInterval time.Duration
	ConfirmationTimeout      time.Duration

	importedLastAddressIndex uint64
	importedSpentAddresses   []bitmask.BitMask
	importErr                error

	mutex sync.Mutex
}

// New is the factory method of the wallet. It either creates a fresh wallet or restores the address state that was
// handed in through the Import option.
func New(options ...Option) (wallet *Wallet, err error) {
	// create wallet
	wallet = &Wallet{}

	// configure wallet
	for _, option := range options {
		option(wallet)
	}
	if wallet.importErr != nil {
		return nil, wallet.importErr
	}

	if wallet.ConfirmationPollInterval == 0 {
		wallet.ConfirmationPollInterval = DefaultPollingInterval
	}

	if wallet.ConfirmationTimeout == 0 {
		wallet.ConfirmationTimeout = DefaultConfirmationTimeout
	}

	if wallet.params == nil {
		wallet.params = ledgerstate.DefaultParameters()
	}

	if wallet.signer == nil {
		return nil, errors.New("you need to provide a signer for your wallet")
	}

	if wallet.connector == nil {
		return nil, errors.New("you need to provide a connector for your wallet")
	}

	// initialize address manager
	if wallet.addressManager, err = NewAddressManager(wallet.signer, wallet.importedLastAddressIndex, wallet.importedSpentAddresses); err != nil {
		return nil, err
	}

	// initialize output manager
	if wallet.outputManager, err = NewUnspentOutputManager(wallet.addressManager, wallet.connector); err != nil {
		return nil, err
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SendFunds ////////////////////////////////////////////////////////////////////////////////////////////////////

// SendFunds builds, signs and submits a transaction that transfers funds from the wallet. The returned
// SubmissionHandle tracks the submitted transaction until the network reaches a decision about it - hand it to
// WaitForConfirmation to settle the transfer.
func (wallet *Wallet) SendFunds(options ...sendoptions.SendFundsOption) (tx *ledgerstate.Transaction, handle *SubmissionHandle, err error) {
	sendOptions, err := sendoptions.Build(options...)
	if err != nil {
		return
	}

	// how much funds will we need to fund this transfer?
	requiredBaseTokens, requiredNativeTokens, err := sendOptions.RequiredFunds()
	if err != nil {
		return
	}

	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	// collect that many outputs for funding
	consumedOutputs, err := wallet.collectOutputsForFunding(requiredBaseTokens, requiredNativeTokens, sendOptions.UsePendingOutputs)
	if err != nil {
		if errors.Is(err, ErrTooManyOutputs) {
			err = errors.Errorf("consolidate funds and try again: %w", err)
		}
		return
	}

	// build inputs from consumed outputs
	inputs := wallet.buildInputs(consumedOutputs)
	outputsByID := consumedOutputs.OutputsByID()

	// aggregate all the funds we consume from inputs
	totalConsumedFunds, err := consumedOutputs.TotalFundsInOutputs()
	if err != nil {
		return
	}

	remainderAddress, err := wallet.chooseRemainderAddress(consumedOutputs, sendOptions.RemainderAddress)
	if err != nil {
		return
	}

	senderAddress := outputsByID[inputs[0].(*ledgerstate.UTXOInput).ReferencedOutputID()].Address
	outputs, err := wallet.buildOutputs(sendOptions, totalConsumedFunds, remainderAddress, senderAddress)
	if err != nil {
		return
	}
	if len(outputs) > ledgerstate.MaxOutputCount {
		return nil, nil, errors.Errorf("transaction would create %d outputs: %w", len(outputs), ErrTooManyOutputs)
	}

	txEssence := ledgerstate.NewTransactionEssence(wallet.params.NetworkID, inputs, outputs)

	unlockBlocks, inputsInOrder, err := wallet.buildUnlockBlocks(inputs, outputsByID, txEssence)
	if err != nil {
		return
	}

	if tx, err = ledgerstate.NewTransaction(txEssence, unlockBlocks); err != nil {
		return
	}

	// check syntactical validity by marshaling and unmarshalling
	if tx, _, err = ledgerstate.TransactionFromBytes(tx.Bytes()); err != nil {
		return nil, nil, err
	}

	// check tx validity (balances, unlock blocks)
	if !ledgerstate.TransactionBalancesValid(inputsInOrder, tx.Essence().Outputs()) {
		return nil, nil, errors.Errorf("sum of consumed and created funds is not balanced: %w", ledgerstate.ErrTransactionInvalid)
	}
	if !ledgerstate.UnlockBlocksValid(inputsInOrder, tx) {
		return nil, nil, errors.Errorf("failed to unlock consumed outputs: %w", ledgerstate.ErrTransactionInvalid)
	}

	// reserve the consumed outputs until the network decides about the transaction
	wallet.markOutputsPendingSpent(consumedOutputs)

	if handle, err = wallet.connector.SubmitTransaction(tx); err != nil {
		wallet.revertOutputsPendingSpent(consumedOutputs)
		return nil, nil, err
	}

	return tx, handle, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WaitForConfirmation //////////////////////////////////////////////////////////////////////////////////////////

// WaitOption adjusts how WaitForConfirmation polls for the decision about a submitted transaction.
type WaitOption func(*waitParameters)

type waitParameters struct {
	pollInterval    time.Duration
	maxPollInterval time.Duration
	backoffFactor   float64
	timeout         time.Duration
	maxAttempts     int
}

// PollInterval overrides the wallet wide confirmation poll interval for a single WaitForConfirmation call.
func PollInterval(interval time.Duration) WaitOption {
	return func(params *waitParameters) {
		params.pollInterval = interval
	}
}

// WaitTimeout overrides the wallet wide confirmation timeout for a single WaitForConfirmation call.
func WaitTimeout(timeout time.Duration) WaitOption {
	return func(params *waitParameters) {
		params.timeout = timeout
	}
}

// MaxAttempts limits the amount of inclusion state queries a WaitForConfirmation call issues before it gives up.
func MaxAttempts(attempts int) WaitOption {
	return func(params *waitParameters) {
		params.maxAttempts = attempts
	}
}

// ExponentialBackoff grows the poll interval by the given factor after every attempt, up to the given maximum
// interval.
func ExponentialBackoff(factor float64, maxInterval time.Duration) WaitOption {
	return func(params *waitParameters) {
		params.backoffFactor = factor
		params.maxPollInterval = maxInterval
	}
}

// WaitForConfirmation polls the inclusion state of the transaction behind the given SubmissionHandle until the
// network reaches a decision about it or the call runs out of time. A confirmed transaction removes the consumed
// outputs from the wallet permanently, a conflicting one puts them back into the spendable set. On a timeout or a
// canceled context the local pending-spent marks stay untouched, so the call can simply be repeated. The returned
// Inclusion carries the ledger reference that finalized the transaction when it was confirmed.
func (wallet *Wallet) WaitForConfirmation(ctx context.Context, handle *SubmissionHandle, options ...WaitOption) (inclusion confirmation.Inclusion, err error) {
	waitParams := waitParameters{
		pollInterval: wallet.ConfirmationPollInterval,
		timeout:      wallet.ConfirmationTimeout,
	}
	for _, option := range options {
		option(&waitParams)
	}

	deadline := time.NewTimer(waitParams.timeout)
	defer deadline.Stop()

	interval := waitParams.pollInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return inclusion, ctx.Err()
		case <-deadline.C:
			return inclusion, errors.Errorf("transaction %s was not decided within %s: %w", handle.TransactionID.Base58(), waitParams.timeout, ErrConfirmationTimeout)
		case <-ticker.C:
		}

		attempts++
		fetchedInclusion, fetchErr := wallet.connector.TransactionState(handle.TransactionID)
		switch {
		case errors.Is(fetchErr, ErrNetworkUnavailable):
			// transient, keep polling
		case fetchErr != nil:
			return inclusion, fetchErr
		case fetchedInclusion.State == confirmation.Confirmed:
			wallet.settleConfirmed(handle)
			return fetchedInclusion, nil
		case fetchedInclusion.State == confirmation.Conflicting:
			wallet.settleConflicting(handle)
			return fetchedInclusion, errors.Errorf("transaction %s was rejected in favor of a conflicting transaction: %w", handle.TransactionID.Base58(), ErrConflictingTransaction)
		}

		// Pending and NotFound keep polling: a transaction that was just submitted may not have propagated to the
		// queried node yet.

		if waitParams.maxAttempts > 0 && attempts >= waitParams.maxAttempts {
			return inclusion, errors.Errorf("transaction %s was not decided within %d attempts: %w", handle.TransactionID.Base58(), attempts, ErrConfirmationTimeout)
		}

		if waitParams.backoffFactor > 1 {
			interval = time.Duration(float64(interval) * waitParams.backoffFactor)
			if waitParams.maxPollInterval > 0 && interval > waitParams.maxPollInterval {
				interval = waitParams.maxPollInterval
			}
			ticker.Reset(interval)
		}
	}
}

// settleConfirmed finalizes the pending-spent marks of a confirmed transaction.
func (wallet *Wallet) settleConfirmed(handle *SubmissionHandle) {
	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	for _, outputID := range handle.ConsumedOutputIDs {
		wallet.outputManager.CommitPendingSpent(outputID)
	}
}

// settleConflicting reverts the pending-spent marks of a transaction that lost a conflict.
func (wallet *Wallet) settleConflicting(handle *SubmissionHandle) {
	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	for _, outputID := range handle.ConsumedOutputIDs {
		wallet.outputManager.RevertPendingSpent(outputID)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Balance //////////////////////////////////////////////////////////////////////////////////////////////////////

// Balance returns the confirmed and pending balance of the funds managed by this wallet. Outputs that are reserved
// by transactions still awaiting confirmation are not counted.
func (wallet *Wallet) Balance(refresh ...bool) (confirmedBalance, pendingBalance *ledgerstate.Balances, err error) {
	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	shouldRefresh := true
	if len(refresh) > 0 {
		shouldRefresh = refresh[0]
	}
	if shouldRefresh {
		if err = wallet.outputManager.Refresh(); err != nil {
			return
		}
	}

	confirmedBalance = ledgerstate.NewBalances()
	pendingBalance = ledgerstate.NewBalances()

	unspentOutputs, err := wallet.outputManager.UnspentOutputs()
	if err != nil {
		return
	}

	// iterate through the unspent outputs
	now := time.Now()
	for addr, outputsOnAddress := range unspentOutputs {
		for _, output := range outputsOnAddress {
			// skip outputs that already fell back to their sender
			if !output.Object.UnlockAddressNow(now).Equals(addr.Address()) {
				continue
			}

			// determine target balances
			targetBalance := pendingBalance
			if output.InclusionState.Confirmed {
				targetBalance = confirmedBalance
			}

			if err = targetBalance.AddOutput(output.Object); err != nil {
				return nil, nil, err
			}
		}
	}

	return confirmedBalance, pendingBalance, nil
}

// AvailableBalance returns the funds that can be spent right now: confirmed, not reserved by a pending transfer and
// not locked by a time based condition.
func (wallet *Wallet) AvailableBalance(refresh ...bool) (availableBalance *ledgerstate.Balances, err error) {
	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	shouldRefresh := true
	if len(refresh) > 0 {
		shouldRefresh = refresh[0]
	}
	if shouldRefresh {
		if err = wallet.outputManager.Refresh(); err != nil {
			return
		}
	}

	availableBalance = ledgerstate.NewBalances()

	unspentOutputs, err := wallet.outputManager.UnspentOutputs()
	if err != nil {
		return
	}

	now := time.Now()
	for addr, outputsOnAddress := range unspentOutputs {
		for _, output := range outputsOnAddress {
			if !output.InclusionState.Confirmed {
				continue
			}
			if output.Object.Conditions().TimeLockedNow(now) {
				continue
			}
			if !output.Object.UnlockAddressNow(now).Equals(addr.Address()) {
				continue
			}

			if err = availableBalance.AddOutput(output.Object); err != nil {
				return nil, err
			}
		}
	}

	return availableBalance, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Refresh //////////////////////////////////////////////////////////////////////////////////////////////////////

// Refresh scans the addresses for incoming transactions. If the optional rescanSpentAddresses parameter is set to true
// we also scan the spent addresses again (this can take longer).
func (wallet *Wallet) Refresh(rescanSpentAddresses ...bool) (err error) {
	wallet.mutex.Lock()
	defer wallet.mutex.Unlock()

	return wallet.outputManager.Refresh(rescanSpentAddresses...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Addresses ////////////////////////////////////////////////////////////////////////////////////////////////////

// ReceiveAddress returns the address that is used for the external drop off of funds.
func (wallet *Wallet) ReceiveAddress() (address.Address, error) {
	return wallet.addressManager.LastUnspentAddress()
}

// NewReceiveAddress generates and returns a new unused receive address.
func (wallet *Wallet) NewReceiveAddress() (address.Address, error) {
	return wallet.addressManager.NewAddress()
}

// RemainderAddress returns the address that is used for the remainder of funds.
func (wallet *Wallet) RemainderAddress() (address.Address, error) {
	return wallet.addressManager.FirstUnspentAddress()
}

// AddressManager returns the manager for the addresses of this wallet.
func (wallet *Wallet) AddressManager() *AddressManager {
	return wallet.addressManager
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ExportState //////////////////////////////////////////////////////////////////////////////////////////////////

// ExportState exports the address state of the wallet to a marshaled version that can be restored through the Import
// option. The key material is not part of the export, it stays with the signer.
func (wallet *Wallet) ExportState() []byte {
	spentAddresses := wallet.addressManager.SpentAddressBitmask()

	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint64(wallet.addressManager.LastAddressIndex())
	marshalUtil.WriteUint32(uint32(len(spentAddresses)))
	for _, spentAddressesByte := range spentAddresses {
		marshalUtil.WriteByte(byte(spentAddressesByte))
	}

	return marshalUtil.Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Internal Methods /////////////////////////////////////////////////////////////////////////////////////////////

// collectOutputsForFunding gathers spendable outputs until they cover the required funds. Selection is first-fit
// over the spendable outputs sorted by descending amount, which keeps the input count small and makes repeated
// calls over an unchanged ledger pick the same outputs. The selection works on the local snapshot only, it does not
// contact the node.
func (wallet *Wallet) collectOutputsForFunding(requiredBaseTokens uint64, requiredNativeTokens map[ledgerstate.TokenID]*big.Int, includePending bool) (OutputsByAddressAndOutputID, error) {
	addresses, err := wallet.addressManager.Addresses()
	if err != nil {
		return nil, err
	}
	unspentOutputs, err := wallet.outputManager.UnspentOutputs(addresses...)
	if err != nil {
		return nil, err
	}

	// gather the outputs we could spend right now
	candidates := make([]*Output, 0)
	now := time.Now()
	for _, addy := range addresses {
		for _, output := range unspentOutputs[addy] {
			if !includePending && !output.InclusionState.Confirmed {
				continue
			}
			// skip the output if we wouldn't be able to unlock it
			if output.Object.Conditions().TimeLockedNow(now) || !output.Object.UnlockAddressNow(now).Equals(addy.Address()) {
				continue
			}

			candidates = append(candidates, output)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Object.Amount() != candidates[j].Object.Amount() {
			return candidates[i].Object.Amount() > candidates[j].Object.Amount()
		}
		return bytes.Compare(candidates[i].Object.ID().Bytes(), candidates[j].Object.ID().Bytes()) < 0
	})

	collectedBaseTokens := uint64(0)
	collectedNativeTokens := make(map[ledgerstate.TokenID]*big.Int)
	outputsToConsume := NewAddressToOutputs()
	numOfCollectedOutputs := 0
	for _, output := range candidates {
		contributingOutput := collectedBaseTokens < requiredBaseTokens
		output.Object.NativeTokens().ForEach(func(tokenID ledgerstate.TokenID, quantity *big.Int) bool {
			requiredQuantity, tokenRequired := requiredNativeTokens[tokenID]
			if !tokenRequired {
				return true
			}
			collectedQuantity, exists := collectedNativeTokens[tokenID]
			if !exists {
				collectedQuantity = new(big.Int)
				collectedNativeTokens[tokenID] = collectedQuantity
			}
			if collectedQuantity.Cmp(requiredQuantity) < 0 {
				collectedQuantity.Add(collectedQuantity, quantity)
				contributingOutput = true
			}
			return true
		})

		if contributingOutput {
			// store the output in the outputs to use for the transfer
			if _, addressEntryExists := outputsToConsume[output.Address]; !addressEntryExists {
				outputsToConsume[output.Address] = make(OutputsByID)
			}
			outputsToConsume[output.Address][output.Object.ID()] = output
			collectedBaseTokens += output.Object.Amount()
			numOfCollectedOutputs++

			if enoughCollected(collectedBaseTokens, collectedNativeTokens, requiredBaseTokens, requiredNativeTokens) && numOfCollectedOutputs <= ledgerstate.MaxInputCount {
				return outputsToConsume, nil
			}
		}
	}

	if enoughCollected(collectedBaseTokens, collectedNativeTokens, requiredBaseTokens, requiredNativeTokens) && numOfCollectedOutputs > ledgerstate.MaxInputCount {
		return outputsToConsume, errors.Errorf("failed to collect outputs: %w", ErrTooManyOutputs)
	}

	if collectedBaseTokens < requiredBaseTokens {
		return nil, errors.Errorf("failed to collect %d base tokens, only %d spendable: %w", requiredBaseTokens, collectedBaseTokens, ErrInsufficientFunds)
	}
	for tokenID, requiredQuantity := range requiredNativeTokens {
		collectedQuantity, exists := collectedNativeTokens[tokenID]
		if !exists || collectedQuantity.Cmp(requiredQuantity) < 0 {
			return nil, errors.Errorf("failed to collect %s of native token %s: %w", requiredQuantity, tokenID, ErrInsufficientFunds)
		}
	}

	return nil, errors.Errorf("failed to collect funding outputs: %w", ErrInsufficientFunds)
}

// enoughCollected checks if the collected funds cover the required funds.
func enoughCollected(collectedBaseTokens uint64, collectedNativeTokens map[ledgerstate.TokenID]*big.Int, requiredBaseTokens uint64, requiredNativeTokens map[ledgerstate.TokenID]*big.Int) bool {
	if collectedBaseTokens < requiredBaseTokens {
		return false
	}
	for tokenID, requiredQuantity := range requiredNativeTokens {
		collectedQuantity, exists := collectedNativeTokens[tokenID]
		if !exists || collectedQuantity.Cmp(requiredQuantity) < 0 {
			return false
		}
	}
	return true
}

// buildInputs builds a list of deterministically sorted inputs from the provided OutputsByAddressAndOutputID mapping.
func (wallet *Wallet) buildInputs(addressToIDToOutput OutputsByAddressAndOutputID) ledgerstate.Inputs {
	unsortedInputs := make([]ledgerstate.Input, 0)
	for _, outputIDToOutputMap := range addressToIDToOutput {
		for outputID := range outputIDToOutputMap {
			unsortedInputs = append(unsortedInputs, ledgerstate.NewUTXOInput(outputID))
		}
	}
	return ledgerstate.NewInputs(unsortedInputs...)
}

// buildOutputs builds the outputs of the transfer: one output per destination in the order the destinations were
// supplied, followed by an optional output that carries the change to the remainder address. Change that does not
// cover its own storage deposit is folded into the first destination output instead.
func (wallet *Wallet) buildOutputs(
	sendOptions *sendoptions.SendFundsOptions,
	totalConsumedFunds *ledgerstate.Balances,
	remainderAddress ledgerstate.Address,
	senderAddress address.Address,
) (outputs ledgerstate.Outputs, err error) {
	// features shared by all destination outputs
	var destinationFeatures []ledgerstate.Feature
	if sendOptions.MetadataFeature != nil {
		destinationFeatures = append(destinationFeatures, sendOptions.MetadataFeature)
	}
	if sendOptions.TagFeature != nil {
		destinationFeatures = append(destinationFeatures, sendOptions.TagFeature)
	}
	if sendOptions.AttachSender {
		destinationFeatures = append(destinationFeatures, ledgerstate.NewSenderFeature(senderAddress.Address()))
	}

	// determine the change that is left over after all destinations are funded
	remainingBaseTokens := totalConsumedFunds.BaseTokens()
	remainingNativeTokens := totalConsumedFunds.NativeTokens().Map()
	for _, destination := range sendOptions.Destinations {
		remainingBaseTokens -= destination.Amount
		destination.NativeTokens.ForEach(func(tokenID ledgerstate.TokenID, quantity *big.Int) bool {
			remainingQuantity := remainingNativeTokens[tokenID]
			remainingQuantity.Sub(remainingQuantity, quantity)
			if remainingQuantity.Sign() == 0 {
				delete(remainingNativeTokens, tokenID)
			}
			return true
		})
	}

	// build outputs for destinations
	destinationAmounts := make([]uint64, len(sendOptions.Destinations))
	for i, destination := range sendOptions.Destinations {
		destinationAmounts[i] = destination.Amount
	}

	// build output for the change
	var remainderOutput ledgerstate.Output
	if remainingBaseTokens != 0 || len(remainingNativeTokens) != 0 {
		remainderOutput, err = wallet.buildRemainderOutput(remainingBaseTokens, remainingNativeTokens, remainderAddress)
		if err != nil {
			if len(remainingNativeTokens) != 0 || !errors.Is(err, ledgerstate.ErrInvalidOutput) {
				return nil, err
			}

			// the base token change cannot back its own output, hand it to the first destination instead
			remainderOutput = nil
			destinationAmounts[0] += remainingBaseTokens
		}
	}

	outputsSlice := make([]ledgerstate.Output, 0, len(sendOptions.Destinations)+1)
	for i, destination := range sendOptions.Destinations {
		conditions, conditionsErr := ledgerstate.NewUnlockConditions(ledgerstate.NewAddressUnlockCondition(destination.Address))
		if conditionsErr != nil {
			return nil, conditionsErr
		}
		features, featuresErr := ledgerstate.NewFeatures(destinationFeatures...)
		if featuresErr != nil {
			return nil, featuresErr
		}

		destinationOutput, outputErr := ledgerstate.NewBasicOutput(destinationAmounts[i], destination.NativeTokens, conditions, features)
		if outputErr != nil {
			return nil, outputErr
		}
		outputsSlice = append(outputsSlice, destinationOutput)
	}
	if remainderOutput != nil {
		outputsSlice = append(outputsSlice, remainderOutput)
	}

	return ledgerstate.NewOutputs(outputsSlice...)
}

// buildRemainderOutput builds the output that carries the change of a transfer back into the wallet.
func (wallet *Wallet) buildRemainderOutput(baseTokens uint64, nativeTokens map[ledgerstate.TokenID]*big.Int, remainderAddress ledgerstate.Address) (output ledgerstate.Output, err error) {
	tokenBalances, err := ledgerstate.NewTokenBalances(nativeTokens)
	if err != nil {
		return nil, err
	}
	conditions, err := ledgerstate.NewUnlockConditions(ledgerstate.NewAddressUnlockCondition(remainderAddress))
	if err != nil {
		return nil, err
	}

	return ledgerstate.NewBasicOutput(baseTokens, tokenBalances, conditions, ledgerstate.Features{})
}

// buildUnlockBlocks requests the signatures for the given essence from the signer and arranges them into the unlock
// blocks of the transaction. Every distinct unlock address is signed exactly once, repeated addresses reference the
// existing signature.
func (wallet *Wallet) buildUnlockBlocks(inputs ledgerstate.Inputs, consumedOutputsByID OutputsByID, essence *ledgerstate.TransactionEssence) (unlockBlocks ledgerstate.UnlockBlocks, inputsInOrder ledgerstate.Outputs, err error) {
	// determine the distinct addresses that have to sign, in input order
	requiredAddresses := make([]address.Address, 0)
	seenAddresses := make(map[address.Address]struct{})
	for _, input := range inputs {
		output := consumedOutputsByID[input.(*ledgerstate.UTXOInput).ReferencedOutputID()]
		inputsInOrder = append(inputsInOrder, output.Object)

		if _, addressSeen := seenAddresses[output.Address]; !addressSeen {
			seenAddresses[output.Address] = struct{}{}
			requiredAddresses = append(requiredAddresses, output.Address)
		}
	}

	signatures, err := wallet.signer.Sign(essence.Bytes(), requiredAddresses)
	if err != nil {
		return nil, nil, err
	}

	unlockBlocks = make(ledgerstate.UnlockBlocks, len(inputs))
	existingUnlockBlocks := make(map[address.Address]uint16)
	for outputIndex, input := range inputs {
		output := consumedOutputsByID[input.(*ledgerstate.UTXOInput).ReferencedOutputID()]
		if unlockBlockIndex, unlockBlockExists := existingUnlockBlocks[output.Address]; unlockBlockExists {
			unlockBlocks[outputIndex] = ledgerstate.NewReferenceUnlockBlock(unlockBlockIndex)
			continue
		}

		signature, signatureExists := signatures[output.Address]
		if !signatureExists {
			return nil, nil, errors.Errorf("no signature for address %s: %w", output.Address.Base58(), ledgerstate.ErrIncompleteSignatures)
		}
		unlockBlocks[outputIndex] = ledgerstate.NewSignatureUnlockBlock(signature)
		existingUnlockBlocks[output.Address] = uint16(outputIndex)
	}

	return unlockBlocks, inputsInOrder, nil
}

// markOutputsPendingSpent reserves the consumed outputs until the network decides about the transaction.
func (wallet *Wallet) markOutputsPendingSpent(consumedOutputs OutputsByAddressAndOutputID) {
	for addr, outputs := range consumedOutputs {
		for outputID := range outputs {
			wallet.outputManager.MarkOutputPendingSpent(addr, outputID)
		}
	}
}

// revertOutputsPendingSpent puts the consumed outputs back into the spendable set after a failed submission.
func (wallet *Wallet) revertOutputsPendingSpent(consumedOutputs OutputsByAddressAndOutputID) {
	for _, outputs := range consumedOutputs {
		for outputID := range outputs {
			wallet.outputManager.RevertPendingSpent(outputID)
		}
	}
}

// chooseRemainderAddress chooses an appropriate remainder address based on the wallet configuration and where we are
// spending from.
func (wallet *Wallet) chooseRemainderAddress(consumedOutputs OutputsByAddressAndOutputID, optionsRemainder ledgerstate.Address) (remainder ledgerstate.Address, err error) {
	if optionsRemainder != nil {
		return optionsRemainder, nil
	}

	remainderAddress, err := wallet.RemainderAddress()
	if err != nil {
		return nil, err
	}
	if wallet.reusableAddress {
		return remainderAddress.Address(), nil
	}

	receiveAddress, err := wallet.ReceiveAddress()
	if err != nil {
		return nil, err
	}

	_, spendFromRemainderAddress := consumedOutputs[remainderAddress]
	_, spendFromReceiveAddress := consumedOutputs[receiveAddress]
	if spendFromRemainderAddress && spendFromReceiveAddress {
		// we are about to spend from both
		newReceiveAddress, newAddressErr := wallet.NewReceiveAddress()
		if newAddressErr != nil {
			return nil, newAddressErr
		}
		return newReceiveAddress.Address(), nil
	}
	if spendFromRemainderAddress && !spendFromReceiveAddress {
		// we are about to spend from remainder, but not from receive
		return receiveAddress.Address(), nil
	}

	// we are not spending from remainder
	return remainderAddress.Address(), nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
