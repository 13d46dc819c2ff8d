package ledgerstate

import (
	"math/big"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region TransactionID ////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionIDLength contains the amount of bytes that a marshaled version of the TransactionID contains.
const TransactionIDLength = 32

// TransactionID is the unique identifier of a Transaction: the blake2b hash of its serialized form.
type TransactionID [TransactionIDLength]byte

// GenesisTransactionID represents the identifier of the genesis Transaction.
var GenesisTransactionID TransactionID

// TransactionIDFromBytes unmarshals a TransactionID from a sequence of bytes.
func TransactionIDFromBytes(data []byte) (transactionID TransactionID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if transactionID, err = TransactionIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionIDFromBase58 creates a TransactionID from a base58 encoded string.
func TransactionIDFromBase58(base58String string) (transactionID TransactionID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded TransactionID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if transactionID, _, err = TransactionIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse TransactionID from bytes: %w", err)
		return
	}

	return
}

// TransactionIDFromMarshalUtil unmarshals a TransactionID using a MarshalUtil (for easier unmarshaling).
func TransactionIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transactionID TransactionID, err error) {
	transactionIDBytes, err := marshalUtil.ReadBytes(TransactionIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse TransactionID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(transactionID[:], transactionIDBytes)

	return
}

// Bytes marshals the TransactionID into a sequence of bytes.
func (t TransactionID) Bytes() []byte {
	return t[:]
}

// Base58 returns a base58 encoded version of the TransactionID.
func (t TransactionID) Base58() string {
	return base58.Encode(t[:])
}

// String creates a human readable version of the TransactionID.
func (t TransactionID) String() string {
	return "TransactionID(" + t.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionEssence ///////////////////////////////////////////////////////////////////////////////////////////

// TransactionEssenceVersion represents the version of the TransactionEssence layout.
type TransactionEssenceVersion uint8

// TransactionEssence contains the transfer described by a Transaction: which Outputs are consumed and which Outputs
// are created, bound to a specific network. The essence is the payload that gets signed, so its serialization has to
// be deterministic: the Inputs are kept in their canonical sorted order and the Outputs keep the order they were
// supplied in, which fixes the Output indexes.
type TransactionEssence struct {
	version   TransactionEssenceVersion
	networkID uint64
	inputs    Inputs
	outputs   Outputs
}

// NewTransactionEssence creates a TransactionEssence for the given network consuming the given Inputs and creating
// the given Outputs.
func NewTransactionEssence(networkID uint64, inputs Inputs, outputs Outputs) *TransactionEssence {
	return &TransactionEssence{
		networkID: networkID,
		inputs:    inputs,
		outputs:   outputs,
	}
}

// TransactionEssenceFromMarshalUtil unmarshals a TransactionEssence using a MarshalUtil (for easier unmarshaling).
func TransactionEssenceFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (essence *TransactionEssence, err error) {
	essence = &TransactionEssence{}
	version, err := marshalUtil.ReadUint8()
	if err != nil {
		err = errors.Errorf("failed to parse TransactionEssenceVersion (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	essence.version = TransactionEssenceVersion(version)
	if essence.networkID, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse network ID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.inputs, err = InputsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Inputs: %w", err)
		return
	}
	if essence.outputs, err = OutputsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Outputs: %w", err)
		return
	}

	return
}

// Version returns the version of the TransactionEssence layout.
func (t *TransactionEssence) Version() TransactionEssenceVersion {
	return t.version
}

// NetworkID returns the identifier of the network the transfer is bound to.
func (t *TransactionEssence) NetworkID() uint64 {
	return t.networkID
}

// Inputs returns the Inputs consumed by the transfer.
func (t *TransactionEssence) Inputs() Inputs {
	return t.inputs
}

// Outputs returns the Outputs created by the transfer.
func (t *TransactionEssence) Outputs() Outputs {
	return t.outputs
}

// Bytes returns a marshaled version of the TransactionEssence. These are the bytes that get signed.
func (t *TransactionEssence) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint8(uint8(t.version))
	marshalUtil.WriteUint64(t.networkID)
	marshalUtil.WriteBytes(t.inputs.Bytes())
	marshalUtil.WriteBytes(t.outputs.Bytes())

	return marshalUtil.Bytes()
}

// String returns a human readable version of the TransactionEssence.
func (t *TransactionEssence) String() string {
	return stringify.Struct("TransactionEssence",
		stringify.StructField("version", uint8(t.version)),
		stringify.StructField("networkID", t.networkID),
		stringify.StructField("inputs", t.inputs),
		stringify.StructField("outputs", t.outputs),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// Transaction represents a signed transfer of funds: a TransactionEssence plus one UnlockBlock per consumed Input.
type Transaction struct {
	id           *TransactionID
	idMutex      sync.RWMutex
	essence      *TransactionEssence
	unlockBlocks UnlockBlocks
}

// NewTransaction creates a new Transaction from the given details. The amount of UnlockBlocks has to match the
// amount of Inputs of the essence.
func NewTransaction(essence *TransactionEssence, unlockBlocks UnlockBlocks) (transaction *Transaction, err error) {
	if len(unlockBlocks) != len(essence.Inputs()) {
		err = errors.Errorf("amount of unlock blocks (%d) does not match amount of inputs (%d): %w", len(unlockBlocks), len(essence.Inputs()), ErrTransactionInvalid)
		return
	}

	transaction = &Transaction{
		essence:      essence,
		unlockBlocks: unlockBlocks,
	}

	for outputIndex, output := range essence.Outputs() {
		output.SetID(NewOutputID(transaction.ID(), uint16(outputIndex)))
	}

	return
}

// TransactionFromBytes unmarshals a Transaction from a sequence of bytes.
func TransactionFromBytes(data []byte) (transaction *Transaction, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if transaction, err = TransactionFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Transaction from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionFromMarshalUtil unmarshals a Transaction using a MarshalUtil (for easier unmarshaling).
func TransactionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transaction *Transaction, err error) {
	transaction = &Transaction{}
	if transaction.essence, err = TransactionEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionEssence: %w", err)
		return
	}
	if transaction.unlockBlocks, err = UnlockBlocksFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse UnlockBlocks: %w", err)
		return
	}
	if len(transaction.unlockBlocks) != len(transaction.essence.Inputs()) {
		err = errors.Errorf("amount of unlock blocks (%d) does not match amount of inputs (%d): %w", len(transaction.unlockBlocks), len(transaction.essence.Inputs()), cerrors.ErrParseBytesFailed)
		return
	}

	for outputIndex, output := range transaction.essence.Outputs() {
		output.SetID(NewOutputID(transaction.ID(), uint16(outputIndex)))
	}

	return
}

// ID returns the identifier of the Transaction.
func (t *Transaction) ID() TransactionID {
	t.idMutex.RLock()
	if t.id != nil {
		defer t.idMutex.RUnlock()

		return *t.id
	}
	t.idMutex.RUnlock()

	t.idMutex.Lock()
	defer t.idMutex.Unlock()
	if t.id == nil {
		id := TransactionID(blake2b.Sum256(t.Bytes()))
		t.id = &id
	}

	return *t.id
}

// Essence returns the TransactionEssence of the Transaction.
func (t *Transaction) Essence() *TransactionEssence {
	return t.essence
}

// UnlockBlocks returns the UnlockBlocks of the Transaction.
func (t *Transaction) UnlockBlocks() UnlockBlocks {
	return t.unlockBlocks
}

// Bytes returns a marshaled version of the Transaction.
func (t *Transaction) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteBytes(t.essence.Bytes())
	marshalUtil.WriteBytes(t.unlockBlocks.Bytes())

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Transaction.
func (t *Transaction) String() string {
	return stringify.Struct("Transaction",
		stringify.StructField("id", t.ID()),
		stringify.StructField("essence", t.essence),
		stringify.StructField("unlockBlocks", t.unlockBlocks),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region transaction validity /////////////////////////////////////////////////////////////////////////////////////////

// TransactionBalancesValid returns true if the sum of the funds held by the consumed Outputs equals the sum of the
// funds held by the created Outputs, for the base token and every native token.
func TransactionBalancesValid(consumedOutputs Outputs, createdOutputs Outputs) bool {
	consumedBalances, err := SumBalances(consumedOutputs)
	if err != nil {
		return false
	}
	createdBalances, err := SumBalances(createdOutputs)
	if err != nil {
		return false
	}

	if consumedBalances.BaseTokens() != createdBalances.BaseTokens() {
		return false
	}

	consumedTokens := consumedBalances.NativeTokens()
	createdTokens := createdBalances.NativeTokens()
	if consumedTokens.Size() != createdTokens.Size() {
		return false
	}

	balancesMatch := true
	consumedTokens.ForEach(func(tokenID TokenID, quantity *big.Int) bool {
		createdQuantity, exists := createdTokens.Get(tokenID)
		if !exists || createdQuantity.Cmp(quantity) != 0 {
			balancesMatch = false

			return false
		}

		return true
	})

	return balancesMatch
}

// UnlockBlocksValid returns true if every consumed Output is unlocked by a valid UnlockBlock of the Transaction.
func UnlockBlocksValid(consumedOutputs Outputs, transaction *Transaction) bool {
	essenceBytes := transaction.Essence().Bytes()
	now := time.Now()

	for i, consumedOutput := range consumedOutputs {
		unlockAddress := consumedOutput.UnlockAddressNow(now)
		if unlockAddress == nil {
			return false
		}

		signatureUnlockBlock, err := resolveSignatureUnlockBlock(transaction.UnlockBlocks(), i)
		if err != nil {
			return false
		}

		if !signatureUnlockBlock.Signature().AddressSignatureValid(unlockAddress, essenceBytes) {
			return false
		}
	}

	return true
}

// resolveSignatureUnlockBlock resolves the UnlockBlock at the given index to its SignatureUnlockBlock, following a
// ReferenceUnlockBlock if necessary.
func resolveSignatureUnlockBlock(unlockBlocks UnlockBlocks, index int) (signatureUnlockBlock *SignatureUnlockBlock, err error) {
	switch unlockBlock := unlockBlocks[index].(type) {
	case *SignatureUnlockBlock:
		return unlockBlock, nil
	case *ReferenceUnlockBlock:
		referencedIndex := int(unlockBlock.ReferencedIndex())
		if referencedIndex >= index {
			return nil, errors.Errorf("reference unlock block at index %d references a non-preceding index %d: %w", index, referencedIndex, ErrTransactionInvalid)
		}
		referencedBlock, isSignatureBlock := unlockBlocks[referencedIndex].(*SignatureUnlockBlock)
		if !isSignatureBlock {
			return nil, errors.Errorf("reference unlock block at index %d does not reference a signature unlock block: %w", index, ErrTransactionInvalid)
		}

		return referencedBlock, nil
	default:
		return nil, errors.Errorf("unsupported unlock block type at index %d: %w", index, ErrTransactionInvalid)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
