package ledgerstate

// region Parameters ///////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// MaxTokenSupply is the maximum amount of base tokens that can exist in the ledger.
	MaxTokenSupply = 2779530283277761

	// DefaultByteCost is the default cost in base tokens that every byte of a stored output has to be backed by.
	DefaultByteCost = 100

	// DefaultNetworkID identifies the network that transactions created without explicit Parameters are bound to.
	DefaultNetworkID = 1

	// MaxInputCount is the maximum amount of inputs a single transaction can consume.
	MaxInputCount = 128

	// MaxOutputCount is the maximum amount of outputs a single transaction can create.
	MaxOutputCount = 128
)

// StorageDepositFunc computes the minimum amount of base tokens an output of the given serialized size has to hold.
// The formula is protocol-defined and therefore pluggable rather than hard-coded.
type StorageDepositFunc func(outputSize int) uint64

// Parameters bundles the protocol constants that output construction and transaction assembly depend on.
type Parameters struct {
	// NetworkID is mixed into every transaction essence to bind it to a single network.
	NetworkID uint64

	// TokenSupply is the maximum amount of base tokens, used as the upper bound for output amounts.
	TokenSupply uint64

	// MinDeposit computes the minimum storage deposit for an output of a given serialized size.
	MinDeposit StorageDepositFunc
}

// DefaultParameters returns the Parameters of the default network.
func DefaultParameters() *Parameters {
	return &Parameters{
		NetworkID:   DefaultNetworkID,
		TokenSupply: MaxTokenSupply,
		MinDeposit:  ByteCostDeposit(DefaultByteCost),
	}
}

// ByteCostDeposit returns a StorageDepositFunc that charges the given amount of base tokens per serialized byte.
func ByteCostDeposit(byteCost uint64) StorageDepositFunc {
	return func(outputSize int) uint64 {
		return byteCost * uint64(outputSize)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
