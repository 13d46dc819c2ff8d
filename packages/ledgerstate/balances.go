package ledgerstate

import (
	"math"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
)

// region Balances /////////////////////////////////////////////////////////////////////////////////////////////////////

// Balances represents the aggregated holdings of a set of Outputs: the summed base token amount plus the per-asset
// sums of all native token balances.
type Balances struct {
	baseTokens   uint64
	nativeTokens *TokenBalances
}

// NewBalances creates an empty Balances aggregate.
func NewBalances() *Balances {
	emptyTokens, _ := NewTokenBalances(nil)

	return &Balances{nativeTokens: emptyTokens}
}

// SumBalances aggregates the holdings of the given Outputs. Base token amounts are summed with an explicit uint64
// overflow check and native token quantities are summed per asset, bounded by the maximum representable token
// quantity. Aggregation is associative: summing a partition of the Outputs and merging the partial results via Add
// yields the same Balances as a single pass.
func SumBalances(outputs Outputs) (balances *Balances, err error) {
	balances = NewBalances()
	for _, output := range outputs {
		if err = balances.AddOutput(output); err != nil {
			return nil, err
		}
	}

	return
}

// AddOutput accumulates the holdings of a single Output into the Balances.
func (b *Balances) AddOutput(output Output) (err error) {
	if err = b.addBaseTokens(output.Amount()); err != nil {
		return err
	}

	return b.addNativeTokens(output.NativeTokens())
}

// Add merges another Balances into the receiver, with the same overflow semantics as SumBalances.
func (b *Balances) Add(other *Balances) (err error) {
	if err = b.addBaseTokens(other.baseTokens); err != nil {
		return err
	}

	return b.addNativeTokens(other.nativeTokens)
}

// BaseTokens returns the summed base token amount.
func (b *Balances) BaseTokens() uint64 {
	return b.baseTokens
}

// NativeTokens returns the per-asset sums of the native token balances.
func (b *Balances) NativeTokens() *TokenBalances {
	return b.nativeTokens
}

// Clone creates a copy of the Balances.
func (b *Balances) Clone() *Balances {
	return &Balances{
		baseTokens:   b.baseTokens,
		nativeTokens: b.nativeTokens.Clone(),
	}
}

// String returns a human readable version of the Balances.
func (b *Balances) String() string {
	return stringify.Struct("Balances",
		stringify.StructField("baseTokens", b.baseTokens),
		stringify.StructField("nativeTokens", b.nativeTokens),
	)
}

// addBaseTokens accumulates a base token amount with an explicit uint64 overflow check.
func (b *Balances) addBaseTokens(amount uint64) error {
	if b.baseTokens > math.MaxUint64-amount {
		return errors.Errorf("base token sum exceeds uint64 range: %w", ErrOverflow)
	}
	b.baseTokens += amount

	return nil
}

// addNativeTokens accumulates per-asset native token sums, each bounded by the maximum representable token quantity.
func (b *Balances) addNativeTokens(source *TokenBalances) (err error) {
	accumulated := b.nativeTokens.Map()

	overflowDetected := false
	var overflowedTokenID TokenID
	source.ForEach(func(tokenID TokenID, quantity *big.Int) bool {
		sum, exists := accumulated[tokenID]
		if !exists {
			sum = new(big.Int)
			accumulated[tokenID] = sum
		}
		sum.Add(sum, quantity)
		if sum.Cmp(MaxTokenQuantity) > 0 {
			overflowDetected = true
			overflowedTokenID = tokenID

			return false
		}

		return true
	})
	if overflowDetected {
		return errors.Errorf("native token %s sum exceeds the maximum representable quantity: %w", overflowedTokenID.Base58(), ErrOverflow)
	}

	if b.nativeTokens, err = NewTokenBalances(accumulated); err != nil {
		return errors.Errorf("failed to rebuild native token sums: %w", err)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
