package ledgerstate

import (
	"math/big"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region TokenBalances ////////////////////////////////////////////////////////////////////////////////////////////////

// tokenQuantityLength is the length of the fixed size big-endian encoding of a native token quantity.
const tokenQuantityLength = 32

// MaxTokenQuantity is the largest representable quantity of a single native token (2^256 - 1).
var MaxTokenQuantity = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// TokenBalances is an immutable set of native token balances keyed by TokenID. The entries are kept in ascending
// TokenID order, which makes the serialization canonical regardless of the order the balances were supplied in.
type TokenBalances struct {
	balances map[TokenID]*big.Int
}

// NewTokenBalances creates a new set of native token balances from the given map. Quantities have to lie in
// (0, 2^256-1]; violations are construction errors.
func NewTokenBalances(balances map[TokenID]*big.Int) (tokenBalances *TokenBalances, err error) {
	normalizedBalances := make(map[TokenID]*big.Int, len(balances))
	for tokenID, quantity := range balances {
		if quantity == nil || quantity.Sign() <= 0 {
			err = errors.Errorf("native token %s quantity has to be a positive integer: %w", tokenID.Base58(), ErrInvalidOutput)
			return
		}
		if quantity.Cmp(MaxTokenQuantity) > 0 {
			err = errors.Errorf("native token %s quantity exceeds the maximum representable value: %w", tokenID.Base58(), ErrInvalidOutput)
			return
		}
		normalizedBalances[tokenID] = new(big.Int).Set(quantity)
	}

	return &TokenBalances{balances: normalizedBalances}, nil
}

// TokenBalancesFromMarshalUtil unmarshals a set of TokenBalances using a MarshalUtil (for easier unmarshaling). The
// parser enforces the canonical ascending TokenID ordering of the wire format.
func TokenBalancesFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (tokenBalances *TokenBalances, err error) {
	balancesCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse token balances count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	var previousTokenID TokenID
	balances := make(map[TokenID]*big.Int, balancesCount)
	for i := uint16(0); i < balancesCount; i++ {
		tokenID, tokenIDErr := TokenIDFromMarshalUtil(marshalUtil)
		if tokenIDErr != nil {
			err = errors.Errorf("failed to parse TokenID: %w", tokenIDErr)
			return
		}
		if i > 0 && previousTokenID.Compare(tokenID) != -1 {
			err = errors.Errorf("order of token balances is invalid: %w", cerrors.ErrParseBytesFailed)
			return
		}
		previousTokenID = tokenID

		quantityBytes, quantityErr := marshalUtil.ReadBytes(tokenQuantityLength)
		if quantityErr != nil {
			err = errors.Errorf("failed to parse token quantity (%v): %w", quantityErr, cerrors.ErrParseBytesFailed)
			return
		}
		quantity := new(big.Int).SetBytes(quantityBytes)
		if quantity.Sign() == 0 {
			err = errors.Errorf("token quantity has to be a positive integer: %w", cerrors.ErrParseBytesFailed)
			return
		}
		balances[tokenID] = quantity
	}

	return &TokenBalances{balances: balances}, nil
}

// TokenIDs returns the TokenIDs of the set in ascending order.
func (t *TokenBalances) TokenIDs() (tokenIDs []TokenID) {
	tokenIDs = make([]TokenID, 0, len(t.balances))
	for tokenID := range t.balances {
		tokenIDs = append(tokenIDs, tokenID)
	}
	sort.Slice(tokenIDs, func(i, j int) bool {
		return tokenIDs[i].Compare(tokenIDs[j]) < 0
	})

	return
}

// Get returns the balance of the given TokenID and whether it exists in the set.
func (t *TokenBalances) Get(tokenID TokenID) (quantity *big.Int, exists bool) {
	storedQuantity, exists := t.balances[tokenID]
	if !exists {
		return nil, false
	}

	return new(big.Int).Set(storedQuantity), true
}

// ForEach calls the consumer for every balance in ascending TokenID order until it returns false.
func (t *TokenBalances) ForEach(consumer func(tokenID TokenID, quantity *big.Int) bool) {
	for _, tokenID := range t.TokenIDs() {
		if !consumer(tokenID, new(big.Int).Set(t.balances[tokenID])) {
			return
		}
	}
}

// Map returns a copy of the balances as a plain map.
func (t *TokenBalances) Map() (balances map[TokenID]*big.Int) {
	balances = make(map[TokenID]*big.Int, len(t.balances))
	for tokenID, quantity := range t.balances {
		balances[tokenID] = new(big.Int).Set(quantity)
	}

	return
}

// Size returns the amount of different native tokens in the set.
func (t *TokenBalances) Size() int {
	return len(t.balances)
}

// Clone creates a copy of the TokenBalances.
func (t *TokenBalances) Clone() *TokenBalances {
	return &TokenBalances{balances: t.Map()}
}

// Bytes returns a marshaled version of the TokenBalances: the entry count followed by the entries in ascending
// TokenID order, each quantity as a fixed length big-endian integer.
func (t *TokenBalances) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(t.balances)))
	for _, tokenID := range t.TokenIDs() {
		marshalUtil.WriteBytes(tokenID.Bytes())
		marshalUtil.WriteBytes(t.balances[tokenID].FillBytes(make([]byte, tokenQuantityLength)))
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the TokenBalances.
func (t *TokenBalances) String() (humanReadableBalances string) {
	structBuilder := stringify.StructBuilder("TokenBalances")
	t.ForEach(func(tokenID TokenID, quantity *big.Int) bool {
		structBuilder.AddField(stringify.StructField(tokenID.Base58(), quantity.String()))
		return true
	})

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
