package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
)

// region TokenID //////////////////////////////////////////////////////////////////////////////////////////////////////

// TokenIDLength contains the amount of bytes that a marshaled version of the TokenID contains.
const TokenIDLength = 38

// TokenID is the identifier of a foundry-minted native asset. Its internal layout is protocol-defined and treated as
// opaque here; equality is byte-exact.
type TokenID [TokenIDLength]byte

// EmptyTokenID represents the zero-value of a TokenID.
var EmptyTokenID TokenID

// TokenIDFromBytes unmarshals a TokenID from a sequence of bytes.
func TokenIDFromBytes(data []byte) (tokenID TokenID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if tokenID, err = TokenIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TokenID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TokenIDFromBase58 creates a TokenID from a base58 encoded string.
func TokenIDFromBase58(base58String string) (tokenID TokenID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded TokenID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if tokenID, _, err = TokenIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse TokenID from bytes: %w", err)
		return
	}

	return
}

// TokenIDFromMarshalUtil unmarshals a TokenID using a MarshalUtil (for easier unmarshaling).
func TokenIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (tokenID TokenID, err error) {
	tokenIDBytes, err := marshalUtil.ReadBytes(TokenIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse TokenID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(tokenID[:], tokenIDBytes)

	return
}

// Compare offers a comparator for TokenIDs which returns -1 if the other TokenID is bigger, 1 if it is smaller and 0
// if they are the same.
func (t TokenID) Compare(other TokenID) int {
	return bytes.Compare(t[:], other[:])
}

// Bytes marshals the TokenID into a sequence of bytes.
func (t TokenID) Bytes() []byte {
	return t[:]
}

// Base58 returns a base58 encoded version of the TokenID.
func (t TokenID) Base58() string {
	return base58.Encode(t[:])
}

// String creates a human readable version of the TokenID.
func (t TokenID) String() string {
	return stringify.Struct("TokenID",
		stringify.StructField("Base58", t.Base58()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
