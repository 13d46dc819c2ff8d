package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region AddressType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// Ed25519AddressType represents an Address derived from an Ed25519 public key.
	Ed25519AddressType AddressType = iota

	// AliasAddressType represents an Address derived from the identifier of an alias (account) output.
	AliasAddressType

	// NFTAddressType represents an Address derived from the identifier of an NFT output.
	NFTAddressType
)

// AddressLength contains the length of a marshaled address (type length = 1, digest length = 32).
const AddressLength = 33

// AddressDigestLength contains the length of the digest part of an address.
const AddressDigestLength = 32

// AddressType represents the type of the Address (different types encode different derivation schemes).
type AddressType byte

// String returns a human readable representation of the AddressType.
func (a AddressType) String() string {
	return [...]string{
		"Ed25519Address",
		"AliasAddress",
		"NFTAddress",
	}[a]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// Address is an interface for the different kinds of Addresses that are supported by the ledger. An Address is
// immutable once constructed: its canonical binary form and its base58 encoded form are losslessly interconvertible.
type Address interface {
	// Type returns the AddressType of the Address.
	Type() AddressType

	// Digest returns the 32 byte digest that the Address is built around.
	Digest() []byte

	// Clone creates a copy of the Address.
	Clone() Address

	// Equals returns true if the two Addresses are equal.
	Equals(other Address) bool

	// Bytes returns a marshaled version of the Address.
	Bytes() []byte

	// Array returns an array of bytes that contains the marshaled version of the Address.
	Array() [AddressLength]byte

	// Base58 returns a base58 encoded version of the Address.
	Base58() string

	// String returns a human readable version of the Address for debug purposes.
	String() string
}

// AddressFromBytes unmarshals an Address from a sequence of bytes.
func AddressFromBytes(data []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromBase58EncodedString creates an Address from a base58 encoded string.
func AddressFromBase58EncodedString(base58String string) (address Address, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if address, _, err = AddressFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse Address from bytes: %w", err)
		return
	}

	return
}

// AddressFromMarshalUtil reads an Address from the bytes in the given MarshalUtil.
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch AddressType(addressType) {
	case Ed25519AddressType:
		return Ed25519AddressFromMarshalUtil(marshalUtil)
	case AliasAddressType:
		return AliasAddressFromMarshalUtil(marshalUtil)
	case NFTAddressType:
		return NFTAddressFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported address type (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region genericAddress ///////////////////////////////////////////////////////////////////////////////////////////////

// genericAddress implements the shared behavior of the three address variants, which only differ in their type byte.
type genericAddress struct {
	addressType AddressType
	digest      []byte
}

func genericAddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil, expectedType AddressType) (address genericAddress, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if AddressType(addressType) != expectedType {
		err = errors.Errorf("invalid AddressType (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}

	address.addressType = expectedType
	if address.digest, err = marshalUtil.ReadBytes(AddressDigestLength); err != nil {
		err = errors.Errorf("error parsing digest (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// Type returns the AddressType of the Address.
func (g *genericAddress) Type() AddressType {
	return g.addressType
}

// Digest returns the 32 byte digest of the Address.
func (g *genericAddress) Digest() []byte {
	return g.digest
}

// Equals returns true if the two Addresses are equal.
func (g *genericAddress) Equals(other Address) bool {
	return other != nil && g.addressType == other.Type() && bytes.Equal(g.digest, other.Digest())
}

// Bytes returns a marshaled version of the Address.
func (g *genericAddress) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(g.addressType)}, g.digest)
}

// Array returns an array of bytes that contains the marshaled version of the Address.
func (g *genericAddress) Array() (array [AddressLength]byte) {
	copy(array[:], g.Bytes())

	return
}

// Base58 returns a base58 encoded version of the Address.
func (g *genericAddress) Base58() string {
	return base58.Encode(g.Bytes())
}

// String returns a human readable version of the Address for debug purposes.
func (g *genericAddress) String() string {
	return stringify.Struct(g.addressType.String(),
		stringify.StructField("Digest", g.digest),
		stringify.StructField("Base58", g.Base58()),
	)
}

func (g *genericAddress) clonedDigest() []byte {
	clonedDigest := make([]byte, len(g.digest))
	copy(clonedDigest, g.digest)

	return clonedDigest
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Ed25519Address ///////////////////////////////////////////////////////////////////////////////////////////////

// Ed25519Address represents an Address that is derived from an Ed25519 public key and unlocked by a corresponding
// signature.
type Ed25519Address struct {
	genericAddress
}

// NewEd25519Address creates a new Ed25519Address from the given public key.
func NewEd25519Address(publicKey ed25519.PublicKey) *Ed25519Address {
	digest := blake2b.Sum256(publicKey[:])

	return &Ed25519Address{genericAddress{
		addressType: Ed25519AddressType,
		digest:      digest[:],
	}}
}

// Ed25519AddressFromMarshalUtil parses an Ed25519Address from the given MarshalUtil.
func Ed25519AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *Ed25519Address, err error) {
	inner, err := genericAddressFromMarshalUtil(marshalUtil, Ed25519AddressType)
	if err != nil {
		err = errors.Errorf("failed to parse Ed25519Address: %w", err)
		return
	}

	return &Ed25519Address{inner}, nil
}

// Clone creates a copy of the Address.
func (e *Ed25519Address) Clone() Address {
	return &Ed25519Address{genericAddress{addressType: Ed25519AddressType, digest: e.clonedDigest()}}
}

// code contract (make sure the struct implements all required methods)
var _ Address = &Ed25519Address{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AliasAddress /////////////////////////////////////////////////////////////////////////////////////////////////

// AliasAddress represents an Address that references an alias (account) output. It is derived from the identifier of
// the output that created the alias.
type AliasAddress struct {
	genericAddress
}

// NewAliasAddress creates a new AliasAddress from the identifier of the output that created the alias.
func NewAliasAddress(outputIDBytes []byte) *AliasAddress {
	digest := blake2b.Sum256(outputIDBytes)

	return &AliasAddress{genericAddress{
		addressType: AliasAddressType,
		digest:      digest[:],
	}}
}

// AliasAddressFromMarshalUtil parses an AliasAddress from the given MarshalUtil.
func AliasAddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *AliasAddress, err error) {
	inner, err := genericAddressFromMarshalUtil(marshalUtil, AliasAddressType)
	if err != nil {
		err = errors.Errorf("failed to parse AliasAddress: %w", err)
		return
	}

	return &AliasAddress{inner}, nil
}

// Clone creates a copy of the Address.
func (a *AliasAddress) Clone() Address {
	return &AliasAddress{genericAddress{addressType: AliasAddressType, digest: a.clonedDigest()}}
}

// code contract (make sure the struct implements all required methods)
var _ Address = &AliasAddress{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NFTAddress ///////////////////////////////////////////////////////////////////////////////////////////////////

// NFTAddress represents an Address that references an NFT output. It is derived from the identifier of the output
// that created the NFT.
type NFTAddress struct {
	genericAddress
}

// NewNFTAddress creates a new NFTAddress from the identifier of the output that created the NFT.
func NewNFTAddress(outputIDBytes []byte) *NFTAddress {
	digest := blake2b.Sum256(outputIDBytes)

	return &NFTAddress{genericAddress{
		addressType: NFTAddressType,
		digest:      digest[:],
	}}
}

// NFTAddressFromMarshalUtil parses an NFTAddress from the given MarshalUtil.
func NFTAddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *NFTAddress, err error) {
	inner, err := genericAddressFromMarshalUtil(marshalUtil, NFTAddressType)
	if err != nil {
		err = errors.Errorf("failed to parse NFTAddress: %w", err)
		return
	}

	return &NFTAddress{inner}, nil
}

// Clone creates a copy of the Address.
func (n *NFTAddress) Clone() Address {
	return &NFTAddress{genericAddress{addressType: NFTAddressType, digest: n.clonedDigest()}}
}

// code contract (make sure the struct implements all required methods)
var _ Address = &NFTAddress{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
