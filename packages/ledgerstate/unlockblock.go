package ledgerstate

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"golang.org/x/crypto/blake2b"
)

// region Signature ////////////////////////////////////////////////////////////////////////////////////////////////////

// ED25519SignatureType represents an Ed25519 signature.
const ED25519SignatureType SignatureType = iota

// SignatureType represents the type of a Signature.
type SignatureType uint8

// String returns a human readable representation of the SignatureType.
func (s SignatureType) String() string {
	return [...]string{
		"ED25519SignatureType",
	}[s]
}

// Signature is an interface for the different kinds of Signatures that can be used to unlock Outputs.
type Signature interface {
	// Type returns the SignatureType of the Signature.
	Type() SignatureType

	// SignatureValid returns true if the Signature signs the given data.
	SignatureValid(data []byte) bool

	// AddressSignatureValid returns true if the Signature signs the given data and belongs to the given Address.
	AddressSignatureValid(address Address, data []byte) bool

	// Bytes returns a marshaled version of the Signature.
	Bytes() []byte

	// String returns a human readable version of the Signature.
	String() string
}

// SignatureFromMarshalUtil unmarshals a Signature using a MarshalUtil (for easier unmarshaling).
func SignatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (signature Signature, err error) {
	signatureType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse SignatureType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch SignatureType(signatureType) {
	case ED25519SignatureType:
		return ED25519SignatureFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported SignatureType (%X): %w", signatureType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ED25519Signature /////////////////////////////////////////////////////////////////////////////////////////////

// ED25519Signature represents a Signature created with the Ed25519 signature scheme.
type ED25519Signature struct {
	PublicKey ed25519.PublicKey
	Signature ed25519.Signature
}

// NewED25519Signature is the constructor of an ED25519Signature.
func NewED25519Signature(publicKey ed25519.PublicKey, signature ed25519.Signature) *ED25519Signature {
	return &ED25519Signature{
		PublicKey: publicKey,
		Signature: signature,
	}
}

// ED25519SignatureFromMarshalUtil unmarshals an ED25519Signature using a MarshalUtil (for easier unmarshaling).
func ED25519SignatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (signature *ED25519Signature, err error) {
	signatureType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse SignatureType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if SignatureType(signatureType) != ED25519SignatureType {
		err = errors.Errorf("invalid SignatureType (%X): %w", signatureType, cerrors.ErrParseBytesFailed)
		return
	}

	signature = &ED25519Signature{}
	if signature.PublicKey, err = ed25519.ParsePublicKey(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse public key (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if signature.Signature, err = ed25519.ParseSignature(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse signature (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// Type returns the SignatureType of the Signature.
func (e *ED25519Signature) Type() SignatureType {
	return ED25519SignatureType
}

// SignatureValid returns true if the Signature signs the given data.
func (e *ED25519Signature) SignatureValid(data []byte) bool {
	return e.PublicKey.VerifySignature(data, e.Signature)
}

// AddressSignatureValid returns true if the Signature signs the given data and belongs to the given Address.
func (e *ED25519Signature) AddressSignatureValid(address Address, data []byte) bool {
	if address.Type() != Ed25519AddressType {
		return false
	}

	hashedPublicKey := blake2b.Sum256(e.PublicKey.Bytes())
	if !bytes.Equal(hashedPublicKey[:], address.Digest()) {
		return false
	}

	return e.SignatureValid(data)
}

// Bytes returns a marshaled version of the Signature.
func (e *ED25519Signature) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(ED25519SignatureType))
	marshalUtil.WriteBytes(e.PublicKey.Bytes())
	marshalUtil.WriteBytes(e.Signature.Bytes())

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Signature.
func (e *ED25519Signature) String() string {
	return stringify.Struct("ED25519Signature",
		stringify.StructField("publicKey", e.PublicKey),
		stringify.StructField("signature", e.Signature),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Signature = &ED25519Signature{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockBlockType //////////////////////////////////////////////////////////////////////////////////////////////

const (
	// SignatureUnlockBlockType represents an UnlockBlock that carries a Signature.
	SignatureUnlockBlockType UnlockBlockType = iota

	// ReferenceUnlockBlockType represents an UnlockBlock that references a previous UnlockBlock.
	ReferenceUnlockBlockType
)

// UnlockBlockType represents the type of an UnlockBlock.
type UnlockBlockType uint8

// String returns a human readable representation of the UnlockBlockType.
func (u UnlockBlockType) String() string {
	return [...]string{
		"SignatureUnlockBlockType",
		"ReferenceUnlockBlockType",
	}[u]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockBlock //////////////////////////////////////////////////////////////////////////////////////////////////

// UnlockBlock is the interface for the elements that authorize the consumption of the Inputs of a Transaction. The
// i-th UnlockBlock unlocks the i-th Input of the essence.
type UnlockBlock interface {
	// Type returns the UnlockBlockType of the UnlockBlock.
	Type() UnlockBlockType

	// Bytes returns a marshaled version of the UnlockBlock.
	Bytes() []byte

	// String returns a human readable version of the UnlockBlock.
	String() string
}

// UnlockBlockFromMarshalUtil unmarshals an UnlockBlock using a MarshalUtil (for easier unmarshaling).
func UnlockBlockFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockBlock UnlockBlock, err error) {
	unlockBlockType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse UnlockBlockType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch UnlockBlockType(unlockBlockType) {
	case SignatureUnlockBlockType:
		return SignatureUnlockBlockFromMarshalUtil(marshalUtil)
	case ReferenceUnlockBlockType:
		return ReferenceUnlockBlockFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported UnlockBlockType (%X): %w", unlockBlockType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockBlocks /////////////////////////////////////////////////////////////////////////////////////////////////

// UnlockBlocks is a list of UnlockBlocks where the i-th UnlockBlock unlocks the i-th Input of a Transaction.
type UnlockBlocks []UnlockBlock

// UnlockBlocksFromMarshalUtil unmarshals a list of UnlockBlocks using a MarshalUtil (for easier unmarshaling). The
// parser rejects duplicate SignatureUnlockBlocks since repeated signatures have to use references.
func UnlockBlocksFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockBlocks UnlockBlocks, err error) {
	unlockBlocksCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse unlock blocks count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	seenSignatureBlocks := make(map[string]bool)
	unlockBlocks = make(UnlockBlocks, unlockBlocksCount)
	for i := uint16(0); i < unlockBlocksCount; i++ {
		if unlockBlocks[i], err = UnlockBlockFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse UnlockBlock: %w", err)
			return
		}

		if unlockBlocks[i].Type() == SignatureUnlockBlockType {
			serializedBlock := string(unlockBlocks[i].Bytes())
			if seenSignatureBlocks[serializedBlock] {
				err = errors.Errorf("duplicate signature unlock block at index %d: %w", i, cerrors.ErrParseBytesFailed)
				return
			}
			seenSignatureBlocks[serializedBlock] = true
		}
	}

	return
}

// Bytes returns a marshaled version of the UnlockBlocks.
func (u UnlockBlocks) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(u)))
	for _, unlockBlock := range u {
		marshalUtil.WriteBytes(unlockBlock.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockBlocks.
func (u UnlockBlocks) String() string {
	structBuilder := stringify.StructBuilder("UnlockBlocks")
	for i, unlockBlock := range u {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), unlockBlock))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SignatureUnlockBlock /////////////////////////////////////////////////////////////////////////////////////////

// SignatureUnlockBlock represents an UnlockBlock that contains a Signature for an Input.
type SignatureUnlockBlock struct {
	signature Signature
}

// NewSignatureUnlockBlock is the constructor for SignatureUnlockBlocks.
func NewSignatureUnlockBlock(signature Signature) *SignatureUnlockBlock {
	return &SignatureUnlockBlock{signature: signature}
}

// SignatureUnlockBlockFromMarshalUtil unmarshals a SignatureUnlockBlock using a MarshalUtil (for easier unmarshaling).
func SignatureUnlockBlockFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockBlock *SignatureUnlockBlock, err error) {
	unlockBlockType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse UnlockBlockType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if UnlockBlockType(unlockBlockType) != SignatureUnlockBlockType {
		err = errors.Errorf("invalid UnlockBlockType (%X): %w", unlockBlockType, cerrors.ErrParseBytesFailed)
		return
	}

	unlockBlock = &SignatureUnlockBlock{}
	if unlockBlock.signature, err = SignatureFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Signature: %w", err)
		return
	}

	return
}

// AddressSignatureValid returns true if the UnlockBlock correctly signs the given data for the given Address.
func (s *SignatureUnlockBlock) AddressSignatureValid(address Address, signedData []byte) bool {
	return s.signature.AddressSignatureValid(address, signedData)
}

// Signature returns the Signature contained in the UnlockBlock.
func (s *SignatureUnlockBlock) Signature() Signature {
	return s.signature
}

// Type returns the UnlockBlockType of the UnlockBlock.
func (s *SignatureUnlockBlock) Type() UnlockBlockType {
	return SignatureUnlockBlockType
}

// Bytes returns a marshaled version of the UnlockBlock.
func (s *SignatureUnlockBlock) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(SignatureUnlockBlockType))
	marshalUtil.WriteBytes(s.signature.Bytes())

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockBlock.
func (s *SignatureUnlockBlock) String() string {
	return stringify.Struct("SignatureUnlockBlock",
		stringify.StructField("signature", s.signature),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockBlock = &SignatureUnlockBlock{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ReferenceUnlockBlock /////////////////////////////////////////////////////////////////////////////////////////

// ReferenceUnlockBlock represents an UnlockBlock that references a previous SignatureUnlockBlock, so that a
// signature that unlocks multiple Inputs only has to be carried once.
type ReferenceUnlockBlock struct {
	referencedIndex uint16
}

// NewReferenceUnlockBlock is the constructor for ReferenceUnlockBlocks.
func NewReferenceUnlockBlock(referencedIndex uint16) *ReferenceUnlockBlock {
	return &ReferenceUnlockBlock{referencedIndex: referencedIndex}
}

// ReferenceUnlockBlockFromMarshalUtil unmarshals a ReferenceUnlockBlock using a MarshalUtil (for easier unmarshaling).
func ReferenceUnlockBlockFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockBlock *ReferenceUnlockBlock, err error) {
	unlockBlockType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse UnlockBlockType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if UnlockBlockType(unlockBlockType) != ReferenceUnlockBlockType {
		err = errors.Errorf("invalid UnlockBlockType (%X): %w", unlockBlockType, cerrors.ErrParseBytesFailed)
		return
	}

	unlockBlock = &ReferenceUnlockBlock{}
	if unlockBlock.referencedIndex, err = marshalUtil.ReadUint16(); err != nil {
		err = errors.Errorf("failed to parse referenced index (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// ReferencedIndex returns the index of the referenced UnlockBlock.
func (r *ReferenceUnlockBlock) ReferencedIndex() uint16 {
	return r.referencedIndex
}

// Type returns the UnlockBlockType of the UnlockBlock.
func (r *ReferenceUnlockBlock) Type() UnlockBlockType {
	return ReferenceUnlockBlockType
}

// Bytes returns a marshaled version of the UnlockBlock.
func (r *ReferenceUnlockBlock) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(ReferenceUnlockBlockType))
	marshalUtil.WriteUint16(r.referencedIndex)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockBlock.
func (r *ReferenceUnlockBlock) String() string {
	return stringify.Struct("ReferenceUnlockBlock",
		stringify.StructField("referencedIndex", r.referencedIndex),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockBlock = &ReferenceUnlockBlock{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
