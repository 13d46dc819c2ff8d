package ledgerstate

import (
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region FeatureType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// SenderFeatureType represents an attestation of the Address that created an Output.
	SenderFeatureType FeatureType = iota

	// IssuerFeatureType represents an immutable attestation of the Address that issued an asset.
	IssuerFeatureType

	// MetadataFeatureType represents arbitrary binary data attached to an Output.
	MetadataFeatureType

	// TagFeatureType represents a short indexation tag attached to an Output.
	TagFeatureType
)

const (
	// MaxMetadataLength is the maximum length of the binary data of a MetadataFeature.
	MaxMetadataLength = 8192

	// MaxTagLength is the maximum length of the tag of a TagFeature.
	MaxTagLength = 64
)

// FeatureType represents the type of a Feature. The numeric value doubles as the canonical ordering discriminant of
// the wire format.
type FeatureType byte

// String returns a human readable representation of the FeatureType.
func (f FeatureType) String() string {
	return [...]string{
		"SenderFeature",
		"IssuerFeature",
		"MetadataFeature",
		"TagFeature",
	}[f]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Feature //////////////////////////////////////////////////////////////////////////////////////////////////////

// Feature is the interface for the closed set of optional annotations that can be attached to an Output. Features
// carry information but do not influence how an Output is unlocked.
type Feature interface {
	// Type returns the FeatureType which doubles as the canonical ordering discriminant.
	Type() FeatureType

	// Bytes returns a marshaled version of the Feature.
	Bytes() []byte

	// String returns a human readable version of the Feature for debug purposes.
	String() string
}

// FeatureFromMarshalUtil unmarshals a Feature using a MarshalUtil (for easier unmarshaling).
func FeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature Feature, err error) {
	featureType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse FeatureType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch FeatureType(featureType) {
	case SenderFeatureType:
		return SenderFeatureFromMarshalUtil(marshalUtil)
	case IssuerFeatureType:
		return IssuerFeatureFromMarshalUtil(marshalUtil)
	case MetadataFeatureType:
		return MetadataFeatureFromMarshalUtil(marshalUtil)
	case TagFeatureType:
		return TagFeatureFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported FeatureType (%X): %w", featureType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Features /////////////////////////////////////////////////////////////////////////////////////////////////////

// Features is the canonically ordered collection of Features of an Output: ascending by type with no duplicate
// variants.
type Features []Feature

// NewFeatures creates a canonically ordered collection of Features. Supplying the same variant twice is a
// construction error.
func NewFeatures(optionalFeatures ...Feature) (features Features, err error) {
	seenTypes := make(map[FeatureType]bool)
	for _, feature := range optionalFeatures {
		if seenTypes[feature.Type()] {
			err = errors.Errorf("duplicate feature %s: %w", feature.Type(), ErrInvalidOutput)
			return
		}
		seenTypes[feature.Type()] = true
	}

	features = make(Features, len(optionalFeatures))
	copy(features, optionalFeatures)
	sort.Slice(features, func(i, j int) bool {
		return features[i].Type() < features[j].Type()
	})

	return
}

// FeaturesFromMarshalUtil unmarshals a collection of Features using a MarshalUtil. The parser enforces the canonical
// ascending ordering of the wire format.
func FeaturesFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (features Features, err error) {
	featuresCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse features count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	features = make(Features, featuresCount)
	for i := uint16(0); i < featuresCount; i++ {
		if features[i], err = FeatureFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Feature: %w", err)
			return
		}

		if i > 0 && features[i-1].Type() >= features[i].Type() {
			err = errors.Errorf("order of features is invalid: %w", cerrors.ErrParseBytesFailed)
			return
		}
	}

	return
}

// Get returns the Feature of the given type and whether it is present in the collection.
func (f Features) Get(featureType FeatureType) (feature Feature, exists bool) {
	for _, candidate := range f {
		if candidate.Type() == featureType {
			return candidate, true
		}
	}

	return nil, false
}

// Sender returns the SenderFeature if it is present in the collection.
func (f Features) Sender() (feature *SenderFeature) {
	if untyped, exists := f.Get(SenderFeatureType); exists {
		feature = untyped.(*SenderFeature)
	}

	return
}

// Issuer returns the IssuerFeature if it is present in the collection.
func (f Features) Issuer() (feature *IssuerFeature) {
	if untyped, exists := f.Get(IssuerFeatureType); exists {
		feature = untyped.(*IssuerFeature)
	}

	return
}

// Metadata returns the MetadataFeature if it is present in the collection.
func (f Features) Metadata() (feature *MetadataFeature) {
	if untyped, exists := f.Get(MetadataFeatureType); exists {
		feature = untyped.(*MetadataFeature)
	}

	return
}

// Tag returns the TagFeature if it is present in the collection.
func (f Features) Tag() (feature *TagFeature) {
	if untyped, exists := f.Get(TagFeatureType); exists {
		feature = untyped.(*TagFeature)
	}

	return
}

// Bytes returns a marshaled version of the Features.
func (f Features) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(f)))
	for _, feature := range f {
		marshalUtil.WriteBytes(feature.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Features.
func (f Features) String() string {
	structBuilder := stringify.StructBuilder("Features")
	for i, feature := range f {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), feature))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SenderFeature ////////////////////////////////////////////////////////////////////////////////////////////////

// SenderFeature attests the Address that created the Output.
type SenderFeature struct {
	senderAddress Address
}

// NewSenderFeature creates a new SenderFeature for the given Address.
func NewSenderFeature(senderAddress Address) *SenderFeature {
	return &SenderFeature{senderAddress: senderAddress}
}

// SenderFeatureFromMarshalUtil parses a SenderFeature from the given MarshalUtil.
func SenderFeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature *SenderFeature, err error) {
	if err = consumeFeatureType(marshalUtil, SenderFeatureType); err != nil {
		return
	}

	feature = &SenderFeature{}
	if feature.senderAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse sender Address: %w", err)
		return
	}

	return
}

// SenderAddress returns the attested sender Address.
func (s *SenderFeature) SenderAddress() Address {
	return s.senderAddress
}

// Type returns the FeatureType of the Feature.
func (s *SenderFeature) Type() FeatureType {
	return SenderFeatureType
}

// Bytes returns a marshaled version of the Feature.
func (s *SenderFeature) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(SenderFeatureType)}, s.senderAddress.Bytes())
}

// String returns a human readable version of the Feature.
func (s *SenderFeature) String() string {
	return stringify.Struct("SenderFeature",
		stringify.StructField("SenderAddress", s.senderAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Feature = &SenderFeature{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region IssuerFeature ////////////////////////////////////////////////////////////////////////////////////////////////

// IssuerFeature immutably attests the Address that issued an asset.
type IssuerFeature struct {
	issuerAddress Address
}

// NewIssuerFeature creates a new IssuerFeature for the given Address.
func NewIssuerFeature(issuerAddress Address) *IssuerFeature {
	return &IssuerFeature{issuerAddress: issuerAddress}
}

// IssuerFeatureFromMarshalUtil parses an IssuerFeature from the given MarshalUtil.
func IssuerFeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature *IssuerFeature, err error) {
	if err = consumeFeatureType(marshalUtil, IssuerFeatureType); err != nil {
		return
	}

	feature = &IssuerFeature{}
	if feature.issuerAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse issuer Address: %w", err)
		return
	}

	return
}

// IssuerAddress returns the attested issuer Address.
func (i *IssuerFeature) IssuerAddress() Address {
	return i.issuerAddress
}

// Type returns the FeatureType of the Feature.
func (i *IssuerFeature) Type() FeatureType {
	return IssuerFeatureType
}

// Bytes returns a marshaled version of the Feature.
func (i *IssuerFeature) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(IssuerFeatureType)}, i.issuerAddress.Bytes())
}

// String returns a human readable version of the Feature.
func (i *IssuerFeature) String() string {
	return stringify.Struct("IssuerFeature",
		stringify.StructField("IssuerAddress", i.issuerAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Feature = &IssuerFeature{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MetadataFeature //////////////////////////////////////////////////////////////////////////////////////////////

// MetadataFeature attaches arbitrary binary data to an Output.
type MetadataFeature struct {
	data []byte
}

// NewMetadataFeature creates a new MetadataFeature carrying the given data. The data has to be non-empty and must not
// exceed MaxMetadataLength bytes.
func NewMetadataFeature(data []byte) (feature *MetadataFeature, err error) {
	if len(data) == 0 {
		err = errors.Errorf("metadata must not be empty: %w", ErrInvalidOutput)
		return
	}
	if len(data) > MaxMetadataLength {
		err = errors.Errorf("metadata exceeds maximum length of %d bytes: %w", MaxMetadataLength, ErrInvalidOutput)
		return
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	return &MetadataFeature{data: dataCopy}, nil
}

// MetadataFeatureFromMarshalUtil parses a MetadataFeature from the given MarshalUtil.
func MetadataFeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature *MetadataFeature, err error) {
	if err = consumeFeatureType(marshalUtil, MetadataFeatureType); err != nil {
		return
	}

	dataLength, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse metadata length (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if dataLength == 0 || dataLength > MaxMetadataLength {
		err = errors.Errorf("invalid metadata length (%d): %w", dataLength, cerrors.ErrParseBytesFailed)
		return
	}

	feature = &MetadataFeature{}
	if feature.data, err = marshalUtil.ReadBytes(int(dataLength)); err != nil {
		err = errors.Errorf("failed to parse metadata (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// Data returns the binary data carried by the Feature.
func (m *MetadataFeature) Data() []byte {
	dataCopy := make([]byte, len(m.data))
	copy(dataCopy, m.data)

	return dataCopy
}

// Type returns the FeatureType of the Feature.
func (m *MetadataFeature) Type() FeatureType {
	return MetadataFeatureType
}

// Bytes returns a marshaled version of the Feature.
func (m *MetadataFeature) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(MetadataFeatureType))
	marshalUtil.WriteUint16(uint16(len(m.data)))
	marshalUtil.WriteBytes(m.data)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Feature.
func (m *MetadataFeature) String() string {
	return stringify.Struct("MetadataFeature",
		stringify.StructField("DataLength", len(m.data)),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Feature = &MetadataFeature{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TagFeature ///////////////////////////////////////////////////////////////////////////////////////////////////

// TagFeature attaches a short indexation tag to an Output.
type TagFeature struct {
	tag []byte
}

// NewTagFeature creates a new TagFeature carrying the given tag. The tag has to be non-empty and must not exceed
// MaxTagLength bytes.
func NewTagFeature(tag []byte) (feature *TagFeature, err error) {
	if len(tag) == 0 {
		err = errors.Errorf("tag must not be empty: %w", ErrInvalidOutput)
		return
	}
	if len(tag) > MaxTagLength {
		err = errors.Errorf("tag exceeds maximum length of %d bytes: %w", MaxTagLength, ErrInvalidOutput)
		return
	}

	tagCopy := make([]byte, len(tag))
	copy(tagCopy, tag)

	return &TagFeature{tag: tagCopy}, nil
}

// TagFeatureFromMarshalUtil parses a TagFeature from the given MarshalUtil.
func TagFeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature *TagFeature, err error) {
	if err = consumeFeatureType(marshalUtil, TagFeatureType); err != nil {
		return
	}

	tagLength, err := marshalUtil.ReadUint8()
	if err != nil {
		err = errors.Errorf("failed to parse tag length (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if tagLength == 0 || tagLength > MaxTagLength {
		err = errors.Errorf("invalid tag length (%d): %w", tagLength, cerrors.ErrParseBytesFailed)
		return
	}

	feature = &TagFeature{}
	if feature.tag, err = marshalUtil.ReadBytes(int(tagLength)); err != nil {
		err = errors.Errorf("failed to parse tag (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// Tag returns the tag carried by the Feature.
func (t *TagFeature) Tag() []byte {
	tagCopy := make([]byte, len(t.tag))
	copy(tagCopy, t.tag)

	return tagCopy
}

// Type returns the FeatureType of the Feature.
func (t *TagFeature) Type() FeatureType {
	return TagFeatureType
}

// Bytes returns a marshaled version of the Feature.
func (t *TagFeature) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(TagFeatureType))
	marshalUtil.WriteUint8(uint8(len(t.tag)))
	marshalUtil.WriteBytes(t.tag)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Feature.
func (t *TagFeature) String() string {
	return stringify.Struct("TagFeature",
		stringify.StructField("Tag", string(t.tag)),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Feature = &TagFeature{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// consumeFeatureType reads the type byte of a Feature and verifies that it matches the expectation.
func consumeFeatureType(marshalUtil *marshalutil.MarshalUtil, expectedType FeatureType) (err error) {
	featureType, err := marshalUtil.ReadByte()
	if err != nil {
		return errors.Errorf("failed to parse FeatureType (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	if FeatureType(featureType) != expectedType {
		return errors.Errorf("invalid FeatureType (%X): %w", featureType, cerrors.ErrParseBytesFailed)
	}

	return
}
