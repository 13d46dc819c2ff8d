package ledgerstate

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
)

// region OutputType ///////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// BasicOutputType represents an Output holding funds that are unlockable by an Address.
	BasicOutputType OutputType = iota

	// AliasOutputType represents an Output describing a stateful alias account.
	AliasOutputType

	// FoundryOutputType represents an Output controlling the supply of a native token.
	FoundryOutputType

	// NFTOutputType represents an Output describing a unique non-fungible token.
	NFTOutputType
)

// OutputType represents the type of an Output.
type OutputType byte

// String returns a human readable representation of the OutputType.
func (o OutputType) String() string {
	return [...]string{
		"BasicOutputType",
		"AliasOutputType",
		"FoundryOutputType",
		"NFTOutputType",
	}[o]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputID /////////////////////////////////////////////////////////////////////////////////////////////////////

// OutputIDLength contains the amount of bytes that a marshaled version of the OutputID contains.
const OutputIDLength = TransactionIDLength + marshalutil.Uint16Size

// OutputID is the unique identifier of an Output: the identifier of the Transaction that created it plus the index of
// the Output inside that Transaction.
type OutputID [OutputIDLength]byte

// EmptyOutputID represents the zero value of an OutputID.
var EmptyOutputID OutputID

// NewOutputID is the constructor for the OutputID.
func NewOutputID(transactionID TransactionID, outputIndex uint16) (outputID OutputID) {
	copy(outputID[:TransactionIDLength], transactionID.Bytes())
	binary.LittleEndian.PutUint16(outputID[TransactionIDLength:], outputIndex)

	return
}

// OutputIDFromBytes unmarshals an OutputID from a sequence of bytes.
func OutputIDFromBytes(data []byte) (outputID OutputID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if outputID, err = OutputIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse OutputID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputIDFromBase58 creates an OutputID from a base58 encoded string.
func OutputIDFromBase58(base58String string) (outputID OutputID, err error) {
	decodedBytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded OutputID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if outputID, _, err = OutputIDFromBytes(decodedBytes); err != nil {
		err = errors.Errorf("failed to parse OutputID from bytes: %w", err)
		return
	}

	return
}

// OutputIDFromMarshalUtil unmarshals an OutputID using a MarshalUtil (for easier unmarshaling).
func OutputIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (outputID OutputID, err error) {
	outputIDBytes, err := marshalUtil.ReadBytes(OutputIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse OutputID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(outputID[:], outputIDBytes)

	return
}

// TransactionID returns the TransactionID part of an OutputID.
func (o OutputID) TransactionID() (transactionID TransactionID) {
	copy(transactionID[:], o[:TransactionIDLength])

	return
}

// OutputIndex returns the Output index part of an OutputID.
func (o OutputID) OutputIndex() uint16 {
	return binary.LittleEndian.Uint16(o[TransactionIDLength:])
}

// Bytes marshals the OutputID into a sequence of bytes.
func (o OutputID) Bytes() []byte {
	return o[:]
}

// Base58 returns a base58 encoded version of the OutputID.
func (o OutputID) Base58() string {
	return base58.Encode(o[:])
}

// String creates a human readable version of the OutputID.
func (o OutputID) String() string {
	return stringify.Struct("OutputID",
		stringify.StructField("transactionID", o.TransactionID()),
		stringify.StructField("outputIndex", o.OutputIndex()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Output is the interface for the closed set of typed outputs that can be held by the ledger.
type Output interface {
	// ID returns the identifier of the Output that is used to address the Output in the UTXODAG.
	ID() OutputID

	// SetID allows to set the identifier of the Output. We offer a setter for this property since the ID of an Output
	// is only known after it was included in a Transaction.
	SetID(outputID OutputID) Output

	// Type returns the OutputType which allows us to generically handle Outputs of different types.
	Type() OutputType

	// Amount returns the amount of base tokens held by the Output.
	Amount() uint64

	// NativeTokens returns the balances of native tokens held by the Output.
	NativeTokens() *TokenBalances

	// Conditions returns the UnlockConditions guarding the Output.
	Conditions() UnlockConditions

	// Features returns the Features attached to the Output.
	Features() Features

	// UnlockAddressNow returns the Address that is allowed to spend the Output at the given point in time.
	UnlockAddressNow(now time.Time) Address

	// Bytes returns a marshaled version of the Output.
	Bytes() []byte

	// Clone creates a copy of the Output.
	Clone() Output

	// String returns a human readable version of the Output for debug purposes.
	String() string
}

// OutputFromBytes unmarshals an Output from a sequence of bytes.
func OutputFromBytes(data []byte) (output Output, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = OutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Output from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputFromMarshalUtil unmarshals an Output using a MarshalUtil (for easier unmarshaling).
func OutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output Output, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch OutputType(outputType) {
	case BasicOutputType:
		return BasicOutputFromMarshalUtil(marshalUtil)
	case AliasOutputType:
		return AliasOutputFromMarshalUtil(marshalUtil)
	case FoundryOutputType:
		return FoundryOutputFromMarshalUtil(marshalUtil)
	case NFTOutputType:
		return NFTOutputFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region outputEssence ////////////////////////////////////////////////////////////////////////////////////////////////

// outputEssence bundles the properties that all Output variants share.
type outputEssence struct {
	id           OutputID
	idMutex      sync.RWMutex
	amount       uint64
	nativeTokens *TokenBalances
	conditions   UnlockConditions
	features     Features
}

// outputEssenceFromMarshalUtil parses the shared properties of an Output from the given MarshalUtil.
func outputEssenceFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (essence outputEssence, err error) {
	if essence.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.nativeTokens, err = TokenBalancesFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse native token balances: %w", err)
		return
	}
	if essence.conditions, err = UnlockConditionsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse unlock conditions: %w", err)
		return
	}
	if essence.features, err = FeaturesFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse features: %w", err)
		return
	}

	return
}

// bytes serializes the shared properties in their wire format order.
func (o *outputEssence) bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint64(o.amount)
	marshalUtil.WriteBytes(o.nativeTokens.Bytes())
	marshalUtil.WriteBytes(o.conditions.Bytes())
	marshalUtil.WriteBytes(o.features.Bytes())

	return marshalUtil.Bytes()
}

// clone copies the shared properties (the id is carried over unchanged).
func (o *outputEssence) clone() outputEssence {
	o.idMutex.RLock()
	defer o.idMutex.RUnlock()

	conditions := make(UnlockConditions, len(o.conditions))
	copy(conditions, o.conditions)
	features := make(Features, len(o.features))
	copy(features, o.features)

	return outputEssence{
		id:           o.id,
		amount:       o.amount,
		nativeTokens: o.nativeTokens.Clone(),
		conditions:   conditions,
		features:     features,
	}
}

// ID returns the identifier of the Output that is used to address the Output in the UTXODAG.
func (o *outputEssence) ID() OutputID {
	o.idMutex.RLock()
	defer o.idMutex.RUnlock()

	return o.id
}

// setID sets the identifier of the Output.
func (o *outputEssence) setID(outputID OutputID) {
	o.idMutex.Lock()
	defer o.idMutex.Unlock()

	o.id = outputID
}

// Amount returns the amount of base tokens held by the Output.
func (o *outputEssence) Amount() uint64 {
	return o.amount
}

// NativeTokens returns the balances of native tokens held by the Output.
func (o *outputEssence) NativeTokens() *TokenBalances {
	return o.nativeTokens
}

// Conditions returns the UnlockConditions guarding the Output.
func (o *outputEssence) Conditions() UnlockConditions {
	return o.conditions
}

// Features returns the Features attached to the Output.
func (o *outputEssence) Features() Features {
	return o.features
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region output validation ////////////////////////////////////////////////////////////////////////////////////////////

// outputRules describes the protocol-defined allow-lists of a single OutputType.
type outputRules struct {
	allowedConditions  map[UnlockConditionType]bool
	requiredConditions []UnlockConditionType
	allowedFeatures    map[FeatureType]bool
}

var outputRulesByType = map[OutputType]outputRules{
	BasicOutputType: {
		allowedConditions: map[UnlockConditionType]bool{
			AddressUnlockConditionType:              true,
			StorageDepositReturnUnlockConditionType: true,
			TimelockUnlockConditionType:             true,
			ExpirationUnlockConditionType:           true,
		},
		requiredConditions: []UnlockConditionType{AddressUnlockConditionType},
		allowedFeatures: map[FeatureType]bool{
			SenderFeatureType:   true,
			MetadataFeatureType: true,
			TagFeatureType:      true,
		},
	},
	AliasOutputType: {
		allowedConditions: map[UnlockConditionType]bool{
			StateControllerAddressUnlockConditionType: true,
			GovernorAddressUnlockConditionType:        true,
		},
		requiredConditions: []UnlockConditionType{
			StateControllerAddressUnlockConditionType,
			GovernorAddressUnlockConditionType,
		},
		allowedFeatures: map[FeatureType]bool{
			SenderFeatureType:   true,
			IssuerFeatureType:   true,
			MetadataFeatureType: true,
		},
	},
	FoundryOutputType: {
		allowedConditions: map[UnlockConditionType]bool{
			ImmutableAliasAddressUnlockConditionType: true,
		},
		requiredConditions: []UnlockConditionType{ImmutableAliasAddressUnlockConditionType},
		allowedFeatures: map[FeatureType]bool{
			MetadataFeatureType: true,
		},
	},
	NFTOutputType: {
		allowedConditions: map[UnlockConditionType]bool{
			AddressUnlockConditionType:              true,
			StorageDepositReturnUnlockConditionType: true,
			TimelockUnlockConditionType:             true,
			ExpirationUnlockConditionType:           true,
		},
		requiredConditions: []UnlockConditionType{AddressUnlockConditionType},
		allowedFeatures: map[FeatureType]bool{
			SenderFeatureType:   true,
			IssuerFeatureType:   true,
			MetadataFeatureType: true,
			TagFeatureType:      true,
		},
	},
}

// ValidateOutput checks a fully constructed Output against the structural rules of its type and the given ledger
// Parameters. It is the single validation path used by the constructors and by consumers that operate with
// non-default Parameters.
func ValidateOutput(output Output, params *Parameters) (err error) {
	rules, rulesExist := outputRulesByType[output.Type()]
	if !rulesExist {
		return errors.Errorf("unsupported OutputType (%s): %w", output.Type(), ErrInvalidOutput)
	}

	if output.Amount() == 0 {
		return errors.Errorf("amount of %s must be strictly positive: %w", output.Type(), ErrInvalidOutput)
	}
	if output.Amount() > params.TokenSupply {
		return errors.Errorf("amount of %s exceeds the token supply of %d: %w", output.Type(), params.TokenSupply, ErrInvalidOutput)
	}

	for _, condition := range output.Conditions() {
		if !rules.allowedConditions[condition.Type()] {
			return errors.Errorf("%s does not allow an unlock condition of type %s: %w", output.Type(), condition.Type(), ErrInvalidOutput)
		}
	}
	for _, requiredType := range rules.requiredConditions {
		if _, exists := output.Conditions().Get(requiredType); !exists {
			return errors.Errorf("%s requires an unlock condition of type %s: %w", output.Type(), requiredType, ErrInvalidOutput)
		}
	}

	for _, feature := range output.Features() {
		if !rules.allowedFeatures[feature.Type()] {
			return errors.Errorf("%s does not allow a feature of type %s: %w", output.Type(), feature.Type(), ErrInvalidOutput)
		}
	}

	if minDeposit := params.MinDeposit(len(output.Bytes())); output.Amount() < minDeposit {
		return errors.Errorf("amount of %s does not cover the minimum storage deposit of %d: %w", output.Type(), minDeposit, ErrInvalidOutput)
	}

	return nil
}

// MinStorageDeposit returns the minimum amount of base tokens the given Output has to hold under the given
// Parameters to be storable on the ledger.
func MinStorageDeposit(output Output, params *Parameters) uint64 {
	return params.MinDeposit(len(output.Bytes()))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BasicOutput //////////////////////////////////////////////////////////////////////////////////////////////////

// BasicOutput is an Output holding base tokens and native tokens that are unlockable by an Address.
type BasicOutput struct {
	outputEssence
}

// NewBasicOutput creates a new BasicOutput and validates it against the default ledger Parameters. The
// UnlockConditions have to contain an AddressUnlockCondition.
func NewBasicOutput(amount uint64, nativeTokens *TokenBalances, conditions UnlockConditions, features Features) (output *BasicOutput, err error) {
	output = &BasicOutput{}
	if output.outputEssence, err = newOutputEssence(amount, nativeTokens, conditions, features); err != nil {
		return nil, err
	}
	if err = ValidateOutput(output, DefaultParameters()); err != nil {
		return nil, err
	}

	return output, nil
}

// BasicOutputFromMarshalUtil parses a BasicOutput from the given MarshalUtil.
func BasicOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *BasicOutput, err error) {
	if err = consumeOutputType(marshalUtil, BasicOutputType); err != nil {
		return
	}

	output = &BasicOutput{}
	if output.outputEssence, err = outputEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse BasicOutput: %w", err)
		return
	}

	return
}

// SetID allows to set the identifier of the Output.
func (b *BasicOutput) SetID(outputID OutputID) Output {
	b.setID(outputID)

	return b
}

// Type returns the OutputType of the Output.
func (b *BasicOutput) Type() OutputType {
	return BasicOutputType
}

// UnlockAddressNow returns the Address that is allowed to spend the Output at the given point in time.
func (b *BasicOutput) UnlockAddressNow(now time.Time) Address {
	return b.conditions.UnlockAddressNow(now)
}

// Bytes returns a marshaled version of the Output.
func (b *BasicOutput) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(BasicOutputType))
	marshalUtil.WriteBytes(b.outputEssence.bytes())

	return marshalUtil.Bytes()
}

// Clone creates a copy of the Output.
func (b *BasicOutput) Clone() Output {
	return &BasicOutput{outputEssence: b.outputEssence.clone()}
}

// String returns a human readable version of the Output.
func (b *BasicOutput) String() string {
	return stringify.Struct("BasicOutput",
		stringify.StructField("id", b.ID()),
		stringify.StructField("amount", b.amount),
		stringify.StructField("nativeTokens", b.nativeTokens),
		stringify.StructField("conditions", b.conditions),
		stringify.StructField("features", b.features),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Output = &BasicOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AliasOutput //////////////////////////////////////////////////////////////////////////////////////////////////

// AliasIDLength contains the amount of bytes of a marshaled AliasID.
const AliasIDLength = 32

// AliasID is the unique identifier of an alias account.
type AliasID [AliasIDLength]byte

// Base58 returns a base58 encoded version of the AliasID.
func (a AliasID) Base58() string {
	return base58.Encode(a[:])
}

// String creates a human readable version of the AliasID.
func (a AliasID) String() string {
	return "AliasID(" + a.Base58() + ")"
}

// AliasOutput is an Output describing a stateful alias account that is controlled by a state controller and a
// governor.
type AliasOutput struct {
	outputEssence
	aliasID    AliasID
	stateIndex uint32
}

// NewAliasOutput creates a new AliasOutput and validates it against the default ledger Parameters. The
// UnlockConditions have to contain both a StateControllerAddressUnlockCondition and a
// GovernorAddressUnlockCondition.
func NewAliasOutput(amount uint64, nativeTokens *TokenBalances, aliasID AliasID, stateIndex uint32, conditions UnlockConditions, features Features) (output *AliasOutput, err error) {
	output = &AliasOutput{
		aliasID:    aliasID,
		stateIndex: stateIndex,
	}
	if output.outputEssence, err = newOutputEssence(amount, nativeTokens, conditions, features); err != nil {
		return nil, err
	}
	if err = ValidateOutput(output, DefaultParameters()); err != nil {
		return nil, err
	}

	return output, nil
}

// AliasOutputFromMarshalUtil parses an AliasOutput from the given MarshalUtil.
func AliasOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *AliasOutput, err error) {
	if err = consumeOutputType(marshalUtil, AliasOutputType); err != nil {
		return
	}

	output = &AliasOutput{}
	aliasIDBytes, err := marshalUtil.ReadBytes(AliasIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse AliasID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(output.aliasID[:], aliasIDBytes)
	if output.stateIndex, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse state index (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.outputEssence, err = outputEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AliasOutput: %w", err)
		return
	}

	return
}

// AliasID returns the identifier of the alias account described by the Output.
func (a *AliasOutput) AliasID() AliasID {
	return a.aliasID
}

// StateIndex returns the state index of the alias account.
func (a *AliasOutput) StateIndex() uint32 {
	return a.stateIndex
}

// SetID allows to set the identifier of the Output.
func (a *AliasOutput) SetID(outputID OutputID) Output {
	a.setID(outputID)

	return a
}

// Type returns the OutputType of the Output.
func (a *AliasOutput) Type() OutputType {
	return AliasOutputType
}

// UnlockAddressNow returns the Address that is allowed to spend the Output at the given point in time. State
// transitions of an alias are authorized by the state controller.
func (a *AliasOutput) UnlockAddressNow(_ time.Time) Address {
	if stateController := a.conditions.StateControllerAddress(); stateController != nil {
		return stateController.StateControllerAddress()
	}

	return nil
}

// Bytes returns a marshaled version of the Output.
func (a *AliasOutput) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(AliasOutputType))
	marshalUtil.WriteBytes(a.aliasID[:])
	marshalUtil.WriteUint32(a.stateIndex)
	marshalUtil.WriteBytes(a.outputEssence.bytes())

	return marshalUtil.Bytes()
}

// Clone creates a copy of the Output.
func (a *AliasOutput) Clone() Output {
	return &AliasOutput{
		outputEssence: a.outputEssence.clone(),
		aliasID:       a.aliasID,
		stateIndex:    a.stateIndex,
	}
}

// String returns a human readable version of the Output.
func (a *AliasOutput) String() string {
	return stringify.Struct("AliasOutput",
		stringify.StructField("id", a.ID()),
		stringify.StructField("aliasID", a.aliasID),
		stringify.StructField("stateIndex", a.stateIndex),
		stringify.StructField("amount", a.amount),
		stringify.StructField("nativeTokens", a.nativeTokens),
		stringify.StructField("conditions", a.conditions),
		stringify.StructField("features", a.features),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Output = &AliasOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region FoundryOutput ////////////////////////////////////////////////////////////////////////////////////////////////

// FoundryOutput is an Output controlling the supply of a native token. It is perpetually bound to the alias account
// that created it.
type FoundryOutput struct {
	outputEssence
	serialNumber uint32
}

// NewFoundryOutput creates a new FoundryOutput and validates it against the default ledger Parameters. The
// UnlockConditions have to contain an ImmutableAliasAddressUnlockCondition.
func NewFoundryOutput(amount uint64, nativeTokens *TokenBalances, serialNumber uint32, conditions UnlockConditions, features Features) (output *FoundryOutput, err error) {
	output = &FoundryOutput{
		serialNumber: serialNumber,
	}
	if output.outputEssence, err = newOutputEssence(amount, nativeTokens, conditions, features); err != nil {
		return nil, err
	}
	if err = ValidateOutput(output, DefaultParameters()); err != nil {
		return nil, err
	}

	return output, nil
}

// FoundryOutputFromMarshalUtil parses a FoundryOutput from the given MarshalUtil.
func FoundryOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *FoundryOutput, err error) {
	if err = consumeOutputType(marshalUtil, FoundryOutputType); err != nil {
		return
	}

	output = &FoundryOutput{}
	if output.serialNumber, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse serial number (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.outputEssence, err = outputEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse FoundryOutput: %w", err)
		return
	}

	return
}

// SerialNumber returns the serial number of the foundry within its controlling alias account.
func (f *FoundryOutput) SerialNumber() uint32 {
	return f.serialNumber
}

// SetID allows to set the identifier of the Output.
func (f *FoundryOutput) SetID(outputID OutputID) Output {
	f.setID(outputID)

	return f
}

// Type returns the OutputType of the Output.
func (f *FoundryOutput) Type() OutputType {
	return FoundryOutputType
}

// UnlockAddressNow returns the Address that is allowed to spend the Output at the given point in time.
func (f *FoundryOutput) UnlockAddressNow(_ time.Time) Address {
	if immutableAlias := f.conditions.ImmutableAliasAddress(); immutableAlias != nil {
		return immutableAlias.AliasAddress()
	}

	return nil
}

// Bytes returns a marshaled version of the Output.
func (f *FoundryOutput) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(FoundryOutputType))
	marshalUtil.WriteUint32(f.serialNumber)
	marshalUtil.WriteBytes(f.outputEssence.bytes())

	return marshalUtil.Bytes()
}

// Clone creates a copy of the Output.
func (f *FoundryOutput) Clone() Output {
	return &FoundryOutput{
		outputEssence: f.outputEssence.clone(),
		serialNumber:  f.serialNumber,
	}
}

// String returns a human readable version of the Output.
func (f *FoundryOutput) String() string {
	return stringify.Struct("FoundryOutput",
		stringify.StructField("id", f.ID()),
		stringify.StructField("serialNumber", f.serialNumber),
		stringify.StructField("amount", f.amount),
		stringify.StructField("nativeTokens", f.nativeTokens),
		stringify.StructField("conditions", f.conditions),
		stringify.StructField("features", f.features),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Output = &FoundryOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NFTOutput ////////////////////////////////////////////////////////////////////////////////////////////////////

// NFTIDLength contains the amount of bytes of a marshaled NFTID.
const NFTIDLength = 32

// NFTID is the unique identifier of a non-fungible token.
type NFTID [NFTIDLength]byte

// Base58 returns a base58 encoded version of the NFTID.
func (n NFTID) Base58() string {
	return base58.Encode(n[:])
}

// String creates a human readable version of the NFTID.
func (n NFTID) String() string {
	return "NFTID(" + n.Base58() + ")"
}

// NFTOutput is an Output describing a unique non-fungible token that is unlockable by an Address.
type NFTOutput struct {
	outputEssence
	nftID NFTID
}

// NewNFTOutput creates a new NFTOutput and validates it against the default ledger Parameters. The UnlockConditions
// have to contain an AddressUnlockCondition.
func NewNFTOutput(amount uint64, nativeTokens *TokenBalances, nftID NFTID, conditions UnlockConditions, features Features) (output *NFTOutput, err error) {
	output = &NFTOutput{
		nftID: nftID,
	}
	if output.outputEssence, err = newOutputEssence(amount, nativeTokens, conditions, features); err != nil {
		return nil, err
	}
	if err = ValidateOutput(output, DefaultParameters()); err != nil {
		return nil, err
	}

	return output, nil
}

// NFTOutputFromMarshalUtil parses an NFTOutput from the given MarshalUtil.
func NFTOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *NFTOutput, err error) {
	if err = consumeOutputType(marshalUtil, NFTOutputType); err != nil {
		return
	}

	output = &NFTOutput{}
	nftIDBytes, err := marshalUtil.ReadBytes(NFTIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse NFTID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(output.nftID[:], nftIDBytes)
	if output.outputEssence, err = outputEssenceFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse NFTOutput: %w", err)
		return
	}

	return
}

// NFTID returns the identifier of the non-fungible token described by the Output.
func (n *NFTOutput) NFTID() NFTID {
	return n.nftID
}

// SetID allows to set the identifier of the Output.
func (n *NFTOutput) SetID(outputID OutputID) Output {
	n.setID(outputID)

	return n
}

// Type returns the OutputType of the Output.
func (n *NFTOutput) Type() OutputType {
	return NFTOutputType
}

// UnlockAddressNow returns the Address that is allowed to spend the Output at the given point in time.
func (n *NFTOutput) UnlockAddressNow(now time.Time) Address {
	return n.conditions.UnlockAddressNow(now)
}

// Bytes returns a marshaled version of the Output.
func (n *NFTOutput) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(NFTOutputType))
	marshalUtil.WriteBytes(n.nftID[:])
	marshalUtil.WriteBytes(n.outputEssence.bytes())

	return marshalUtil.Bytes()
}

// Clone creates a copy of the Output.
func (n *NFTOutput) Clone() Output {
	return &NFTOutput{
		outputEssence: n.outputEssence.clone(),
		nftID:         n.nftID,
	}
}

// String returns a human readable version of the Output.
func (n *NFTOutput) String() string {
	return stringify.Struct("NFTOutput",
		stringify.StructField("id", n.ID()),
		stringify.StructField("nftID", n.nftID),
		stringify.StructField("amount", n.amount),
		stringify.StructField("nativeTokens", n.nativeTokens),
		stringify.StructField("conditions", n.conditions),
		stringify.StructField("features", n.features),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Output = &NFTOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Outputs //////////////////////////////////////////////////////////////////////////////////////////////////////

// Outputs represents a list of Outputs. Unlike Inputs the order of the list is meaningful (it determines the Output
// indexes inside a Transaction) and is therefore preserved.
type Outputs []Output

// NewOutputs creates a list of Outputs from the given Outputs. Exact duplicates are a construction error.
func NewOutputs(optionalOutputs ...Output) (outputs Outputs, err error) {
	if len(optionalOutputs) == 0 {
		err = errors.Errorf("at least one output is required: %w", ErrInvalidOutput)
		return
	}

	seenOutputs := make(map[string]bool)
	for _, output := range optionalOutputs {
		serializedOutput := string(output.Bytes())
		if seenOutputs[serializedOutput] {
			err = errors.Errorf("duplicate output in list: %w", ErrInvalidOutput)
			return
		}
		seenOutputs[serializedOutput] = true
	}

	outputs = make(Outputs, len(optionalOutputs))
	copy(outputs, optionalOutputs)

	return
}

// OutputsFromMarshalUtil unmarshals a list of Outputs using a MarshalUtil (for easier unmarshaling).
func OutputsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (outputs Outputs, err error) {
	outputsCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse outputs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if outputsCount == 0 {
		err = errors.Errorf("empty outputs list: %w", cerrors.ErrParseBytesFailed)
		return
	}

	outputs = make(Outputs, outputsCount)
	for i := uint16(0); i < outputsCount; i++ {
		if outputs[i], err = OutputFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Output: %w", err)
			return
		}
	}

	return
}

// Clone creates a copy of the Outputs.
func (o Outputs) Clone() (clonedOutputs Outputs) {
	clonedOutputs = make(Outputs, len(o))
	for i, output := range o {
		clonedOutputs[i] = output.Clone()
	}

	return
}

// Bytes returns a marshaled version of the Outputs.
func (o Outputs) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(o)))
	for _, output := range o {
		marshalUtil.WriteBytes(output.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Outputs.
func (o Outputs) String() string {
	structBuilder := stringify.StructBuilder("Outputs")
	for i, output := range o {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), output))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// newOutputEssence bundles the shared properties of a new Output, normalizing a nil TokenBalances to an empty set.
// The conditions and features are brought into the canonical order of the wire format regardless of the order the
// caller supplied them in, duplicate variants are a construction error.
func newOutputEssence(amount uint64, nativeTokens *TokenBalances, conditions UnlockConditions, features Features) (essence outputEssence, err error) {
	if nativeTokens == nil {
		nativeTokens, _ = NewTokenBalances(nil)
	}
	if conditions, err = NewUnlockConditions(conditions...); err != nil {
		return
	}
	if features, err = NewFeatures(features...); err != nil {
		return
	}

	return outputEssence{
		amount:       amount,
		nativeTokens: nativeTokens,
		conditions:   conditions,
		features:     features,
	}, nil
}

// consumeOutputType reads the type byte of an Output and verifies that it matches the expectation.
func consumeOutputType(marshalUtil *marshalutil.MarshalUtil, expectedType OutputType) (err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		return errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	if OutputType(outputType) != expectedType {
		return errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
	}

	return
}

// OutputsEqual returns true if the two Outputs serialize to the same bytes.
func OutputsEqual(a, b Output) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}
