package ledgerstate

import (
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region UnlockConditionType //////////////////////////////////////////////////////////////////////////////////////////

const (
	// AddressUnlockConditionType represents a condition that is unlocked by a signature for a specific Address.
	AddressUnlockConditionType UnlockConditionType = iota

	// StorageDepositReturnUnlockConditionType represents a condition that forces the consumer to return the storage
	// deposit to the sender.
	StorageDepositReturnUnlockConditionType

	// TimelockUnlockConditionType represents a condition that prevents an output from being spent before a point in time.
	TimelockUnlockConditionType

	// ExpirationUnlockConditionType represents a condition that returns the output to a fallback Address after a deadline.
	ExpirationUnlockConditionType

	// StateControllerAddressUnlockConditionType represents the state controller of an alias output.
	StateControllerAddressUnlockConditionType

	// GovernorAddressUnlockConditionType represents the governor of an alias output.
	GovernorAddressUnlockConditionType

	// ImmutableAliasAddressUnlockConditionType represents the immutable alias controlling a foundry output.
	ImmutableAliasAddressUnlockConditionType
)

// UnlockConditionType represents the type of an UnlockCondition. The numeric value doubles as the canonical ordering
// discriminant of the wire format.
type UnlockConditionType byte

// String returns a human readable representation of the UnlockConditionType.
func (u UnlockConditionType) String() string {
	return [...]string{
		"AddressUnlockCondition",
		"StorageDepositReturnUnlockCondition",
		"TimelockUnlockCondition",
		"ExpirationUnlockCondition",
		"StateControllerAddressUnlockCondition",
		"GovernorAddressUnlockCondition",
		"ImmutableAliasAddressUnlockCondition",
	}[u]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockCondition //////////////////////////////////////////////////////////////////////////////////////////////

// UnlockCondition is the interface for the closed set of conditions that have to be fulfilled to spend an Output.
type UnlockCondition interface {
	// Type returns the UnlockConditionType which doubles as the canonical ordering discriminant.
	Type() UnlockConditionType

	// Bytes returns a marshaled version of the UnlockCondition.
	Bytes() []byte

	// String returns a human readable version of the UnlockCondition for debug purposes.
	String() string
}

// UnlockConditionFromMarshalUtil unmarshals an UnlockCondition using a MarshalUtil (for easier unmarshaling).
func UnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockCondition UnlockCondition, err error) {
	conditionType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse UnlockConditionType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch UnlockConditionType(conditionType) {
	case AddressUnlockConditionType:
		return AddressUnlockConditionFromMarshalUtil(marshalUtil)
	case StorageDepositReturnUnlockConditionType:
		return StorageDepositReturnUnlockConditionFromMarshalUtil(marshalUtil)
	case TimelockUnlockConditionType:
		return TimelockUnlockConditionFromMarshalUtil(marshalUtil)
	case ExpirationUnlockConditionType:
		return ExpirationUnlockConditionFromMarshalUtil(marshalUtil)
	case StateControllerAddressUnlockConditionType:
		return StateControllerAddressUnlockConditionFromMarshalUtil(marshalUtil)
	case GovernorAddressUnlockConditionType:
		return GovernorAddressUnlockConditionFromMarshalUtil(marshalUtil)
	case ImmutableAliasAddressUnlockConditionType:
		return ImmutableAliasAddressUnlockConditionFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported UnlockConditionType (%X): %w", conditionType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockConditions /////////////////////////////////////////////////////////////////////////////////////////////

// UnlockConditions is the canonically ordered collection of UnlockConditions of an Output: ascending by type with no
// duplicate variants. The ordering is part of the wire format and independent of the order the conditions were
// supplied in.
type UnlockConditions []UnlockCondition

// NewUnlockConditions creates a canonically ordered collection of UnlockConditions. Supplying the same variant twice
// is a construction error.
func NewUnlockConditions(optionalConditions ...UnlockCondition) (unlockConditions UnlockConditions, err error) {
	seenTypes := make(map[UnlockConditionType]bool)
	for _, condition := range optionalConditions {
		if seenTypes[condition.Type()] {
			err = errors.Errorf("duplicate unlock condition %s: %w", condition.Type(), ErrInvalidOutput)
			return
		}
		seenTypes[condition.Type()] = true
	}

	unlockConditions = make(UnlockConditions, len(optionalConditions))
	copy(unlockConditions, optionalConditions)
	sort.Slice(unlockConditions, func(i, j int) bool {
		return unlockConditions[i].Type() < unlockConditions[j].Type()
	})

	return
}

// UnlockConditionsFromMarshalUtil unmarshals a collection of UnlockConditions using a MarshalUtil. The parser
// enforces the canonical ascending ordering of the wire format.
func UnlockConditionsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockConditions UnlockConditions, err error) {
	conditionsCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse unlock conditions count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	unlockConditions = make(UnlockConditions, conditionsCount)
	for i := uint16(0); i < conditionsCount; i++ {
		if unlockConditions[i], err = UnlockConditionFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse UnlockCondition: %w", err)
			return
		}

		if i > 0 && unlockConditions[i-1].Type() >= unlockConditions[i].Type() {
			err = errors.Errorf("order of unlock conditions is invalid: %w", cerrors.ErrParseBytesFailed)
			return
		}
	}

	return
}

// Get returns the UnlockCondition of the given type and whether it is present in the collection.
func (u UnlockConditions) Get(conditionType UnlockConditionType) (unlockCondition UnlockCondition, exists bool) {
	for _, condition := range u {
		if condition.Type() == conditionType {
			return condition, true
		}
	}

	return nil, false
}

// Address returns the AddressUnlockCondition if it is present in the collection.
func (u UnlockConditions) Address() (condition *AddressUnlockCondition) {
	if untyped, exists := u.Get(AddressUnlockConditionType); exists {
		condition = untyped.(*AddressUnlockCondition)
	}

	return
}

// StorageDepositReturn returns the StorageDepositReturnUnlockCondition if it is present in the collection.
func (u UnlockConditions) StorageDepositReturn() (condition *StorageDepositReturnUnlockCondition) {
	if untyped, exists := u.Get(StorageDepositReturnUnlockConditionType); exists {
		condition = untyped.(*StorageDepositReturnUnlockCondition)
	}

	return
}

// Timelock returns the TimelockUnlockCondition if it is present in the collection.
func (u UnlockConditions) Timelock() (condition *TimelockUnlockCondition) {
	if untyped, exists := u.Get(TimelockUnlockConditionType); exists {
		condition = untyped.(*TimelockUnlockCondition)
	}

	return
}

// Expiration returns the ExpirationUnlockCondition if it is present in the collection.
func (u UnlockConditions) Expiration() (condition *ExpirationUnlockCondition) {
	if untyped, exists := u.Get(ExpirationUnlockConditionType); exists {
		condition = untyped.(*ExpirationUnlockCondition)
	}

	return
}

// StateControllerAddress returns the StateControllerAddressUnlockCondition if it is present in the collection.
func (u UnlockConditions) StateControllerAddress() (condition *StateControllerAddressUnlockCondition) {
	if untyped, exists := u.Get(StateControllerAddressUnlockConditionType); exists {
		condition = untyped.(*StateControllerAddressUnlockCondition)
	}

	return
}

// GovernorAddress returns the GovernorAddressUnlockCondition if it is present in the collection.
func (u UnlockConditions) GovernorAddress() (condition *GovernorAddressUnlockCondition) {
	if untyped, exists := u.Get(GovernorAddressUnlockConditionType); exists {
		condition = untyped.(*GovernorAddressUnlockCondition)
	}

	return
}

// ImmutableAliasAddress returns the ImmutableAliasAddressUnlockCondition if it is present in the collection.
func (u UnlockConditions) ImmutableAliasAddress() (condition *ImmutableAliasAddressUnlockCondition) {
	if untyped, exists := u.Get(ImmutableAliasAddressUnlockConditionType); exists {
		condition = untyped.(*ImmutableAliasAddressUnlockCondition)
	}

	return
}

// UnlockAddressNow returns the Address that is allowed to spend the guarded Output at the given point in time,
// honoring an eventual ExpirationUnlockCondition.
func (u UnlockConditions) UnlockAddressNow(now time.Time) (unlockAddress Address) {
	addressCondition := u.Address()
	if addressCondition != nil {
		unlockAddress = addressCondition.UnlockAddress()
	}

	if expiration := u.Expiration(); expiration != nil && !now.Before(expiration.Deadline()) {
		unlockAddress = expiration.ReturnAddress()
	}

	return
}

// TimeLockedNow returns true if the collection contains a TimelockUnlockCondition that is still active at the given
// point in time.
func (u UnlockConditions) TimeLockedNow(now time.Time) bool {
	timelock := u.Timelock()

	return timelock != nil && now.Before(timelock.LockedUntil())
}

// Bytes returns a marshaled version of the UnlockConditions.
func (u UnlockConditions) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(u)))
	for _, condition := range u {
		marshalUtil.WriteBytes(condition.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockConditions.
func (u UnlockConditions) String() string {
	structBuilder := stringify.StructBuilder("UnlockConditions")
	for i, condition := range u {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), condition))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AddressUnlockCondition ///////////////////////////////////////////////////////////////////////////////////////

// AddressUnlockCondition is an UnlockCondition that is fulfilled by a signature for a specific Address.
type AddressUnlockCondition struct {
	unlockAddress Address
}

// NewAddressUnlockCondition creates a new AddressUnlockCondition for the given Address.
func NewAddressUnlockCondition(unlockAddress Address) *AddressUnlockCondition {
	return &AddressUnlockCondition{unlockAddress: unlockAddress}
}

// AddressUnlockConditionFromMarshalUtil parses an AddressUnlockCondition from the given MarshalUtil.
func AddressUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *AddressUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, AddressUnlockConditionType); err != nil {
		return
	}

	condition = &AddressUnlockCondition{}
	if condition.unlockAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse unlock Address: %w", err)
		return
	}

	return
}

// UnlockAddress returns the Address whose signature fulfills the condition.
func (a *AddressUnlockCondition) UnlockAddress() Address {
	return a.unlockAddress
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (a *AddressUnlockCondition) Type() UnlockConditionType {
	return AddressUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (a *AddressUnlockCondition) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(AddressUnlockConditionType)}, a.unlockAddress.Bytes())
}

// String returns a human readable version of the UnlockCondition.
func (a *AddressUnlockCondition) String() string {
	return stringify.Struct("AddressUnlockCondition",
		stringify.StructField("Address", a.unlockAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &AddressUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StorageDepositReturnUnlockCondition //////////////////////////////////////////////////////////////////////////

// StorageDepositReturnUnlockCondition is an UnlockCondition that forces the consumer of the Output to return the
// storage deposit to the given Address.
type StorageDepositReturnUnlockCondition struct {
	returnAddress Address
	amount        uint64
}

// NewStorageDepositReturnUnlockCondition creates a new StorageDepositReturnUnlockCondition.
func NewStorageDepositReturnUnlockCondition(returnAddress Address, amount uint64) *StorageDepositReturnUnlockCondition {
	return &StorageDepositReturnUnlockCondition{
		returnAddress: returnAddress,
		amount:        amount,
	}
}

// StorageDepositReturnUnlockConditionFromMarshalUtil parses a StorageDepositReturnUnlockCondition from the given MarshalUtil.
func StorageDepositReturnUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *StorageDepositReturnUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, StorageDepositReturnUnlockConditionType); err != nil {
		return
	}

	condition = &StorageDepositReturnUnlockCondition{}
	if condition.returnAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse return Address: %w", err)
		return
	}
	if condition.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse return amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// ReturnAddress returns the Address the storage deposit has to be returned to.
func (s *StorageDepositReturnUnlockCondition) ReturnAddress() Address {
	return s.returnAddress
}

// Amount returns the amount of base tokens that has to be returned.
func (s *StorageDepositReturnUnlockCondition) Amount() uint64 {
	return s.amount
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (s *StorageDepositReturnUnlockCondition) Type() UnlockConditionType {
	return StorageDepositReturnUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (s *StorageDepositReturnUnlockCondition) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(StorageDepositReturnUnlockConditionType))
	marshalUtil.WriteBytes(s.returnAddress.Bytes())
	marshalUtil.WriteUint64(s.amount)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockCondition.
func (s *StorageDepositReturnUnlockCondition) String() string {
	return stringify.Struct("StorageDepositReturnUnlockCondition",
		stringify.StructField("ReturnAddress", s.returnAddress),
		stringify.StructField("Amount", s.amount),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &StorageDepositReturnUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TimelockUnlockCondition //////////////////////////////////////////////////////////////////////////////////////

// TimelockUnlockCondition is an UnlockCondition that prevents an Output from being spent before a point in time.
type TimelockUnlockCondition struct {
	lockedUntil time.Time
}

// NewTimelockUnlockCondition creates a new TimelockUnlockCondition.
func NewTimelockUnlockCondition(lockedUntil time.Time) *TimelockUnlockCondition {
	return &TimelockUnlockCondition{lockedUntil: lockedUntil}
}

// TimelockUnlockConditionFromMarshalUtil parses a TimelockUnlockCondition from the given MarshalUtil.
func TimelockUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *TimelockUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, TimelockUnlockConditionType); err != nil {
		return
	}

	condition = &TimelockUnlockCondition{}
	if condition.lockedUntil, err = marshalUtil.ReadTime(); err != nil {
		err = errors.Errorf("failed to parse timelock (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// LockedUntil returns the point in time the Output stays unspendable until.
func (t *TimelockUnlockCondition) LockedUntil() time.Time {
	return t.lockedUntil
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (t *TimelockUnlockCondition) Type() UnlockConditionType {
	return TimelockUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (t *TimelockUnlockCondition) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(TimelockUnlockConditionType))
	marshalUtil.WriteTime(t.lockedUntil)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockCondition.
func (t *TimelockUnlockCondition) String() string {
	return stringify.Struct("TimelockUnlockCondition",
		stringify.StructField("LockedUntil", t.lockedUntil),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &TimelockUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ExpirationUnlockCondition ////////////////////////////////////////////////////////////////////////////////////

// ExpirationUnlockCondition is an UnlockCondition that makes an Output spendable by its return Address once a
// deadline has passed.
type ExpirationUnlockCondition struct {
	returnAddress Address
	deadline      time.Time
}

// NewExpirationUnlockCondition creates a new ExpirationUnlockCondition.
func NewExpirationUnlockCondition(returnAddress Address, deadline time.Time) *ExpirationUnlockCondition {
	return &ExpirationUnlockCondition{
		returnAddress: returnAddress,
		deadline:      deadline,
	}
}

// ExpirationUnlockConditionFromMarshalUtil parses an ExpirationUnlockCondition from the given MarshalUtil.
func ExpirationUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *ExpirationUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, ExpirationUnlockConditionType); err != nil {
		return
	}

	condition = &ExpirationUnlockCondition{}
	if condition.returnAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse return Address: %w", err)
		return
	}
	if condition.deadline, err = marshalUtil.ReadTime(); err != nil {
		err = errors.Errorf("failed to parse expiration deadline (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// ReturnAddress returns the Address that can spend the Output after the deadline.
func (e *ExpirationUnlockCondition) ReturnAddress() Address {
	return e.returnAddress
}

// Deadline returns the point in time the ownership of the Output falls back to the return Address.
func (e *ExpirationUnlockCondition) Deadline() time.Time {
	return e.deadline
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (e *ExpirationUnlockCondition) Type() UnlockConditionType {
	return ExpirationUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (e *ExpirationUnlockCondition) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(ExpirationUnlockConditionType))
	marshalUtil.WriteBytes(e.returnAddress.Bytes())
	marshalUtil.WriteTime(e.deadline)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockCondition.
func (e *ExpirationUnlockCondition) String() string {
	return stringify.Struct("ExpirationUnlockCondition",
		stringify.StructField("ReturnAddress", e.returnAddress),
		stringify.StructField("Deadline", e.deadline),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &ExpirationUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StateControllerAddressUnlockCondition ////////////////////////////////////////////////////////////////////////

// StateControllerAddressUnlockCondition is an UnlockCondition that identifies the state controller of an alias output.
type StateControllerAddressUnlockCondition struct {
	stateControllerAddress Address
}

// NewStateControllerAddressUnlockCondition creates a new StateControllerAddressUnlockCondition.
func NewStateControllerAddressUnlockCondition(stateControllerAddress Address) *StateControllerAddressUnlockCondition {
	return &StateControllerAddressUnlockCondition{stateControllerAddress: stateControllerAddress}
}

// StateControllerAddressUnlockConditionFromMarshalUtil parses a StateControllerAddressUnlockCondition from the given MarshalUtil.
func StateControllerAddressUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *StateControllerAddressUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, StateControllerAddressUnlockConditionType); err != nil {
		return
	}

	condition = &StateControllerAddressUnlockCondition{}
	if condition.stateControllerAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse state controller Address: %w", err)
		return
	}

	return
}

// StateControllerAddress returns the Address that controls state transitions of the alias.
func (s *StateControllerAddressUnlockCondition) StateControllerAddress() Address {
	return s.stateControllerAddress
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (s *StateControllerAddressUnlockCondition) Type() UnlockConditionType {
	return StateControllerAddressUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (s *StateControllerAddressUnlockCondition) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(StateControllerAddressUnlockConditionType)}, s.stateControllerAddress.Bytes())
}

// String returns a human readable version of the UnlockCondition.
func (s *StateControllerAddressUnlockCondition) String() string {
	return stringify.Struct("StateControllerAddressUnlockCondition",
		stringify.StructField("StateControllerAddress", s.stateControllerAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &StateControllerAddressUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GovernorAddressUnlockCondition ///////////////////////////////////////////////////////////////////////////////

// GovernorAddressUnlockCondition is an UnlockCondition that identifies the governor of an alias output.
type GovernorAddressUnlockCondition struct {
	governorAddress Address
}

// NewGovernorAddressUnlockCondition creates a new GovernorAddressUnlockCondition.
func NewGovernorAddressUnlockCondition(governorAddress Address) *GovernorAddressUnlockCondition {
	return &GovernorAddressUnlockCondition{governorAddress: governorAddress}
}

// GovernorAddressUnlockConditionFromMarshalUtil parses a GovernorAddressUnlockCondition from the given MarshalUtil.
func GovernorAddressUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *GovernorAddressUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, GovernorAddressUnlockConditionType); err != nil {
		return
	}

	condition = &GovernorAddressUnlockCondition{}
	if condition.governorAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse governor Address: %w", err)
		return
	}

	return
}

// GovernorAddress returns the Address that controls governance transitions of the alias.
func (g *GovernorAddressUnlockCondition) GovernorAddress() Address {
	return g.governorAddress
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (g *GovernorAddressUnlockCondition) Type() UnlockConditionType {
	return GovernorAddressUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (g *GovernorAddressUnlockCondition) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(GovernorAddressUnlockConditionType)}, g.governorAddress.Bytes())
}

// String returns a human readable version of the UnlockCondition.
func (g *GovernorAddressUnlockCondition) String() string {
	return stringify.Struct("GovernorAddressUnlockCondition",
		stringify.StructField("GovernorAddress", g.governorAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &GovernorAddressUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ImmutableAliasAddressUnlockCondition /////////////////////////////////////////////////////////////////////////

// ImmutableAliasAddressUnlockCondition is an UnlockCondition that binds a foundry output to its controlling alias for
// the whole lifetime of the foundry.
type ImmutableAliasAddressUnlockCondition struct {
	aliasAddress *AliasAddress
}

// NewImmutableAliasAddressUnlockCondition creates a new ImmutableAliasAddressUnlockCondition.
func NewImmutableAliasAddressUnlockCondition(aliasAddress *AliasAddress) *ImmutableAliasAddressUnlockCondition {
	return &ImmutableAliasAddressUnlockCondition{aliasAddress: aliasAddress}
}

// ImmutableAliasAddressUnlockConditionFromMarshalUtil parses an ImmutableAliasAddressUnlockCondition from the given MarshalUtil.
func ImmutableAliasAddressUnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (condition *ImmutableAliasAddressUnlockCondition, err error) {
	if err = consumeConditionType(marshalUtil, ImmutableAliasAddressUnlockConditionType); err != nil {
		return
	}

	condition = &ImmutableAliasAddressUnlockCondition{}
	if condition.aliasAddress, err = AliasAddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse immutable AliasAddress: %w", err)
		return
	}

	return
}

// AliasAddress returns the AliasAddress that controls the foundry.
func (i *ImmutableAliasAddressUnlockCondition) AliasAddress() *AliasAddress {
	return i.aliasAddress
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (i *ImmutableAliasAddressUnlockCondition) Type() UnlockConditionType {
	return ImmutableAliasAddressUnlockConditionType
}

// Bytes returns a marshaled version of the UnlockCondition.
func (i *ImmutableAliasAddressUnlockCondition) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(ImmutableAliasAddressUnlockConditionType)}, i.aliasAddress.Bytes())
}

// String returns a human readable version of the UnlockCondition.
func (i *ImmutableAliasAddressUnlockCondition) String() string {
	return stringify.Struct("ImmutableAliasAddressUnlockCondition",
		stringify.StructField("AliasAddress", i.aliasAddress),
	)
}

// code contract (make sure the struct implements all required methods)
var _ UnlockCondition = &ImmutableAliasAddressUnlockCondition{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// consumeConditionType reads the type byte of an UnlockCondition and verifies that it matches the expectation.
func consumeConditionType(marshalUtil *marshalutil.MarshalUtil, expectedType UnlockConditionType) (err error) {
	conditionType, err := marshalUtil.ReadByte()
	if err != nil {
		return errors.Errorf("failed to parse UnlockConditionType (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	if UnlockConditionType(conditionType) != expectedType {
		return errors.Errorf("invalid UnlockConditionType (%X): %w", conditionType, cerrors.ErrParseBytesFailed)
	}

	return
}
