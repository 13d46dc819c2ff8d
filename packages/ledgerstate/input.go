package ledgerstate

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region Input ////////////////////////////////////////////////////////////////////////////////////////////////////////

// UTXOInputType is the type of an Input that references an unspent Output.
const UTXOInputType InputType = iota

// InputType represents the type of an Input.
type InputType byte

// String returns a human readable representation of the InputType.
func (i InputType) String() string {
	return [...]string{
		"UTXOInputType",
	}[i]
}

// Input is a generic interface for different kinds of Inputs.
type Input interface {
	// Type returns the type of the Input.
	Type() InputType

	// Bytes returns a marshaled version of the Input.
	Bytes() []byte

	// String returns a human readable version of the Input.
	String() string

	// Compare offers a comparator for Inputs which returns -1 if other Input is bigger, 1 if it is smaller and 0 if
	// they are the same.
	Compare(other Input) int
}

// InputFromMarshalUtil unmarshals an Input using a MarshalUtil (for easier unmarshaling).
func InputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (input Input, err error) {
	inputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse InputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch InputType(inputType) {
	case UTXOInputType:
		return UTXOInputFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported InputType (%X): %w", inputType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Inputs ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Inputs represents a collection of Inputs that ensures a deterministic order: the Inputs are sorted lexicographically
// by their serialized form with duplicates removed.
type Inputs []Input

// NewInputs returns a deterministically ordered collection of Inputs with duplicates removed.
func NewInputs(optionalInputs ...Input) (inputs Inputs) {
	seenInputs := make(map[string]bool)
	sortedInputs := make([]struct {
		input           Input
		serializedInput string
	}, 0, len(optionalInputs))
	for _, input := range optionalInputs {
		serializedInput := string(input.Bytes())
		if seenInputs[serializedInput] {
			continue
		}
		seenInputs[serializedInput] = true

		sortedInputs = append(sortedInputs, struct {
			input           Input
			serializedInput string
		}{input, serializedInput})
	}

	sort.Slice(sortedInputs, func(i, j int) bool {
		return sortedInputs[i].serializedInput < sortedInputs[j].serializedInput
	})

	inputs = make(Inputs, len(sortedInputs))
	for i, sortedInput := range sortedInputs {
		inputs[i] = sortedInput.input
	}

	return
}

// InputsFromMarshalUtil unmarshals a collection of Inputs using a MarshalUtil (for easier unmarshaling). The parser
// enforces the deterministic ordering of the wire format.
func InputsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (inputs Inputs, err error) {
	inputsCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse inputs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if inputsCount == 0 {
		err = errors.Errorf("empty inputs list: %w", cerrors.ErrParseBytesFailed)
		return
	}

	var previousInput Input
	inputs = make(Inputs, inputsCount)
	for i := uint16(0); i < inputsCount; i++ {
		if inputs[i], err = InputFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Input: %w", err)
			return
		}

		if previousInput != nil && previousInput.Compare(inputs[i]) != -1 {
			err = errors.Errorf("order of inputs is invalid: %w", cerrors.ErrParseBytesFailed)
			return
		}
		previousInput = inputs[i]
	}

	return
}

// Bytes returns a marshaled version of the Inputs.
func (i Inputs) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(i)))
	for _, input := range i {
		marshalUtil.WriteBytes(input.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Inputs.
func (i Inputs) String() string {
	structBuilder := stringify.StructBuilder("Inputs")
	for index, input := range i {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(index), input))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UTXOInput ////////////////////////////////////////////////////////////////////////////////////////////////////

// UTXOInput represents a reference to an unspent Output that is consumed by a Transaction.
type UTXOInput struct {
	referencedOutputID OutputID
}

// NewUTXOInput is the constructor for UTXOInputs.
func NewUTXOInput(referencedOutputID OutputID) *UTXOInput {
	return &UTXOInput{referencedOutputID: referencedOutputID}
}

// UTXOInputFromMarshalUtil unmarshals a UTXOInput using a MarshalUtil (for easier unmarshaling).
func UTXOInputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (input *UTXOInput, err error) {
	inputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse InputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if InputType(inputType) != UTXOInputType {
		err = errors.Errorf("invalid InputType (%X): %w", inputType, cerrors.ErrParseBytesFailed)
		return
	}

	input = &UTXOInput{}
	if input.referencedOutputID, err = OutputIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse referenced OutputID: %w", err)
		return
	}

	return
}

// Type returns the type of the Input.
func (u *UTXOInput) Type() InputType {
	return UTXOInputType
}

// ReferencedOutputID returns the OutputID that this Input references.
func (u *UTXOInput) ReferencedOutputID() OutputID {
	return u.referencedOutputID
}

// Bytes returns a marshaled version of the Input.
func (u *UTXOInput) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(UTXOInputType)}, u.referencedOutputID.Bytes())
}

// Compare offers a comparator for Inputs which returns -1 if the other Input is bigger, 1 if it is smaller and 0 if
// they are the same.
func (u *UTXOInput) Compare(other Input) int {
	return bytes.Compare(u.Bytes(), other.Bytes())
}

// String returns a human readable version of the Input.
func (u *UTXOInput) String() string {
	return stringify.Struct("UTXOInput",
		stringify.StructField("referencedOutputID", u.referencedOutputID),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Input = &UTXOInput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
