package sendoptions

import (
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// SendFundsOption is a function that provides an option for the SendFunds call.
type SendFundsOption func(options *SendFundsOptions) error

// Destination is an option for the SendFunds call that defines a recipient and the funds it is supposed to receive.
// The option can be repeated; the recipients keep the order in which they were supplied, which fixes the output
// indexes of the resulting transaction.
func Destination(addr string, amount uint64) SendFundsOption {
	return DestinationWithNativeTokens(addr, amount, nil)
}

// DestinationWithNativeTokens is a Destination that additionally transfers the given native token quantities.
func DestinationWithNativeTokens(addr string, amount uint64, nativeTokens map[ledgerstate.TokenID]*big.Int) SendFundsOption {
	return func(options *SendFundsOptions) error {
		if amount == 0 {
			return errors.New("the amount provided in the destinations needs to be larger than 0")
		}

		parsedAddress, err := ledgerstate.AddressFromBase58EncodedString(addr)
		if err != nil {
			return err
		}

		tokenBalances, err := ledgerstate.NewTokenBalances(nativeTokens)
		if err != nil {
			return err
		}

		options.Destinations = append(options.Destinations, &SendDestination{
			Address:      parsedAddress,
			Amount:       amount,
			NativeTokens: tokenBalances,
		})

		return nil
	}
}

// RemainderAddress is an option for the SendFunds call that defines the address the change is sent to. If it is not
// set the wallet chooses one of the consumed addresses.
func RemainderAddress(addr string) SendFundsOption {
	return func(options *SendFundsOptions) error {
		parsedAddress, err := ledgerstate.AddressFromBase58EncodedString(addr)
		if err != nil {
			return err
		}
		options.RemainderAddress = parsedAddress

		return nil
	}
}

// Metadata is an option for the SendFunds call that attaches a metadata feature to every created target output.
func Metadata(data []byte) SendFundsOption {
	return func(options *SendFundsOptions) error {
		metadataFeature, err := ledgerstate.NewMetadataFeature(data)
		if err != nil {
			return err
		}
		options.MetadataFeature = metadataFeature

		return nil
	}
}

// Tag is an option for the SendFunds call that attaches a tag feature to every created target output.
func Tag(tag []byte) SendFundsOption {
	return func(options *SendFundsOptions) error {
		tagFeature, err := ledgerstate.NewTagFeature(tag)
		if err != nil {
			return err
		}
		options.TagFeature = tagFeature

		return nil
	}
}

// AttachSender is an option for the SendFunds call that attaches a sender feature attesting the first consumed
// address to every created target output.
func AttachSender(attach bool) SendFundsOption {
	return func(options *SendFundsOptions) error {
		options.AttachSender = attach

		return nil
	}
}

// UsePendingOutputs is an option for the SendFunds call that allows the wallet to also consume outputs that were
// created by its own still unconfirmed transactions.
func UsePendingOutputs(usePendingOutputs bool) SendFundsOption {
	return func(options *SendFundsOptions) error {
		options.UsePendingOutputs = usePendingOutputs

		return nil
	}
}

// SendDestination describes a single recipient of a SendFunds call.
type SendDestination struct {
	Address      ledgerstate.Address
	Amount       uint64
	NativeTokens *ledgerstate.TokenBalances
}

// SendFundsOptions is a struct that is used to aggregate the optional parameters provided in the SendFunds call.
type SendFundsOptions struct {
	Destinations      []*SendDestination
	RemainderAddress  ledgerstate.Address
	MetadataFeature   *ledgerstate.MetadataFeature
	TagFeature        *ledgerstate.TagFeature
	AttachSender      bool
	UsePendingOutputs bool
}

// RequiredFunds derives the total funds that are required to satisfy all destinations of the call.
func (s *SendFundsOptions) RequiredFunds() (baseTokens uint64, nativeTokens map[ledgerstate.TokenID]*big.Int, err error) {
	nativeTokens = make(map[ledgerstate.TokenID]*big.Int)
	for _, destination := range s.Destinations {
		if baseTokens+destination.Amount < baseTokens {
			return 0, nil, errors.Errorf("sum of destination amounts exceeds uint64 range: %w", ledgerstate.ErrOverflow)
		}
		baseTokens += destination.Amount

		destination.NativeTokens.ForEach(func(tokenID ledgerstate.TokenID, quantity *big.Int) bool {
			requiredQuantity, exists := nativeTokens[tokenID]
			if !exists {
				requiredQuantity = new(big.Int)
				nativeTokens[tokenID] = requiredQuantity
			}
			requiredQuantity.Add(requiredQuantity, quantity)

			return true
		})
	}

	return
}

// Build is a utility function that constructs the SendFundsOptions.
func Build(options ...SendFundsOption) (result *SendFundsOptions, err error) {
	// create options to collect the arguments provided
	result = &SendFundsOptions{}

	// apply arguments to our options
	for _, option := range options {
		if err = option(result); err != nil {
			return
		}
	}

	// sanitize parameters
	if len(result.Destinations) == 0 {
		return nil, errors.New("you need to provide at least one Destination for a valid transfer to be issued")
	}

	return
}
