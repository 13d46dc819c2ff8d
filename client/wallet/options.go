package wallet

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/bitmask"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// Option represents an optional parameter for the wallet New factory method.
type Option func(*Wallet)

// WebAPI connects the wallet to a node over its web API, reachable under the given base url.
func WebAPI(baseURL string, setters ...WebConnectorOption) Option {
	return func(wallet *Wallet) {
		wallet.connector = NewWebConnector(baseURL, setters...)
	}
}

// GenericConnector wires the wallet to any endpoint that implements the Connector interface.
func GenericConnector(connector Connector) Option {
	return func(wallet *Wallet) {
		wallet.connector = connector
	}
}

// SignerSession hands the wallet the unlocked signer it derives its addresses and signatures from. The wallet never
// sees the key material itself, it only talks to the session.
func SignerSession(signer Signer) Option {
	return func(wallet *Wallet) {
		wallet.signer = signer
	}
}

// LedgerParameters overrides the protocol constants the wallet builds its transactions against. If the option is not
// provided the wallet uses the parameters of the default network.
func LedgerParameters(params *ledgerstate.Parameters) Option {
	return func(wallet *Wallet) {
		wallet.params = params
	}
}

// ReusableAddress configures the wallet to use a single reusable address for everything instead of cycling through
// fresh addresses.
func ReusableAddress(enabled bool) Option {
	return func(wallet *Wallet) {
		wallet.reusableAddress = enabled
	}
}

// ConfirmationPollInterval overrides the interval in which the wallet polls for the confirmation of a submitted
// transaction.
func ConfirmationPollInterval(interval time.Duration) Option {
	return func(wallet *Wallet) {
		wallet.ConfirmationPollInterval = interval
	}
}

// ConfirmationTimeout overrides how long the wallet waits for the confirmation of a submitted transaction before it
// gives up.
func ConfirmationTimeout(timeout time.Duration) Option {
	return func(wallet *Wallet) {
		wallet.ConfirmationTimeout = timeout
	}
}

// Import restores the address state that was previously backed up through ExportState. The signer still has to be
// provided separately, the exported state only covers the address indexes and their spent flags.
func Import(marshaledAddressState []byte) Option {
	return func(wallet *Wallet) {
		lastAddressIndex, spentAddresses, err := parseAddressState(marshaledAddressState)
		if err != nil {
			wallet.importErr = err
			return
		}

		wallet.importedLastAddressIndex = lastAddressIndex
		wallet.importedSpentAddresses = spentAddresses
	}
}

// parseAddressState unmarshals the address state written by ExportState.
func parseAddressState(data []byte) (lastAddressIndex uint64, spentAddresses []bitmask.BitMask, err error) {
	marshalUtil := marshalutil.New(data)

	if lastAddressIndex, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse last address index (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	spentAddressesCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse spent addresses count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	spentAddresses = make([]bitmask.BitMask, spentAddressesCount)
	for i := uint32(0); i < spentAddressesCount; i++ {
		spentAddressByte, byteErr := marshalUtil.ReadByte()
		if byteErr != nil {
			err = errors.Errorf("failed to parse spent address bitmask (%v): %w", byteErr, cerrors.ErrParseBytesFailed)
			return
		}
		spentAddresses[i] = bitmask.BitMask(spentAddressByte)
	}

	return
}
