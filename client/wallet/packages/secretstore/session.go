package secretstore

import (
	"encoding/binary"
	"sync"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"go.uber.org/atomic"
	"golang.org/x/crypto/blake2b"

	"github.com/anistark/iota-sdk/client/wallet/packages/address"
	"github.com/anistark/iota-sdk/packages/ledgerstate"
)

// Session is an unlocked view on the secret store. It can derive addresses and sign transaction essences until it is
// locked, at which point the seed material is wiped and every further signing attempt fails.
type Session struct {
	seed      []byte
	locked    atomic.Bool
	signMutex sync.Mutex
}

func newSession(seed []byte) *Session {
	return &Session{seed: seed}
}

// Address derives the wallet address with the given derivation index. Only the public part of the derived key pair
// leaves the Session.
func (s *Session) Address(index uint64) (walletAddress address.Address, err error) {
	s.signMutex.Lock()
	defer s.signMutex.Unlock()

	keyPair, err := s.keyPair(index)
	if err != nil {
		return
	}

	return address.New(ledgerstate.NewEd25519Address(keyPair.PublicKey), index), nil
}

// Sign creates one Ed25519 signature of the given transaction essence per required address, keyed by the address it
// belongs to. Concurrent calls are serialized.
func (s *Session) Sign(essenceBytes []byte, requiredAddresses []address.Address) (signatures map[address.Address]*ledgerstate.ED25519Signature, err error) {
	s.signMutex.Lock()
	defer s.signMutex.Unlock()

	signatures = make(map[address.Address]*ledgerstate.ED25519Signature, len(requiredAddresses))
	for _, requiredAddress := range requiredAddresses {
		keyPair, keyPairErr := s.keyPair(requiredAddress.Index)
		if keyPairErr != nil {
			return nil, keyPairErr
		}

		signatures[requiredAddress] = ledgerstate.NewED25519Signature(keyPair.PublicKey, keyPair.PrivateKey.Sign(essenceBytes))
	}

	return
}

// IsLocked returns true if the Session was locked.
func (s *Session) IsLocked() bool {
	return s.locked.Load()
}

// Lock wipes the seed material of the Session. Locking is idempotent and irrevocable: a locked Session can not be
// unlocked again, the Store has to be unlocked for a fresh one.
func (s *Session) Lock() {
	if !s.locked.CAS(false, true) {
		return
	}

	s.signMutex.Lock()
	defer s.signMutex.Unlock()

	for i := range s.seed {
		s.seed[i] = 0
	}
	s.seed = nil
}

// keyPair derives the Ed25519 key pair of the given derivation index from the seed. The caller has to hold the
// signMutex.
func (s *Session) keyPair(index uint64) (keyPair ed25519.KeyPair, err error) {
	if s.locked.Load() {
		err = ErrSignerLocked
		return
	}

	indexBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(indexBytes, index)
	subSeed := blake2b.Sum256(append(append([]byte(nil), s.seed...), indexBytes...))

	keyPair.PrivateKey = ed25519.PrivateKeyFromSeed(subSeed[:])
	keyPair.PublicKey = keyPair.PrivateKey.Public()

	return
}
