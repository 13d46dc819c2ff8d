package secretstore

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "secrets.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testSeed(tag string) []byte {
	seed := blake2b.Sum256([]byte(tag))
	return seed[:]
}

func TestStore_InitializeAndUnlock(t *testing.T) {
	store := newTestStore(t)

	initialized, err := store.IsInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	require.NoError(t, store.Initialize([]byte("correct horse battery staple"), testSeed(t.Name())))

	initialized, err = store.IsInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)

	session, err := store.Unlock([]byte("correct horse battery staple"))
	require.NoError(t, err)
	defer session.Lock()

	// the same store unlocks to the same addresses
	otherSession, err := store.Unlock([]byte("correct horse battery staple"))
	require.NoError(t, err)
	defer otherSession.Lock()

	firstAddress, err := session.Address(0)
	require.NoError(t, err)
	sameAddress, err := otherSession.Address(0)
	require.NoError(t, err)
	assert.Equal(t, firstAddress, sameAddress)

	otherAddress, err := session.Address(1)
	require.NoError(t, err)
	assert.NotEqual(t, firstAddress.AddressBytes, otherAddress.AddressBytes)
}

func TestStore_UnlockUninitialized(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Unlock([]byte("passphrase"))
	assert.True(t, errors.Is(err, ErrStoreNotInitialized))
}

func TestStore_WrongPassphrase(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize([]byte("right"), testSeed(t.Name())))

	_, err := store.Unlock([]byte("wrong"))
	assert.True(t, errors.Is(err, ErrWrongPassphrase))
}

func TestStore_DoubleInitialize(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize([]byte("passphrase"), testSeed(t.Name())))

	err := store.Initialize([]byte("passphrase"), testSeed(t.Name()))
	assert.True(t, errors.Is(err, ErrStoreAlreadyInitialized))
}

func TestStore_ChangePassphrase(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize([]byte("old"), testSeed(t.Name())))

	session, err := store.Unlock([]byte("old"))
	require.NoError(t, err)
	addressBefore, err := session.Address(0)
	require.NoError(t, err)
	session.Lock()

	require.NoError(t, store.ChangePassphrase([]byte("old"), []byte("new")))

	_, err = store.Unlock([]byte("old"))
	assert.True(t, errors.Is(err, ErrWrongPassphrase))

	session, err = store.Unlock([]byte("new"))
	require.NoError(t, err)
	defer session.Lock()

	// the seed survived the re-encryption
	addressAfter, err := session.Address(0)
	require.NoError(t, err)
	assert.Equal(t, addressBefore, addressAfter)
}

func TestStore_ChangePassphraseWithWrongOldPassphrase(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Initialize([]byte("old"), testSeed(t.Name())))

	err := store.ChangePassphrase([]byte("wrong"), []byte("new"))
	assert.True(t, errors.Is(err, ErrWrongPassphrase))
}
