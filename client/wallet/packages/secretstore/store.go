// Package secretstore implements the password-gated key store of the wallet. The wallet seed is kept encrypted in a
// bolt database with a passphrase-derived key; raw key material never leaves the package, only derived addresses and
// signatures do.
package secretstore

import (
	"github.com/btcsuite/btcwallet/snacl"
	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	// ErrWrongPassphrase is returned if the supplied passphrase does not match the one the store was initialized
	// with. The check is performed on the MAC of the derived encryption key, so the failure shape is identical for
	// every wrong passphrase.
	ErrWrongPassphrase = errors.New("wrong passphrase")

	// ErrSignerLocked is returned if a signing operation is attempted after the session was locked.
	ErrSignerLocked = errors.New("signer is locked")

	// ErrStoreNotInitialized is returned if the store is unlocked before a seed was stored in it.
	ErrStoreNotInitialized = errors.New("secret store is not initialized")

	// ErrStoreAlreadyInitialized is returned if the store is initialized a second time.
	ErrStoreAlreadyInitialized = errors.New("secret store is already initialized")
)

var (
	secretsBucketName = []byte("secrets")
	encryptionKeyID   = []byte("enckey")
	encryptedSeedID   = []byte("seed")
)

// Store is the persistent, passphrase-protected container of the wallet seed.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the secret store database at the given path.
func NewStore(dbPath string) (store *Store, err error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, errors.Errorf("failed to open secret store database: %w", err)
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(secretsBucketName)

		return createErr
	}); err != nil {
		_ = db.Close()

		return nil, errors.Errorf("failed to create secrets bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// IsInitialized returns true if a seed was already stored.
func (s *Store) IsInitialized() (initialized bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		initialized = len(tx.Bucket(secretsBucketName).Get(encryptedSeedID)) > 0

		return nil
	})

	return
}

// Initialize derives an encryption key from the given passphrase and stores the seed encrypted with it. It fails if
// the store already holds a seed.
func (s *Store) Initialize(passphrase []byte, seed []byte) (err error) {
	initialized, err := s.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		return ErrStoreAlreadyInitialized
	}

	encryptionKey, err := snacl.NewSecretKey(&passphrase, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP)
	if err != nil {
		return errors.Errorf("failed to derive encryption key: %w", err)
	}
	defer encryptionKey.Zero()

	encryptedSeed, err := encryptionKey.Encrypt(seed)
	if err != nil {
		return errors.Errorf("failed to encrypt seed: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(secretsBucketName)
		if putErr := bucket.Put(encryptionKeyID, encryptionKey.Marshal()); putErr != nil {
			return putErr
		}

		return bucket.Put(encryptedSeedID, encryptedSeed)
	})
}

// Unlock checks the passphrase against the stored encryption key parameters and returns a signing Session on
// success. A wrong passphrase yields ErrWrongPassphrase.
func (s *Store) Unlock(passphrase []byte) (session *Session, err error) {
	var marshaledKey, encryptedSeed []byte
	if err = s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(secretsBucketName)
		marshaledKey = append([]byte(nil), bucket.Get(encryptionKeyID)...)
		encryptedSeed = append([]byte(nil), bucket.Get(encryptedSeedID)...)

		return nil
	}); err != nil {
		return nil, err
	}
	if len(marshaledKey) == 0 || len(encryptedSeed) == 0 {
		return nil, ErrStoreNotInitialized
	}

	encryptionKey := &snacl.SecretKey{}
	if err = encryptionKey.Unmarshal(marshaledKey); err != nil {
		return nil, errors.Errorf("failed to unmarshal encryption key parameters: %w", err)
	}
	if err = encryptionKey.DeriveKey(&passphrase); err != nil {
		return nil, ErrWrongPassphrase
	}
	defer encryptionKey.Zero()

	seed, err := encryptionKey.Decrypt(encryptedSeed)
	if err != nil {
		return nil, errors.Errorf("failed to decrypt seed: %w", err)
	}

	return newSession(seed), nil
}

// ChangePassphrase re-encrypts the stored seed under a key derived from the new passphrase. The old passphrase has
// to be correct.
func (s *Store) ChangePassphrase(oldPassphrase, newPassphrase []byte) (err error) {
	session, err := s.Unlock(oldPassphrase)
	if err != nil {
		return err
	}
	defer session.Lock()

	newEncryptionKey, err := snacl.NewSecretKey(&newPassphrase, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP)
	if err != nil {
		return errors.Errorf("failed to derive encryption key: %w", err)
	}
	defer newEncryptionKey.Zero()

	encryptedSeed, err := newEncryptionKey.Encrypt(session.seed)
	if err != nil {
		return errors.Errorf("failed to encrypt seed: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(secretsBucketName)
		if putErr := bucket.Put(encryptionKeyID, newEncryptionKey.Marshal()); putErr != nil {
			return putErr
		}

		return bucket.Put(encryptedSeedID, encryptedSeed)
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
