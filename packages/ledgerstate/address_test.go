package ledgerstate

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Address(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	address := NewEd25519Address(keyPair.PublicKey)

	assert.Equal(t, Ed25519AddressType, address.Type())
	assert.Len(t, address.Digest(), AddressDigestLength)
	assert.Len(t, address.Bytes(), AddressLength)

	clonedAddress := address.Clone()
	assert.True(t, address.Equals(clonedAddress))
}

func TestAddressFromBase58EncodedString(t *testing.T) {
	keyPair := ed25519.GenerateKeyPair()
	address := NewEd25519Address(keyPair.PublicKey)

	restoredAddress, err := AddressFromBase58EncodedString(address.Base58())
	require.NoError(t, err)

	assert.True(t, address.Equals(restoredAddress))
	assert.Equal(t, address.Bytes(), restoredAddress.Bytes())
}

func TestAddressFromBytes(t *testing.T) {
	aliasAddress := NewAliasAddress([]byte("some output id"))
	restoredAddress, consumedBytes, err := AddressFromBytes(aliasAddress.Bytes())
	require.NoError(t, err)

	assert.Equal(t, AddressLength, consumedBytes)
	assert.Equal(t, AliasAddressType, restoredAddress.Type())
	assert.True(t, aliasAddress.Equals(restoredAddress))

	nftAddress := NewNFTAddress([]byte("some other output id"))
	restoredNFTAddress, _, err := AddressFromBytes(nftAddress.Bytes())
	require.NoError(t, err)

	assert.Equal(t, NFTAddressType, restoredNFTAddress.Type())
	assert.False(t, nftAddress.Equals(aliasAddress))
}

func TestAddressFromBytesInvalidType(t *testing.T) {
	corruptedBytes := NewAliasAddress([]byte("some output id")).Bytes()
	corruptedBytes[0] = 0xff

	_, _, err := AddressFromBytes(corruptedBytes)
	assert.Error(t, err)
}
