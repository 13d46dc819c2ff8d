package ledgerstate

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeaturesCanonicalOrder(t *testing.T) {
	metadataFeature, err := NewMetadataFeature([]byte("payload"))
	require.NoError(t, err)
	tagFeature, err := NewTagFeature([]byte("tag"))
	require.NoError(t, err)
	senderFeature := NewSenderFeature(randomEd25519Address())

	features, err := NewFeatures(tagFeature, metadataFeature, senderFeature)
	require.NoError(t, err)

	require.Len(t, features, 3)
	assert.Equal(t, SenderFeatureType, features[0].Type())
	assert.Equal(t, MetadataFeatureType, features[1].Type())
	assert.Equal(t, TagFeatureType, features[2].Type())

	reorderedFeatures, err := NewFeatures(senderFeature, tagFeature, metadataFeature)
	require.NoError(t, err)

	assert.Equal(t, features.Bytes(), reorderedFeatures.Bytes())
}

func TestNewFeaturesRejectsDuplicates(t *testing.T) {
	_, err := NewFeatures(
		NewSenderFeature(randomEd25519Address()),
		NewSenderFeature(randomEd25519Address()),
	)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

func TestMetadataFeatureBounds(t *testing.T) {
	_, err := NewMetadataFeature(nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	_, err = NewMetadataFeature(make([]byte, MaxMetadataLength+1))
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	boundaryFeature, err := NewMetadataFeature(make([]byte, MaxMetadataLength))
	require.NoError(t, err)
	assert.Len(t, boundaryFeature.Data(), MaxMetadataLength)
}

func TestTagFeatureBounds(t *testing.T) {
	_, err := NewTagFeature(nil)
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	_, err = NewTagFeature(make([]byte, MaxTagLength+1))
	assert.True(t, errors.Is(err, ErrInvalidOutput))

	boundaryFeature, err := NewTagFeature(bytes.Repeat([]byte{'x'}, MaxTagLength))
	require.NoError(t, err)
	assert.Len(t, boundaryFeature.Tag(), MaxTagLength)
}

func TestFeaturesBytesRoundTrip(t *testing.T) {
	metadataFeature, err := NewMetadataFeature([]byte("payload"))
	require.NoError(t, err)

	features, err := NewFeatures(
		NewSenderFeature(randomEd25519Address()),
		NewIssuerFeature(randomEd25519Address()),
		metadataFeature,
	)
	require.NoError(t, err)

	restoredFeatures, err := FeaturesFromMarshalUtil(marshalutil.New(features.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, features.Bytes(), restoredFeatures.Bytes())
	assert.Equal(t, []byte("payload"), restoredFeatures.Metadata().Data())
}
