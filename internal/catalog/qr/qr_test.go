package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
)

func TestForArtwork(t *testing.T) {
	code, err := ForArtwork(42, "https://musee-virtuel.sn")
	require.NoError(t, err)

	assert.Equal(t, "https://musee-virtuel.sn/artwork/42", code.URL)
	assert.NotEmpty(t, code.PNG)
	assert.NotEmpty(t, code.Base64())
}

func TestForArtworkTrimsTrailingSlash(t *testing.T) {
	code, err := ForArtwork(7, "https://musee-virtuel.sn/")
	require.NoError(t, err)
	assert.Equal(t, "https://musee-virtuel.sn/artwork/7", code.URL)
}

func TestForArtworkURLIsDeterministic(t *testing.T) {
	first, err := ForArtwork(3, "https://musee-virtuel.sn")
	require.NoError(t, err)
	second, err := ForArtwork(3, "https://musee-virtuel.sn")
	require.NoError(t, err)

	assert.Equal(t, first.URL, second.URL)
}

func TestForArtworkRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name      string
		artworkID int
		baseURL   string
	}{
		{name: "zero id", artworkID: 0, baseURL: "https://musee-virtuel.sn"},
		{name: "negative id", artworkID: -1, baseURL: "https://musee-virtuel.sn"},
		{name: "empty base", artworkID: 1, baseURL: ""},
		{name: "relative base", artworkID: 1, baseURL: "musee-virtuel.sn"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ForArtwork(testCase.artworkID, testCase.baseURL)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}
}
