package artwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
)

func validArtwork(t *testing.T) *Artwork {
	t.Helper()
	created, err := New(
		"Masque Gelede",
		mltext.New("Masque cérémoniel yoruba", "Yoruba ceremonial mask", ""),
		"masques", "XIXe siècle", "Bénin", 1,
	)
	require.NoError(t, err)
	return created
}

func TestNewArtworkValidation(t *testing.T) {
	t.Run("valid artwork", func(t *testing.T) {
		created := validArtwork(t)
		assert.Equal(t, 0, created.ID)
		assert.Nil(t, created.QRCodeURL)
	})

	testCases := []struct {
		name   string
		mutate func(input *Artwork)
	}{
		{name: "missing title", mutate: func(a *Artwork) { a.Title = "" }},
		{name: "missing french description", mutate: func(a *Artwork) { a.Description.FR = "" }},
		{name: "missing category", mutate: func(a *Artwork) { a.Category = "" }},
		{name: "zero room", mutate: func(a *Artwork) { a.RoomID = 0 }},
		{name: "negative popularity", mutate: func(a *Artwork) { a.Popularity = -1 }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			a := validArtwork(t)
			testCase.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}
}

func TestMediaSetters(t *testing.T) {
	a := validArtwork(t)

	require.NoError(t, a.SetImage("https://cdn.musee-virtuel.sn/img/gelede.jpg"))
	require.NoError(t, a.SetAudio("https://cdn.musee-virtuel.sn/audio/gelede.mp3"))
	assert.True(t, a.HasMultimedia())
	assert.True(t, a.HasAudioGuide())
	assert.False(t, a.HasVideoContent())

	require.Error(t, a.SetVideo(""))
	require.Error(t, a.SetVideo("not-a-url"))
	assert.Nil(t, a.VideoURL)
}

func TestMoveToRoom(t *testing.T) {
	a := validArtwork(t)

	require.NoError(t, a.MoveToRoom(2))
	assert.Equal(t, 2, a.RoomID)

	require.Error(t, a.MoveToRoom(0))
	assert.Equal(t, 2, a.RoomID)
}

func TestGetDescriptionFallback(t *testing.T) {
	a := validArtwork(t)

	assert.Equal(t, "Yoruba ceremonial mask", a.GetDescription("en"))
	assert.Equal(t, "Masque cérémoniel yoruba", a.GetDescription("wo"))
}
