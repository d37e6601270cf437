package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
)

func TestParseAccessibility(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Accessibility
	}{
		{raw: "facile", expected: AccessibilityEasy},
		{raw: "easy", expected: AccessibilityEasy},
		{raw: "LOW", expected: AccessibilityEasy},
		{raw: "modéré", expected: AccessibilityModerate},
		{raw: "moderate", expected: AccessibilityModerate},
		{raw: "medium", expected: AccessibilityModerate},
		{raw: "avancé", expected: AccessibilityAdvanced},
		{raw: "advanced", expected: AccessibilityAdvanced},
		{raw: "high", expected: AccessibilityAdvanced},
		{raw: "  Full  ", expected: AccessibilityAdvanced},

		// Unknown labels default to moderate
		{raw: "extreme", expected: AccessibilityModerate},
		{raw: "", expected: AccessibilityModerate},
	}

	for _, testCase := range testCases {
		t.Run(testCase.raw, func(t *testing.T) {
			assert.Equal(t, testCase.expected, ParseAccessibility(testCase.raw))
		})
	}
}

func TestNewRoomValidation(t *testing.T) {
	name := mltext.New("Salle des Masques", "Mask Room", "")
	description := mltext.New("Masques rituels", "", "")

	t.Run("valid room", func(t *testing.T) {
		created, err := New(name, description, "masques", AccessibilityEasy)
		require.NoError(t, err)
		assert.Equal(t, 0, created.ID)
		assert.Equal(t, AccessibilityEasy, created.Accessibility)
	})

	t.Run("missing french name", func(t *testing.T) {
		_, err := New(mltext.New("", "Mask Room", ""), description, "masques", AccessibilityEasy)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("missing french description", func(t *testing.T) {
		_, err := New(name, mltext.New("", "English only", ""), "masques", AccessibilityEasy)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("missing theme", func(t *testing.T) {
		_, err := New(name, description, "", AccessibilityEasy)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("invalid accessibility value", func(t *testing.T) {
		_, err := New(name, description, "masques", Accessibility("extrême"))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestHotspotValidation(t *testing.T) {
	created, err := New(
		mltext.New("Salle Royale", "", ""),
		mltext.New("Trésors royaux", "", ""),
		"histoire",
		AccessibilityModerate,
	)
	require.NoError(t, err)

	t.Run("coordinates in unit range accepted", func(t *testing.T) {
		err := created.SetHotspots([]Hotspot{{ArtworkID: 1, X: 0.5, Y: 0.25}})
		assert.NoError(t, err)
	})

	t.Run("coordinates out of range rejected and state restored", func(t *testing.T) {
		before := append([]Hotspot(nil), created.Hotspots...)
		err := created.SetHotspots([]Hotspot{{ArtworkID: 1, X: 1.5, Y: 0.25}})
		require.Error(t, err)
		assert.Equal(t, before, created.Hotspots)
	})

	t.Run("non-positive artwork id rejected", func(t *testing.T) {
		err := created.SetHotspots([]Hotspot{{ArtworkID: 0, X: 0.5, Y: 0.5}})
		assert.Error(t, err)
	})
}

func TestMutatorsRevalidate(t *testing.T) {
	created, err := New(
		mltext.New("Salle Textile", "", ""),
		mltext.New("Tissus et teintures", "", ""),
		"artisanat",
		AccessibilityEasy,
	)
	require.NoError(t, err)

	require.Error(t, created.SetTheme(""))
	assert.Equal(t, "artisanat", created.Theme)

	require.Error(t, created.SetPanoramaURL("not-a-url"))
	assert.Nil(t, created.PanoramaURL)

	require.NoError(t, created.SetPanoramaURL("https://cdn.musee-virtuel.sn/panos/textile.jpg"))
	require.NotNil(t, created.PanoramaURL)
}

func TestLocalizedGetters(t *testing.T) {
	created, err := New(
		mltext.New("Salle des Masques", "Mask Room", ""),
		mltext.New("Masques rituels", "Ritual masks", ""),
		"masques",
		AccessibilityEasy,
	)
	require.NoError(t, err)

	assert.Equal(t, "Mask Room", created.GetName("en"))
	assert.Equal(t, "Salle des Masques", created.GetName("wo"))
	assert.Equal(t, "Masques rituels", created.GetDescription("pt"))
}
