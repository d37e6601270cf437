package mltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	text := New("Masque Gelede", "Gelede Mask", "Gelede")

	testCases := []struct {
		name     string
		lang     string
		expected string
	}{
		{name: "french", lang: LangFR, expected: "Masque Gelede"},
		{name: "english", lang: LangEN, expected: "Gelede Mask"},
		{name: "wolof", lang: LangWO, expected: "Gelede"},
		{name: "unknown language falls back to french", lang: "de", expected: "Masque Gelede"},
		{name: "empty language falls back to french", lang: "", expected: "Masque Gelede"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, text.Get(testCase.lang))
		})
	}
}

func TestGetFallsBackWhenVariantMissing(t *testing.T) {
	text := New("Tambour sabar", "", "")

	assert.Equal(t, "Tambour sabar", text.Get(LangEN))
	assert.Equal(t, "Tambour sabar", text.Get(LangWO))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Text{EN: "only english"}.IsEmpty())
	assert.False(t, New("texte", "", "").IsEmpty())
}
