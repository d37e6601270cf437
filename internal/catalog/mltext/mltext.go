// Package mltext provides the trilingual text value object used across the
// catalog. Every visitor-facing string is stored in French, English and Wolof,
// with French as the reference language.
package mltext

// Language codes accepted by [Text.Get].
const (
	LangFR = "fr"
	LangEN = "en"
	LangWO = "wo"
)

// Text holds the three language variants of a catalog string.
// FR is the reference variant: EN and WO may be empty.
type Text struct {
	FR string `json:"fr"`
	EN string `json:"en,omitempty"`
	WO string `json:"wo,omitempty"`
}

// New builds a Text from its three variants.
func New(fr, en, wo string) Text {
	return Text{FR: fr, EN: en, WO: wo}
}

// Get returns the variant for the given language code.
// Unknown codes and empty variants fall back to French.
func (t Text) Get(lang string) string {
	switch lang {
	case LangEN:
		if t.EN != "" {
			return t.EN
		}
	case LangWO:
		if t.WO != "" {
			return t.WO
		}
	}
	return t.FR
}

// IsEmpty reports whether the reference variant is missing.
func (t Text) IsEmpty() bool {
	return t.FR == ""
}
