// Package room implements the virtual exhibition room aggregate: the entity,
// its repository contracts and the application service exposed over HTTP.
package room

import (
	"strings"
	"time"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/validate"
)

// Accessibility grades how demanding a room visit is for the general public.
// Canonical values are stored in French, matching the curation workflow.
type Accessibility string

const (
	AccessibilityEasy     Accessibility = "facile"
	AccessibilityModerate Accessibility = "modéré"
	AccessibilityAdvanced Accessibility = "avancé"
)

// accessibilitySynonyms maps the aliases accepted from clients and imports
// onto canonical values.
var accessibilitySynonyms = map[string]Accessibility{
	"facile":   AccessibilityEasy,
	"easy":     AccessibilityEasy,
	"low":      AccessibilityEasy,
	"modéré":   AccessibilityModerate,
	"modere":   AccessibilityModerate,
	"moderate": AccessibilityModerate,
	"medium":   AccessibilityModerate,
	"avancé":   AccessibilityAdvanced,
	"avance":   AccessibilityAdvanced,
	"advanced": AccessibilityAdvanced,
	"high":     AccessibilityAdvanced,
	"full":     AccessibilityAdvanced,
}

// ParseAccessibility normalizes a caller-supplied accessibility label.
// Unknown labels default to Moderate, the safest assumption for scheduling
// guided visits.
func ParseAccessibility(raw string) Accessibility {
	if level, found := accessibilitySynonyms[strings.ToLower(strings.TrimSpace(raw))]; found {
		return level
	}
	return AccessibilityModerate
}

// Valid reports whether the value is one of the canonical levels.
func (a Accessibility) Valid() bool {
	switch a {
	case AccessibilityEasy, AccessibilityModerate, AccessibilityAdvanced:
		return true
	}
	return false
}

// AccessibilityLevels lists the canonical levels in ascending difficulty.
func AccessibilityLevels() []Accessibility {
	return []Accessibility{AccessibilityEasy, AccessibilityModerate, AccessibilityAdvanced}
}

// Hotspot is a clickable anchor placed on a room panorama that links to an
// artwork. Coordinates are fractions of the panorama dimensions.
type Hotspot struct {
	ArtworkID int     `json:"artwork_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Room represents a themed exhibition space of the virtual museum.
type Room struct {
	ID             int           `json:"id"`
	Name           mltext.Text   `json:"name"`
	Description    mltext.Text   `json:"description"`
	Theme          string        `json:"theme"`
	Accessibility  Accessibility `json:"accessibility"`
	PanoramaURL    *string       `json:"panorama_url"`
	Hotspots       []Hotspot     `json:"hotspots"`
	HasAudio       bool          `json:"has_audio"`
	HasInteractive bool          `json:"has_interactive"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Filter holds the optional criteria of a room search. Zero-value fields are
// ignored; set fields are ANDed together.
type Filter struct {
	Query         string // case-insensitive substring over name and descriptions
	Theme         string
	Accessibility Accessibility
	HasAudio      *bool
}

const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldTheme         = "theme"
	FieldAccessibility = "accessibility"
	FieldPanoramaURL   = "panorama_url"
	FieldHotspots      = "hotspots"
)

// New builds a validated Room. The returned room has ID 0 until persisted.
func New(name, description mltext.Text, theme string, accessibility Accessibility) (*Room, error) {
	room := &Room{
		Name:          name,
		Description:   description,
		Theme:         theme,
		Accessibility: accessibility,
		CreatedAt:     time.Now().UTC(),
	}
	if err := room.Validate(); err != nil {
		return nil, err
	}
	return room, nil
}

// Validate checks the room invariants and returns an aggregated
// validation error when any fails.
func (room *Room) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, room.Name.FR).MaxLen(FieldName, room.Name.FR, 200)
	validator.Required(FieldDescription, room.Description.FR)
	validator.Required(FieldTheme, room.Theme).MaxLen(FieldTheme, room.Theme, 100)

	validator.Custom(FieldAccessibility, !room.Accessibility.Valid(), "must be one of facile, modéré, avancé")
	if room.PanoramaURL != nil {
		validator.URL(FieldPanoramaURL, *room.PanoramaURL)
	}
	for _, hotspot := range room.Hotspots {
		validator.Custom(FieldHotspots, hotspot.ArtworkID <= 0, "artwork_id must be positive")
		validator.UnitInterval(FieldHotspots, hotspot.X)
		validator.UnitInterval(FieldHotspots, hotspot.Y)
	}

	return validator.Err()
}

// SetTheme replaces the room theme.
func (room *Room) SetTheme(theme string) error {
	previous := room.Theme
	room.Theme = theme
	if err := room.Validate(); err != nil {
		room.Theme = previous
		return err
	}
	return nil
}

// SetAccessibility replaces the accessibility level with a canonical value.
func (room *Room) SetAccessibility(level Accessibility) error {
	previous := room.Accessibility
	room.Accessibility = level
	if err := room.Validate(); err != nil {
		room.Accessibility = previous
		return err
	}
	return nil
}

// SetPanoramaURL attaches or replaces the 360° panorama of the room.
func (room *Room) SetPanoramaURL(url string) error {
	previous := room.PanoramaURL
	room.PanoramaURL = &url
	if err := room.Validate(); err != nil {
		room.PanoramaURL = previous
		return err
	}
	return nil
}

// SetHotspots replaces the panorama hotspots.
func (room *Room) SetHotspots(hotspots []Hotspot) error {
	previous := room.Hotspots
	room.Hotspots = hotspots
	if err := room.Validate(); err != nil {
		room.Hotspots = previous
		return err
	}
	return nil
}

// EnableAudio marks the room as offering an audio guide track.
func (room *Room) EnableAudio() { room.HasAudio = true }

// DisableAudio removes the audio guide flag.
func (room *Room) DisableAudio() { room.HasAudio = false }

// EnableInteractive marks the room as containing interactive installations.
func (room *Room) EnableInteractive() { room.HasInteractive = true }

// DisableInteractive removes the interactive flag.
func (room *Room) DisableInteractive() { room.HasInteractive = false }

// GetName returns the localized room name with French fallback.
func (room *Room) GetName(lang string) string {
	return room.Name.Get(lang)
}

// GetDescription returns the localized description with French fallback.
func (room *Room) GetDescription(lang string) string {
	return room.Description.Get(lang)
}
