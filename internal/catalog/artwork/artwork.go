// Package artwork implements the artwork aggregate: the catalog entries
// visitors browse, their popularity tracking and the statistics fed to the
// curation dashboard.
package artwork

import (
	"time"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/validate"
)

// Artwork represents a single catalogued museum piece assigned to a room.
type Artwork struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description mltext.Text `json:"description"`
	Category    string      `json:"category"`
	Period      string      `json:"period"`
	Origin      string      `json:"origin"`
	RoomID      int         `json:"room_id"`
	ImageURL    *string     `json:"image_url"`
	AudioURL    *string     `json:"audio_url"`
	VideoURL    *string     `json:"video_url"`
	QRCodeURL   *string     `json:"qr_code_url"`
	Popularity  int         `json:"popularity"`
	ViewCount   int         `json:"view_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Filter holds the optional criteria of an artwork search. Zero-value fields
// are ignored; set fields are ANDed together.
type Filter struct {
	Query    string // case-insensitive substring over title and descriptions
	Category string
	Period   string
	Origin   string
	RoomID   int
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPeriod      = "period"
	FieldOrigin      = "origin"
	FieldRoomID      = "room_id"
	FieldImageURL    = "image_url"
	FieldAudioURL    = "audio_url"
	FieldVideoURL    = "video_url"
	FieldQRCodeURL   = "qr_code_url"
	FieldPopularity  = "popularity"
)

// New builds a validated Artwork assigned to the given room. The returned
// artwork has ID 0 until persisted.
func New(title string, description mltext.Text, category, period, origin string, roomID int) (*Artwork, error) {
	a := &Artwork{
		Title:       title,
		Description: description,
		Category:    category,
		Period:      period,
		Origin:      origin,
		RoomID:      roomID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the artwork invariants and returns an aggregated
// validation error when any fails.
func (a *Artwork) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, a.Title).MaxLen(FieldTitle, a.Title, 200)
	validator.Required(FieldDescription, a.Description.FR)
	validator.Required(FieldCategory, a.Category).MaxLen(FieldCategory, a.Category, 100)
	validator.Required(FieldPeriod, a.Period).MaxLen(FieldPeriod, a.Period, 100)
	validator.Required(FieldOrigin, a.Origin).MaxLen(FieldOrigin, a.Origin, 100)
	validator.Custom(FieldRoomID, a.RoomID <= 0, "must reference an existing room")
	validator.Custom(FieldPopularity, a.Popularity < 0, "cannot be negative")
	validator.Custom("view_count", a.ViewCount < 0, "cannot be negative")

	for field, url := range map[string]*string{
		FieldImageURL:  a.ImageURL,
		FieldAudioURL:  a.AudioURL,
		FieldVideoURL:  a.VideoURL,
		FieldQRCodeURL: a.QRCodeURL,
	} {
		if url != nil {
			validator.URL(field, *url)
		}
	}

	return validator.Err()
}

func (a *Artwork) setMedia(target **string, field, url string) error {
	validator := &validate.Validator{}
	validator.Required(field, url).URL(field, url)
	if err := validator.Err(); err != nil {
		return err
	}
	*target = &url
	return nil
}

// SetImage attaches the display image of the artwork.
func (a *Artwork) SetImage(url string) error { return a.setMedia(&a.ImageURL, FieldImageURL, url) }

// SetAudio attaches the audio guide track.
func (a *Artwork) SetAudio(url string) error { return a.setMedia(&a.AudioURL, FieldAudioURL, url) }

// SetVideo attaches the video presentation.
func (a *Artwork) SetVideo(url string) error { return a.setMedia(&a.VideoURL, FieldVideoURL, url) }

// SetQRCode attaches the printable QR code deep-linking into the frontend.
func (a *Artwork) SetQRCode(url string) error { return a.setMedia(&a.QRCodeURL, FieldQRCodeURL, url) }

// SetPopularity replaces the editorial popularity score.
func (a *Artwork) SetPopularity(score int) error {
	validator := &validate.Validator{}
	validator.Custom(FieldPopularity, score < 0, "cannot be negative")
	if err := validator.Err(); err != nil {
		return err
	}
	a.Popularity = score
	return nil
}

// MoveToRoom reassigns the artwork to another room.
func (a *Artwork) MoveToRoom(roomID int) error {
	validator := &validate.Validator{}
	validator.Custom(FieldRoomID, roomID <= 0, "must reference an existing room")
	if err := validator.Err(); err != nil {
		return err
	}
	a.RoomID = roomID
	return nil
}

// HasMultimedia reports whether any media asset is attached.
func (a *Artwork) HasMultimedia() bool {
	return a.ImageURL != nil || a.AudioURL != nil || a.VideoURL != nil
}

// HasAudioGuide reports whether an audio guide track is attached.
func (a *Artwork) HasAudioGuide() bool { return a.AudioURL != nil }

// HasVideoContent reports whether a video presentation is attached.
func (a *Artwork) HasVideoContent() bool { return a.VideoURL != nil }

// GetDescription returns the localized description with French fallback.
func (a *Artwork) GetDescription(lang string) string {
	return a.Description.Get(lang)
}
