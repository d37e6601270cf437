// Package qr generates the printable QR codes placed next to physical
// artworks. Scanning one deep-links into the visitor frontend.
package qr

import (
	"encoding/base64"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/validate"
)

// pngSize is the pixel width of the generated square PNG, chosen for
// reliable scanning from printed labels.
const pngSize = 256

// Code is a generated QR code: the encoded deep link and its PNG rendering.
type Code struct {
	URL string
	PNG []byte
}

// Base64 returns the PNG as a base64 string for embedding in JSON payloads.
func (c Code) Base64() string {
	return base64.StdEncoding.EncodeToString(c.PNG)
}

// ForArtwork builds the canonical artwork deep link and encodes it as a QR
// code. The URL is deterministic: re-encoding the same artwork against the
// same base yields the same link.
func ForArtwork(artworkID int, baseURL string) (Code, error) {
	validator := &validate.Validator{}
	validator.Custom("artwork_id", artworkID <= 0, "must be a positive integer")
	validator.Required("base_url", baseURL).URL("base_url", baseURL)
	if err := validator.Err(); err != nil {
		return Code{}, err
	}

	url := strings.TrimRight(baseURL, "/") + "/artwork/" + strconv.Itoa(artworkID)

	png, err := qrcode.Encode(url, qrcode.Medium, pngSize)
	if err != nil {
		return Code{}, apperr.Internal(err)
	}

	return Code{URL: url, PNG: png}, nil
}
