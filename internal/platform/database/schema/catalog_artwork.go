package schema

// RefArtworkTable represents the 'catalog.artwork' table
type RefArtworkTable struct {
	Table         string
	ID            string
	Title         string
	DescriptionFR string
	DescriptionEN string
	DescriptionWO string
	Category      string
	Period        string
	Origin        string
	RoomID        string
	ImageURL      string
	AudioURL      string
	VideoURL      string
	QRCodeURL     string
	Popularity    string
	ViewCount     string
	CreatedAt     string
}

// RefArtwork is the schema definition for catalog.artwork
var RefArtwork = RefArtworkTable{
	Table:         "catalog.artwork",
	ID:            "id",
	Title:         "title",
	DescriptionFR: "descriptionfr",
	DescriptionEN: "descriptionen",
	DescriptionWO: "descriptionwo",
	Category:      "category",
	Period:        "period",
	Origin:        "origin",
	RoomID:        "roomid",
	ImageURL:      "imageurl",
	AudioURL:      "audiourl",
	VideoURL:      "videourl",
	QRCodeURL:     "qrcodeurl",
	Popularity:    "popularity",
	ViewCount:     "viewcount",
	CreatedAt:     "createdat",
}

// Columns returns all standard column names
func (t RefArtworkTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.DescriptionFR, t.DescriptionEN, t.DescriptionWO,
		t.Category, t.Period, t.Origin, t.RoomID, t.ImageURL, t.AudioURL,
		t.VideoURL, t.QRCodeURL, t.Popularity, t.ViewCount, t.CreatedAt,
	}
}
