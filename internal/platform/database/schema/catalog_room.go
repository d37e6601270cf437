package schema

// RefRoomTable represents the 'catalog.room' table
type RefRoomTable struct {
	Table          string
	ID             string
	NameFR         string
	NameEN         string
	NameWO         string
	DescriptionFR  string
	DescriptionEN  string
	DescriptionWO  string
	Theme          string
	Accessibility  string
	PanoramaURL    string
	Hotspots       string
	HasAudio       string
	HasInteractive string
	CreatedAt      string
}

// RefRoom is the schema definition for catalog.room
var RefRoom = RefRoomTable{
	Table:          "catalog.room",
	ID:             "id",
	NameFR:         "namefr",
	NameEN:         "nameen",
	NameWO:         "namewo",
	DescriptionFR:  "descriptionfr",
	DescriptionEN:  "descriptionen",
	DescriptionWO:  "descriptionwo",
	Theme:          "theme",
	Accessibility:  "accessibility",
	PanoramaURL:    "panoramaurl",
	Hotspots:       "hotspots",
	HasAudio:       "hasaudio",
	HasInteractive: "hasinteractive",
	CreatedAt:      "createdat",
}

func (t RefRoomTable) Columns() []string {
	return []string{
		t.ID, t.NameFR, t.NameEN, t.NameWO, t.DescriptionFR, t.DescriptionEN,
		t.DescriptionWO, t.Theme, t.Accessibility, t.PanoramaURL, t.Hotspots,
		t.HasAudio, t.HasInteractive, t.CreatedAt,
	}
}
