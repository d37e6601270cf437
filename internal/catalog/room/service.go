package room

import (
	"context"
	"log/slog"
	"sort"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// WithCount decorates a room with the number of artworks it contains.
type WithCount struct {
	*Room
	ArtworkCount int `json:"artwork_count"`
}

// Stats summarizes the room collection for the curation dashboard.
type Stats struct {
	TotalRooms      int            `json:"total_rooms"`
	TotalArtworks   int            `json:"total_artworks"`
	ByTheme         map[string]int `json:"by_theme"`
	ByAccessibility map[string]int `json:"by_accessibility"`
	WithAudio       int            `json:"with_audio"`
	WithInteractive int            `json:"with_interactive"`
}

// CreateInput carries the fields needed to open a new room.
type CreateInput struct {
	Name           mltext.Text `json:"name"`
	Description    mltext.Text `json:"description"`
	Theme          string      `json:"theme"`
	Accessibility  string      `json:"accessibility"`
	PanoramaURL    *string     `json:"panorama_url"`
	Hotspots       []Hotspot   `json:"hotspots"`
	HasAudio       bool        `json:"has_audio"`
	HasInteractive bool        `json:"has_interactive"`
}

// UpdateInput carries a partial room update. Nil fields are left untouched.
type UpdateInput struct {
	Name           *mltext.Text `json:"name"`
	Description    *mltext.Text `json:"description"`
	Theme          *string      `json:"theme"`
	Accessibility  *string      `json:"accessibility"`
	PanoramaURL    *string      `json:"panorama_url"`
	Hotspots       *[]Hotspot   `json:"hotspots"`
	HasAudio       *bool        `json:"has_audio"`
	HasInteractive *bool        `json:"has_interactive"`
}

func requireCurator(role sec.UserRole) error {
	if !role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Administrator role required")
	}
	return nil
}

func (service *Service) GetAll(context context.Context) ([]*WithCount, error) {
	rooms, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}

	counts, err := service.repo.CountArtworks(context)
	if err != nil {
		return nil, err
	}

	decorated := make([]*WithCount, 0, len(rooms))
	for _, r := range rooms {
		decorated = append(decorated, &WithCount{Room: r, ArtworkCount: counts[r.ID]})
	}
	return decorated, nil
}

func (service *Service) GetByID(context context.Context, id int) (*Room, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Create(context context.Context, role sec.UserRole, input CreateInput) (*Room, error) {
	if err := requireCurator(role); err != nil {
		return nil, err
	}

	newRoom, err := New(input.Name, input.Description, input.Theme, ParseAccessibility(input.Accessibility))
	if err != nil {
		return nil, err
	}

	newRoom.PanoramaURL = input.PanoramaURL
	newRoom.Hotspots = input.Hotspots
	newRoom.HasAudio = input.HasAudio
	newRoom.HasInteractive = input.HasInteractive
	if err := newRoom.Validate(); err != nil {
		return nil, err
	}

	saved, err := service.repo.Save(context, newRoom)
	if err != nil {
		return nil, err
	}

	service.logger.Info("room_created",
		slog.Int("room_id", saved.ID),
		slog.String("theme", saved.Theme),
	)
	return saved, nil
}

func (service *Service) Update(context context.Context, role sec.UserRole, id int, input UpdateInput) (*Room, error) {
	if err := requireCurator(role); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Theme != nil {
		existing.Theme = *input.Theme
	}
	if input.Accessibility != nil {
		existing.Accessibility = ParseAccessibility(*input.Accessibility)
	}
	if input.PanoramaURL != nil {
		existing.PanoramaURL = input.PanoramaURL
	}
	if input.Hotspots != nil {
		existing.Hotspots = *input.Hotspots
	}
	if input.HasAudio != nil {
		existing.HasAudio = *input.HasAudio
	}
	if input.HasInteractive != nil {
		existing.HasInteractive = *input.HasInteractive
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	saved, err := service.repo.Save(context, existing)
	if err != nil {
		return nil, err
	}

	service.logger.Info("room_updated", slog.Int("room_id", saved.ID))
	return saved, nil
}

// Delete removes the room together with every artwork it contains, in one
// transaction.
func (service *Service) Delete(context context.Context, role sec.UserRole, id int) error {
	if err := requireCurator(role); err != nil {
		return err
	}

	deleted, err := service.repo.DeleteWithArtworks(context, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Room")
	}

	service.logger.Warn("room_deleted", slog.Int("room_id", id))
	return nil
}

func (service *Service) Search(context context.Context, filter Filter) ([]*Room, error) {
	return service.repo.Search(context, filter)
}

// AvailableThemes returns the distinct room themes, sorted.
func (service *Service) AvailableThemes(context context.Context) ([]string, error) {
	rooms, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var themes []string
	for _, r := range rooms {
		if !seen[r.Theme] {
			seen[r.Theme] = true
			themes = append(themes, r.Theme)
		}
	}
	sort.Strings(themes)
	return themes, nil
}

func (service *Service) Statistics(context context.Context) (*Stats, error) {
	rooms, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}

	counts, err := service.repo.CountArtworks(context)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalRooms:      len(rooms),
		ByTheme:         make(map[string]int),
		ByAccessibility: make(map[string]int),
	}
	for _, r := range rooms {
		stats.ByTheme[r.Theme]++
		stats.ByAccessibility[string(r.Accessibility)]++
		stats.TotalArtworks += counts[r.ID]
		if r.HasAudio {
			stats.WithAudio++
		}
		if r.HasInteractive {
			stats.WithInteractive++
		}
	}
	return stats, nil
}
