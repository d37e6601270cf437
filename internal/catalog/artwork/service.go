package artwork

import (
	"context"
	"log/slog"
	"sort"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/catalog/qr"
	"github.com/teranga-labs/musee-api/internal/catalog/room"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

const (
	// popularCacheSize is how many artworks the cached popular snapshot holds.
	popularCacheSize = 10
	// topPopularCount is how many entries the statistics leaderboard keeps.
	topPopularCount = 5
)

// RoomDirectory is the subset of room persistence the artwork service needs:
// existence checks and name/theme enrichment.
type RoomDirectory interface {
	GetByID(context context.Context, id int) (*room.Room, error)
	GetAll(context context.Context) ([]*room.Room, error)
}

type Service struct {
	repo        Repository
	rooms       RoomDirectory
	cache       CacheRepository
	logger      *slog.Logger
	frontendURL string
}

// NewService wires the artwork use cases. cache may be nil, in which case
// every read goes straight to the repository.
func NewService(repo Repository, rooms RoomDirectory, cache CacheRepository, logger *slog.Logger, frontendURL string) *Service {
	return &Service{
		repo:        repo,
		rooms:       rooms,
		cache:       cache,
		logger:      logger,
		frontendURL: frontendURL,
	}
}

// WithRoom decorates an artwork with the French name of its room. RoomName is
// nil when the room can no longer be resolved.
type WithRoom struct {
	*Artwork
	RoomName *string `json:"room_name"`
}

// QRResult is returned by GenerateQRCode: the updated artwork plus the PNG
// payload for immediate printing.
type QRResult struct {
	Artwork *Artwork `json:"artwork"`
	URL     string   `json:"url"`
	PNG     string   `json:"png_base64"`
}

// PopularEntry is one row of the statistics leaderboard.
type PopularEntry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Popularity int    `json:"popularity"`
	ViewCount  int    `json:"view_count"`
	RoomName   string `json:"room_name"`
}

// Stats aggregates the whole catalog for the curation dashboard.
type Stats struct {
	TotalArtworks     int            `json:"total_artworks"`
	TotalViews        int            `json:"total_views"`
	AveragePopularity float64        `json:"average_popularity"`
	WithImage         int            `json:"with_image"`
	WithAudio         int            `json:"with_audio"`
	WithVideo         int            `json:"with_video"`
	ByCategory        map[string]int `json:"by_category"`
	ByPeriod          map[string]int `json:"by_period"`
	ByOrigin          map[string]int `json:"by_origin"`
	ByRoomTheme       map[string]int `json:"by_room_theme"`
	TopPopular        []PopularEntry `json:"top_popular"`
}

// CreateInput carries the fields needed to catalog a new artwork.
type CreateInput struct {
	Title       string      `json:"title"`
	Description mltext.Text `json:"description"`
	Category    string      `json:"category"`
	Period      string      `json:"period"`
	Origin      string      `json:"origin"`
	RoomID      int         `json:"room_id"`
	ImageURL    *string     `json:"image_url"`
	AudioURL    *string     `json:"audio_url"`
	VideoURL    *string     `json:"video_url"`
	Popularity  *int        `json:"popularity"`
}

// UpdateInput carries a partial artwork update. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string      `json:"title"`
	Description *mltext.Text `json:"description"`
	Category    *string      `json:"category"`
	Period      *string      `json:"period"`
	Origin      *string      `json:"origin"`
	RoomID      *int         `json:"room_id"`
	ImageURL    *string      `json:"image_url"`
	AudioURL    *string      `json:"audio_url"`
	VideoURL    *string      `json:"video_url"`
	Popularity  *int         `json:"popularity"`
}

func requireCurator(role sec.UserRole) error {
	if !role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Administrator role required")
	}
	return nil
}

// invalidateCache drops the cached snapshots after a write. Cache failures
// are logged, never surfaced: the database remains the source of truth.
func (service *Service) invalidateCache(context context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("catalog_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

func (service *Service) roomNames(context context.Context) map[int]string {
	rooms, err := service.rooms.GetAll(context)
	if err != nil {
		service.logger.Warn("room_name_enrichment_failed", slog.String("error", err.Error()))
		return nil
	}

	names := make(map[int]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name.FR
	}
	return names
}

func (service *Service) withRoomNames(context context.Context, artworks []*Artwork) []*WithRoom {
	names := service.roomNames(context)

	decorated := make([]*WithRoom, 0, len(artworks))
	for _, a := range artworks {
		entry := &WithRoom{Artwork: a}
		if name, found := names[a.RoomID]; found {
			entry.RoomName = &name
		}
		decorated = append(decorated, entry)
	}
	return decorated
}

func (service *Service) GetAll(context context.Context) ([]*WithRoom, error) {
	artworks, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}
	return service.withRoomNames(context, artworks), nil
}

// View returns one artwork. When increment is set the view counter is bumped
// first, so the returned view_count reflects this visit.
func (service *Service) View(context context.Context, id int, increment bool) (*Artwork, error) {
	if increment {
		bumped, err := service.repo.IncrementViewCount(context, id)
		if err != nil {
			return nil, err
		}
		if !bumped {
			return nil, apperr.NotFound("Artwork")
		}
		service.invalidateCache(context)
	}

	return service.repo.GetByID(context, id)
}

func (service *Service) GetByRoom(context context.Context, roomID int) ([]*Artwork, error) {
	if _, err := service.rooms.GetByID(context, roomID); err != nil {
		return nil, err
	}
	return service.repo.GetByRoomID(context, roomID)
}

func (service *Service) GetByCategory(context context.Context, category string) ([]*Artwork, error) {
	return service.repo.GetByCategory(context, category)
}

// Create catalogs a new artwork in an existing room. The QR code is attached
// afterwards through GenerateQRCode, so a freshly created artwork has a nil
// qr_code_url.
func (service *Service) Create(context context.Context, role sec.UserRole, input CreateInput) (*Artwork, error) {
	if err := requireCurator(role); err != nil {
		return nil, err
	}

	if _, err := service.rooms.GetByID(context, input.RoomID); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.ValidationError("Room does not exist", apperr.FieldError{
				Field:   FieldRoomID,
				Message: "must reference an existing room",
			})
		}
		return nil, err
	}

	newArtwork, err := New(input.Title, input.Description, input.Category, input.Period, input.Origin, input.RoomID)
	if err != nil {
		return nil, err
	}

	newArtwork.ImageURL = input.ImageURL
	newArtwork.AudioURL = input.AudioURL
	newArtwork.VideoURL = input.VideoURL
	if input.Popularity != nil {
		newArtwork.Popularity = *input.Popularity
	}
	if err := newArtwork.Validate(); err != nil {
		return nil, err
	}

	saved, err := service.repo.Save(context, newArtwork)
	if err != nil {
		return nil, err
	}
	service.invalidateCache(context)

	service.logger.Info("artwork_created",
		slog.Int("artwork_id", saved.ID),
		slog.Int("room_id", saved.RoomID),
	)
	return saved, nil
}

// GenerateQRCode builds the deep-link QR code for an artwork and persists the
// encoded URL on it.
func (service *Service) GenerateQRCode(context context.Context, role sec.UserRole, id int) (*QRResult, error) {
	if err := requireCurator(role); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	code, err := qr.ForArtwork(existing.ID, service.frontendURL)
	if err != nil {
		return nil, err
	}

	if err := existing.SetQRCode(code.URL); err != nil {
		return nil, err
	}

	saved, err := service.repo.Save(context, existing)
	if err != nil {
		return nil, err
	}
	service.invalidateCache(context)

	service.logger.Info("artwork_qrcode_generated", slog.Int("artwork_id", saved.ID))
	return &QRResult{Artwork: saved, URL: code.URL, PNG: code.Base64()}, nil
}

func (service *Service) Update(context context.Context, role sec.UserRole, id int, input UpdateInput) (*Artwork, error) {
	if err := requireCurator(role); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.RoomID != nil && *input.RoomID != existing.RoomID {
		if _, err := service.rooms.GetByID(context, *input.RoomID); err != nil {
			if apperr.IsCode(err, apperr.CodeNotFound) {
				return nil, apperr.ValidationError("Target room does not exist", apperr.FieldError{
					Field:   FieldRoomID,
					Message: "must reference an existing room",
				})
			}
			return nil, err
		}
		if err := existing.MoveToRoom(*input.RoomID); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Period != nil {
		existing.Period = *input.Period
	}
	if input.Origin != nil {
		existing.Origin = *input.Origin
	}
	if input.ImageURL != nil {
		existing.ImageURL = input.ImageURL
	}
	if input.AudioURL != nil {
		existing.AudioURL = input.AudioURL
	}
	if input.VideoURL != nil {
		existing.VideoURL = input.VideoURL
	}
	if input.Popularity != nil {
		if err := existing.SetPopularity(*input.Popularity); err != nil {
			return nil, err
		}
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	saved, err := service.repo.Save(context, existing)
	if err != nil {
		return nil, err
	}
	service.invalidateCache(context)

	service.logger.Info("artwork_updated", slog.Int("artwork_id", saved.ID))
	return saved, nil
}

func (service *Service) Delete(context context.Context, role sec.UserRole, id int) error {
	if err := requireCurator(role); err != nil {
		return err
	}

	deleted, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Artwork")
	}
	service.invalidateCache(context)

	service.logger.Warn("artwork_deleted", slog.Int("artwork_id", id))
	return nil
}

// Search applies the filter and truncates the result to limit when positive.
func (service *Service) Search(context context.Context, filter Filter, limit int) ([]*Artwork, error) {
	artworks, err := service.repo.Search(context, filter)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(artworks) > limit {
		artworks = artworks[:limit]
	}
	return artworks, nil
}

// GetPopular returns the most popular artworks, ordered by popularity then
// view count. The unfiltered list is served from the Redis snapshot when
// possible.
func (service *Service) GetPopular(context context.Context, limit int, category string) ([]*Artwork, error) {
	if limit <= 0 {
		return []*Artwork{}, nil
	}

	if category != "" {
		artworks, err := service.repo.GetByCategory(context, category)
		if err != nil {
			return nil, err
		}
		sort.Slice(artworks, func(i, j int) bool {
			if artworks[i].Popularity != artworks[j].Popularity {
				return artworks[i].Popularity > artworks[j].Popularity
			}
			return artworks[i].ViewCount > artworks[j].ViewCount
		})
		if len(artworks) > limit {
			artworks = artworks[:limit]
		}
		return artworks, nil
	}

	// Snapshot path: the cache holds the top popularCacheSize entries.
	if service.cache != nil && limit <= popularCacheSize {
		cached, err := service.cache.GetPopular(context)
		if err != nil {
			service.logger.Warn("popular_cache_read_failed", slog.String("error", err.Error()))
		} else if cached != nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	snapshot, err := service.repo.GetPopular(context, popularCacheSize)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.SetPopular(context, snapshot); err != nil {
			service.logger.Warn("popular_cache_write_failed", slog.String("error", err.Error()))
		}
	}

	if limit > popularCacheSize {
		return service.repo.GetPopular(context, limit)
	}
	if len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}
	return snapshot, nil
}

// Categories returns the distinct artwork categories, sorted.
func (service *Service) Categories(context context.Context) ([]string, error) {
	artworks, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, a := range artworks {
		if !seen[a.Category] {
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Statistics aggregates the whole catalog in memory. The snapshot is cached
// in Redis for the dashboard polling loop.
func (service *Service) Statistics(context context.Context) (*Stats, error) {
	if service.cache != nil {
		cached, err := service.cache.GetStats(context)
		if err != nil {
			service.logger.Warn("stats_cache_read_failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	artworks, err := service.repo.GetAll(context)
	if err != nil {
		return nil, err
	}

	rooms, err := service.rooms.GetAll(context)
	if err != nil {
		return nil, err
	}
	roomThemes := make(map[int]string, len(rooms))
	names := make(map[int]string, len(rooms))
	for _, r := range rooms {
		roomThemes[r.ID] = r.Theme
		names[r.ID] = r.Name.FR
	}

	stats := &Stats{
		TotalArtworks: len(artworks),
		ByCategory:    make(map[string]int),
		ByPeriod:      make(map[string]int),
		ByOrigin:      make(map[string]int),
		ByRoomTheme:   make(map[string]int),
		TopPopular:    []PopularEntry{},
	}

	var popularitySum int
	for _, a := range artworks {
		stats.TotalViews += a.ViewCount
		popularitySum += a.Popularity
		stats.ByCategory[a.Category]++
		stats.ByPeriod[a.Period]++
		stats.ByOrigin[a.Origin]++
		if theme, found := roomThemes[a.RoomID]; found {
			stats.ByRoomTheme[theme]++
		}
		if a.ImageURL != nil {
			stats.WithImage++
		}
		if a.AudioURL != nil {
			stats.WithAudio++
		}
		if a.VideoURL != nil {
			stats.WithVideo++
		}
	}
	if len(artworks) > 0 {
		stats.AveragePopularity = float64(popularitySum) / float64(len(artworks))
	}

	ranked := append([]*Artwork(nil), artworks...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Popularity != ranked[j].Popularity {
			return ranked[i].Popularity > ranked[j].Popularity
		}
		return ranked[i].ViewCount > ranked[j].ViewCount
	})
	for index, a := range ranked {
		if index == topPopularCount {
			break
		}
		stats.TopPopular = append(stats.TopPopular, PopularEntry{
			ID:         a.ID,
			Title:      a.Title,
			Popularity: a.Popularity,
			ViewCount:  a.ViewCount,
			RoomName:   names[a.RoomID],
		})
	}

	if service.cache != nil {
		if err := service.cache.SetStats(context, stats); err != nil {
			service.logger.Warn("stats_cache_write_failed", slog.String("error", err.Error()))
		}
	}
	return stats, nil
}
