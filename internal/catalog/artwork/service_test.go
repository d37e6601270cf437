package artwork

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/catalog/room"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

const testFrontendURL = "https://musee-virtuel.sn"

// fakeCache is an in-process CacheRepository that records invalidations.
type fakeCache struct {
	popular       []*Artwork
	stats         *Stats
	invalidations int
}

func (cache *fakeCache) GetPopular(_ context.Context) ([]*Artwork, error) { return cache.popular, nil }
func (cache *fakeCache) SetPopular(_ context.Context, artworks []*Artwork) error {
	cache.popular = artworks
	return nil
}
func (cache *fakeCache) GetStats(_ context.Context) (*Stats, error) { return cache.stats, nil }
func (cache *fakeCache) SetStats(_ context.Context, stats *Stats) error {
	cache.stats = stats
	return nil
}
func (cache *fakeCache) Invalidate(_ context.Context) error {
	cache.popular = nil
	cache.stats = nil
	cache.invalidations++
	return nil
}

func newTestService(t *testing.T) (*Service, *MemoryRepository, *room.MemoryRepository, *fakeCache) {
	t.Helper()

	rooms := room.NewMemoryRepository()
	repo := NewMemoryRepository()
	rooms.AttachArtworks(repo)
	cache := &fakeCache{}

	service := NewService(repo, rooms, cache, slog.Default(), testFrontendURL)
	return service, repo, rooms, cache
}

func seedRoom(t *testing.T, rooms *room.MemoryRepository, name string) *room.Room {
	t.Helper()

	created, err := room.New(
		mltext.New(name, "", ""),
		mltext.New("Description de "+name, "", ""),
		"masques",
		room.AccessibilityEasy,
	)
	require.NoError(t, err)

	saved, err := rooms.Save(context.Background(), created)
	require.NoError(t, err)
	return saved
}

func createInput(roomID int, title string) CreateInput {
	return CreateInput{
		Title:       title,
		Description: mltext.New("Description de "+title, "", ""),
		Category:    "masques",
		Period:      "XIXe siècle",
		Origin:      "Sénégal",
		RoomID:      roomID,
	}
}

func TestCreateArtwork(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	t.Run("admin creates, qr code starts empty", func(t *testing.T) {
		created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Nil(t, created.QRCodeURL)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		_, err := service.Create(ctx, sec.RoleUser, createInput(exhibitionRoom.ID, "Tambour"))
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("unknown room is a validation error", func(t *testing.T) {
		_, err := service.Create(ctx, sec.RoleAdmin, createInput(999, "Tambour"))
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestViewIncrementIsMonotone(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)

	const visits = 5
	var last *Artwork
	for i := 0; i < visits; i++ {
		last, err = service.View(ctx, created.ID, true)
		require.NoError(t, err)
	}
	assert.Equal(t, visits, last.ViewCount)

	// A read without increment leaves the counter untouched
	same, err := service.View(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, visits, same.ViewCount)
}

func TestViewUnknownArtwork(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.View(context.Background(), 42, true)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestGenerateQRCode(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)

	result, err := service.GenerateQRCode(ctx, sec.RoleAdmin, created.ID)
	require.NoError(t, err)

	expectedURL := fmt.Sprintf("%s/artwork/%d", testFrontendURL, created.ID)
	assert.Equal(t, expectedURL, result.URL)
	assert.NotEmpty(t, result.PNG)
	require.NotNil(t, result.Artwork.QRCodeURL)
	assert.Equal(t, expectedURL, *result.Artwork.QRCodeURL)

	// Persisted, not only returned
	reloaded, err := service.View(ctx, created.ID, false)
	require.NoError(t, err)
	require.NotNil(t, reloaded.QRCodeURL)
	assert.Equal(t, expectedURL, *reloaded.QRCodeURL)
}

func TestUpdateArtworkRoomMove(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	first := seedRoom(t, rooms, "Salle des Masques")
	second := seedRoom(t, rooms, "Salle Royale")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(first.ID, "Masque Gelede"))
	require.NoError(t, err)

	t.Run("move to existing room", func(t *testing.T) {
		updated, err := service.Update(ctx, sec.RoleAdmin, created.ID, UpdateInput{RoomID: &second.ID})
		require.NoError(t, err)
		assert.Equal(t, second.ID, updated.RoomID)
	})

	t.Run("move to missing room rejected", func(t *testing.T) {
		missing := 999
		_, err := service.Update(ctx, sec.RoleAdmin, created.ID, UpdateInput{RoomID: &missing})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestSearchArtworks(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	mask := createInput(exhibitionRoom.ID, "Masque Gelede")
	_, err := service.Create(ctx, sec.RoleAdmin, mask)
	require.NoError(t, err)

	drum := createInput(exhibitionRoom.ID, "Tambour sabar")
	drum.Category = "instruments"
	drum.Origin = "Sénégal"
	_, err = service.Create(ctx, sec.RoleAdmin, drum)
	require.NoError(t, err)

	t.Run("empty filter returns everything", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{}, 0)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("free text is case-insensitive", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{Query: "GELEDE"}, 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Masque Gelede", results[0].Title)
	})

	t.Run("criteria are conjoined", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{Category: "instruments", Origin: "Mali"}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit truncates", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{}, 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestGetPopularOrdering(t *testing.T) {
	service, repo, rooms, cache := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	scores := []struct {
		title      string
		popularity int
		views      int
	}{
		{title: "Faible", popularity: 1, views: 100},
		{title: "Fort", popularity: 9, views: 1},
		{title: "Moyen A", popularity: 5, views: 50},
		{title: "Moyen B", popularity: 5, views: 10},
	}
	for _, score := range scores {
		input := createInput(exhibitionRoom.ID, score.title)
		input.Popularity = &score.popularity
		created, err := service.Create(ctx, sec.RoleAdmin, input)
		require.NoError(t, err)
		for i := 0; i < score.views; i++ {
			_, err := repo.IncrementViewCount(ctx, created.ID)
			require.NoError(t, err)
		}
	}

	popular, err := service.GetPopular(ctx, 3, "")
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, "Fort", popular[0].Title)
	// Popularity ties break on view count
	assert.Equal(t, "Moyen A", popular[1].Title)
	assert.Equal(t, "Moyen B", popular[2].Title)

	t.Run("non-positive limit yields empty", func(t *testing.T) {
		results, err := service.GetPopular(ctx, 0, "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("snapshot is cached and served on the next read", func(t *testing.T) {
		require.NotNil(t, cache.popular)
		again, err := service.GetPopular(ctx, 3, "")
		require.NoError(t, err)
		assert.Equal(t, popular, again)
	})
}

func TestWritesInvalidateCache(t *testing.T) {
	service, _, rooms, cache := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)
	invalidationsAfterCreate := cache.invalidations
	assert.Positive(t, invalidationsAfterCreate)

	// Warm both snapshots
	_, err = service.GetPopular(ctx, 5, "")
	require.NoError(t, err)
	_, err = service.Statistics(ctx)
	require.NoError(t, err)
	require.NotNil(t, cache.popular)
	require.NotNil(t, cache.stats)

	_, err = service.View(ctx, created.ID, true)
	require.NoError(t, err)

	assert.Greater(t, cache.invalidations, invalidationsAfterCreate)
	assert.Nil(t, cache.popular)
	assert.Nil(t, cache.stats)
}

func TestStatisticsAggregation(t *testing.T) {
	service, repo, rooms, _ := newTestService(t)
	ctx := context.Background()
	maskRoom := seedRoom(t, rooms, "Salle des Masques")

	historyRoom, err := room.New(
		mltext.New("Salle Royale", "", ""),
		mltext.New("Trésors royaux", "", ""),
		"histoire",
		room.AccessibilityAdvanced,
	)
	require.NoError(t, err)
	savedHistory, err := rooms.Save(ctx, historyRoom)
	require.NoError(t, err)

	mask := createInput(maskRoom.ID, "Masque Gelede")
	popularity := 8
	mask.Popularity = &popularity
	imageURL := "https://cdn.musee-virtuel.sn/img/gelede.jpg"
	mask.ImageURL = &imageURL
	maskCreated, err := service.Create(ctx, sec.RoleAdmin, mask)
	require.NoError(t, err)

	drum := createInput(savedHistory.ID, "Tambour sabar")
	drum.Category = "instruments"
	drum.Period = "XXe siècle"
	audioURL := "https://cdn.musee-virtuel.sn/audio/sabar.mp3"
	drum.AudioURL = &audioURL
	_, err = service.Create(ctx, sec.RoleAdmin, drum)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := repo.IncrementViewCount(ctx, maskCreated.ID)
		require.NoError(t, err)
	}

	stats, err := service.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalArtworks)
	assert.Equal(t, 3, stats.TotalViews)
	assert.InDelta(t, 4.0, stats.AveragePopularity, 0.001)
	assert.Equal(t, 1, stats.WithImage)
	assert.Equal(t, 1, stats.WithAudio)
	assert.Equal(t, 0, stats.WithVideo)
	assert.Equal(t, map[string]int{"masques": 1, "instruments": 1}, stats.ByCategory)
	assert.Equal(t, map[string]int{"XIXe siècle": 1, "XXe siècle": 1}, stats.ByPeriod)
	assert.Equal(t, 1, stats.ByRoomTheme["histoire"])

	require.NotEmpty(t, stats.TopPopular)
	assert.Equal(t, "Masque Gelede", stats.TopPopular[0].Title)
	assert.Equal(t, "Salle des Masques", stats.TopPopular[0].RoomName)
}

func TestGetAllEmbedsRoomNames(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	_, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)

	artworks, err := service.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, artworks, 1)
	require.NotNil(t, artworks[0].RoomName)
	assert.Equal(t, "Salle des Masques", *artworks[0].RoomName)
}

func TestGetByRoomRequiresRoom(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	_, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)

	artworks, err := service.GetByRoom(ctx, exhibitionRoom.ID)
	require.NoError(t, err)
	assert.Len(t, artworks, 1)

	_, err = service.GetByRoom(ctx, 999)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestRoomDeleteCascadesToArtworks(t *testing.T) {
	service, repo, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque Gelede"))
	require.NoError(t, err)

	deleted, err := rooms.DeleteWithArtworks(ctx, exhibitionRoom.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = repo.GetByID(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestArtworkLifecycle(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle Test")

	created, err := service.Create(ctx, sec.RoleAdmin, createInput(exhibitionRoom.ID, "Masque"))
	require.NoError(t, err)
	assert.Equal(t, 0, created.ViewCount)

	for i := 0; i < 3; i++ {
		_, err = service.View(ctx, created.ID, true)
		require.NoError(t, err)
	}
	visited, err := service.View(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 3, visited.ViewCount)

	popularity := 85
	_, err = service.Update(ctx, sec.RoleAdmin, created.ID, UpdateInput{Popularity: &popularity})
	require.NoError(t, err)

	popular, err := service.GetPopular(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, created.ID, popular[0].ID)
	assert.Equal(t, 85, popular[0].Popularity)
}

func TestCategories(t *testing.T) {
	service, _, rooms, _ := newTestService(t)
	ctx := context.Background()
	exhibitionRoom := seedRoom(t, rooms, "Salle des Masques")

	for _, category := range []string{"masques", "instruments", "masques", "textiles"} {
		input := createInput(exhibitionRoom.ID, category+" "+strings.Repeat("x", len(category)))
		input.Category = category
		_, err := service.Create(ctx, sec.RoleAdmin, input)
		require.NoError(t, err)
	}

	categories, err := service.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"instruments", "masques", "textiles"}, categories)
}
