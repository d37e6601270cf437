package room

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/catalog/mltext"
	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

// purgeRecorder fakes the artwork side of the delete cascade.
type purgeRecorder struct {
	purgedRooms []int
	counts      map[int]int
}

func (recorder *purgeRecorder) PurgeByRoom(_ context.Context, roomID int) error {
	recorder.purgedRooms = append(recorder.purgedRooms, roomID)
	return nil
}

func (recorder *purgeRecorder) CountByRoom(_ context.Context) (map[int]int, error) {
	if recorder.counts == nil {
		return map[int]int{}, nil
	}
	return recorder.counts, nil
}

func newTestService() (*Service, *MemoryRepository, *purgeRecorder) {
	repo := NewMemoryRepository()
	recorder := &purgeRecorder{}
	repo.AttachArtworks(recorder)
	return NewService(repo, slog.Default()), repo, recorder
}

func validInput() CreateInput {
	return CreateInput{
		Name:          mltext.New("Salle des Masques", "Mask Room", ""),
		Description:   mltext.New("Masques rituels du Sénégal", "", ""),
		Theme:         "masques",
		Accessibility: "easy",
	}
}

func TestCreateRoom(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	t.Run("admin creates and synonym is canonicalized", func(t *testing.T) {
		created, err := service.Create(ctx, sec.RoleAdmin, validInput())
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, AccessibilityEasy, created.Accessibility)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		_, err := service.Create(ctx, sec.RoleUser, validInput())
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		_, err := service.Create(ctx, "", validInput())
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("invalid input is a validation error not forbidden", func(t *testing.T) {
		input := validInput()
		input.Theme = ""
		_, err := service.Create(ctx, sec.RoleAdmin, input)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestUpdateRoomPartial(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, sec.RoleAdmin, validInput())
	require.NoError(t, err)

	theme := "histoire"
	updated, err := service.Update(ctx, sec.RoleAdmin, created.ID, UpdateInput{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, "histoire", updated.Theme)
	// Untouched fields survive
	assert.Equal(t, "Salle des Masques", updated.Name.FR)
	assert.Equal(t, AccessibilityEasy, updated.Accessibility)
}

func TestDeleteRoomCascades(t *testing.T) {
	service, _, recorder := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, sec.RoleAdmin, validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, sec.RoleAdmin, created.ID))
	assert.Equal(t, []int{created.ID}, recorder.purgedRooms)

	_, err = service.GetByID(ctx, created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteRoomMissing(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Delete(context.Background(), sec.RoleAdmin, 999)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestSearchRooms(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	first := validInput()
	_, err := service.Create(ctx, sec.RoleAdmin, first)
	require.NoError(t, err)

	second := CreateInput{
		Name:          mltext.New("Salle Royale", "", ""),
		Description:   mltext.New("Trésors des royaumes wolof", "", ""),
		Theme:         "histoire",
		Accessibility: "advanced",
		HasAudio:      true,
	}
	_, err = service.Create(ctx, sec.RoleAdmin, second)
	require.NoError(t, err)

	t.Run("empty filter returns everything", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("free text is case-insensitive over descriptions", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{Query: "WOLOF"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Salle Royale", results[0].Name.FR)
	})

	t.Run("criteria are conjoined", func(t *testing.T) {
		results, err := service.Search(ctx, Filter{Theme: "histoire", Accessibility: AccessibilityEasy})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestAvailableThemesAndStatistics(t *testing.T) {
	service, _, recorder := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, sec.RoleAdmin, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Name = mltext.New("Salle Royale", "", "")
	second.Theme = "histoire"
	second.HasAudio = true
	created, err := service.Create(ctx, sec.RoleAdmin, second)
	require.NoError(t, err)

	recorder.counts = map[int]int{first.ID: 3, created.ID: 2}

	themes, err := service.AvailableThemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"histoire", "masques"}, themes)

	stats, err := service.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 5, stats.TotalArtworks)
	assert.Equal(t, 1, stats.ByTheme["masques"])
	assert.Equal(t, 1, stats.WithAudio)
}

func TestGetAllEmbedsArtworkCounts(t *testing.T) {
	service, _, recorder := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, sec.RoleAdmin, validInput())
	require.NoError(t, err)
	recorder.counts = map[int]int{created.ID: 7}

	rooms, err := service.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 7, rooms[0].ArtworkCount)
}
