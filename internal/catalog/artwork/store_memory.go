package artwork

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

// MemoryRepository is an in-memory Repository used as the test seam.
// It is safe for concurrent use.
type MemoryRepository struct {
	mu       sync.RWMutex
	artworks map[int]*Artwork
	nextID   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		artworks: make(map[int]*Artwork),
		nextID:   1,
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

func clone(a *Artwork) *Artwork {
	copied := *a
	copied.ImageURL = cloneString(a.ImageURL)
	copied.AudioURL = cloneString(a.AudioURL)
	copied.VideoURL = cloneString(a.VideoURL)
	copied.QRCodeURL = cloneString(a.QRCodeURL)
	return &copied
}

func sortByTitle(artworks []*Artwork) {
	sort.Slice(artworks, func(i, j int) bool { return artworks[i].Title < artworks[j].Title })
}

func (repository *MemoryRepository) GetByID(_ context.Context, id int) (*Artwork, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	a, found := repository.artworks[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return clone(a), nil
}

func (repository *MemoryRepository) GetAll(_ context.Context) ([]*Artwork, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	artworks := make([]*Artwork, 0, len(repository.artworks))
	for _, a := range repository.artworks {
		artworks = append(artworks, clone(a))
	}
	sortByTitle(artworks)
	return artworks, nil
}

func (repository *MemoryRepository) Save(_ context.Context, a *Artwork) (*Artwork, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if a.ID == 0 {
		a.ID = repository.nextID
		repository.nextID++
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
	} else if _, found := repository.artworks[a.ID]; !found {
		return nil, dberr.ErrNotFound
	}

	repository.artworks[a.ID] = clone(a)
	return clone(a), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.artworks[id]; !found {
		return false, nil
	}
	delete(repository.artworks, id)
	return true, nil
}

func (repository *MemoryRepository) Search(_ context.Context, f Filter) ([]*Artwork, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	needle := strings.ToLower(f.Query)

	var artworks []*Artwork
	for _, a := range repository.artworks {
		if needle != "" {
			haystack := strings.ToLower(a.Title + " " + a.Description.FR + " " + a.Description.EN)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Period != "" && a.Period != f.Period {
			continue
		}
		if f.Origin != "" && a.Origin != f.Origin {
			continue
		}
		if f.RoomID > 0 && a.RoomID != f.RoomID {
			continue
		}
		artworks = append(artworks, clone(a))
	}

	sortByTitle(artworks)
	return artworks, nil
}

func (repository *MemoryRepository) GetByRoomID(context context.Context, roomID int) ([]*Artwork, error) {
	return repository.Search(context, Filter{RoomID: roomID})
}

func (repository *MemoryRepository) GetByCategory(context context.Context, category string) ([]*Artwork, error) {
	return repository.Search(context, Filter{Category: category})
}

func (repository *MemoryRepository) GetPopular(_ context.Context, limit int) ([]*Artwork, error) {
	if limit <= 0 {
		return nil, nil
	}

	repository.mu.RLock()
	artworks := make([]*Artwork, 0, len(repository.artworks))
	for _, a := range repository.artworks {
		artworks = append(artworks, clone(a))
	}
	repository.mu.RUnlock()

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

func (repository *MemoryRepository) IncrementViewCount(_ context.Context, id int) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	a, found := repository.artworks[id]
	if !found {
		return false, nil
	}
	a.ViewCount++
	return true, nil
}

// PurgeByRoom removes every artwork of the given room. It backs the
// in-memory room delete cascade.
func (repository *MemoryRepository) PurgeByRoom(_ context.Context, roomID int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, a := range repository.artworks {
		if a.RoomID == roomID {
			delete(repository.artworks, id)
		}
	}
	return nil
}

// CountByRoom returns the number of artworks per room ID.
func (repository *MemoryRepository) CountByRoom(_ context.Context) (map[int]int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	counts := make(map[int]int)
	for _, a := range repository.artworks {
		counts[a.RoomID]++
	}
	return counts, nil
}
