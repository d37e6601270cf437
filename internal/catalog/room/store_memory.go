package room

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

// ArtworkStore is the subset of artwork persistence the in-memory room
// repository needs to honor the delete cascade.
type ArtworkStore interface {
	PurgeByRoom(context context.Context, roomID int) error
	CountByRoom(context context.Context) (map[int]int, error)
}

// MemoryRepository is an in-memory Repository used as the test seam.
// It is safe for concurrent use.
type MemoryRepository struct {
	mu       sync.RWMutex
	rooms    map[int]*Room
	nextID   int
	artworks ArtworkStore
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rooms:  make(map[int]*Room),
		nextID: 1,
	}
}

// AttachArtworks wires the artwork store so the delete cascade and artwork
// counts behave like the Postgres implementation.
func (repository *MemoryRepository) AttachArtworks(store ArtworkStore) {
	repository.artworks = store
}

func clone(r *Room) *Room {
	copied := *r
	copied.Hotspots = append([]Hotspot(nil), r.Hotspots...)
	if r.PanoramaURL != nil {
		url := *r.PanoramaURL
		copied.PanoramaURL = &url
	}
	return &copied
}

func (repository *MemoryRepository) GetByID(_ context.Context, id int) (*Room, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	r, found := repository.rooms[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return clone(r), nil
}

func (repository *MemoryRepository) GetAll(_ context.Context) ([]*Room, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	rooms := make([]*Room, 0, len(repository.rooms))
	for _, r := range repository.rooms {
		rooms = append(rooms, clone(r))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name.FR < rooms[j].Name.FR })
	return rooms, nil
}

func (repository *MemoryRepository) Save(_ context.Context, r *Room) (*Room, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if r.ID == 0 {
		r.ID = repository.nextID
		repository.nextID++
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
	} else if _, found := repository.rooms[r.ID]; !found {
		return nil, dberr.ErrNotFound
	}

	repository.rooms[r.ID] = clone(r)
	return clone(r), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.rooms[id]; !found {
		return false, nil
	}
	delete(repository.rooms, id)
	return true, nil
}

func (repository *MemoryRepository) Search(_ context.Context, f Filter) ([]*Room, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	needle := strings.ToLower(f.Query)

	var rooms []*Room
	for _, r := range repository.rooms {
		if needle != "" {
			haystack := strings.ToLower(r.Name.FR + " " + r.Description.FR + " " + r.Description.EN)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if f.Theme != "" && r.Theme != f.Theme {
			continue
		}
		if f.Accessibility != "" && r.Accessibility != f.Accessibility {
			continue
		}
		if f.HasAudio != nil && r.HasAudio != *f.HasAudio {
			continue
		}
		rooms = append(rooms, clone(r))
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name.FR < rooms[j].Name.FR })
	return rooms, nil
}

func (repository *MemoryRepository) DeleteWithArtworks(context context.Context, id int) (bool, error) {
	repository.mu.Lock()
	_, found := repository.rooms[id]
	if !found {
		repository.mu.Unlock()
		return false, nil
	}
	delete(repository.rooms, id)
	repository.mu.Unlock()

	if repository.artworks != nil {
		if err := repository.artworks.PurgeByRoom(context, id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (repository *MemoryRepository) CountArtworks(context context.Context) (map[int]int, error) {
	if repository.artworks == nil {
		return map[int]int{}, nil
	}
	return repository.artworks.CountByRoom(context)
}
