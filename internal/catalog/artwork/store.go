package artwork

import "context"

// Repository is the persistence contract of the artwork aggregate.
type Repository interface {
	GetByID(context context.Context, id int) (*Artwork, error)
	GetAll(context context.Context) ([]*Artwork, error)
	Save(context context.Context, a *Artwork) (*Artwork, error)
	Delete(context context.Context, id int) (bool, error)
	Search(context context.Context, f Filter) ([]*Artwork, error)

	GetByRoomID(context context.Context, roomID int) ([]*Artwork, error)
	GetByCategory(context context.Context, category string) ([]*Artwork, error)

	// GetPopular returns at most limit artworks ordered by popularity then
	// view count, both descending. A non-positive limit yields an empty list.
	GetPopular(context context.Context, limit int) ([]*Artwork, error)

	// IncrementViewCount bumps the view counter by one. Returns false when
	// the artwork does not exist. The counter never decreases.
	IncrementViewCount(context context.Context, id int) (bool, error)
}

// CacheRepository holds volatile read-side snapshots (Redis). Misses are
// reported as nil values, not errors.
type CacheRepository interface {
	GetPopular(context context.Context) ([]*Artwork, error)
	SetPopular(context context.Context, artworks []*Artwork) error
	GetStats(context context.Context) (*Stats, error)
	SetStats(context context.Context, stats *Stats) error

	// Invalidate drops every cached snapshot. Called after any artwork write.
	Invalidate(context context.Context) error
}
