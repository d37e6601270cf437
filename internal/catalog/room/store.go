package room

import "context"

// Repository is the persistence contract of the room aggregate.
type Repository interface {
	GetByID(context context.Context, id int) (*Room, error)
	GetAll(context context.Context) ([]*Room, error)
	Save(context context.Context, r *Room) (*Room, error)
	Delete(context context.Context, id int) (bool, error)
	Search(context context.Context, f Filter) ([]*Room, error)

	// DeleteWithArtworks removes the room and every artwork it contains in a
	// single transaction. Returns false when the room does not exist.
	DeleteWithArtworks(context context.Context, id int) (bool, error)

	// CountArtworks returns the number of artworks per room ID.
	CountArtworks(context context.Context) (map[int]int, error)
}
