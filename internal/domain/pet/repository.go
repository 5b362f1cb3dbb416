package pet

import "context"

// ListQuery selects a feed page. TypeFilter is already normalized; empty matches all.
type ListQuery struct {
	TypeFilter string
	Page       int
	Limit      int
}

// PetRepository defines persistence operations for pet listings.
type PetRepository interface {
	// FindByID returns a NotFound domain error when id has no row.
	FindByID(ctx context.Context, id int64) (*Pet, error)

	// List returns one page ordered newest first, plus the total number of matches.
	List(ctx context.Context, q ListQuery) ([]*Pet, int64, error)

	// Save inserts pet and assigns its id and timestamps.
	Save(ctx context.Context, pet *Pet) error
}
