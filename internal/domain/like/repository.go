package like

import "context"

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// FindByID returns a NotFound domain error when id has no row.
	FindByID(ctx context.Context, id int64) (*Like, error)

	// FindByUserAndPet returns nil, nil when the pair has no like.
	FindByUserAndPet(ctx context.Context, userID string, petID int64) (*Like, error)

	// Save inserts like. A duplicate (user, pet) pair yields a Conflict domain
	// error; an unknown pet yields NotFound.
	Save(ctx context.Context, like *Like) error

	// Delete removes the like with id. Deleting a missing row is not an error.
	Delete(ctx context.Context, id int64) error

	// ListByUser returns the user's likes with pet summaries, newest first.
	ListByUser(ctx context.Context, userID string) ([]LikedPet, error)
}
