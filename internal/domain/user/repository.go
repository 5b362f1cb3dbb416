package user

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Upsert inserts u or, when its external id exists, updates email, name,
	// admin flag and updated_at. It returns the stored row.
	Upsert(ctx context.Context, u *User) (*User, error)

	FindByExternalID(ctx context.Context, externalID string) (*User, error)
}
