package user

import (
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// UnknownName is stored when the identity provider has no display name.
const UnknownName = "Unknown"

// Identity is the profile an identity provider reports for a user.
type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string
	IsAdmin     bool
}

// User mirrors an identity-provider account locally.
type User struct {
	id         int64
	externalID string
	email      string
	name       string
	isAdmin    bool
	createdAt  time.Time
	updatedAt  time.Time
}

// FromIdentity validates ident and builds the user row to upsert.
func FromIdentity(ident Identity) (*User, error) {
	externalID := strings.TrimSpace(ident.ExternalID)
	email := strings.ToLower(strings.TrimSpace(ident.Email))
	if externalID == "" {
		return nil, domain.NewValidationError("external identity id is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}

	name := strings.TrimSpace(ident.DisplayName)
	if name == "" {
		name = UnknownName
	}

	now := time.Now().UTC()
	return &User{
		externalID: externalID,
		email:      email,
		name:       name,
		isAdmin:    ident.IsAdmin,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(id int64, externalID, email, name string, isAdmin bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:         id,
		externalID: externalID,
		email:      email,
		name:       name,
		isAdmin:    isAdmin,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) ExternalID() string   { return u.externalID }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) IsAdmin() bool        { return u.isAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
