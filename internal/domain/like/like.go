package like

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// Like records that a user likes a pet. At most one exists per (user, pet).
type Like struct {
	id        int64
	userID    string
	petID     int64
	createdAt time.Time
}

// NewLike creates an unsaved like.
func NewLike(userID string, petID int64) (*Like, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to like a pet")
	}
	if petID <= 0 {
		return nil, domain.NewNotFoundError("Pet", "0")
	}
	return &Like{
		userID:    userID,
		petID:     petID,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Like from persistence.
func Reconstruct(id int64, userID string, petID int64, createdAt time.Time) *Like {
	return &Like{id: id, userID: userID, petID: petID, createdAt: createdAt}
}

// Getters.
func (l *Like) ID() int64            { return l.id }
func (l *Like) UserID() string       { return l.userID }
func (l *Like) PetID() int64         { return l.petID }
func (l *Like) CreatedAt() time.Time { return l.createdAt }

// AssignID records the identifier handed out by the store.
func (l *Like) AssignID(id int64) { l.id = id }

// IsOwnedBy checks if userID created the like.
func (l *Like) IsOwnedBy(userID string) bool { return l.userID == userID }

// PetSummary is the slice of a pet shown next to a like on the profile page.
// It is nil on a LikedPet when the pet row is gone.
type PetSummary struct {
	ID          int64
	Name        string
	Type        string
	Age         string
	ImageURL    string
	ListingMode string
	Price       decimal.NullDecimal
}

// LikedPet joins a like with the pet it points at.
type LikedPet struct {
	Like *Like
	Pet  *PetSummary
}
