package events

import "time"

// PetCreatedEvent is published after a listing is inserted.
type PetCreatedEvent struct {
	PetID       int64     `json:"pet_id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	ListingMode string    `json:"listing_mode"`
	Price       *string   `json:"price,omitempty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// PetLikeEvent is published for both adoption.pet.liked and adoption.pet.unliked.
type PetLikeEvent struct {
	PetID      int64     `json:"pet_id"`
	UserID     string    `json:"user_id"`
	LikeID     int64     `json:"like_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IdentityUserEvent carries a profile from the identity provider.
type IdentityUserEvent struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}
