package application

import (
	"time"

	"github.com/shopspring/decimal"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
)

// PetDTO is the API representation of a listing. Price is a fixed two-digit
// string, or null for free listings.
type PetDTO struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Age           string    `json:"age"`
	Health        string    `json:"health"`
	Inoculations  string    `json:"inoculations"`
	Habits        string    `json:"habits"`
	ImageURL      string    `json:"imageUrl"`
	OwnerID       string    `json:"ownerId"`
	ContactNumber string    `json:"contactNumber"`
	EmailAddress  string    `json:"emailAddress"`
	ListingMode   string    `json:"listingMode"`
	Price         *string   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PetPageDTO is one page of the feed.
type PetPageDTO struct {
	Items      []PetDTO `json:"items"`
	TotalPages int      `json:"totalPages"`
	Page       int      `json:"page"`
	TypeFilter string   `json:"typeFilter"`
}

// PetDetailDTO is the detail view of a listing.
type PetDetailDTO struct {
	Pet             PetDTO `json:"pet"`
	IsLikedByCaller bool   `json:"isLikedByCaller"`
}

// ToggleLikeDTO reports the like state after a toggle.
type ToggleLikeDTO struct {
	PetID int64 `json:"petId"`
	Liked bool  `json:"liked"`
}

// PetSummaryDTO is the pet card shown next to a like.
type PetSummaryDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Age         string  `json:"age"`
	ImageURL    string  `json:"imageUrl"`
	ListingMode string  `json:"listingMode"`
	Price       *string `json:"price"`
}

// LikeDTO is one entry of the caller's likes.
type LikeDTO struct {
	ID        int64          `json:"id"`
	PetID     int64          `json:"petId"`
	CreatedAt time.Time      `json:"createdAt"`
	Pet       *PetSummaryDTO `json:"pet"`
}

// UserDTO is the API representation of a synced user.
type UserDTO struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func formatPrice(p decimal.NullDecimal) *string {
	if !p.Valid {
		return nil
	}
	s := p.Decimal.StringFixed(2)
	return &s
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	dto := PetDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Type:          p.PetType(),
		Age:           p.Age(),
		Health:        p.Health(),
		Inoculations:  p.Inoculations(),
		Habits:        p.Habits(),
		ImageURL:      p.ImageURL(),
		OwnerID:       p.OwnerID(),
		ContactNumber: p.ContactNumber(),
		EmailAddress:  p.EmailAddress(),
		ListingMode:   string(p.ListingMode()),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
	if p.IsForSale() {
		dto.Price = formatPrice(p.Price())
	}
	return dto
}

func toLikeDTO(lp likeDomain.LikedPet) LikeDTO {
	dto := LikeDTO{
		ID:        lp.Like.ID(),
		PetID:     lp.Like.PetID(),
		CreatedAt: lp.Like.CreatedAt(),
	}
	if lp.Pet != nil {
		dto.Pet = &PetSummaryDTO{
			ID:          lp.Pet.ID,
			Name:        lp.Pet.Name,
			Type:        lp.Pet.Type,
			Age:         lp.Pet.Age,
			ImageURL:    lp.Pet.ImageURL,
			ListingMode: lp.Pet.ListingMode,
			Price:       formatPrice(lp.Pet.Price),
		}
	}
	return dto
}

func toUserDTO(u *userDomain.User) *UserDTO {
	return &UserDTO{
		ID:         u.ID(),
		ExternalID: u.ExternalID(),
		Email:      u.Email(),
		Name:       u.Name(),
		IsAdmin:    u.IsAdmin(),
		CreatedAt:  u.CreatedAt(),
		UpdatedAt:  u.UpdatedAt(),
	}
}
