package pet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// PageSize is the fixed number of pets on a feed page.
const PageSize = 10

// maxPrice is the largest value numeric(10,2) can hold.
var maxPrice = decimal.RequireFromString("99999999.99")

var (
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
	validate     = validator.New()
)

// IsValidContactNumber reports whether s is 10 to 15 digits with an optional leading +.
func IsValidContactNumber(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// NewPetInput carries the caller-supplied fields of a listing. ImageURL must
// already point at the media host.
type NewPetInput struct {
	Name          string
	Type          string
	Age           string
	Health        string
	Inoculations  string
	Habits        string
	ImageURL      string
	ContactNumber string
	EmailAddress  string
	ListingMode   string
	Price         string
}

// Pet is the aggregate root for an adoption listing.
type Pet struct {
	id            int64
	name          string
	petType       string
	age           string
	health        string
	inoculations  string
	habits        string
	imageURL      string
	ownerID       string
	contactNumber string
	emailAddress  string
	listingMode   ListingMode
	price         decimal.NullDecimal
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPet validates in and builds an unsaved Pet owned by ownerID.
// Contact details are mandatory for self-service listings only; admin
// direct-adds may omit them.
func NewPet(ownerID string, in NewPetInput, adminWrite bool) (*Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to list a pet")
	}

	var problems []string
	name := strings.TrimSpace(in.Name)
	petType := NormalizeType(in.Type)
	age := strings.TrimSpace(in.Age)
	imageURL := strings.TrimSpace(in.ImageURL)
	contact := strings.TrimSpace(in.ContactNumber)
	email := strings.TrimSpace(in.EmailAddress)

	if name == "" {
		problems = append(problems, "name is required")
	}
	if petType == "" {
		problems = append(problems, "type is required")
	}
	if age == "" {
		problems = append(problems, "age is required")
	}
	if imageURL == "" {
		problems = append(problems, "image is required")
	}

	if !adminWrite {
		switch {
		case contact == "":
			problems = append(problems, "contact number is required")
		case !IsValidContactNumber(contact):
			problems = append(problems, "contact number must be 10 to 15 digits with an optional leading +")
		}
		switch {
		case email == "":
			problems = append(problems, "email address is required")
		case validate.Var(email, "email") != nil:
			problems = append(problems, "email address is invalid")
		}
	}

	mode, err := ParseListingMode(in.ListingMode)
	if err != nil {
		problems = append(problems, err.Error())
	}

	var price decimal.NullDecimal
	if mode == ListingModeSelling {
		p, msg := parsePrice(in.Price)
		if msg != "" {
			problems = append(problems, msg)
		} else {
			price = decimal.NullDecimal{Decimal: p, Valid: true}
		}
	}

	if len(problems) > 0 {
		return nil, domain.NewValidationError(strings.Join(problems, "; "))
	}

	now := time.Now().UTC()
	return &Pet{
		name:          name,
		petType:       petType,
		age:           age,
		health:        strings.TrimSpace(in.Health),
		inoculations:  strings.TrimSpace(in.Inoculations),
		habits:        strings.TrimSpace(in.Habits),
		imageURL:      imageURL,
		ownerID:       ownerID,
		contactNumber: contact,
		emailAddress:  email,
		listingMode:   mode,
		price:         price,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// pendingImageURL stands in for the image while only the text fields are checked.
const pendingImageURL = "pending://upload"

// ValidateFields checks every field of in except the image URL, which is only
// known once the image has been uploaded.
func ValidateFields(ownerID string, in NewPetInput, adminWrite bool) error {
	in.ImageURL = pendingImageURL
	_, err := NewPet(ownerID, in, adminWrite)
	return err
}

func parsePrice(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, "price is required when selling"
	}
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, "price must be a number"
	}
	p = p.Round(2)
	if !p.IsPositive() {
		return decimal.Decimal{}, "price must be greater than zero when selling"
	}
	if p.GreaterThan(maxPrice) {
		return decimal.Decimal{}, fmt.Sprintf("price must not exceed %s", maxPrice.StringFixed(2))
	}
	return p, ""
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id int64,
	name, petType, age, health, inoculations, habits, imageURL, ownerID, contactNumber, emailAddress string,
	listingMode ListingMode,
	price decimal.NullDecimal,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:            id,
		name:          name,
		petType:       petType,
		age:           age,
		health:        health,
		inoculations:  inoculations,
		habits:        habits,
		imageURL:      imageURL,
		ownerID:       ownerID,
		contactNumber: contactNumber,
		emailAddress:  emailAddress,
		listingMode:   listingMode,
		price:         price,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() int64                  { return p.id }
func (p *Pet) Name() string               { return p.name }
func (p *Pet) PetType() string            { return p.petType }
func (p *Pet) Age() string                { return p.age }
func (p *Pet) Health() string             { return p.health }
func (p *Pet) Inoculations() string       { return p.inoculations }
func (p *Pet) Habits() string             { return p.habits }
func (p *Pet) ImageURL() string           { return p.imageURL }
func (p *Pet) OwnerID() string            { return p.ownerID }
func (p *Pet) ContactNumber() string      { return p.contactNumber }
func (p *Pet) EmailAddress() string       { return p.emailAddress }
func (p *Pet) ListingMode() ListingMode   { return p.listingMode }
func (p *Pet) Price() decimal.NullDecimal { return p.price }
func (p *Pet) CreatedAt() time.Time       { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time       { return p.updatedAt }

// --- Behavior ---

// AssignID records the identifier handed out by the store.
func (p *Pet) AssignID(id int64) {
	p.id = id
}

// IsForSale reports whether the listing carries a price.
func (p *Pet) IsForSale() bool {
	return p.listingMode == ListingModeSelling
}
