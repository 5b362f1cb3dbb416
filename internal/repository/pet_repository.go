package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID            int64               `gorm:"primaryKey;autoIncrement"`
	Name          string              `gorm:"type:text;not null"`
	Type          string              `gorm:"type:text;not null;index"`
	Age           string              `gorm:"type:text;not null"`
	Health        string              `gorm:"type:text"`
	Inoculations  string              `gorm:"type:text"`
	Habits        string              `gorm:"type:text"`
	ImageURL      string              `gorm:"type:text;not null"`
	OwnerID       string              `gorm:"type:text;not null;index"`
	ContactNumber string              `gorm:"type:text;not null;default:''"`
	EmailAddress  string              `gorm:"type:text;not null;default:''"`
	ListingMode   string              `gorm:"type:varchar(10);not null;default:'free';check:listing_mode IN ('free','selling')"`
	Price         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time           `gorm:"type:timestamptz;not null;default:now();index:idx_pets_created_at,sort:desc"`
	UpdatedAt     time.Time           `gorm:"type:timestamptz;not null;default:now()"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id int64) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) List(ctx context.Context, q petDomain.ListQuery) ([]*petDomain.Pet, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Scopes(typeFilter(q.TypeFilter)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	offset, ok := domain.Offset(q.Page, q.Limit)
	if !ok {
		return []*petDomain.Pet{}, total, nil
	}

	var models []PetModel
	if err := r.db.WithContext(ctx).
		Scopes(typeFilter(q.TypeFilter)).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(q.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}

	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets, total, nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	pet.AssignID(model.ID)
	return nil
}

// typeFilter matches pets whose type contains term, case-insensitively.
func typeFilter(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where("type ILIKE ?", "%"+escapeLike(term)+"%")
	}
}

// escapeLike neutralizes LIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
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
		Price:         p.Price(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID,
		m.Name, m.Type, m.Age,
		m.Health, m.Inoculations, m.Habits,
		m.ImageURL, m.OwnerID,
		m.ContactNumber, m.EmailAddress,
		petDomain.ListingMode(m.ListingMode),
		m.Price,
		m.CreatedAt, m.UpdatedAt,
	)
}
