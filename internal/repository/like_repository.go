package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// LikeModel is the GORM model for the likes table. The composite unique
// index backs the one-like-per-(user, pet) rule.
type LikeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_likes_user_pet,priority:1"`
	PetID     int64     `gorm:"not null;uniqueIndex:idx_likes_user_pet,priority:2;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`

	Pet *PetModel `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
}

func (LikeModel) TableName() string { return "likes" }

// GormLikeRepository implements LikeRepository using GORM.
type GormLikeRepository struct {
	db *gorm.DB
}

func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

func (r *GormLikeRepository) FindByID(ctx context.Context, id int64) (*likeDomain.Like, error) {
	var model LikeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Like", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find like by ID: %w", err)
	}
	return toLikeDomain(&model), nil
}

func (r *GormLikeRepository) FindByUserAndPet(ctx context.Context, userID string, petID int64) (*likeDomain.Like, error) {
	var models []LikeModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Limit(1).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find like: %w", err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return toLikeDomain(&models[0]), nil
}

func (r *GormLikeRepository) Save(ctx context.Context, like *likeDomain.Like) error {
	model := toLikeModel(like)
	if err := r.db.WithContext(ctx).Omit("Pet").Create(model).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.NewConflictError("pet is already liked by this user")
		case isForeignKeyViolation(err):
			return domain.NewNotFoundError("Pet", strconv.FormatInt(like.PetID(), 10))
		}
		return fmt.Errorf("failed to save like: %w", err)
	}
	like.AssignID(model.ID)
	return nil
}

func (r *GormLikeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LikeModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *GormLikeRepository) ListByUser(ctx context.Context, userID string) ([]likeDomain.LikedPet, error) {
	var models []LikeModel
	if err := r.db.WithContext(ctx).
		Joins("Pet").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC, likes.id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	out := make([]likeDomain.LikedPet, len(models))
	for i := range models {
		out[i] = likeDomain.LikedPet{Like: toLikeDomain(&models[i])}
		if p := models[i].Pet; p != nil && p.ID != 0 {
			out[i].Pet = &likeDomain.PetSummary{
				ID:          p.ID,
				Name:        p.Name,
				Type:        p.Type,
				Age:         p.Age,
				ImageURL:    p.ImageURL,
				ListingMode: p.ListingMode,
				Price:       p.Price,
			}
		}
	}
	return out, nil
}

func toLikeModel(l *likeDomain.Like) *LikeModel {
	return &LikeModel{
		ID:        l.ID(),
		UserID:    l.UserID(),
		PetID:     l.PetID(),
		CreatedAt: l.CreatedAt(),
	}
}

func toLikeDomain(m *LikeModel) *likeDomain.Like {
	return likeDomain.Reconstruct(m.ID, m.UserID, m.PetID, m.CreatedAt)
}
