package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID string    `gorm:"type:text;not null;uniqueIndex"`
	Email      string    `gorm:"type:text;not null;uniqueIndex"`
	Name       string    `gorm:"type:text;not null"`
	IsAdmin    bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Upsert runs a single INSERT ... ON CONFLICT (external_id) DO UPDATE.
func (r *GormUserRepository) Upsert(ctx context.Context, u *userDomain.User) (*userDomain.User, error) {
	model := toUserModel(u)
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "external_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"email", "name", "is_admin", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(model).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("email is already used by another account")
		}
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return toUserDomain(model), nil
}

func (r *GormUserRepository) FindByExternalID(ctx context.Context, externalID string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", externalID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toUserDomain(&model), nil
}

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:         u.ID(),
		ExternalID: u.ExternalID(),
		Email:      u.Email(),
		Name:       u.Name(),
		IsAdmin:    u.IsAdmin(),
		CreatedAt:  u.CreatedAt(),
		UpdatedAt:  u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(m.ID, m.ExternalID, m.Email, m.Name, m.IsAdmin, m.CreatedAt, m.UpdatedAt)
}
