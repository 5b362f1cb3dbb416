package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// UserService mirrors identity-provider accounts into the users table.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// UpsertUser inserts the account or refreshes its profile. Repeating a call
// with the same identity leaves one unchanged row.
func (s *UserService) UpsertUser(ctx context.Context, ident userDomain.Identity) (*UserDTO, error) {
	u, err := userDomain.FromIdentity(ident)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, u)
	if err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to upsert user", zap.String("external_id", u.ExternalID()), zap.Error(err))
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	s.logger.Info("user synced",
		zap.String("external_id", stored.ExternalID()),
		zap.Bool("is_admin", stored.IsAdmin()),
	)
	return toUserDTO(stored), nil
}
