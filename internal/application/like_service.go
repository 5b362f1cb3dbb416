package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/events"
)

// LikeService implements the like toggle and the caller's like list.
type LikeService struct {
	likes     likeDomain.LikeRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewLikeService creates a new LikeService. publisher may be nil.
func NewLikeService(likes likeDomain.LikeRepository, publisher EventPublisher, logger *zap.Logger) *LikeService {
	return &LikeService{likes: likes, publisher: publisher, logger: logger}
}

// ToggleLike removes userID's like on petID if present, otherwise adds it.
func (s *LikeService) ToggleLike(ctx context.Context, userID string, petID int64) (*ToggleLikeDTO, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to like a pet")
	}

	existing, err := s.likes.FindByUserAndPet(ctx, userID, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up like: %w", err)
	}

	if existing != nil {
		if err := s.likes.Delete(ctx, existing.ID()); err != nil {
			return nil, fmt.Errorf("failed to delete like: %w", err)
		}
		s.logger.Info("pet unliked", zap.Int64("pet_id", petID), zap.String("user_id", userID))
		s.publishLike(ctx, events.PetUnliked, existing)
		return &ToggleLikeDTO{PetID: petID, Liked: false}, nil
	}

	like, err := likeDomain.NewLike(userID, petID)
	if err != nil {
		return nil, err
	}
	if err := s.likes.Save(ctx, like); err != nil {
		// A concurrent toggle inserted the same pair first.
		if domain.IsConflict(err) {
			s.logger.Debug("like already present", zap.Int64("pet_id", petID), zap.String("user_id", userID))
			return &ToggleLikeDTO{PetID: petID, Liked: true}, nil
		}
		return nil, err
	}

	s.logger.Info("pet liked", zap.Int64("pet_id", petID), zap.String("user_id", userID))
	s.publishLike(ctx, events.PetLiked, like)
	return &ToggleLikeDTO{PetID: petID, Liked: true}, nil
}

// RemoveLike deletes likeID when it belongs to callerID. Likes of other users
// are reported as not found.
func (s *LikeService) RemoveLike(ctx context.Context, likeID int64, callerID string) error {
	if callerID == "" {
		return domain.NewUnauthorizedError("a signed-in user is required to remove a like")
	}

	like, err := s.likes.FindByID(ctx, likeID)
	if err != nil {
		return err
	}
	if !like.IsOwnedBy(callerID) {
		return domain.NewNotFoundError("Like", strconv.FormatInt(likeID, 10))
	}

	if err := s.likes.Delete(ctx, likeID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	s.logger.Info("like removed", zap.Int64("like_id", likeID), zap.String("user_id", callerID))
	s.publishLike(ctx, events.PetUnliked, like)
	return nil
}

// ListMyLikes returns callerID's likes with their pets, newest first.
func (s *LikeService) ListMyLikes(ctx context.Context, callerID string) ([]LikeDTO, error) {
	if callerID == "" {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to view likes")
	}

	liked, err := s.likes.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	dtos := make([]LikeDTO, len(liked))
	for i, lp := range liked {
		dtos[i] = toLikeDTO(lp)
	}
	return dtos, nil
}

func (s *LikeService) publishLike(ctx context.Context, eventType string, like *likeDomain.Like) {
	publishEvent(ctx, s.publisher, s.logger, events.TopicAdoptionEvents, eventType,
		fmt.Sprintf("pet/%d", like.PetID()), events.PetLikeEvent{
			PetID:      like.PetID(),
			UserID:     like.UserID(),
			LikeID:     like.ID(),
			OccurredAt: time.Now().UTC(),
		})
}
