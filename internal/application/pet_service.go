package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/events"
)

// PetService implements the feed, detail and listing use cases.
type PetService struct {
	pets      petDomain.PetRepository
	likes     likeDomain.LikeRepository
	cache     FeedCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPetService creates a new PetService. cache and publisher may be nil.
func NewPetService(
	pets petDomain.PetRepository,
	likes likeDomain.LikeRepository,
	cache FeedCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *PetService {
	return &PetService{
		pets:      pets,
		likes:     likes,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// ListPets returns one feed page, newest first. Pages past the end are empty.
func (s *PetService) ListPets(ctx context.Context, typeFilter string, page int) (*PetPageDTO, error) {
	filter := petDomain.NormalizeTypeFilter(typeFilter)
	if page < 1 {
		page = 1
	}

	key := feedKey(filter, page)
	cached, gen, storable := s.cachedPage(ctx, key)
	if cached != nil {
		return cached, nil
	}

	pets, total, err := s.pets.List(ctx, petDomain.ListQuery{
		TypeFilter: filter,
		Page:       page,
		Limit:      petDomain.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	result := &PetPageDTO{
		Items:      make([]PetDTO, len(pets)),
		TotalPages: domain.TotalPages(total, petDomain.PageSize),
		Page:       page,
		TypeFilter: filter,
	}
	for i, p := range pets {
		result.Items[i] = toPetDTO(p)
	}

	if storable && page <= result.TotalPages {
		s.storePage(ctx, gen, key, result)
	}
	return result, nil
}

// GetPet returns a listing and whether callerID likes it. rawID must be a
// positive integer; anything else is reported as not found.
func (s *PetService) GetPet(ctx context.Context, rawID, callerID string) (*PetDetailDTO, error) {
	id, err := ParseID("Pet", rawID)
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := false
	if callerID != "" {
		like, err := s.likes.FindByUserAndPet(ctx, callerID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to look up like: %w", err)
		}
		liked = like != nil
	}

	return &PetDetailDTO{Pet: toPetDTO(pet), IsLikedByCaller: liked}, nil
}

// CreatePet validates in, stamps ownerID and inserts the listing.
func (s *PetService) CreatePet(ctx context.Context, in petDomain.NewPetInput, ownerID string, isAdminWrite bool) (*PetDTO, error) {
	pet, err := petDomain.NewPet(ownerID, in, isAdminWrite)
	if err != nil {
		return nil, err
	}

	if err := s.pets.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet listing created",
		zap.Int64("pet_id", pet.ID()),
		zap.String("owner_id", ownerID),
		zap.String("listing_mode", string(pet.ListingMode())),
		zap.Bool("admin_write", isAdminWrite),
	)

	s.invalidateFeed(ctx)
	result := toPetDTO(pet)
	publishEvent(ctx, s.publisher, s.logger, events.TopicAdoptionEvents, events.PetCreated,
		fmt.Sprintf("pet/%d", pet.ID()), events.PetCreatedEvent{
			PetID:       pet.ID(),
			OwnerID:     pet.OwnerID(),
			Name:        pet.Name(),
			Type:        pet.PetType(),
			ListingMode: string(pet.ListingMode()),
			Price:       result.Price,
			ImageURL:    pet.ImageURL(),
			CreatedAt:   pet.CreatedAt(),
		})
	return &result, nil
}

// AdminCreatePet inserts a listing on behalf of an administrator. Contact
// details are optional on this path.
func (s *PetService) AdminCreatePet(ctx context.Context, caller auth.Caller, in petDomain.NewPetInput) (*PetDTO, error) {
	if !caller.IsAdmin {
		return nil, domain.NewUnauthorizedError("administrator rights are required")
	}
	return s.CreatePet(ctx, in, caller.ID, true)
}

// PetTypes returns the suggested type catalog.
func (s *PetService) PetTypes() []petDomain.TypeSuggestion {
	out := make([]petDomain.TypeSuggestion, len(petDomain.SuggestedTypes))
	copy(out, petDomain.SuggestedTypes)
	return out
}

// cachedPage returns the cached page for key, or nil together with the cache
// generation a rebuilt page must be stored under. storable is false when the
// cache is disabled or could not be read.
func (s *PetService) cachedPage(ctx context.Context, key string) (page *PetPageDTO, gen int64, storable bool) {
	if s.cache == nil {
		return nil, 0, false
	}
	raw, gen, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("feed cache read failed", zap.String("key", key), zap.Error(err))
		return nil, 0, false
	}
	if !ok {
		return nil, gen, true
	}
	var decoded PetPageDTO
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("discarding undecodable feed cache entry", zap.String("key", key), zap.Error(err))
		return nil, gen, true
	}
	return &decoded, gen, true
}

func (s *PetService) storePage(ctx context.Context, gen int64, key string, page *PetPageDTO) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, gen, key, raw); err != nil {
		s.logger.Warn("feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *PetService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("feed cache invalidation failed", zap.Error(err))
	}
}

func feedKey(filter string, page int) string {
	return fmt.Sprintf("type=%s&page=%d", url.QueryEscape(filter), page)
}
