package application

import (
	"context"

	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// ListingUpload is a listing form with its image payload.
type ListingUpload struct {
	Fields        petDomain.NewPetInput
	Image         []byte
	ImageMimeType string
}

// ListingService runs the upload flow: validate fields, store the image, then
// insert the listing. Nothing is inserted when the upload fails.
type ListingService struct {
	pets   *PetService
	media  MediaStore
	logger *zap.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(pets *PetService, media MediaStore, logger *zap.Logger) *ListingService {
	return &ListingService{pets: pets, media: media, logger: logger}
}

// CreateListing publishes a self-service listing owned by caller.
func (s *ListingService) CreateListing(ctx context.Context, caller auth.Caller, up ListingUpload) (*PetDTO, error) {
	if caller.Anonymous() {
		return nil, domain.NewUnauthorizedError("a signed-in user is required to list a pet")
	}
	if err := s.prepare(ctx, caller, &up, false); err != nil {
		return nil, err
	}
	return s.pets.CreatePet(ctx, up.Fields, caller.ID, false)
}

// CreateAdminListing publishes a listing through the administrator path.
func (s *ListingService) CreateAdminListing(ctx context.Context, caller auth.Caller, up ListingUpload) (*PetDTO, error) {
	if !caller.IsAdmin {
		return nil, domain.NewUnauthorizedError("administrator rights are required")
	}
	if err := s.prepare(ctx, caller, &up, true); err != nil {
		return nil, err
	}
	return s.pets.AdminCreatePet(ctx, caller, up.Fields)
}

func (s *ListingService) prepare(ctx context.Context, caller auth.Caller, up *ListingUpload, adminWrite bool) error {
	if err := petDomain.ValidateFields(caller.ID, up.Fields, adminWrite); err != nil {
		return err
	}
	if len(up.Image) == 0 {
		return domain.NewValidationError("image is required")
	}

	url, err := s.media.Store(ctx, up.Image, up.ImageMimeType)
	if err != nil {
		s.logger.Warn("listing image upload failed", zap.String("owner_id", caller.ID), zap.Error(err))
		if !domain.IsUpload(err) {
			return domain.NewUploadError("failed to upload image", err)
		}
		return err
	}
	up.Fields.ImageURL = url
	return nil
}
