package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/response"
)

// PetHandler handles HTTP requests for the feed, pet details and uploads.
type PetHandler struct {
	pets     *application.PetService
	listings *application.ListingService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(pets *application.PetService, listings *application.ListingService) *PetHandler {
	return &PetHandler{pets: pets, listings: listings}
}

// RegisterRoutes registers all pet routes.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	pets := r.Group("/api/v1/pets")
	{
		pets.GET("", h.ListPets)
		pets.GET("/:id", middleware.OptionalAuth(jwtManager), h.GetPet)
		pets.POST("", authMW, h.CreatePet)
	}
	r.GET("/api/v1/pet-types", h.PetTypes)
}

// ListPets handles GET /api/v1/pets?type=&page=.
func (h *PetHandler) ListPets(c *gin.Context) {
	page := application.ParsePage(c.Query("page"))

	result, err := h.pets.ListPets(c.Request.Context(), c.Query("type"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPet handles GET /api/v1/pets/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	callerID, _ := middleware.GetUserID(c)

	result, err := h.pets.GetPet(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet handles POST /api/v1/pets (multipart form with an image).
func (h *PetHandler) CreatePet(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	up, ok := bindListing(c)
	if !ok {
		return
	}

	result, err := h.listings.CreateListing(c.Request.Context(), caller, up)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// PetTypes handles GET /api/v1/pet-types.
func (h *PetHandler) PetTypes(c *gin.Context) {
	response.Success(c, h.pets.PetTypes())
}
