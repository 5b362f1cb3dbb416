package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/response"
)

// AdminPetHandler handles the administrator direct-add of listings.
type AdminPetHandler struct {
	listings *application.ListingService
}

// NewAdminPetHandler creates a new AdminPetHandler.
func NewAdminPetHandler(listings *application.ListingService) *AdminPetHandler {
	return &AdminPetHandler{listings: listings}
}

// RegisterRoutes registers admin routes.
func (h *AdminPetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireAdmin())
	{
		admin.POST("/pets", h.CreatePet)
	}
}

// CreatePet handles POST /api/v1/admin/pets. Contact fields are optional here.
func (h *AdminPetHandler) CreatePet(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	up, ok := bindListing(c)
	if !ok {
		return
	}

	result, err := h.listings.CreateAdminListing(c.Request.Context(), caller, up)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
