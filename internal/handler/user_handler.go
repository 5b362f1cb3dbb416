package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/response"
)

// UserHandler syncs the signed-in account into the local users table.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers user routes.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.POST("/api/v1/users/sync", middleware.AuthMiddleware(jwtManager), h.Sync)
}

// Sync handles POST /api/v1/users/sync using the token's profile claims.
func (h *UserHandler) Sync(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.UpsertUser(c.Request.Context(), userDomain.Identity{
		ExternalID:  caller.ID,
		Email:       caller.Email,
		DisplayName: caller.DisplayName,
		IsAdmin:     caller.IsAdmin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
