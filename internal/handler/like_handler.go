package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/response"
)

// LikeHandler handles HTTP requests for likes.
type LikeHandler struct {
	service *application.LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service *application.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// RegisterRoutes registers like routes. All of them require a signed-in caller.
func (h *LikeHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/pets/:id/like", authMW, h.ToggleLike)

	me := r.Group("/api/v1/me")
	me.Use(authMW)
	{
		me.GET("/likes", h.ListMyLikes)
		me.DELETE("/likes/:likeId", h.RemoveLike)
	}
}

// ToggleLike handles POST /api/v1/pets/:id/like.
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	petID, err := application.ParseID("Pet", c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMyLikes handles GET /api/v1/me/likes.
func (h *LikeHandler) ListMyLikes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListMyLikes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveLike handles DELETE /api/v1/me/likes/:likeId.
func (h *LikeHandler) RemoveLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	likeID, err := application.ParseID("Like", c.Param("likeId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.RemoveLike(c.Request.Context(), likeID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
