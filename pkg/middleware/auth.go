package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/response"
)

const callerKey = "caller"

// AuthMiddleware requires a valid bearer token and stores the caller on the context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				response.Unauthorized(c, "token has expired")
				return
			}
			response.Unauthorized(c, "invalid token")
			return
		}

		c.Set(callerKey, claims.Caller())
		c.Next()
	}
}

// OptionalAuth resolves a caller when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtManager.Validate(token); err == nil {
				c.Set(callerKey, claims.Caller())
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin flag. Must run after AuthMiddleware.
// An authenticated non-admin gets 403 here; the admin service operations also
// refuse such callers with an Unauthorized error when reached another way.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			response.Unauthorized(c, "unauthorized")
			return
		}
		if !caller.IsAdmin {
			response.Error(c, domain.NewForbiddenError("admin access required"))
			return
		}
		c.Next()
	}
}

// GetCaller returns the resolved caller, if any.
func GetCaller(c *gin.Context) (auth.Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := v.(auth.Caller)
	if !ok || caller.Anonymous() {
		return auth.Caller{}, false
	}
	return caller, true
}

// GetUserID returns the caller's external id.
func GetUserID(c *gin.Context) (string, bool) {
	caller, ok := GetCaller(c)
	if !ok {
		return "", false
	}
	return caller.ID, true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
