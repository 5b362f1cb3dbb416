package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(jwt *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	whoami := func(c *gin.Context) {
		caller, ok := GetCaller(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.ID, "resolved": ok})
	}
	r.GET("/private", AuthMiddleware(jwt), whoami)
	r.GET("/public", OptionalAuth(jwt), whoami)
	r.GET("/admin", AuthMiddleware(jwt), RequireAdmin(), whoami)
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := auth.NewJWTManager("secret", "", time.Minute)
	r := newTestRouter(jwt)

	token, err := jwt.Generate(auth.Caller{ID: "user_1"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/private", "garbage").Code)

	w := doGet(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user_1"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOptionalAuth(t *testing.T) {
	jwt := auth.NewJWTManager("secret", "", time.Minute)
	r := newTestRouter(jwt)

	w := doGet(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolved":false`)

	w = doGet(r, "/public", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolved":false`)
}

func TestRequireAdmin(t *testing.T) {
	jwt := auth.NewJWTManager("secret", "", time.Minute)
	r := newTestRouter(jwt)

	user, err := jwt.Generate(auth.Caller{ID: "user_1"})
	require.NoError(t, err)
	admin, err := jwt.Generate(auth.Caller{ID: "admin_1", IsAdmin: true})
	require.NoError(t, err)

	w := doGet(r, "/admin", user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"forbidden","message":"admin access required"}}`, w.Body.String())
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", admin).Code)
}
