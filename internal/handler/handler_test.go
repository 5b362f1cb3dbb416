package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

type stubMedia struct{ calls int }

func (m *stubMedia) Store(_ context.Context, data []byte, mimeType string) (string, error) {
	m.calls++
	return "https://media.example.com/pet-adoption/stub.png", nil
}

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTManager
	store  *memory.Store
	media  *stubMedia
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	jwt := auth.NewJWTManager("test-secret", "", time.Hour)
	log := zap.NewNop()
	media := &stubMedia{}

	petSvc := application.NewPetService(store.Pets(), store.Likes(), nil, nil, log)
	likeSvc := application.NewLikeService(store.Likes(), nil, log)
	userSvc := application.NewUserService(store.Users(), log)
	listingSvc := application.NewListingService(petSvc, media, log)

	r := gin.New()
	root := r.Group("")
	NewPetHandler(petSvc, listingSvc).RegisterRoutes(root, jwt)
	NewLikeHandler(likeSvc).RegisterRoutes(root, jwt)
	NewUserHandler(userSvc).RegisterRoutes(root, jwt)
	NewAdminPetHandler(listingSvc).RegisterRoutes(root, jwt)

	return &testServer{router: r, jwt: jwt, store: store, media: media}
}

func (s *testServer) token(t *testing.T, caller auth.Caller) string {
	t.Helper()
	tok, err := s.jwt.Generate(caller)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="pet.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":          "Biscuit",
		"type":          "Dog",
		"age":           "2 years",
		"contactNumber": "+60123456789",
		"emailAddress":  "owner@example.com",
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) createPet(t *testing.T, token string) application.PetDTO {
	t.Helper()
	body, ct := multipartBody(t, validFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pets", body)
	req.Header.Set("Content-Type", ct)
	w := s.do(req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pet application.PetDTO
	decode(t, w, &pet)
	return pet
}

func TestCreatePet(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1"})

	pet := s.createPet(t, token)
	assert.Equal(t, "dog", pet.Type)
	assert.Equal(t, "user_1", pet.OwnerID)
	assert.Equal(t, "https://media.example.com/pet-adoption/stub.png", pet.ImageURL)
	assert.Nil(t, pet.Price)
}

func TestCreatePet_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, validFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pets", body)
	req.Header.Set("Content-Type", ct)

	assert.Equal(t, http.StatusUnauthorized, s.do(req, "").Code)
}

func TestCreatePet_BindingErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1"})

	tests := []struct {
		name   string
		mutate func(map[string]string)
		image  bool
		want   string
	}{
		{"bad phone", func(f map[string]string) { f["contactNumber"] = "12-34" }, true, "contactNumber"},
		{"bad email", func(f map[string]string) { f["emailAddress"] = "nope" }, true, "emailAddress"},
		{"unknown mode", func(f map[string]string) { f["listingMode"] = "auction" }, true, "listingMode"},
		{"missing name", func(f map[string]string) { delete(f, "name") }, true, "name is required"},
		{"missing image", func(map[string]string) {}, false, "image is required"},
		{"selling without price", func(f map[string]string) { f["listingMode"] = "selling" }, true, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)
			body, ct := multipartBody(t, fields, tt.image)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pets", body)
			req.Header.Set("Content-Type", ct)

			w := s.do(req, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w, nil)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error.Message, tt.want)
		})
	}
	assert.Zero(t, s.media.calls)
}

func TestListPets(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1"})
	for i := 0; i < 12; i++ {
		s.createPet(t, token)
	}

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/pets?page=2", nil), "")
	require.Equal(t, http.StatusOK, w.Code)

	var page application.PetPageDTO
	decode(t, w, &page)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/pets?type=cat&page=oops", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/pets?page=922337203685477582", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
}

func TestGetPetAndToggleLike(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1"})
	pet := s.createPet(t, token)
	path := fmt.Sprintf("/api/v1/pets/%d", pet.ID)

	var detail application.PetDetailDTO
	decode(t, s.do(httptest.NewRequest(http.MethodGet, path, nil), token), &detail)
	assert.False(t, detail.IsLikedByCaller)

	var toggled application.ToggleLikeDTO
	w := s.do(httptest.NewRequest(http.MethodPost, path+"/like", nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &toggled)
	assert.True(t, toggled.Liked)

	decode(t, s.do(httptest.NewRequest(http.MethodGet, path, nil), token), &detail)
	assert.True(t, detail.IsLikedByCaller)

	decode(t, s.do(httptest.NewRequest(http.MethodGet, path, nil), ""), &detail)
	assert.False(t, detail.IsLikedByCaller, "anonymous callers never see a like")

	decode(t, s.do(httptest.NewRequest(http.MethodPost, path+"/like", nil), token), &toggled)
	assert.False(t, toggled.Liked)
}

func TestGetPet_NotFound(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/pets/42", "/api/v1/pets/abc"} {
		w := s.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestToggleLike_UnknownPet(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1"})

	w := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/pets/77/like", nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(httptest.NewRequest(http.MethodPost, "/api/v1/pets/77/like", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyLikes(t *testing.T) {
	s := newTestServer(t)
	owner := s.token(t, auth.Caller{ID: "user_1"})
	other := s.token(t, auth.Caller{ID: "user_2"})
	pet := s.createPet(t, owner)

	s.do(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/pets/%d/like", pet.ID), nil), owner)

	var likes []application.LikeDTO
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/me/likes", nil), owner)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &likes)
	require.Len(t, likes, 1)
	require.NotNil(t, likes[0].Pet)
	assert.Equal(t, "Biscuit", likes[0].Pet.Name)

	del := fmt.Sprintf("/api/v1/me/likes/%d", likes[0].ID)
	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodDelete, del, nil), other).Code)
	assert.Equal(t, http.StatusNoContent, s.do(httptest.NewRequest(http.MethodDelete, del, nil), owner).Code)
	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodDelete, del, nil), owner).Code)
}

func TestUserSync(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, auth.Caller{ID: "user_1", Email: "Ann@Example.com"})

	for i := 0; i < 2; i++ {
		w := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/users/sync", nil), token)
		require.Equal(t, http.StatusOK, w.Code)

		var user application.UserDTO
		decode(t, w, &user)
		assert.Equal(t, "ann@example.com", user.Email)
		assert.Equal(t, "Unknown", user.Name)
	}
	assert.Equal(t, 1, s.store.Users().UserCount())
}

func TestAdminCreatePet(t *testing.T) {
	s := newTestServer(t)
	fields := map[string]string{"name": "Nemo", "type": "fish", "age": "1"}

	body, ct := multipartBody(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/pets", body)
	req.Header.Set("Content-Type", ct)
	w := s.do(req, s.token(t, auth.Caller{ID: "user_1"}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	body, ct = multipartBody(t, fields, true)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/pets", body)
	req.Header.Set("Content-Type", ct)
	w = s.do(req, s.token(t, auth.Caller{ID: "admin_1", IsAdmin: true}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pet application.PetDTO
	decode(t, w, &pet)
	assert.Equal(t, "admin_1", pet.OwnerID)
	assert.Empty(t, pet.ContactNumber)
}

func TestPetTypes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/pet-types", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"rabbit"`)
}
