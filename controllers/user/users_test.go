package userControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	users map[string]*models.User
}

func (m *memStore) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) List(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if v, ok := updates["name"].(string); ok {
		u.Name = v
	}
	if v, ok := updates["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := updates["picture"].(string); ok {
		u.Picture = v
	}
	return m.Get(ctx, id)
}

func router(store Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	user := r.Group("/user", func(c *gin.Context) { c.Set("user_id", userID) })
	user.GET("/profile", GetUser(store))
	user.PUT("/profile", UpdateUser(store))
	r.GET("/admin/users", GetAllUsers(store))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestProfile(t *testing.T) {
	store := &memStore{users: map[string]*models.User{
		"uid-1": {ID: "uid-1", Email: "asha@example.com", Name: "Asha", Provider: "google"},
	}}
	r := router(store, "uid-1")

	w := do(r, http.MethodGet, "/user/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/user/profile", `{"name":"  Asha Rao ","phone":"9876543210"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Asha Rao", got.Name)
	assert.Equal(t, "9876543210", got.Phone)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/user/profile", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/user/profile", `{"picture":"not a url"}`).Code)

	w = do(r, http.MethodGet, "/admin/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
}

func TestProfile_Guest(t *testing.T) {
	r := router(&memStore{users: map[string]*models.User{}}, "guest_1")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/user/profile", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/user/profile", `{"name":"Guest"}`).Code)
}
