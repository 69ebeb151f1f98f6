package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/checkout"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/junaidrashid-git/biryani-house/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	token *fbauth.Token
	err   error
}

func (f fakeVerifier) VerifyIDTokenAndCheckRevoked(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

type memUsers struct {
	users  map[string]models.User
	guests []models.GuestUser
	err    error
}

func (m *memUsers) UpsertUser(_ context.Context, u *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) CreateGuest(_ context.Context, g *models.GuestUser) error {
	if m.err != nil {
		return m.err
	}
	m.guests = append(m.guests, *g)
	return nil
}

func newService(v TokenVerifier) (*Service, *memUsers) {
	users := &memUsers{users: map[string]models.User{}}
	return &Service{
		Users:     users,
		Verifier:  v,
		ProjectID: "biryani-house",
		Sessions: session.NewRegistry(func(id string) *checkout.Flow {
			return checkout.NewFlow(checkout.Params{Owner: id})
		}),
		Secret: "secret",
		Logger: zap.NewNop(),
	}, users
}

func router(s *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/google-user", s.GoogleUserLogin())
	r.POST("/auth/guest", s.CreateGuestUser())
	r.POST("/user/logout", func(c *gin.Context) {
		c.Set("user_id", c.Query("uid"))
		c.Next()
	}, s.Logout())
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func googleToken(aud string) *fbauth.Token {
	return &fbauth.Token{
		UID:      "firebase-uid",
		Audience: aud,
		Claims: map[string]interface{}{
			"email":   "asha@example.com",
			"name":    "Asha",
			"picture": "https://example.com/a.png",
		},
	}
}

func TestGoogleUserLogin_StartsSession(t *testing.T) {
	s, users := newService(fakeVerifier{token: googleToken("biryani-house")})

	w := post(router(s), "/auth/google-user", `{"idToken":"abc"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	id, err := ParseToken("secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", id.UserID)
	assert.Equal(t, RoleUser, id.Role)
	assert.Equal(t, "asha@example.com", users.users["firebase-uid"].Email)
	assert.NotNil(t, s.Sessions.Get("firebase-uid"))
}

func TestGoogleUserLogin_Failures(t *testing.T) {
	tests := map[string]struct {
		verifier TokenVerifier
		body     string
		storeErr error
		want     int
	}{
		"missing token":      {fakeVerifier{}, `{}`, nil, http.StatusBadRequest},
		"not configured":     {nil, `{"idToken":"abc"}`, nil, http.StatusServiceUnavailable},
		"verification fails": {fakeVerifier{err: errors.New("revoked")}, `{"idToken":"abc"}`, nil, http.StatusUnauthorized},
		"wrong audience":     {fakeVerifier{token: googleToken("other")}, `{"idToken":"abc"}`, nil, http.StatusUnauthorized},
		"store down":         {fakeVerifier{token: googleToken("biryani-house")}, `{"idToken":"abc"}`, errors.New("db"), http.StatusInternalServerError},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, users := newService(tc.verifier)
			users.err = tc.storeErr

			w := post(router(s), "/auth/google-user", tc.body)
			assert.Equal(t, tc.want, w.Code)
			assert.Zero(t, s.Sessions.Len())
		})
	}
}

func TestCreateGuestUser(t *testing.T) {
	s, users := newService(nil)

	w := post(router(s), "/auth/guest", ``)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		GuestID string `json:"guest_id"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.GuestID, "guest_"))
	require.Len(t, users.guests, 1)

	id, err := ParseToken("secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.GuestID, id.UserID)
	assert.Equal(t, RoleGuest, id.Role)
	assert.NotNil(t, s.Sessions.Get(resp.GuestID))
}

func TestLogout_EndsSession(t *testing.T) {
	s, _ := newService(nil)
	s.Sessions.Start("guest_1")

	w := post(router(s), "/user/logout?uid=guest_1", ``)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, s.Sessions.Get("guest_1"))
}
