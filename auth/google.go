// Package auth signs people in (Google through Firebase, or as a guest),
// opens their ordering session and issues the session token.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/junaidrashid-git/biryani-house/session"
	"go.uber.org/zap"
)

type Service struct {
	Users     UserStore
	Verifier  TokenVerifier // nil disables Google sign-in
	ProjectID string
	Sessions  *session.Registry
	Secret    string
	Logger    *zap.Logger
}

// POST /auth/google-user
func (s *Service) GoogleUserLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if s.Verifier == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
			return
		}

		token, err := s.Verifier.VerifyIDTokenAndCheckRevoked(c.Request.Context(), req.IDToken)
		if err != nil {
			s.Logger.Warn("id token verification failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}
		if token.Audience != s.ProjectID {
			s.Logger.Warn("token audience mismatch", zap.String("audience", token.Audience))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)

		user := models.User{
			ID:       token.UID,
			Email:    email,
			Name:     name,
			Picture:  picture,
			Provider: "google",
		}
		if err := s.Users.UpsertUser(c.Request.Context(), &user); err != nil {
			s.Logger.Error("upserting user", zap.String("user_id", user.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		signed, expiresAt, err := IssueToken(s.Secret, Identity{
			UserID:  user.ID,
			Email:   email,
			Role:    RoleUser,
			Name:    name,
			Picture: picture,
		})
		if err != nil {
			s.Logger.Error("issuing token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		s.Sessions.Start(user.ID)

		c.JSON(http.StatusOK, gin.H{
			"message":    "Login successful",
			"user":       user,
			"token":      signed,
			"expires_at": expiresAt,
		})
	}
}

// POST /user/logout
func (s *Service) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		s.Sessions.End(userID)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
