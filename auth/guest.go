package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/models"
	"go.uber.org/zap"
)

// POST /auth/guest
func (s *Service) CreateGuestUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + generateRandomString(16)

		guest := models.GuestUser{
			ID:        guestID,
			ExpiresAt: time.Now().Add(TokenTTL),
		}
		if err := s.Users.CreateGuest(c.Request.Context(), &guest); err != nil {
			s.Logger.Error("creating guest", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		token, _, err := IssueToken(s.Secret, Identity{UserID: guestID, Role: RoleGuest})
		if err != nil {
			s.Logger.Error("issuing guest token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		s.Sessions.Start(guestID)

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
