package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/auth"
	"github.com/junaidrashid-git/biryani-house/session"
)

const sessionKey = "session"

// ValidateToken checks the bearer token and loads the caller's session. A
// valid token whose session has ended gets 401 "session not found".
func ValidateToken(secret string, sessions *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		id, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		s := sessions.Get(id.UserID)
		if s == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			c.Abort()
			return
		}

		c.Set("user_id", id.UserID)
		c.Set("role", id.Role)
		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session ValidateToken attached, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// WithSession attaches s the way ValidateToken does. Handler tests use it to
// skip token parsing.
func WithSession(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", s.ID)
		c.Set(sessionKey, s)
		c.Next()
	}
}
