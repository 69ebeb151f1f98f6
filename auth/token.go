package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a session token carries.
type Identity struct {
	UserID  string
	Email   string
	Role    string
	Name    string
	Picture string
}

// IssueToken signs an HS256 token for id that expires after TokenTTL.
func IssueToken(secret string, id Identity) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	expiresAt := time.Now().Add(TokenTTL)
	claims := jwt.MapClaims{
		"user_id": id.UserID,
		"role":    id.Role,
		"exp":     expiresAt.Unix(),
	}
	if id.Email != "" {
		claims["email"] = id.Email
	}
	if id.Name != "" {
		claims["name"] = id.Name
	}
	if id.Picture != "" {
		claims["picture"] = id.Picture
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken accepts only HS256 tokens signed with secret that carry a user_id.
func ParseToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{UserID: userID}
	id.Role, _ = claims["role"].(string)
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	return id, nil
}
