package userControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UpdateUserInput struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=15"`
	Picture *string `json:"picture" binding:"omitempty,url"`
}

// GET /user/profile. Guests have no stored profile.
func GetUser(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := store.Get(c.Request.Context(), c.GetString("user_id"))
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users
func GetAllUsers(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /user/profile
func UpdateUser(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			updates["phone"] = strings.TrimSpace(*input.Phone)
		}
		if input.Picture != nil {
			updates["picture"] = *input.Picture
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		user, err := store.Update(c.Request.Context(), c.GetString("user_id"), updates)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
