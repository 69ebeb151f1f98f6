package menucontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/menu"
	"github.com/junaidrashid-git/biryani-house/models"
)

// GET /menu
func GetMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items":             menu.Items(),
			"preparation_types": models.PreparationTypes(),
		})
	}
}
