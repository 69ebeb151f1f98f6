package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/checkout"
	checkoutcontroller "github.com/junaidrashid-git/biryani-house/controllers/checkout"
	"github.com/junaidrashid-git/biryani-house/menu"
	"github.com/junaidrashid-git/biryani-house/models"
)

type CartItemInput struct {
	MenuItemID      int    `json:"menu_item_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1,max=50"`
	PreparationType string `json:"preparation_type" binding:"required"`
}

type QuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=50"`
}

func cartView(flow *checkout.Flow) gin.H {
	snap := flow.Snapshot()
	return gin.H{
		"items":        snap.Lines,
		"total_amount": snap.TotalAmount,
		"item_count":   snap.ItemCount,
		"can_checkout": snap.CanCheckout,
	}
}

// GET /user/cart
func GetUserCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkoutcontroller.CurrentFlow(c)
		if flow == nil {
			return
		}
		c.JSON(http.StatusOK, cartView(flow))
	}
}

// POST /user/cart
func AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkoutcontroller.CurrentFlow(c)
		if flow == nil {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, ok := menu.Lookup(input.MenuItemID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item does not exist"})
			return
		}
		variant := models.PreparationType(input.PreparationType)
		if !variant.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preparation type"})
			return
		}

		if err := flow.AddLine(item, input.Quantity, variant); err != nil {
			checkoutcontroller.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartView(flow))
	}
}

// PUT /user/cart/:item_id
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkoutcontroller.CurrentFlow(c)
		if flow == nil {
			return
		}

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := flow.SetQuantity(itemID, input.Quantity); err != nil {
			checkoutcontroller.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartView(flow))
	}
}

// DELETE /user/cart/:item_id removes every preparation of the item.
func DeleteCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		flow := checkoutcontroller.CurrentFlow(c)
		if flow == nil {
			return
		}

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		if err := flow.RemoveLine(itemID); err != nil {
			checkoutcontroller.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartView(flow))
	}
}
