package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/biryani-house/orders"
	"go.uber.org/zap"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /admin/orders
func GetAllOrdersHandler(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /user/orders lists the caller's own orders, newest first.
func GetUserOrdersHandler(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		list, err := store.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /user/orders/:orderID. Someone else's order is reported as not found.
func GetOrderByIDHandler(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := store.Get(c.Request.Context(), orderID)
		if errors.Is(err, orders.ErrNotFound) || (err == nil && order.UserID != c.GetString("user_id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(store orders.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := orders.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = store.UpdateStatus(c.Request.Context(), orderID, newStatus)
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Error("updating order status", zap.String("order_id", orderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		log.Info("order status updated", zap.String("order_id", orderID), zap.String("status", string(newStatus)))
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(store orders.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		err := store.Delete(c.Request.Context(), orderID)
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Error("deleting order", zap.String("order_id", orderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
