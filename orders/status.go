package orders

import (
	"errors"
	"strings"

	"github.com/junaidrashid-git/biryani-house/models"
)

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus maps user input to an OrderStatus, ignoring case.
func ParseStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusPreparing):
		return models.OrderStatusPreparing, nil
	case string(models.OrderStatusOutForDelivery):
		return models.OrderStatusOutForDelivery, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}
