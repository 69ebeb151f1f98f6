// Package orders turns a finished cart into an order record and keeps the
// order store behind a small interface.
package orders

import (
	"context"
	"fmt"

	"github.com/junaidrashid-git/biryani-house/cart"
	"github.com/junaidrashid-git/biryani-house/models"
	"go.uber.org/zap"
)

// SubmissionError wraps whatever the store reported when an insert failed.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit order: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type Adapter struct {
	store  Store
	logger *zap.Logger
}

func NewAdapter(store Store, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{store: store, logger: logger.Named("orders")}
}

// Submit stores an order built from the cart snapshot. The total is computed
// here from the lines; nothing the caller holds is modified.
func (a *Adapter) Submit(ctx context.Context, userID string, contact models.ContactInfo, lines []cart.Line) (*models.Order, error) {
	order := BuildRecord(userID, contact, lines)
	if err := a.store.Insert(ctx, order); err != nil {
		return nil, &SubmissionError{Err: err}
	}
	a.logger.Info("order stored",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.Int("total_amount", order.TotalAmount))
	return order, nil
}

// BuildRecord maps a cart snapshot and contact details to the stored shape.
func BuildRecord(userID string, contact models.ContactInfo, lines []cart.Line) *models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	total, quantity := 0, 0
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ID:              l.MenuItemID,
			Name:            l.Name,
			Price:           l.UnitPrice,
			Quantity:        l.Quantity,
			PreparationType: string(l.PreparationType),
		})
		total += l.Subtotal()
		quantity += l.Quantity
	}

	preparation := string(models.PreparationDum)
	if len(items) > 0 {
		preparation = items[0].PreparationType
	}

	return &models.Order{
		UserID:          userID,
		CustomerName:    contact.Name,
		CustomerPhone:   contact.Phone,
		DeliveryAddress: contact.DeliveryAddress,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PreparationType: preparation,
		Quantity:        quantity,
		PaymentMethod:   contact.PaymentMethod,
	}
}
