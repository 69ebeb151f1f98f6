package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/junaidrashid-git/biryani-house/cart"
	"github.com/junaidrashid-git/biryani-house/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	Store
	inserted []*models.Order
	err      error
}

func (s *stubStore) Insert(_ context.Context, order *models.Order) error {
	if s.err != nil {
		return s.err
	}
	order.ID = "b3f1c2d4-0000-4000-8000-000000000001"
	s.inserted = append(s.inserted, order)
	return nil
}

var contact = models.ContactInfo{
	Name:            "Asha Menon",
	DeliveryAddress: "12 MG Road, Kochi, Kerala",
	Phone:           "9876543210",
	PaymentMethod:   models.PaymentOnline,
}

func TestBuildRecord(t *testing.T) {
	lines := []cart.Line{
		{MenuItemID: 1, PreparationType: models.PreparationRambo, Name: "Biriyanis", UnitPrice: 250, Quantity: 2},
		{MenuItemID: 2, PreparationType: models.PreparationDum, Name: "Thalis", UnitPrice: 180, Quantity: 1},
	}

	order := BuildRecord("user-7", contact, lines)

	assert.Equal(t, "user-7", order.UserID)
	assert.Equal(t, "Asha Menon", order.CustomerName)
	assert.Equal(t, "9876543210", order.CustomerPhone)
	assert.Equal(t, "12 MG Road, Kochi, Kerala", order.DeliveryAddress)
	assert.Equal(t, 680, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Rambo", order.PreparationType)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, models.PaymentOnline, order.PaymentMethod)
	assert.Equal(t, []models.OrderItem{
		{ID: 1, Name: "Biriyanis", Price: 250, Quantity: 2, PreparationType: "Rambo"},
		{ID: 2, Name: "Thalis", Price: 180, Quantity: 1, PreparationType: "Dum"},
	}, order.Items)
	assert.Empty(t, order.ID)
}

func TestBuildRecord_EmptySnapshotDefaultsPreparation(t *testing.T) {
	order := BuildRecord("user-7", contact, nil)

	assert.Equal(t, "Dum", order.PreparationType)
	assert.Zero(t, order.TotalAmount)
	assert.Empty(t, order.Items)
}

func TestAdapter_SubmitReturnsStoredRecord(t *testing.T) {
	store := &stubStore{}
	lines := []cart.Line{{MenuItemID: 2, PreparationType: models.PreparationDum, Name: "Thalis", UnitPrice: 180, Quantity: 1}}

	order, err := NewAdapter(store, nil).Submit(context.Background(), "guest_1", contact, lines)

	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "b3f1c2d4-0000-4000-8000-000000000001", order.ID)
	assert.Equal(t, 180, order.TotalAmount)
}

func TestAdapter_SubmitDoesNotTouchSnapshot(t *testing.T) {
	lines := []cart.Line{{MenuItemID: 2, PreparationType: models.PreparationDum, Name: "Thalis", UnitPrice: 180, Quantity: 1}}
	before := append([]cart.Line(nil), lines...)
	c := contact

	_, err := NewAdapter(&stubStore{}, nil).Submit(context.Background(), "guest_1", c, lines)

	require.NoError(t, err)
	assert.Equal(t, before, lines)
	assert.Equal(t, contact, c)
}

func TestAdapter_WrapsStoreFailure(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	store := &stubStore{err: cause}

	order, err := NewAdapter(store, nil).Submit(context.Background(), "guest_1", contact, nil)

	assert.Nil(t, order)
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, cause)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Out_For_Delivery ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOutForDelivery, status)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
