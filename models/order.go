package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"          // Order placed, awaiting the kitchen
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Accepted by the restaurant
	OrderStatusPreparing      OrderStatus = "preparing"        // Being cooked
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // With the rider
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the food
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID              string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string        `gorm:"index" json:"user_id"`
	CustomerName    string        `gorm:"not null" json:"customer_name"`
	CustomerPhone   string        `gorm:"not null" json:"customer_phone"`
	DeliveryAddress string        `gorm:"not null" json:"delivery_address"`
	Items           []OrderItem   `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalAmount     int           `json:"total_amount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PreparationType string        `json:"preparation_type"` // legacy: first line's style
	Quantity        int           `json:"quantity"`         // legacy: sum of line quantities
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	Quantity        int    `json:"quantity"`
	PreparationType string `json:"preparationType"`
}

// BeforeCreate assigns the store id so callers never supply one.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
