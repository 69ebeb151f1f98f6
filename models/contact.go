package models

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentOnline         PaymentMethod = "online"
)

// ContactInfo is the validated checkout form. It does not change once checkout
// moves past the form step.
type ContactInfo struct {
	Name            string        `json:"name"`
	DeliveryAddress string        `json:"delivery_address"`
	Phone           string        `json:"phone"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
}
