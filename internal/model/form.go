package model

// DeliveryMethod governs whether an address is required and which fee applies.
type DeliveryMethod string

const (
	DeliveryCourierCOD   DeliveryMethod = "courier_cod"
	DeliveryOwnTransport DeliveryMethod = "own_transport"
	DeliveryPickup       DeliveryMethod = "pickup"
)

// PaymentMethod is how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentCard           PaymentMethod = "card"
)

// Address is the delivery address block. Ignored when the delivery method is
// pickup, mandatory otherwise.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Extra    string `json:"extra,omitempty"`
}

// PreferredTime is the customer's preferred delivery date and time slot.
type PreferredTime struct {
	Date string `json:"date,omitempty"`
	Slot string `json:"slot,omitempty"`
}

// CheckoutForm is the in-progress order draft. It is persisted across
// sessions until reset after a successful order; validation errors and
// submission flags are never persisted with it.
type CheckoutForm struct {
	FullName       string         `json:"fullName"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email,omitempty"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	Address        Address        `json:"address"`
	Preferred      PreferredTime  `json:"preferred"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	Notes          string         `json:"notes,omitempty"`
	Consent        bool           `json:"consent"`
	PromoCode      string         `json:"promoCode,omitempty"`
}

// DefaultCheckoutForm returns the form defaults used on first load and after
// a successful order.
func DefaultCheckoutForm() CheckoutForm {
	return CheckoutForm{
		DeliveryMethod: DeliveryCourierCOD,
		PaymentMethod:  PaymentCashOnDelivery,
	}
}
