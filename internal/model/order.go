package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the customer block of an order request.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Delivery is the delivery block of an order request. Address and Preferred
// are omitted for pickup orders.
type Delivery struct {
	Method    DeliveryMethod  `json:"method"`
	Address   *Address        `json:"address,omitempty"`
	Preferred *PreferredTime  `json:"preferred,omitempty"`
	Fee       decimal.Decimal `json:"fee"`
}

// Payment is the payment block of an order request.
type Payment struct {
	Method PaymentMethod `json:"method"`
}

// OrderItem is one ordered line on the wire. LineTotal is computed by the
// client and trusted as-is by the server; the server validates presence, not
// arithmetic.
type OrderItem struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Variety      string          `json:"variety,omitempty"`
	Qty          decimal.Decimal `json:"qty"`
	Unit         Unit            `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// OrderRequest is the payload sent from the client to POST /api/orders.
// Invariant at assembly time: Total = Subtotal - Discount + Delivery.Fee,
// and Items is non-empty.
type OrderRequest struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	Locale         string          `json:"locale"`
	Currency       string          `json:"currency"`
	Customer       Customer        `json:"customer"`
	Delivery       Delivery        `json:"delivery"`
	Payment        Payment         `json:"payment"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// OrderResponse is the 201 body for an accepted order.
type OrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// DuplicateResponse is the 409 body for a resubmitted idempotency key.
type DuplicateResponse struct {
	Error   string `json:"error"`
	OrderID string `json:"orderId"`
}

// FieldStatus marks a request field as present or missing in a 400 response.
type FieldStatus string

const (
	FieldOK       FieldStatus = "ok"
	FieldRequired FieldStatus = "required"
)

// ValidationResponse is the 400 body with a per-field presence map.
type ValidationResponse struct {
	Error   string                 `json:"error"`
	Details map[string]FieldStatus `json:"details"`
}

// DistributorRequest is the payload for POST /api/distributors.
type DistributorRequest struct {
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Region  string `json:"region,omitempty"`
	Message string `json:"message,omitempty"`
}

// InquiryResponse is the 201 body for an accepted distributor inquiry.
type InquiryResponse struct {
	Success   bool   `json:"success"`
	InquiryID string `json:"inquiryId"`
	Message   string `json:"message"`
}
