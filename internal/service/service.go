package service

import (
	"context"
	"time"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
)

// OrderService defines operations for order intake.
type OrderService interface {
	// CreateOrder validates and accepts an order, deduplicates by
	// idempotency key, and dispatches operator notifications.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// DistributorService defines operations for distributor inquiries.
type DistributorService interface {
	// CreateInquiry validates and accepts a B2B contact request.
	CreateInquiry(ctx context.Context, req *model.DistributorRequest) (*model.InquiryResponse, error)
}

// Mailboxes holds the notification sender identity and recipient inboxes.
type Mailboxes struct {
	From     string
	Operator string
	Backup   string
}

// ProcessingConfig bounds the simulated order-processing delay. The delay is
// a deliberate artificial suspension, not I/O-bound work; zero MaxDelay
// disables it.
type ProcessingConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}
