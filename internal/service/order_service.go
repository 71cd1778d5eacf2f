package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/idempotency"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/notify"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/ordertext"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	keys       idempotency.Store
	sender     notify.Sender
	mail       Mailboxes
	processing ProcessingConfig
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	keys idempotency.Store,
	sender notify.Sender,
	mail Mailboxes,
	processing ProcessingConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		keys:       keys,
		sender:     sender,
		mail:       mail,
		processing: processing,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder runs the order intake protocol: duplicate check, simulated
// processing delay, presence validation, identifier generation, key
// recording, and best-effort notification fan-out.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}

	if key := req.IdempotencyKey; key != "" && s.keys.Seen(key) {
		s.logger.Warn().
			Str("idempotency_key", key).
			Msg("duplicate order submission rejected")
		return nil, &model.DuplicateError{OrderID: pseudoOrderID(key)}
	}

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	if details, ok := validateOrderRequest(req); !ok {
		s.logger.Warn().
			Interface("details", details).
			Msg("order request validation failed")
		return nil, &model.ValidationError{Details: details}
	}

	orderID := newOrderID()

	if req.IdempotencyKey != "" {
		s.keys.Mark(req.IdempotencyKey)
	}

	s.notifyOperators(ctx, req, orderID)

	s.logger.Info().
		Str("order_id", orderID).
		Int("item_count", len(req.Items)).
		Str("total", req.Total.String()).
		Msg("order accepted")

	return &model.OrderResponse{
		Success: true,
		OrderID: orderID,
		Message: "Поръчката е приета успешно. Ще се свържем с вас за потвърждение.",
	}, nil
}

// simulateProcessing suspends for a uniformly distributed duration between
// MinDelay and MaxDelay to emulate backend work. The suspension respects
// context cancellation but has no timeout of its own.
func (s *orderService) simulateProcessing(ctx context.Context) error {
	if s.processing.MaxDelay <= 0 {
		return nil
	}

	delay := s.processing.MinDelay
	if spread := s.processing.MaxDelay - s.processing.MinDelay; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// validateOrderRequest checks presence of the customer full name, phone, and
// at least one item, returning the per-field status map.
func validateOrderRequest(req *model.OrderRequest) (map[string]model.FieldStatus, bool) {
	details := map[string]model.FieldStatus{
		"customerName":  model.FieldOK,
		"customerPhone": model.FieldOK,
		"items":         model.FieldOK,
	}

	ok := true
	if strings.TrimSpace(req.Customer.Name) == "" {
		details["customerName"] = model.FieldRequired
		ok = false
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		details["customerPhone"] = model.FieldRequired
		ok = false
	}
	if len(req.Items) == 0 {
		details["items"] = model.FieldRequired
		ok = false
	}

	return details, ok
}

// notifyOperators mails the rendered order summary to the operator and
// backup inboxes. Both legs settle independently; failures are logged and
// never fail the order.
func (s *orderService) notifyOperators(ctx context.Context, req *model.OrderRequest, orderID string) {
	text := ordertext.OrderSummary(req, orderID)
	subject := fmt.Sprintf("Нова поръчка %s", orderID)

	msgs := make([]notify.Message, 0, 2)
	for _, inbox := range []string{s.mail.Operator, s.mail.Backup} {
		if inbox == "" {
			continue
		}
		msgs = append(msgs, notify.Message{
			From:    s.mail.From,
			To:      inbox,
			Subject: subject,
			Text:    text,
		})
	}

	for _, result := range notify.Dispatch(ctx, s.sender, msgs) {
		if result.Err != nil {
			s.logger.Error().
				Str("order_id", orderID).
				Str("to", result.To).
				Err(result.Err).
				Msg("order notification failed")
		}
	}
}

// newOrderID generates the customer-facing order identifier.
func newOrderID() string {
	return fmt.Sprintf("OR-2025-%d%03d", time.Now().Unix(), rand.Intn(1000))
}

// pseudoOrderID derives the placeholder identifier returned for duplicate
// submissions from the truncated idempotency key.
func pseudoOrderID(key string) string {
	trimmed := strings.TrimPrefix(key, "order_")
	if len(trimmed) > 13 {
		trimmed = trimmed[:13]
	}
	return "OR-" + trimmed
}
