package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/cart"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/ordertext"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCurrency = "BGN"

// NewIdempotencyKey generates a fresh submission token. A new key is
// generated for every submission attempt, so only an exact same-key
// resubmission is recognised as a duplicate by the server.
func NewIdempotencyKey() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), suffix)
}

// Confirmation is what the UI shows after a successful order: the assigned
// identifier, the rebuilt human-readable summary, and deep links for
// forwarding it manually. The summary text doubles as the clipboard
// fallback.
type Confirmation struct {
	OrderID      string
	Message      string
	Summary      string
	WhatsAppLink string
	ViberLink    string
}

// Submitter assembles an order request from the cart and the validated form
// and posts it to the order endpoint.
type Submitter struct {
	endpoint      string
	businessPhone string
	locale        string
	client        *http.Client
	cart          *cart.Store
	form          *FormStore
	logger        zerolog.Logger
}

// NewSubmitter creates a submitter. The client's ambient timeout is the only
// cancellation mechanism for the outbound request.
func NewSubmitter(
	endpoint string,
	businessPhone string,
	locale string,
	client *http.Client,
	cartStore *cart.Store,
	form *FormStore,
	logger zerolog.Logger,
) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submitter{
		endpoint:      endpoint,
		businessPhone: businessPhone,
		locale:        locale,
		client:        client,
		cart:          cartStore,
		form:          form,
		logger:        logger.With().Str("component", "submitter").Logger(),
	}
}

// BuildOrderRequest assembles the wire payload from the current cart and
// form. Line totals and order totals are computed here, on the client side.
// A fresh idempotency key is generated per call.
func (s *Submitter) BuildOrderRequest() (*model.OrderRequest, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	f := s.form.Form()
	subtotal := s.cart.Subtotal()
	totals := s.form.CalculateTotals(subtotal, f.PromoCode)

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ProductID:    item.ProductID,
			Name:         item.Name,
			Variety:      item.VarietyKey,
			Qty:          item.Qty,
			Unit:         item.Unit,
			PricePerUnit: item.PricePerUnit,
			LineTotal:    item.LineTotal(),
		}
	}

	delivery := model.Delivery{
		Method: f.DeliveryMethod,
		Fee:    totals.DeliveryFee,
	}
	if f.DeliveryMethod != model.DeliveryPickup {
		addr := f.Address
		delivery.Address = &addr
	}
	if f.Preferred.Date != "" || f.Preferred.Slot != "" {
		pref := f.Preferred
		delivery.Preferred = &pref
	}

	return &model.OrderRequest{
		IdempotencyKey: NewIdempotencyKey(),
		Locale:         s.locale,
		Currency:       defaultCurrency,
		Customer: model.Customer{
			Name:  f.FullName,
			Phone: NormalizePhone(f.Phone),
			Email: f.Email,
		},
		Delivery:  delivery,
		Payment:   model.Payment{Method: f.PaymentMethod},
		Items:     orderItems,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Total:     totals.Total,
		Notes:     f.Notes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Submit validates the form, posts the assembled order, and on success
// clears the cart and the form and returns the confirmation. On any failure
// the cart and form are left untouched and a "submit" error is recorded on
// the form store.
func (s *Submitter) Submit(ctx context.Context) (*Confirmation, error) {
	if !s.form.beginSubmit() {
		return nil, model.ErrAlreadySubmitting
	}
	defer s.form.endSubmit()

	if !s.form.ValidateForm() {
		return nil, model.ErrValidationFailed
	}

	req, err := s.BuildOrderRequest()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.form.SetError(model.FieldSubmit, model.CodeFailed)
		s.logger.Error().Err(err).Msg("order submission failed")
		return nil, fmt.Errorf("%w: %v", model.ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var orderResp model.OrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
			s.form.SetError(model.FieldSubmit, model.CodeFailed)
			return nil, fmt.Errorf("failed to decode order response: %w", err)
		}

		summary := ordertext.OrderSummary(req, orderResp.OrderID)

		s.cart.Clear()
		s.form.recordOrder(req, orderResp.OrderID)
		s.form.ResetForm()

		s.logger.Info().
			Str("order_id", orderResp.OrderID).
			Int("item_count", len(req.Items)).
			Msg("order placed")

		return &Confirmation{
			OrderID:      orderResp.OrderID,
			Message:      orderResp.Message,
			Summary:      summary,
			WhatsAppLink: ordertext.WhatsAppLink(s.businessPhone, summary),
			ViberLink:    ordertext.ViberLink(summary),
		}, nil

	case http.StatusConflict:
		var dup model.DuplicateResponse
		if err := json.NewDecoder(resp.Body).Decode(&dup); err != nil {
			s.form.SetError(model.FieldSubmit, model.CodeFailed)
			return nil, fmt.Errorf("failed to decode duplicate response: %w", err)
		}
		s.form.SetError(model.FieldSubmit, model.CodeFailed)
		s.logger.Warn().Str("order_id", dup.OrderID).Msg("duplicate submission rejected")
		return nil, &model.DuplicateError{OrderID: dup.OrderID}

	default:
		s.form.SetError(model.FieldSubmit, model.CodeFailed)
		s.logger.Error().Int("status", resp.StatusCode).Msg("order endpoint returned failure")
		return nil, fmt.Errorf("%w: status %d", model.ErrSubmitFailed, resp.StatusCode)
	}
}
