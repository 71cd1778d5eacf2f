package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/cart"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/catalog"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/handler"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/idempotency"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/notify"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/router"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/service"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/statefile"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures dispatched notifications.
type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (r *recordingSender) Send(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

// newTestServer spins up the full API stack with zero processing delay.
func newTestServer(t *testing.T) (*httptest.Server, *recordingSender) {
	t.Helper()
	logger := zerolog.Nop()

	catalogPath := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`[
		{"id": "apples", "nameBg": "Ябълки", "nameEn": "Apples", "unit": "kg", "pricePerUnit": "2.80"}
	]`), 0o644))
	products, err := catalog.Load(catalogPath, logger)
	require.NoError(t, err)

	sender := &recordingSender{}
	mail := service.Mailboxes{
		From:     "orders@kasameri.bg",
		Operator: "office@kasameri.bg",
		Backup:   "backup@kasameri.bg",
	}

	orderService := service.NewOrderService(
		idempotency.NewMemoryStore(), sender, mail, service.ProcessingConfig{}, logger)
	distributorService := service.NewDistributorService(sender, mail, logger)

	mux := router.New(
		handler.NewProductHandler(products, logger),
		handler.NewOrderHandler(orderService, logger),
		handler.NewDistributorHandler(distributorService, logger),
		logger,
	)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, sender
}

func newTestSubmitter(endpoint string, client *http.Client) (*Submitter, *cart.Store, *FormStore) {
	logger := zerolog.Nop()
	cartStore := cart.NewStore(statefile.NewMemoryStorage(), logger)
	formStore := NewFormStore(statefile.NewMemoryStorage(), DefaultFeeSchedule(), logger)
	submitter := NewSubmitter(endpoint, "+359877123456", "bg", client, cartStore, formStore, logger)
	return submitter, cartStore, formStore
}

func pickupForm(f *model.CheckoutForm) {
	f.FullName = "Иван Петров"
	f.Phone = "0888123456"
	f.DeliveryMethod = model.DeliveryPickup
	f.Consent = true
}

func TestSubmit_EndToEnd_PickupOrder(t *testing.T) {
	server, sender := newTestServer(t)
	submitter, cartStore, formStore := newTestSubmitter(server.URL+"/api/orders", server.Client())

	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		Name:         "Ябълки",
		Unit:         model.UnitKilogram,
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(2),
	})
	formStore.Update(pickupForm)

	conf, err := submitter.Submit(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^OR-2025-\d+$`), conf.OrderID)
	assert.Contains(t, conf.Summary, "Общо: 5.60 лв")
	assert.Contains(t, conf.Summary, conf.OrderID)
	assert.Contains(t, conf.WhatsAppLink, "https://wa.me/359877123456?text=")
	assert.Contains(t, conf.ViberLink, "viber://forward?text=")

	// Success clears both stores.
	assert.Equal(t, 0, cartStore.Len())
	assert.Empty(t, formStore.Form().FullName)
	assert.False(t, formStore.IsSubmitting())

	// The last order snapshot survives the reset.
	lastOrder, lastID := formStore.LastOrder()
	require.NotNil(t, lastOrder)
	assert.Equal(t, conf.OrderID, lastID)
	assert.True(t, lastOrder.Total.Equal(decimal.RequireFromString("5.60")))
	assert.True(t, lastOrder.Delivery.Fee.IsZero())

	// Both notification legs were attempted.
	assert.Len(t, sender.sent, 2)
}

func TestSubmit_ValidationFailureNeverHitsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	submitter, cartStore, formStore := newTestSubmitter(server.URL, server.Client())
	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(1),
	})
	// Form left empty: validation fails.

	_, err := submitter.Submit(context.Background())
	require.ErrorIs(t, err, model.ErrValidationFailed)
	assert.Equal(t, 0, calls)
	assert.NotEmpty(t, formStore.Errors())
	assert.Equal(t, 1, cartStore.Len())
}

func TestSubmit_EmptyCart(t *testing.T) {
	submitter, _, formStore := newTestSubmitter("http://unused.invalid", nil)
	formStore.Update(pickupForm)

	_, err := submitter.Submit(context.Background())
	require.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestSubmit_ServerFailureKeepsState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	submitter, cartStore, formStore := newTestSubmitter(server.URL, server.Client())
	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(1),
	})
	formStore.Update(pickupForm)

	_, err := submitter.Submit(context.Background())
	require.ErrorIs(t, err, model.ErrSubmitFailed)

	// No data loss: the user stays on the form with a submit error.
	code, ok := formStore.FieldError(model.FieldSubmit)
	require.True(t, ok)
	assert.Equal(t, model.CodeFailed, code)
	assert.Equal(t, 1, cartStore.Len())
	assert.Equal(t, "Иван Петров", formStore.Form().FullName)
}

func TestSubmit_DuplicateResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "duplicate submission", "orderId": "OR-1700000000000"}`))
	}))
	defer server.Close()

	submitter, cartStore, formStore := newTestSubmitter(server.URL, server.Client())
	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(1),
	})
	formStore.Update(pickupForm)

	_, err := submitter.Submit(context.Background())

	var dup *model.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "OR-1700000000000", dup.OrderID)
	assert.Equal(t, 1, cartStore.Len(), "duplicate rejection must not clear the cart")
}

func TestBuildOrderRequest_FreshKeyPerAttempt(t *testing.T) {
	submitter, cartStore, formStore := newTestSubmitter("http://unused.invalid", nil)
	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(1),
	})
	formStore.Update(pickupForm)

	first, err := submitter.BuildOrderRequest()
	require.NoError(t, err)
	second, err := submitter.BuildOrderRequest()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^order_\d+_[0-9a-f]{8}$`), first.IdempotencyKey)
	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey,
		"every submission attempt carries a fresh idempotency key")
}

func TestBuildOrderRequest_CourierWithPromo(t *testing.T) {
	submitter, cartStore, formStore := newTestSubmitter("http://unused.invalid", nil)
	cartStore.Add(model.CartItem{
		ProductID:    "apples",
		Name:         "Ябълки",
		VarietyKey:   "florina",
		Unit:         model.UnitKilogram,
		PricePerUnit: decimal.RequireFromString("2.80"),
		Qty:          decimal.NewFromInt(10),
	})
	formStore.Update(validForm)
	formStore.Update(func(f *model.CheckoutForm) { f.PromoCode = PromoWelcome })

	req, err := submitter.BuildOrderRequest()
	require.NoError(t, err)

	assert.Equal(t, "BGN", req.Currency)
	assert.Equal(t, "bg", req.Locale)
	assert.Equal(t, "+359888123456", req.Customer.Phone, "phone is normalized on assembly")
	require.NotNil(t, req.Delivery.Address)
	assert.Equal(t, "София", req.Delivery.Address.City)

	require.Len(t, req.Items, 1)
	assert.True(t, req.Items[0].LineTotal.Equal(decimal.RequireFromString("28.00")))

	// 28.00 - 1.40 + 4.90 = 31.50
	assert.True(t, req.Subtotal.Equal(decimal.RequireFromString("28.00")))
	assert.True(t, req.Discount.Equal(decimal.RequireFromString("1.40")))
	assert.True(t, req.Delivery.Fee.Equal(decimal.RequireFromString("4.90")))
	assert.True(t, req.Total.Equal(decimal.RequireFromString("31.50")))
	assert.True(t, req.Total.Equal(req.Subtotal.Sub(req.Discount).Add(req.Delivery.Fee)))
}
