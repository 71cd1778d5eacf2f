// Package checkout implements the checkout form store, its validation and
// totals engine, and the client-side order submission flow.
package checkout

import (
	"sync"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/statefile"

	"github.com/rs/zerolog"
)

// Namespace is the storage namespace for the persisted form draft. Only the
// form fields are persisted; errors and the submission flag are not.
const Namespace = "kasameri.checkout.v1"

// FormStore holds the in-progress order draft, field-level errors keyed by
// field name, the submission flag, and the last successful order snapshot.
type FormStore struct {
	mu          sync.Mutex
	form        model.CheckoutForm
	errors      map[string]string
	submitting  bool
	lastOrder   *model.OrderRequest
	lastOrderID string
	fees        FeeSchedule
	storage     statefile.Storage
	logger      zerolog.Logger
}

// NewFormStore creates a form store with defaults, restoring a persisted
// draft when one exists.
func NewFormStore(storage statefile.Storage, fees FeeSchedule, logger zerolog.Logger) *FormStore {
	s := &FormStore{
		form:    model.DefaultCheckoutForm(),
		errors:  make(map[string]string),
		fees:    fees,
		storage: storage,
		logger:  logger.With().Str("store", "checkout").Logger(),
	}

	var draft model.CheckoutForm
	found, err := storage.Load(Namespace, &draft)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to restore checkout draft")
	} else if found {
		s.form = draft
		s.logger.Debug().Msg("checkout draft restored")
	}

	return s
}

// Form returns a copy of the current draft.
func (s *FormStore) Form() model.CheckoutForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Update applies a shallow mutation to the draft and persists it. No eager
// validation happens here.
func (s *FormStore) Update(apply func(f *model.CheckoutForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.form)
	s.persist()
}

// UpdateAddress mutates the address block of the draft.
func (s *FormStore) UpdateAddress(apply func(a *model.Address)) {
	s.Update(func(f *model.CheckoutForm) {
		apply(&f.Address)
	})
}

// UpdatePreferred mutates the preferred delivery time block of the draft.
func (s *FormStore) UpdatePreferred(apply func(p *model.PreferredTime)) {
	s.Update(func(f *model.CheckoutForm) {
		apply(&f.Preferred)
	})
}

// SetError records a symbolic error code for a field.
func (s *FormStore) SetError(field, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[field] = code
}

// ClearError removes the error for a field.
func (s *FormStore) ClearError(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, field)
}

// ClearErrors removes all field errors.
func (s *FormStore) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string)
}

// Errors returns a copy of the current error map.
func (s *FormStore) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.errors))
	for field, code := range s.errors {
		out[field] = code
	}
	return out
}

// FieldError returns the symbolic code set for a field, if any.
func (s *FormStore) FieldError(field string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.errors[field]
	return code, ok
}

// ResetForm restores defaults, clears errors, and drops the persisted draft.
// Called after a successful order.
func (s *FormStore) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = model.DefaultCheckoutForm()
	s.errors = make(map[string]string)
	if err := s.storage.Clear(Namespace); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear checkout draft")
	}
}

// IsSubmitting reports whether a submission is in flight.
func (s *FormStore) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// LastOrder returns the snapshot of the last successfully placed order.
func (s *FormStore) LastOrder() (*model.OrderRequest, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOrder, s.lastOrderID
}

// beginSubmit flips the submission flag, reporting false when a submission
// is already in flight.
func (s *FormStore) beginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *FormStore) endSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *FormStore) recordOrder(req *model.OrderRequest, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOrder = req
	s.lastOrderID = orderID
}

// persist writes the form fields only. Caller holds the lock.
func (s *FormStore) persist() {
	if err := s.storage.Save(Namespace, s.form); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist checkout draft")
	}
}
