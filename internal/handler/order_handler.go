package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
//
// Status contract: 201 on acceptance, 409 for a resubmitted idempotency key,
// 400 with a per-field details map for missing required fields, 500 for
// anything uncaught.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		var dup *model.DuplicateError
		if errors.As(err, &dup) {
			writeJSON(w, http.StatusConflict, model.DuplicateResponse{
				Error:   "duplicate submission",
				OrderID: dup.OrderID,
			})
			return
		}

		var invalid *model.ValidationError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, model.ValidationResponse{
				Error:   "missing required fields",
				Details: invalid.Details,
			})
			return
		}

		writeError(w, http.StatusInternalServerError, "failed to create order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
