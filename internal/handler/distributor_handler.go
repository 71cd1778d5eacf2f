package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/service"

	"github.com/rs/zerolog"
)

// DistributorHandler handles distributor inquiry HTTP requests.
type DistributorHandler struct {
	service service.DistributorService
	logger  zerolog.Logger
}

// NewDistributorHandler creates a new distributor handler.
func NewDistributorHandler(service service.DistributorService, logger zerolog.Logger) *DistributorHandler {
	return &DistributorHandler{
		service: service,
		logger:  logger.With().Str("handler", "distributor").Logger(),
	}
}

// Create handles POST /api/distributors requests.
func (h *DistributorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.DistributorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.CreateInquiry(r.Context(), &req)
	if err != nil {
		var invalid *model.ValidationError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, model.ValidationResponse{
				Error:   "missing required fields",
				Details: invalid.Details,
			})
			return
		}

		writeError(w, http.StatusInternalServerError, "failed to create inquiry", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
