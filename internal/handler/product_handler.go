package handler

import (
	"net/http"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/catalog"

	"github.com/rs/zerolog"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(c *catalog.Catalog, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.catalog.Products())
}
