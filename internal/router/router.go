package router

import (
	"net/http"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/handler"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/middleware"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	distributorHandler *handler.DistributorHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/products", productHandler.GetAll)
	mux.HandleFunc("/api/orders", orderHandler.Create)
	mux.HandleFunc("/api/distributors", distributorHandler.Create)

	// Permissive CORS; preflight requests always answer 200.
	corsLayer := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	})

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = corsLayer.Handler(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
