package router

import (
	"net/http"
	"strings"

	"hemp-kart/internal/handler"
	"hemp-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	discountHandler *handler.DiscountHandler,
	adminHandler *handler.AdminHandler,
	adminKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/discounts/validate", discountHandler.Validate)
	mux.HandleFunc("/checkout", discountHandler.Checkout)

	// Admin handler function: fixed analytics paths first, then the CRUD
	// collection and item routes.
	adminRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/discounts/analytics/export":
			adminHandler.AnalyticsExport(w, r)
		case r.URL.Path == "/admin/discounts/analytics":
			adminHandler.Analytics(w, r)
		case r.URL.Path == "/admin/discounts" || r.URL.Path == "/admin/discounts/":
			adminHandler.Codes(w, r)
		case strings.HasPrefix(r.URL.Path, "/admin/discounts/"):
			adminHandler.CodeByID(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register admin routes (both with and without trailing slash)
	mux.HandleFunc("/admin/discounts", adminRouteHandler)
	mux.HandleFunc("/admin/discounts/", adminRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> AdminKeyAuth
	var h http.Handler = mux
	h = middleware.AdminKeyAuth(adminKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
