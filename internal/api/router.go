package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// NewRouter builds the chi router with every endpoint registered.
func NewRouter(engine Engine, cat Catalog, logger *slog.Logger) http.Handler {
	h := NewHandler(engine, cat, logger)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/users", h.RegisterHandler)
	r.Get("/users/me", h.MeHandler)

	r.Post("/deposit", h.DepositHandler)
	r.Post("/buy", h.BuyHandler)
	r.Post("/reset", h.ResetHandler)
	r.Get("/machine/coins", h.ReserveHandler)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProductsHandler)
		r.Post("/", h.CreateProductHandler)
		r.Get("/{productId}", h.GetProductHandler)
		r.Put("/{productId}", h.UpdateProductHandler)
		r.Delete("/{productId}", h.DeleteProductHandler)
	})

	return r
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.DebugContext(r.Context(), "request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
