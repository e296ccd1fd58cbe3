package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// NewServer creates and returns a configured *http.Server for the vending API.
func NewServer(port uint16, engine Engine, cat Catalog, logger *slog.Logger) *http.Server {
	mux := NewRouter(engine, cat, logger)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
