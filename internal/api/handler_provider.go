package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
	"github.com/fastprodman/vendingmachine/internal/services/catalog"
	"github.com/fastprodman/vendingmachine/internal/services/vending"
	"github.com/go-chi/chi/v5"
)

// Engine is the part of vending.Service the handlers call.
type Engine interface {
	Deposit(ctx context.Context, userID uint64, coin coins.Coin) (vending.DepositResult, error)
	Purchase(ctx context.Context, userID, productID uint64, quantity int64) (vending.PurchaseResult, error)
	Reset(ctx context.Context, userID uint64) (vending.ResetResult, error)
	Reserve(ctx context.Context) (coins.Reserve, error)
}

// Catalog is the part of catalog.Service the handlers call.
type Catalog interface {
	RegisterUser(ctx context.Context, username, role string) (accounts.Account, error)
	GetAccount(ctx context.Context, userID uint64) (accounts.Account, error)
	ListProducts(ctx context.Context) ([]products.Product, error)
	GetProduct(ctx context.Context, productID uint64) (products.Product, error)
	CreateProduct(ctx context.Context, sellerID uint64, name string, cost, stock int64) (products.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID uint64, patch catalog.ProductPatch) (products.Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID uint64) error
}

// HandlerProvider exposes the engine and the catalog as HTTP handlers.
type HandlerProvider struct {
	engine  Engine
	catalog Catalog
	logger  *slog.Logger
}

func NewHandler(engine Engine, cat Catalog, logger *slog.Logger) *HandlerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	return &HandlerProvider{engine: engine, catalog: cat, logger: logger}
}

// --- Helpers ---

const userIDHeader = "X-User-ID"

func (h *HandlerProvider) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *HandlerProvider) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func parseID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("missing id")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}

	if id == 0 {
		return 0, errors.New("invalid id: must be positive")
	}

	return id, nil
}

// actorID reads the authenticated user id set by the gateway.
func actorID(r *http.Request) (uint64, error) {
	return parseID(r.Header.Get(userIDHeader))
}

func productIDFromPath(r *http.Request) (uint64, error) {
	return parseID(chi.URLParam(r, "productId"))
}

// decodeBody reads a JSON body capped at 1MB, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}

		return errors.New("invalid JSON")
	}

	return nil
}

// withActor parses the actor header and writes 401 when it is missing.
func (h *HandlerProvider) withActor(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := actorID(r)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, "missing or invalid "+userIDHeader+" header")
		return 0, false
	}

	return id, true
}
