package api

import (
	"errors"
	"net/http"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/pgutils"
	"github.com/fastprodman/vendingmachine/internal/infra/sqliteutils"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
	"github.com/fastprodman/vendingmachine/internal/services/catalog"
	"github.com/fastprodman/vendingmachine/internal/services/vending"
)

type errorMapping struct {
	target error
	status int
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorMapping{
	{coins.ErrInvalidCoin, http.StatusBadRequest},
	{vending.ErrInvalidQuantity, http.StatusBadRequest},
	{catalog.ErrInvalidCost, http.StatusBadRequest},
	{catalog.ErrInvalidInput, http.StatusBadRequest},
	{accounts.ErrInvalidRole, http.StatusBadRequest},
	{vending.ErrInvalidRole, http.StatusForbidden},
	{catalog.ErrNotSeller, http.StatusForbidden},
	{catalog.ErrNotOwner, http.StatusForbidden},
	{accounts.ErrUserNotFound, http.StatusNotFound},
	{products.ErrProductNotFound, http.StatusNotFound},
	{accounts.ErrNotEnoughMoney, http.StatusConflict},
	{products.ErrNotEnoughProduct, http.StatusConflict},
	{coins.ErrNotEnoughChange, http.StatusConflict},
	{accounts.ErrUsernameTaken, http.StatusConflict},
}

// statusFor maps a service error to a status and a client-safe message.
// Internal failures never expose their cause.
func statusFor(err error) (int, string) {
	if pgutils.IsRetryable(err) || sqliteutils.IsBusy(err) {
		return http.StatusServiceUnavailable, "conflicting request, retry"
	}

	if errors.Is(err, vending.ErrInternal) {
		return http.StatusInternalServerError, "internal error"
	}

	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			return m.status, m.target.Error()
		}
	}

	return http.StatusInternalServerError, "internal error"
}

func (h *HandlerProvider) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}

	h.writeError(w, status, msg)
}
