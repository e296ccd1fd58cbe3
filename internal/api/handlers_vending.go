package api

import (
	"net/http"

	"github.com/fastprodman/vendingmachine/internal/coins"
)

type depositRequest struct {
	Coin int64 `json:"coin"`
}

type depositResponse struct {
	UserID         uint64 `json:"userId"`
	Role           string `json:"role"`
	Balance        int64  `json:"balance"`
	BalanceDecimal string `json:"balanceDecimal"`
}

// DepositHandler handles POST /deposit
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	var req depositRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.Deposit(r.Context(), userID, coins.Coin(req.Coin))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, depositResponse{
		UserID:         res.AccountID,
		Role:           string(res.Role),
		Balance:        res.Balance,
		BalanceDecimal: formatMinor(res.Balance),
	})
}

type buyRequest struct {
	ProductID uint64 `json:"productId"`
	Amount    int64  `json:"amount"`
}

type buyResponse struct {
	ProductID         uint64           `json:"productId"`
	ProductName       string           `json:"productName"`
	Quantity          int64            `json:"quantity"`
	TotalSpent        int64            `json:"totalSpent"`
	TotalSpentDecimal string           `json:"totalSpentDecimal"`
	Change            map[string]int64 `json:"change"`
}

// BuyHandler handles POST /buy
func (h *HandlerProvider) BuyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	var req buyRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ProductID == 0 {
		h.writeError(w, http.StatusBadRequest, "productId required")
		return
	}

	res, err := h.engine.Purchase(r.Context(), userID, req.ProductID, req.Amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, buyResponse{
		ProductID:         res.ProductID,
		ProductName:       res.ProductName,
		Quantity:          res.Quantity,
		TotalSpent:        res.TotalSpent,
		TotalSpentDecimal: formatMinor(res.TotalSpent),
		Change:            changeJSON(res.Change),
	})
}

type resetResponse struct {
	Refunded        int64            `json:"refunded"`
	RefundedDecimal string           `json:"refundedDecimal"`
	Change          map[string]int64 `json:"change"`
}

// ResetHandler handles POST /reset
func (h *HandlerProvider) ResetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	res, err := h.engine.Reset(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	refunded := res.Change.Total()

	h.writeJSON(w, http.StatusOK, resetResponse{
		Refunded:        refunded,
		RefundedDecimal: formatMinor(refunded),
		Change:          changeJSON(res.Change),
	})
}

// ReserveHandler handles GET /machine/coins
func (h *HandlerProvider) ReserveHandler(w http.ResponseWriter, r *http.Request) {
	reserve, err := h.engine.Reserve(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"coins":        reserveJSON(reserve),
		"total":        reserve.Total(),
		"totalDecimal": formatMinor(reserve.Total()),
	})
}
