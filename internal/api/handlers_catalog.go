package api

import (
	"net/http"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
	"github.com/fastprodman/vendingmachine/internal/services/catalog"
)

type accountResponse struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	Deposit        int64  `json:"deposit"`
	DepositDecimal string `json:"depositDecimal"`
}

func toAccountResponse(a accounts.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Username:       a.Username,
		Role:           string(a.Role),
		Deposit:        a.Balance,
		DepositDecimal: formatMinor(a.Balance),
	}
}

type productResponse struct {
	ID              uint64 `json:"id"`
	SellerID        uint64 `json:"sellerId"`
	Name            string `json:"productName"`
	Cost            int64  `json:"cost"`
	CostDecimal     string `json:"costDecimal"`
	AmountAvailable int64  `json:"amountAvailable"`
}

func toProductResponse(p products.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Name:            p.Name,
		Cost:            p.Price,
		CostDecimal:     formatMinor(p.Price),
		AmountAvailable: p.Stock,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterHandler handles POST /users
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.catalog.RegisterUser(r.Context(), req.Username, req.Role)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toAccountResponse(acc))
}

// MeHandler handles GET /users/me
func (h *HandlerProvider) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	acc, err := h.catalog.GetAccount(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// ListProductsHandler handles GET /products
func (h *HandlerProvider) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}

	h.writeJSON(w, http.StatusOK, out)
}

// GetProductHandler handles GET /products/{productId}
func (h *HandlerProvider) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid productId in path")
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

type createProductRequest struct {
	Name            string `json:"productName"`
	Cost            int64  `json:"cost"`
	AmountAvailable int64  `json:"amountAvailable"`
}

// CreateProductHandler handles POST /products
func (h *HandlerProvider) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	var req createProductRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), sellerID, req.Name, req.Cost, req.AmountAvailable)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toProductResponse(p))
}

type updateProductRequest struct {
	Name            *string `json:"productName"`
	Cost            *int64  `json:"cost"`
	AmountAvailable *int64  `json:"amountAvailable"`
}

// UpdateProductHandler handles PUT /products/{productId}
func (h *HandlerProvider) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid productId in path")
		return
	}

	var req updateProductRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), sellerID, productID, catalog.ProductPatch{
		Name:            req.Name,
		Cost:            req.Cost,
		AmountAvailable: req.AmountAvailable,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toProductResponse(p))
}

// DeleteProductHandler handles DELETE /products/{productId}
func (h *HandlerProvider) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.withActor(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid productId in path")
		return
	}

	err = h.catalog.DeleteProduct(r.Context(), sellerID, productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
