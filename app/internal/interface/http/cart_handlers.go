package http

import (
	"net/http"

	domcart "example.com/rocketshoes/app/internal/domain/cart"
	cartuc "example.com/rocketshoes/app/internal/usecase/cart"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// Amount is a pointer so that 0 and negatives reach the store, which
// ignores them.
type updateCartItemRequest struct {
	Amount *int64 `json:"amount" validate:"required"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapCart(a.cart.Cart()))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cart.AddProduct(r.Context(), req.ProductID); err != nil {
		handleDomainError(w, err, cartuc.MessageFor(err, domcart.MessageAddFailed))
		return
	}

	writeJSON(w, http.StatusCreated, mapCart(a.cart.Cart()))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cart.UpdateProductAmount(r.Context(), id, *req.Amount); err != nil {
		handleDomainError(w, err, cartuc.MessageFor(err, domcart.MessageUpdateFailed))
		return
	}

	writeJSON(w, http.StatusOK, mapCart(a.cart.Cart()))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidID)
		return
	}

	if err := a.cart.RemoveProduct(r.Context(), id); err != nil {
		handleDomainError(w, err, cartuc.MessageFor(err, domcart.MessageRemoveFailed))
		return
	}

	writeJSON(w, http.StatusOK, mapCart(a.cart.Cart()))
}

func (a *API) handleDrainNotifications(w http.ResponseWriter, r *http.Request) {
	if a.feed == nil {
		writeJSON(w, http.StatusOK, map[string]any{"notifications": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": a.feed.Drain()})
}
