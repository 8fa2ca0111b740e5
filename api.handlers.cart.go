package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// AddCartItemRequest is the payload of an add-to-cart call. A zero
// quantity means the default of one copy. The detail page widget clamps
// the value between 1 and 10, the engine accepts any positive integer.
type AddCartItemRequest struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

// UpdateCartItemRequest is the payload of a quantity-update call.
// A quantity of zero or below removes the line item.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// sessionID extracts the shopping session id from the request header.
// A missing or malformed id gets replaced by a fresh one. The id in use
// is always echoed back so the client can carry it on the next call.
func (api *APIHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionIDHeader)
	if !api.idsHandler.IsValid(id, SessionIDPrefix) {
		id = api.idsHandler.Generate(SessionIDPrefix)
	}
	w.Header().Set(SessionIDHeader, id)
	return id
}

// ViewCart serves the current cart snapshot of the session.
func (api *APIHandler) ViewCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)
	update := api.cartService.ViewCart(r.Context(), sessionID)
	resp := GenericResponse(requestID, http.StatusOK, "Cart fetched successfully.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ClearCart empties the session cart.
func (api *APIHandler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)
	update := api.cartService.ClearCart(r.Context(), sessionID)
	resp := GenericResponse(requestID, http.StatusOK, "Cart cleared successfully.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// AddCartItem merges a catalog book into the session cart. The book price
// is captured at this instant and frozen on the line item.
func (api *APIHandler) AddCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)

	payload := AddCartItemRequest{}
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.logger.Error("failed to add item to cart", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the item to the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	update, err := api.cartService.AddToCart(r.Context(), sessionID, payload.BookID, payload.Quantity)
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		api.logger.Error("invalid quantity on add to cart", zap.String("request.id", requestID), zap.Int("quantity", payload.Quantity))
		errResp := NewAPIError(requestID, http.StatusBadRequest, err.Error(), EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case errors.Is(err, ErrBookNotFound):
		api.logger.Error("book does not exist", zap.Int("book.id", payload.BookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case err != nil:
		api.logger.Error("failed to add item to cart", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to add the item to the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	resp := GenericResponse(requestID, http.StatusOK, "Item added to cart successfully.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateCartItem applies a new quantity to a line item. A quantity at or
// below zero removes the line, an unknown book id is a no-op.
func (api *APIHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)

	bookID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || bookID <= 0 {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	payload := UpdateCartItemRequest{}
	if err = DecodeRequestBody(r, &payload); err != nil {
		api.logger.Error("failed to update cart item", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the cart item", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	update := api.cartService.UpdateQuantity(r.Context(), sessionID, bookID, payload.Quantity)
	resp := GenericResponse(requestID, http.StatusOK, "Cart item updated successfully.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// RemoveCartItem deletes a line item. Removing an absent id succeeds
// with the unchanged snapshot.
func (api *APIHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)

	bookID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || bookID <= 0 {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	update := api.cartService.RemoveFromCart(r.Context(), sessionID, bookID)
	resp := GenericResponse(requestID, http.StatusOK, "Cart item removed successfully.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ProceedToCheckout enters the checkout flow. An empty cart blocks the
// transition and the session stays on its current page.
func (api *APIHandler) ProceedToCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)

	update, err := api.cartService.ProceedToCheckout(r.Context(), sessionID)
	switch {
	case errors.Is(err, ErrCartEmpty):
		errResp := NewAPIError(requestID, http.StatusConflict, "checkout blocked: your cart is empty", update)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case errors.Is(err, ErrCheckoutInProgress):
		errResp := NewAPIError(requestID, http.StatusConflict, "checkout already in progress", update)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case err != nil:
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to proceed to checkout", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	resp := GenericResponse(requestID, http.StatusOK, FreeShippingNotice, nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// BackToCart abandons the checkout form and returns to the cart page.
// The live cart is left exactly as it was when checkout began.
func (api *APIHandler) BackToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)
	update := api.cartService.BackToCart(r.Context(), sessionID)
	resp := GenericResponse(requestID, http.StatusOK, "Returned to cart.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// BackToHome abandons the checkout form and returns to the home page.
func (api *APIHandler) BackToHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)
	update := api.cartService.BackToHome(r.Context(), sessionID)
	resp := GenericResponse(requestID, http.StatusOK, "Returned to home.", nil, update)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// SubmitOrder hands the checkout form to the order submission collaborator.
// On success the cart is cleared and the confirmed order is returned. On
// any failure the snapshot and the live cart stay untouched.
func (api *APIHandler) SubmitOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	sessionID := api.sessionID(w, r)

	form := OrderForm{}
	if err := DecodeRequestBody(r, &form); err != nil {
		api.logger.Error("failed to submit order", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to submit the order", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	order, update, err := api.cartService.SubmitOrder(r.Context(), sessionID, form)
	var fieldErr missingFieldError
	switch {
	case errors.Is(err, ErrNotInCheckout):
		errResp := NewAPIError(requestID, http.StatusConflict, "no checkout in progress", update)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case errors.As(err, &fieldErr):
		errResp := NewAPIError(requestID, http.StatusBadRequest, err.Error(), update)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	case err != nil:
		api.logger.Error("failed to submit order", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to submit the order", update)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	resp := GenericResponse(requestID, http.StatusCreated, "Order submitted successfully.", nil,
		map[string]interface{}{
			"order": order,
			"cart":  update,
		},
	)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOrder serves an archived order from the orders store.
func (api *APIHandler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id := ps.ByName("id")
	if ok := api.idsHandler.IsValid(id, OrderIDPrefix); !ok {
		api.logger.Error("order id provided is not valid", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "order id provided is not valid", EmptyData)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	order, err := api.cartService.GetOrder(r.Context(), id)
	if errors.Is(err, ErrOrderNotFound) {
		api.logger.Error("order does not exist", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get order", zap.String("order.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the order", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	resp := GenericResponse(requestID, http.StatusOK, "Order fetched successfully.", nil, order)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
