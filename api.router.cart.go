package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupCartRoutes injects cart and checkout related api endpoints.
// Each call acts on the shopping session carried by the X-Session-ID header.
func (api *APIHandler) SetupCartRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/cart", m.public(api.ViewCart))
	router.DELETE("/v1/cart", m.public(api.ClearCart))
	router.POST("/v1/cart/items", m.public(api.AddCartItem))
	router.PUT("/v1/cart/items/:id", m.public(api.UpdateCartItem))
	router.DELETE("/v1/cart/items/:id", m.public(api.RemoveCartItem))

	router.POST("/v1/checkout", m.public(api.ProceedToCheckout))
	router.POST("/v1/checkout/back", m.public(api.BackToCart))
	router.POST("/v1/checkout/home", m.public(api.BackToHome))
	router.POST("/v1/checkout/submit", m.public(api.SubmitOrder))
	router.GET("/v1/orders/:id", m.public(api.GetOrder))
	return router
}
