package routes

import (
	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/handlers"
	"gamestore_bff/internal/middleware"
	"gamestore_bff/internal/session"
)

type Handlers struct {
	Sessions      *session.Store
	Auth          *handlers.AuthHandler
	Catalog       *handlers.CatalogHandler
	Cart          *handlers.CartHandler
	Checkout      *handlers.CheckoutHandler
	AdminProducts *handlers.AdminProductsHandler
	AdminOrders   *handlers.AdminOrdersHandler
	Events        *handlers.EventsHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// Público
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/signup", h.Auth.Signup)
	api.GET("/products", h.Catalog.List)

	// Autenticado
	auth := api.Group("", middleware.AuthRequired(h.Sessions))
	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/auth/me", h.Auth.Me)
	auth.POST("/catalog/refresh", h.Catalog.Refresh)

	auth.GET("/cart", h.Cart.Get)
	auth.POST("/cart/items", h.Cart.Add)
	auth.POST("/cart/items/:productId/increase", h.Cart.Increase)
	auth.POST("/cart/items/:productId/decrease", h.Cart.Decrease)
	auth.DELETE("/cart", h.Cart.Clear)
	auth.POST("/checkout", h.Checkout.PlaceOrder)
	auth.GET("/ws/cart", h.Events.CartEvents)

	// Panel admin
	admin := auth.Group("/admin", middleware.RequireAdmin)
	admin.POST("/products", h.AdminProducts.Create)
	admin.PATCH("/products/:id", h.AdminProducts.Update)
	admin.DELETE("/products/:id", h.AdminProducts.Delete)
	admin.GET("/orders", h.AdminOrders.List)
	admin.PATCH("/orders/:id/status", h.AdminOrders.UpdateStatus)
}
