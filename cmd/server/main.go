package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/cache"
	"gamestore_bff/internal/cart"
	"gamestore_bff/internal/checkout"
	"gamestore_bff/internal/config"
	"gamestore_bff/internal/database"
	"gamestore_bff/internal/handlers"
	"gamestore_bff/internal/routes"
	"gamestore_bff/internal/services"
	"gamestore_bff/internal/session"
	"gamestore_bff/internal/triage"
	"gamestore_bff/internal/xano"
)

func main() {
	config.Load()

	baseURL := config.Getenv("XANO_BASE_URL", "")
	if baseURL == "" {
		log.Fatal("❌ Falta XANO_BASE_URL: no hay backend contra el cual operar")
	}

	ctx := context.Background()
	rdb, err := database.ConnectRedis(ctx)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	log.Println("✅ Redis conectado")

	images := services.ConnectMinio()
	gateway := xano.New(baseURL)

	catalog := cache.NewCatalog(rdb, gateway)
	carts := cart.NewStore(rdb)
	sessions := session.NewStore(rdb)
	sequencer := checkout.NewSequencer(gateway)
	triageSvc := triage.NewService(gateway)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Sessions:      sessions,
		Auth:          handlers.NewAuthHandler(gateway, sessions),
		Catalog:       handlers.NewCatalogHandler(catalog),
		Cart:          handlers.NewCartHandler(carts, catalog, gateway),
		Checkout:      handlers.NewCheckoutHandler(carts, catalog, sequencer),
		AdminProducts: handlers.NewAdminProductsHandler(gateway, catalog, images),
		AdminOrders:   handlers.NewAdminOrdersHandler(triageSvc),
		Events:        handlers.NewEventsHandler(rdb, carts),
	})

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 GameStore BFF escuchando en el puerto", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ ", err)
	}
}
