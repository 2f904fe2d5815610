package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/cache"
	"gamestore_bff/internal/cart"
	"gamestore_bff/internal/xano"
)

type CartHandler struct {
	carts   *cart.Store
	catalog *cache.Catalog
	gateway *xano.Client
}

func NewCartHandler(carts *cart.Store, catalog *cache.Catalog, gateway *xano.Client) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, gateway: gateway}
}

func cartJSON(ledger *cart.Ledger) gin.H {
	return gin.H{
		"items":    ledger.Lines(),
		"subtotal": ledger.Subtotal(),
		"iva":      ledger.IVA(),
		"total":    ledger.Total(),
	}
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	ledger, err := h.carts.Load(c.Request.Context(), c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(ledger))
}

// POST /api/cart/items
func (h *CartHandler) Add(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), input.ProductID)
	if err != nil {
		if errors.Is(err, cache.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo consultar el catálogo"})
		return
	}

	ledger, err := h.carts.Load(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	if err := ledger.AddItem(*product, input.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "No hay suficiente stock."})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := h.carts.Save(c.Request.Context(), email, ledger); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}
	h.persistSnapshot(c.GetString("token"), email, ledger)

	response := cartJSON(ledger)
	response["message"] = fmt.Sprintf("%d '%s' añadido(s) al carrito.", input.Quantity, product.Name)
	c.JSON(http.StatusOK, response)
}

// POST /api/cart/items/:productId/increase
func (h *CartHandler) Increase(c *gin.Context) {
	h.mutateLine(c, func(ledger *cart.Ledger, productID int) {
		ledger.Increase(productID)
	})
}

// POST /api/cart/items/:productId/decrease
func (h *CartHandler) Decrease(c *gin.Context) {
	h.mutateLine(c, func(ledger *cart.Ledger, productID int) {
		ledger.Decrease(productID)
	})
}

func (h *CartHandler) mutateLine(c *gin.Context, mutate func(*cart.Ledger, int)) {
	email := c.GetString("email")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	ledger, err := h.carts.Load(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	mutate(ledger, productID)

	if err := h.carts.Save(c.Request.Context(), email, ledger); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error guardando el carrito"})
		return
	}
	h.persistSnapshot(c.GetString("token"), email, ledger)

	c.JSON(http.StatusOK, cartJSON(ledger))
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	email := c.GetString("email")

	if err := h.carts.Clear(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al vaciar el carrito"})
		return
	}
	h.persistSnapshot(c.GetString("token"), email, cart.NewLedger())

	c.JSON(http.StatusOK, gin.H{"message": "Carrito vaciado"})
}

// persistSnapshot replica el carrito en el backend (POST /carrito) en
// segundo plano. El ledger local es la autoridad: los errores solo se
// loguean.
func (h *CartHandler) persistSnapshot(token, email string, ledger *cart.Ledger) {
	snapshot := ledger.Snapshot()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.gateway.SaveCartSnapshot(ctx, token, snapshot); err != nil {
			log.Printf("no se pudo persistir el carrito de %s: %v", email, err)
		}
	}()
}
