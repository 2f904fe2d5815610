package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/cart"
	"gamestore_bff/internal/checkout"
)

type checkoutCarts interface {
	Load(ctx context.Context, email string) (*cart.Ledger, error)
	Clear(ctx context.Context, email string) error
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, token, email string, ledger *cart.Ledger) *checkout.Result
}

type CheckoutHandler struct {
	carts     checkoutCarts
	catalog   catalogInvalidator
	sequencer orderPlacer
}

func NewCheckoutHandler(carts checkoutCarts, catalog catalogInvalidator, sequencer orderPlacer) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, catalog: catalog, sequencer: sequencer}
}

// POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	token := c.GetString("token")
	email := c.GetString("email")

	ledger, err := h.carts.Load(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leyendo el carrito"})
		return
	}

	res := h.sequencer.PlaceOrder(c.Request.Context(), token, email, ledger)

	switch {
	case res.State == checkout.StateCompleted:
		// El sequencer ya vació el ledger; se replica el vaciado en Redis y
		// se invalida el catálogo porque los stocks cambiaron.
		clearErr := h.carts.Clear(c.Request.Context(), email)
		if clearErr != nil {
			// Un reintento: si el carrito persistido sobrevive a la orden,
			// repetir el checkout la duplicaría.
			clearErr = h.carts.Clear(c.Request.Context(), email)
		}
		h.catalog.Invalidate(c.Request.Context())
		if clearErr != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":       "La orden se registró pero el carrito persistido no se pudo vaciar; vacíalo antes de confirmar otra compra",
				"checkout_id": res.CheckoutID,
				"total":       res.Order.Total,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":     "Orden registrada",
			"checkout_id": res.CheckoutID,
			"total":       res.Order.Total,
		})

	case errors.Is(res.Err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío."})

	case errors.Is(res.Err, checkout.ErrStockUpdateFailed):
		// La orden quedó registrada pero algunos descuentos de stock no se
		// aplicaron. Sin compensación: se reporta el detalle y el carrito
		// se conserva.
		h.catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusBadGateway, gin.H{
			"error":         "La orden se registró pero el stock quedó inconsistente",
			"checkout_id":   res.CheckoutID,
			"stock_applied": res.StockApplied,
			"stock_failed":  res.StockFailed,
		})

	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error de red o del servidor."})
	}
}
