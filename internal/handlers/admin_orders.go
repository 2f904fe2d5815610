package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/models"
	"gamestore_bff/internal/triage"
)

type AdminOrdersHandler struct {
	triage *triage.Service
}

func NewAdminOrdersHandler(svc *triage.Service) *AdminOrdersHandler {
	return &AdminOrdersHandler{triage: svc}
}

// GET /api/admin/orders
func (h *AdminOrdersHandler) List(c *gin.Context) {
	orders, err := h.triage.Refresh(c.Request.Context(), c.GetString("token"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "No se pudieron obtener las órdenes",
			"orders": []models.Order{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// PATCH /api/admin/orders/:id/status
func (h *AdminOrdersHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de orden inválido"})
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado inválido"})
		return
	}

	err = h.triage.UpdateStatus(c.Request.Context(), c.GetString("token"), orderID, input.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"orders": h.triage.Orders()})
	case errors.Is(err, triage.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Orden no encontrada"})
	case errors.Is(err, triage.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Transición de estado no permitida"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo actualizar la orden"})
	}
}
