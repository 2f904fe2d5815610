package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/cache"
	"gamestore_bff/internal/models"
)

type CatalogHandler struct {
	catalog *cache.Catalog
}

func NewCatalogHandler(catalog *cache.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/products
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		// El catálogo degrada a lista vacía; el reintento es manual.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "No se pudo obtener el catálogo",
			"products": []models.Product{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// POST /api/catalog/refresh — el equivalente al shake-to-refresh de la app.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	h.catalog.Invalidate(c.Request.Context())
	h.List(c)
}
