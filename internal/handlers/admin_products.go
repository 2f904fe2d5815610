package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gamestore_bff/internal/cache"
	"gamestore_bff/internal/models"
	"gamestore_bff/internal/services"
	"gamestore_bff/internal/xano"
)

type AdminProductsHandler struct {
	gateway *xano.Client
	catalog *cache.Catalog
	images  *services.ImageStore
}

func NewAdminProductsHandler(gateway *xano.Client, catalog *cache.Catalog, images *services.ImageStore) *AdminProductsHandler {
	return &AdminProductsHandler{gateway: gateway, catalog: catalog, images: images}
}

func (h *AdminProductsHandler) bindAndValidate(c *gin.Context) (*models.ProductRequest, bool) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return nil, false
	}
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 || req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre, precio y stock no pueden estar vacíos."})
		return nil, false
	}
	return &req, true
}

// mirrorImage sube una copia de la imagen a MinIO cuando está configurado.
// El backend sigue recibiendo el base64 original; el espejo es best-effort.
func (h *AdminProductsHandler) mirrorImage(c *gin.Context, req *models.ProductRequest) string {
	if req.ImageBase64 == "" || h.images == nil {
		return ""
	}
	url, err := h.images.UploadProductImage(c.Request.Context(), req.ImageBase64)
	if err != nil {
		log.Printf("no se pudo espejar la imagen del producto: %v", err)
		return ""
	}
	return url
}

// POST /api/admin/products
func (h *AdminProductsHandler) Create(c *gin.Context) {
	req, ok := h.bindAndValidate(c)
	if !ok {
		return
	}
	mirrorURL := h.mirrorImage(c, req)

	product, err := h.gateway.CreateProduct(c.Request.Context(), c.GetString("token"), *req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al guardar. Verifica la conexión o la API."})
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	response := gin.H{"product": product}
	if mirrorURL != "" {
		response["mirror_url"] = mirrorURL
	}
	c.JSON(http.StatusCreated, response)
}

// PATCH /api/admin/products/:id
func (h *AdminProductsHandler) Update(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	req, ok := h.bindAndValidate(c)
	if !ok {
		return
	}
	mirrorURL := h.mirrorImage(c, req)

	product, err := h.gateway.UpdateProduct(c.Request.Context(), c.GetString("token"), productID, *req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al guardar. Verifica la conexión o la API."})
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	response := gin.H{"product": product}
	if mirrorURL != "" {
		response["mirror_url"] = mirrorURL
	}
	c.JSON(http.StatusOK, response)
}

// DELETE /api/admin/products/:id
func (h *AdminProductsHandler) Delete(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	if err := h.gateway.DeleteProduct(c.Request.Context(), c.GetString("token"), productID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al eliminar el producto."})
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}
