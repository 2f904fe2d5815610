package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"gamestore_bff/internal/models"
)

const (
	ProductCacheTTL = 10 * time.Minute

	catalogKey = "catalog:products"
)

var ErrProductNotFound = errors.New("producto no encontrado")

// CatalogGateway es la fuente remota del catálogo.
type CatalogGateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// Catalog cachea la lista de productos en Redis. El refresh manual (el
// equivalente al shake-to-refresh de la app) y las escrituras del admin
// invalidan la clave.
type Catalog struct {
	redis   *redis.Client
	gateway CatalogGateway
}

func NewCatalog(client *redis.Client, gateway CatalogGateway) *Catalog {
	return &Catalog{redis: client, gateway: gateway}
}

// Products devuelve el catálogo, primero desde Redis y si no desde el
// backend (cacheando el resultado).
func (c *Catalog) Products(ctx context.Context) ([]models.Product, error) {
	data, err := c.redis.Get(ctx, catalogKey).Result()
	if err == nil && data != "" {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	products, err := c.gateway.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(products); err == nil {
		c.redis.Set(ctx, catalogKey, jsonData, ProductCacheTTL)
	}
	return products, nil
}

// Product busca un producto por id dentro del catálogo.
func (c *Catalog) Product(ctx context.Context, productID int) (*models.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Invalidate fuerza el próximo fetch contra el backend.
func (c *Catalog) Invalidate(ctx context.Context) {
	c.redis.Del(ctx, catalogKey)
}
