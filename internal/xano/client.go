package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"gamestore_bff/internal/models"
)

// APIError representa una respuesta no-2xx del backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend devolvió %d: %s", e.Status, e.Body)
}

// Client es el gateway tipado contra el backend hosteado (Xano). Cada llamada
// lleva timeout explícito y pasa por un circuit breaker: el backend es la
// única fuente de verdad y cuando está caído conviene fallar rápido.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func New(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "xano",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Los 4xx son errores del request, no del backend: no abren el breaker.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < 500
			}
			return err == nil
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("xano: serializando payload de %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("xano: creando request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		}
		return raw, nil
	})
	if err != nil {
		return fmt.Errorf("xano: %s %s: %w", method, path, err)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("xano: decodificando respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

// --- PRODUCTOS ---

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/product", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/product", token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, productID int, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	path := fmt.Sprintf("/product/%d", productID)
	if err := c.do(ctx, http.MethodPatch, path, token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, productID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/product/%d", productID), token, nil, nil)
}

// --- AUTENTICACIÓN ---

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- CARRITO ---

// SaveCartSnapshot persiste el snapshot del carrito (POST /carrito). El
// ledger local sigue siendo la autoridad en runtime; esto es best-effort.
func (c *Client) SaveCartSnapshot(ctx context.Context, token string, snapshot models.CartSnapshot) error {
	return c.do(ctx, http.MethodPost, "/carrito", token, snapshot, nil)
}

// --- ÓRDENES ---

func (c *Client) CreateOrder(ctx context.Context, token string, req models.OrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders", token, req, nil)
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].CreatedAt = normalizeTimestamp(orders[i].CreatedAt)
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status models.OrderStatus) (*models.Order, error) {
	payload := struct {
		Status models.OrderStatus `json:"status"`
	}{Status: status}

	var order models.Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", orderID), token, payload, &order); err != nil {
		return nil, err
	}
	order.CreatedAt = normalizeTimestamp(order.CreatedAt)
	return &order, nil
}

// normalizeTimestamp estandariza created_at a milisegundos unix. El backend
// mezcla segundos y milisegundos; todo valor < 1e10 se interpreta como
// segundos. Esta conversión ocurre solo acá, al borde.
func normalizeTimestamp(ts int64) int64 {
	if ts != 0 && ts < 10_000_000_000 {
		return ts * 1000
	}
	return ts
}
