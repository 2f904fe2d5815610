package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore_bff/internal/cart"
	"gamestore_bff/internal/checkout"
	"gamestore_bff/internal/models"
)

type mockCheckoutCarts struct {
	ledger  *cart.Ledger
	loadErr error

	clearCalls    int
	clearFailures int // cuántos Clear seguidos fallan antes de funcionar
}

func (m *mockCheckoutCarts) Load(_ context.Context, _ string) (*cart.Ledger, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.ledger, nil
}

func (m *mockCheckoutCarts) Clear(_ context.Context, _ string) error {
	m.clearCalls++
	if m.clearCalls <= m.clearFailures {
		return errors.New("redis no disponible")
	}
	return nil
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) Invalidate(_ context.Context) {
	m.calls++
}

type mockPlacer struct {
	res *checkout.Result
}

func (m *mockPlacer) PlaceOrder(_ context.Context, _, _ string, _ *cart.Ledger) *checkout.Result {
	return m.res
}

func completedResult() *checkout.Result {
	return &checkout.Result{
		CheckoutID: "chk-1",
		State:      checkout.StateCompleted,
		Order:      models.OrderRequest{Total: 11900, Status: models.StatusPendiente},
	}
}

func performCheckout(h *CheckoutHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	c.Set("token", "tok")
	c.Set("email", "ana@mail.com")

	h.PlaceOrder(c)
	return w
}

func TestPlaceOrder_CompletadoVaciaElCarritoPersistido(t *testing.T) {
	carts := &mockCheckoutCarts{ledger: cart.NewLedger()}
	catalog := &mockInvalidator{}
	h := NewCheckoutHandler(carts, catalog, &mockPlacer{res: completedResult()})

	w := performCheckout(h)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, carts.clearCalls)
	assert.Equal(t, 1, catalog.calls)
}

func TestPlaceOrder_VaciadoRecuperadoEnElReintento(t *testing.T) {
	carts := &mockCheckoutCarts{ledger: cart.NewLedger(), clearFailures: 1}
	h := NewCheckoutHandler(carts, &mockInvalidator{}, &mockPlacer{res: completedResult()})

	w := performCheckout(h)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, carts.clearCalls)
}

func TestPlaceOrder_VaciadoFallidoReportaLaOrdenRegistrada(t *testing.T) {
	// La orden ya existe en el backend; si el carrito persistido sobrevive,
	// reintentar el checkout la duplicaría. La respuesta tiene que decirlo.
	carts := &mockCheckoutCarts{ledger: cart.NewLedger(), clearFailures: 2}
	catalog := &mockInvalidator{}
	h := NewCheckoutHandler(carts, catalog, &mockPlacer{res: completedResult()})

	w := performCheckout(h)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 2, carts.clearCalls)
	// El stock sí cambió: el catálogo se invalida igual.
	assert.Equal(t, 1, catalog.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "chk-1", body["checkout_id"])
	assert.Equal(t, float64(11900), body["total"])
	assert.Contains(t, body["error"], "no se pudo vaciar")
}

func TestPlaceOrder_CarritoVacio(t *testing.T) {
	res := &checkout.Result{
		CheckoutID: "chk-2",
		State:      checkout.StateFailed,
		Err:        checkout.ErrEmptyCart,
	}
	carts := &mockCheckoutCarts{ledger: cart.NewLedger()}
	h := NewCheckoutHandler(carts, &mockInvalidator{}, &mockPlacer{res: res})

	w := performCheckout(h)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, carts.clearCalls)
}
