package triage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore_bff/internal/models"
)

type mockGateway struct {
	orders      []models.Order
	listErr     error
	updateErr   error
	updateDelay time.Duration

	mu      sync.Mutex
	patched []struct {
		ID     int
		Status models.OrderStatus
	}
}

func (m *mockGateway) ListOrders(_ context.Context, _ string) ([]models.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.orders, nil
}

func (m *mockGateway) UpdateOrderStatus(_ context.Context, _ string, orderID int, status models.OrderStatus) (*models.Order, error) {
	if m.updateDelay > 0 {
		time.Sleep(m.updateDelay)
	}
	m.mu.Lock()
	m.patched = append(m.patched, struct {
		ID     int
		Status models.OrderStatus
	}{orderID, status})
	m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Order{ID: orderID, Status: status}, nil
}

func orden(id int, status models.OrderStatus, createdAt int64) models.Order {
	return models.Order{ID: id, Status: status, CreatedAt: createdAt}
}

func TestSortOrders_AgrupaPorPrioridadYFechaDescendente(t *testing.T) {
	orders := []models.Order{
		orden(1, models.StatusEntregado, 500),
		orden(2, models.StatusPendiente, 100),
		orden(3, models.StatusRechazado, 900),
		orden(4, models.StatusPendiente, 300),
		orden(5, models.StatusEnviado, 700),
		orden(6, "desconocido", 1000),
	}

	sorted := SortOrders(orders)

	ids := make([]int, len(sorted))
	for i, o := range sorted {
		ids[i] = o.ID
	}
	// pendientes (más nueva primero), enviado, entregado, rechazado, otro.
	assert.Equal(t, []int{4, 2, 5, 1, 3, 6}, ids)

	// No muta la entrada.
	assert.Equal(t, 1, orders[0].ID)
}

func TestSortOrders_EsEstable(t *testing.T) {
	// Mismo rango y misma fecha: se preserva el orden relativo original.
	orders := []models.Order{
		orden(10, models.StatusPendiente, 100),
		orden(20, models.StatusPendiente, 100),
		orden(30, models.StatusPendiente, 100),
	}

	sorted := SortOrders(orders)
	assert.Equal(t, 10, sorted[0].ID)
	assert.Equal(t, 20, sorted[1].ID)
	assert.Equal(t, 30, sorted[2].ID)
}

func TestSortOrders_MayusculasEnElEstado(t *testing.T) {
	orders := []models.Order{
		orden(1, "ENVIADO", 100),
		orden(2, "Pendiente", 100),
	}
	sorted := SortOrders(orders)
	assert.Equal(t, 2, sorted[0].ID)
}

func TestRefresh_OrdenaYGuardaLocalmente(t *testing.T) {
	gw := &mockGateway{orders: []models.Order{
		orden(1, models.StatusEnviado, 100),
		orden(2, models.StatusPendiente, 200),
	}}
	svc := NewService(gw)

	got, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 2, svc.Orders()[0].ID)
}

func TestRefresh_ErrorDejaListaVacia(t *testing.T) {
	gw := &mockGateway{orders: []models.Order{orden(1, models.StatusPendiente, 100)}}
	svc := NewService(gw)

	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, svc.Orders(), 1)

	gw.listErr = errors.New("timeout")
	_, err = svc.Refresh(context.Background(), "tok")
	assert.Error(t, err)
	assert.Empty(t, svc.Orders())
}

func TestUpdateStatus_ReordenaTrasElCambio(t *testing.T) {
	gw := &mockGateway{orders: []models.Order{
		orden(1, models.StatusPendiente, 300),
		orden(2, models.StatusPendiente, 200),
		orden(3, models.StatusPendiente, 100),
	}}
	svc := NewService(gw)
	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	// pendiente -> enviado: baja de grupo, las demás pendientes conservan
	// su orden por fecha.
	require.NoError(t, svc.UpdateStatus(context.Background(), "tok", 1, models.StatusEnviado))

	got := svc.Orders()
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, 1, got[2].ID)
	assert.Equal(t, models.StatusEnviado, got[2].Status)

	require.Len(t, gw.patched, 1)
	assert.Equal(t, 1, gw.patched[0].ID)
}

func TestUpdateStatus_TransicionInvalidaNoLlamaAlBackend(t *testing.T) {
	gw := &mockGateway{orders: []models.Order{orden(1, models.StatusEntregado, 100)}}
	svc := NewService(gw)
	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), "tok", 1, models.StatusEnviado)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, gw.patched)
}

func TestUpdateStatus_OrdenInexistente(t *testing.T) {
	svc := NewService(&mockGateway{})
	err := svc.UpdateStatus(context.Background(), "tok", 42, models.StatusEnviado)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_AdminsConcurrentesSobreLaMismaOrden(t *testing.T) {
	// Varios admins cambian la misma orden a la vez mientras el PATCH tarda.
	// Bajo -race no debe haber lecturas del slice compartido fuera del lock;
	// cada llamada termina en éxito o en transición inválida, nunca a medias.
	gw := &mockGateway{
		orders: []models.Order{
			orden(1, models.StatusPendiente, 300),
			orden(2, models.StatusPendiente, 100),
		},
		updateDelay: 5 * time.Millisecond,
	}
	svc := NewService(gw)
	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.UpdateStatus(context.Background(), "tok", 1, models.StatusEnviado)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}

	got := svc.Orders()
	require.Len(t, got, 2)
	// La orden 1 terminó en enviado y por eso quedó debajo de la pendiente.
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
	assert.Equal(t, models.StatusEnviado, got[1].Status)
}

func TestUpdateStatus_ErrorDelBackendNoTocaLoLocal(t *testing.T) {
	gw := &mockGateway{orders: []models.Order{orden(1, models.StatusPendiente, 100)}}
	svc := NewService(gw)
	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	gw.updateErr = errors.New("503")
	err = svc.UpdateStatus(context.Background(), "tok", 1, models.StatusEnviado)
	assert.Error(t, err)
	assert.Equal(t, models.StatusPendiente, svc.Orders()[0].Status)
}
