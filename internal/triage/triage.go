package triage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gamestore_bff/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("orden no encontrada")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// Gateway es el subconjunto del cliente Xano que usa el triage.
type Gateway interface {
	ListOrders(ctx context.Context, token string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int, status models.OrderStatus) (*models.Order, error)
}

// SortOrders ordena por prioridad operativa: pendientes primero, luego
// enviadas, entregadas y rechazadas (desconocidas al final); dentro de cada
// grupo las más nuevas arriba. El sort es estable.
func SortOrders(orders []models.Order) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Status.PriorityRank(), sorted[j].Status.PriorityRank()
		if ri != rj {
			return ri < rj
		}
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// Service mantiene la lista de órdenes del panel admin ya priorizada y
// aplica cambios de estado con actualización local optimista tras el PATCH.
type Service struct {
	gateway Gateway

	mu     sync.RWMutex
	orders []models.Order
}

func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Refresh trae todas las órdenes y las deja ordenadas. Ante un error de red
// la lista local queda vacía; el reintento es una acción manual del admin.
func (s *Service) Refresh(ctx context.Context, token string) ([]models.Order, error) {
	fetched, err := s.gateway.ListOrders(ctx, token)
	if err != nil {
		s.mu.Lock()
		s.orders = nil
		s.mu.Unlock()
		return nil, err
	}

	sorted := SortOrders(fetched)
	s.mu.Lock()
	s.orders = sorted
	s.mu.Unlock()
	return SortOrders(sorted), nil
}

// Orders devuelve una copia de la lista priorizada actual.
func (s *Service) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// UpdateStatus valida la transición localmente, emite el PATCH y, solo si el
// backend aceptó, reemplaza el estado en la lista local y re-ordena. Si el
// PATCH falla no hay nada que revertir: no hubo pre-actualización optimista.
func (s *Service) UpdateStatus(ctx context.Context, token string, orderID int, newStatus models.OrderStatus) error {
	// Se copia el estado bajo el lock: un puntero al slice compartido se
	// vuelve inseguro apenas se suelta el RLock.
	var current models.OrderStatus
	found := false
	s.mu.RLock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			current = s.orders[i].Status
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return ErrOrderNotFound
	}
	if !current.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}

	if _, err := s.gateway.UpdateOrderStatus(ctx, token, orderID, newStatus); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = newStatus
			break
		}
	}
	s.orders = SortOrders(s.orders)
	s.mu.Unlock()
	return nil
}
