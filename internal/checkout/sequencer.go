package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"gamestore_bff/internal/cart"
	"gamestore_bff/internal/models"
)

// State es el estado del proceso de checkout. Failed es absorbente y es
// alcanzable desde Validating, Submitting y UpdatingStock.
type State string

const (
	StateIdle          State = "IDLE"
	StateValidating    State = "VALIDATING"
	StateSubmitting    State = "SUBMITTING"
	StateUpdatingStock State = "UPDATING_STOCK"
	StateCompleted     State = "COMPLETED"
	StateFailed        State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

var (
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrStockUpdateFailed = errors.New("no se pudo actualizar el stock de todos los productos")
)

// Gateway es el subconjunto del cliente Xano que usa el sequencer.
type Gateway interface {
	CreateOrder(ctx context.Context, token string, req models.OrderRequest) error
	UpdateProduct(ctx context.Context, token string, productID int, req models.ProductRequest) (*models.Product, error)
}

// Result reporta el desenlace de un checkout. Cuando el estado es Failed con
// la orden ya creada, StockApplied/StockFailed dicen qué descuentos de stock
// quedaron aplicados. No hay compensación ni rollback: la orden persiste en
// el backend como "pendiente" aunque parte del stock no se haya descontado,
// y corregir ese desfase es tarea del panel admin.
type Result struct {
	CheckoutID   string
	State        State
	Order        models.OrderRequest
	StockApplied []int
	StockFailed  []int
	Err          error
}

// Sequencer orquesta el checkout: validación → alta de la orden → descuento
// de stock por línea → limpieza del carrito.
type Sequencer struct {
	gateway Gateway
}

func NewSequencer(gateway Gateway) *Sequencer {
	return &Sequencer{gateway: gateway}
}

// PlaceOrder ejecuta la secuencia completa sobre el ledger del usuario.
// El carrito se vacía únicamente al llegar a Completed.
func (s *Sequencer) PlaceOrder(ctx context.Context, token, email string, ledger *cart.Ledger) *Result {
	res := &Result{CheckoutID: uuid.NewString(), State: StateValidating}

	if ledger.IsEmpty() {
		res.State = StateFailed
		res.Err = ErrEmptyCart
		return res
	}

	// El precio sale del snapshot en memoria y el total del ledger en el
	// momento de confirmar; no se refetchea nada.
	res.Order = models.OrderRequest{
		Total:     ledger.Total(),
		Status:    models.StatusPendiente,
		Products:  ledger.OrderLines(),
		UserEmail: email,
	}

	res.State = StateSubmitting
	if err := s.gateway.CreateOrder(ctx, token, res.Order); err != nil {
		// La orden no existe: el carrito queda intacto, nada parcial.
		res.State = StateFailed
		res.Err = fmt.Errorf("registrando la orden: %w", err)
		return res
	}

	res.State = StateUpdatingStock
	for _, line := range ledger.Lines() {
		product := line.Product
		update := models.ProductRequest{
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Stock:       product.Stock - line.Quantity,
			Active:      product.Active,
		}
		// Una llamada por producto, en orden del carrito, esperando cada
		// respuesta antes de la siguiente.
		if _, err := s.gateway.UpdateProduct(ctx, token, product.ID, update); err != nil {
			log.Printf("checkout %s: falló el descuento de stock del producto %d: %v", res.CheckoutID, product.ID, err)
			res.StockFailed = append(res.StockFailed, product.ID)
			continue
		}
		res.StockApplied = append(res.StockApplied, product.ID)
	}

	if len(res.StockFailed) > 0 {
		res.State = StateFailed
		res.Err = fmt.Errorf("%w (fallaron: %v, la orden ya quedó registrada)", ErrStockUpdateFailed, res.StockFailed)
		return res
	}

	ledger.Clear()
	res.State = StateCompleted
	return res
}
