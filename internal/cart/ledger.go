package cart

import (
	"errors"

	"gamestore_bff/internal/models"
)

var (
	ErrInsufficientStock = errors.New("no hay suficiente stock")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
)

// IVARate es el impuesto aplicado sobre el subtotal.
const IVARate = 0.19

// Ledger es la vista local autoritativa del carrito: líneas en orden de
// inserción, a lo sumo una por producto. Los totales son funciones puras de
// las líneas y se recalculan en cada lectura, nunca se guardan.
type Ledger struct {
	lines []models.CartLine
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// NewLedgerFromLines reconstruye un ledger persistido. Las líneas con
// cantidad <= 0 se descartan: el carrito nunca guarda líneas vacías.
func NewLedgerFromLines(lines []models.CartLine) *Ledger {
	l := &Ledger{}
	for _, line := range lines {
		if line.Quantity > 0 {
			l.lines = append(l.lines, line)
		}
	}
	return l
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Quantity devuelve la cantidad en carrito del producto (0 si no está).
func (l *Ledger) Quantity(productID int) int {
	for _, line := range l.lines {
		if line.Product.ID == productID {
			return line.Quantity
		}
	}
	return 0
}

// AddItem agrega qty unidades del producto. Rechaza sin mutar nada cuando
// qty + lo que ya hay en carrito supera el stock del snapshot.
func (l *Ledger) AddItem(product models.Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if qty+l.Quantity(product.ID) > product.Stock {
		return ErrInsufficientStock
	}

	for i := range l.lines {
		if l.lines[i].Product.ID == product.ID {
			l.lines[i].Quantity += qty
			return nil
		}
	}
	l.lines = append(l.lines, models.CartLine{Product: product, Quantity: qty})
	return nil
}

// Increase suma 1 a la línea del producto, solo si no supera el stock del
// snapshot. Si lo supera (o la línea no existe) es un no-op.
func (l *Ledger) Increase(productID int) {
	for i := range l.lines {
		if l.lines[i].Product.ID == productID && l.lines[i].Quantity < l.lines[i].Product.Stock {
			l.lines[i].Quantity++
			return
		}
	}
}

// Decrease resta 1 a la línea del producto. Al llegar a 0 la línea se
// elimina por completo.
func (l *Ledger) Decrease(productID int) {
	for i := range l.lines {
		if l.lines[i].Product.ID != productID {
			continue
		}
		if l.lines[i].Quantity > 1 {
			l.lines[i].Quantity--
		} else {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
		}
		return
	}
}

// Clear vacía el carrito incondicionalmente.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Subtotal = Σ(precio × cantidad), en unidades enteras de moneda.
func (l *Ledger) Subtotal() int {
	subtotal := 0
	for _, line := range l.lines {
		subtotal += line.Product.Price * line.Quantity
	}
	return subtotal
}

// IVA = trunc(subtotal × 0.19). El truncado ocurre acá además de en el
// subtotal: dos puntos de truncado, nunca uno solo sobre el total.
func (l *Ledger) IVA() int {
	return int(float64(l.Subtotal()) * IVARate)
}

// Total = subtotal + IVA.
func (l *Ledger) Total() int {
	return l.Subtotal() + l.IVA()
}

// Snapshot arma el payload de persistencia para POST /carrito.
func (l *Ledger) Snapshot() models.CartSnapshot {
	snapshot := models.CartSnapshot{Items: []models.CartSnapshotItem{}}
	for _, line := range l.lines {
		snapshot.Items = append(snapshot.Items, models.CartSnapshotItem{
			ProductID: line.Product.ID,
			Qty:       line.Quantity,
		})
	}
	return snapshot
}

// OrderLines mapea las líneas al formato products_bought de una orden,
// copiando el precio del snapshot en memoria (no se refetchea).
func (l *Ledger) OrderLines() []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(l.lines))
	for _, line := range l.lines {
		lines = append(lines, models.OrderLine{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
			Name:      line.Product.Name,
		})
	}
	return lines
}
