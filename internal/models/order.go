package models

import "strings"

type OrderStatus string

const (
	StatusPendiente OrderStatus = "pendiente"
	StatusEnviado   OrderStatus = "enviado"
	StatusEntregado OrderStatus = "entregado"
	StatusRechazado OrderStatus = "rechazado"
)

// PriorityRank define el orden operativo del panel admin: pendientes primero,
// estados desconocidos al final.
func (s OrderStatus) PriorityRank() int {
	switch OrderStatus(strings.ToLower(string(s))) {
	case StatusPendiente:
		return 0
	case StatusEnviado:
		return 1
	case StatusEntregado:
		return 2
	case StatusRechazado:
		return 3
	default:
		return 99
	}
}

// CanTransitionTo encode las transiciones permitidas desde el panel admin:
// pendiente -> enviado|rechazado, enviado -> entregado. Todo lo demás se
// rechaza localmente, sin llamada de red.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from := OrderStatus(strings.ToLower(string(s)))
	to := OrderStatus(strings.ToLower(string(next)))
	switch from {
	case StatusPendiente:
		return to == StatusEnviado || to == StatusRechazado
	case StatusEnviado:
		return to == StatusEntregado
	default:
		return false
	}
}

// Order es una orden ya persistida en el backend. CreatedAt siempre viene en
// milisegundos unix: el gateway normaliza la ambigüedad segundos/milisegundos
// una sola vez al decodificar.
type Order struct {
	ID        int         `json:"id"`
	CreatedAt int64       `json:"created_at"`
	Total     int         `json:"total"`
	Status    OrderStatus `json:"status"`
	Products  []OrderLine `json:"products_bought"`
	UserEmail string      `json:"user_email"`
}

// OrderLine es el snapshot desnormalizado de un producto comprado.
type OrderLine struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	Name      string `json:"name,omitempty"`
}

// OrderRequest es el payload de POST /orders.
type OrderRequest struct {
	Total     int         `json:"total"`
	Status    OrderStatus `json:"status"`
	Products  []OrderLine `json:"products_bought"`
	UserEmail string      `json:"user_email"`
}
