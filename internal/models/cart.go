package models

// CartLine asocia un snapshot de producto con la cantidad elegida.
// El snapshot no se sincroniza con ediciones posteriores del producto.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"qty"`
}

// CartSnapshot es el payload de POST /carrito (persistencia best-effort).
type CartSnapshot struct {
	Items []CartSnapshotItem `json:"items"`
}

type CartSnapshotItem struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}
