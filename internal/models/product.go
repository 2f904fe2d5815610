package models

type Product struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       int            `json:"price"`
	Stock       int            `json:"stock"`
	Active      bool           `json:"active"`
	Images      []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	URL string `json:"url"`
}

// ImageURL devuelve la imagen principal del producto ("" si no tiene).
func (p Product) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// ProductRequest es el payload de escritura hacia el backend (POST/PATCH /product).
// image_base64 solo se envía cuando el admin sube una imagen nueva.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	Active      bool   `json:"active"`
	ImageBase64 string `json:"image_base64,omitempty"`
}
