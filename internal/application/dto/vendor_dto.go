package dto

import "time"

// CreateVendorRequest alta de proveedor con su selección inicial de la taxonomía.
type CreateVendorRequest struct {
	Name         string    `json:"name" validate:"required,max=200"`
	Location     string    `json:"location" validate:"required,max=200"`
	ContactEmail string    `json:"contact_email" validate:"required,email,max=254"`
	Selection    Selection `json:"selection"`
}

// UpdateVendorRequest actualización parcial de los datos del proveedor.
type UpdateVendorRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location     *string `json:"location" validate:"omitempty,min=1,max=200"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email,max=254"`
}

// NamedRef id más nombre localizado.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VendorResponse proveedor en listados.
type VendorResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	ContactEmail string     `json:"contact_email"`
	Categories   []NamedRef `json:"categories"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// VendorListResponse resultado del filtro de proveedores.
type VendorListResponse struct {
	Items  []VendorResponse `json:"items"`
	Total  int              `json:"total"`
	Locale string           `json:"locale"`
}

// CategoryProducts productos del proveedor agrupados bajo una de sus categorías.
type CategoryProducts struct {
	Category NamedRef   `json:"category"`
	Products []NamedRef `json:"products"`
}

// VendorDetailResponse ficha del proveedor con todas sus asociaciones.
type VendorDetailResponse struct {
	VendorResponse
	Subcategories      []NamedRef         `json:"subcategories"`
	Products           []NamedRef         `json:"products"`
	ProductsByCategory []CategoryProducts `json:"products_by_category"`
	Locale             string             `json:"locale"`
}
