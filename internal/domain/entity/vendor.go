package entity

import "time"

// Vendor representa un proveedor del directorio.
// Categories, Subcategories y Products son asociaciones independientes (tablas de unión propias);
// el almacén no deriva unas de otras. Solo se cargan cuando la consulta las pide.
type Vendor struct {
	ID            string
	Name          string
	Location      string
	ContactEmail  string
	Categories    []Category
	Subcategories []Subcategory
	Products      []Product
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CategoryIDs ids de las categorías asociadas al proveedor.
func (v *Vendor) CategoryIDs() []string {
	ids := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Assignment triple persistido de asociaciones de un proveedor con la taxonomía.
type Assignment struct {
	CategoryIDs    []string
	SubcategoryIDs []string
	ProductIDs     []string
}

// IsEmpty indica si no hay ninguna asociación.
func (a Assignment) IsEmpty() bool {
	return len(a.CategoryIDs) == 0 && len(a.SubcategoryIDs) == 0 && len(a.ProductIDs) == 0
}
