package dto

// ProductNode producto dentro del árbol, con nombre ya localizado.
type ProductNode struct {
	ID            string `json:"id"`
	SubcategoryID string `json:"subcategory_id"`
	Name          string `json:"name"`
}

// SubcategoryNode subcategoría con sus productos.
type SubcategoryNode struct {
	ID         string        `json:"id"`
	CategoryID string        `json:"category_id"`
	Name       string        `json:"name"`
	Products   []ProductNode `json:"products"`
}

// CategoryNode categoría con sus subcategorías.
type CategoryNode struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Subcategories []SubcategoryNode `json:"subcategories"`
}

// TaxonomyTreeResponse árbol completo Category → Subcategory → Product.
type TaxonomyTreeResponse struct {
	Locale     string         `json:"locale"`
	Categories []CategoryNode `json:"categories"`
}

// Selection triple de ids seleccionados en el árbol.
type Selection struct {
	CategoryIDs    []string `json:"category_ids" validate:"omitempty,dive,required"`
	SubcategoryIDs []string `json:"subcategory_ids" validate:"omitempty,dive,required"`
	ProductIDs     []string `json:"product_ids" validate:"omitempty,dive,required"`
}

// Niveles aceptados por ToggleSelectionRequest.Level.
const (
	LevelCategory    = "category"
	LevelSubcategory = "subcategory"
	LevelProduct     = "product"
)

// ToggleSelectionRequest marca o desmarca un nodo partiendo de la selección actual.
type ToggleSelectionRequest struct {
	Selection Selection `json:"selection"`
	Level     string    `json:"level" validate:"required,oneof=category subcategory product"`
	ID        string    `json:"id" validate:"required"`
	Checked   bool      `json:"checked"`
}

// ToggleExpansionRequest abre o cierra un nodo del árbol.
type ToggleExpansionRequest struct {
	Expanded []string `json:"expanded"`
	NodeID   string   `json:"node_id" validate:"required"`
}

// ExpansionResponse nodos expandidos tras el toggle (orden estable).
type ExpansionResponse struct {
	Expanded []string `json:"expanded"`
}
