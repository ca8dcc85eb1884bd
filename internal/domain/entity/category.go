package entity

import "time"

// Category nivel superior de la taxonomía de productos (Category → Subcategory → Product).
type Category struct {
	ID        string
	Name      LocalizedName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subcategory pertenece a exactamente una Category.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       LocalizedName
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
