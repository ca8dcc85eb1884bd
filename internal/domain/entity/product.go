package entity

import "time"

// Product hoja de la taxonomía; pertenece a exactamente una Subcategory.
type Product struct {
	ID            string
	SubcategoryID string
	Name          LocalizedName
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
