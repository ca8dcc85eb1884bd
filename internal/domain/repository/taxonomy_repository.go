package repository

import (
	"context"

	"github.com/jhoicas/vendor-directory/internal/domain/entity"
)

// TaxonomyRepository puerto de lectura de la taxonomía (Category → Subcategory → Product).
// Las tres listas vienen ordenadas por nombre.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListSubcategories(ctx context.Context) ([]entity.Subcategory, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
}
