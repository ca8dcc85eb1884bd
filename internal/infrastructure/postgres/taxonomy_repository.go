package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
)

var _ repository.TaxonomyRepository = (*TaxonomyRepo)(nil)

// TaxonomyRepo lectura de categories, subcategories y products sobre PostgreSQL.
type TaxonomyRepo struct {
	q Querier
}

// NewTaxonomyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxonomyRepository(q Querier) *TaxonomyRepo {
	return &TaxonomyRepo{q: q}
}

// ListCategories lista todas las categorías ordenadas por nombre.
func (r *TaxonomyRepo) ListCategories(ctx context.Context) ([]entity.Category, error) {
	query := `
		SELECT id, name, COALESCE(name_fr, ''), COALESCE(name_nl, ''), created_at, updated_at
		FROM categories ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name.Default, &c.Name.FR, &c.Name.NL, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return list, nil
}

// ListSubcategories lista todas las subcategorías ordenadas por nombre.
func (r *TaxonomyRepo) ListSubcategories(ctx context.Context) ([]entity.Subcategory, error) {
	query := `
		SELECT id, category_id, name, COALESCE(name_fr, ''), COALESCE(name_nl, ''), created_at, updated_at
		FROM subcategories ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Subcategory, error) {
		var s entity.Subcategory
		err := row.Scan(&s.ID, &s.CategoryID, &s.Name.Default, &s.Name.FR, &s.Name.NL, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan subcategory: %w", err)
	}
	return list, nil
}

// ListProducts lista todos los productos ordenados por nombre.
func (r *TaxonomyRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, subcategory_id, name, COALESCE(name_fr, ''), COALESCE(name_nl, ''), created_at, updated_at
		FROM products ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name.Default, &p.Name.FR, &p.Name.NL, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return list, nil
}
