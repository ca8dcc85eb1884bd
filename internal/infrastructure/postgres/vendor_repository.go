package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, name, location, contact_email, created_at, updated_at`

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	if err := row.Scan(&v.ID, &v.Name, &v.Location, &v.ContactEmail, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un nuevo proveedor (sin asociaciones).
func (r *VendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, location, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		vendor.ID, vendor.Name, vendor.Location, vendor.ContactEmail, vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID, sin asociaciones.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// GetWithAssociations obtiene un proveedor con sus categorías, subcategorías y productos asociados.
func (r *VendorRepo) GetWithAssociations(ctx context.Context, id string) (*entity.Vendor, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil || v == nil {
		return v, err
	}

	cats, err := r.q.Query(ctx, `
		SELECT c.id, c.name, COALESCE(c.name_fr, ''), COALESCE(c.name_nl, ''), c.created_at, c.updated_at
		FROM vendor_categories vc JOIN categories c ON c.id = vc.category_id
		WHERE vc.vendor_id = $1 ORDER BY c.name`, id)
	if err != nil {
		return nil, fmt.Errorf("list vendor categories: %w", err)
	}
	v.Categories, err = pgx.CollectRows(cats, func(row pgx.CollectableRow) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name.Default, &c.Name.FR, &c.Name.NL, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vendor category: %w", err)
	}

	subs, err := r.q.Query(ctx, `
		SELECT s.id, s.category_id, s.name, COALESCE(s.name_fr, ''), COALESCE(s.name_nl, ''), s.created_at, s.updated_at
		FROM vendor_subcategories vs JOIN subcategories s ON s.id = vs.subcategory_id
		WHERE vs.vendor_id = $1 ORDER BY s.name`, id)
	if err != nil {
		return nil, fmt.Errorf("list vendor subcategories: %w", err)
	}
	v.Subcategories, err = pgx.CollectRows(subs, func(row pgx.CollectableRow) (entity.Subcategory, error) {
		var s entity.Subcategory
		err := row.Scan(&s.ID, &s.CategoryID, &s.Name.Default, &s.Name.FR, &s.Name.NL, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vendor subcategory: %w", err)
	}

	prods, err := r.q.Query(ctx, `
		SELECT p.id, p.subcategory_id, p.name, COALESCE(p.name_fr, ''), COALESCE(p.name_nl, ''), p.created_at, p.updated_at
		FROM vendor_products vp JOIN products p ON p.id = vp.product_id
		WHERE vp.vendor_id = $1 ORDER BY p.name`, id)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	v.Products, err = pgx.CollectRows(prods, func(row pgx.CollectableRow) (entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name.Default, &p.Name.FR, &p.Name.NL, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vendor product: %w", err)
	}
	return v, nil
}

// Update actualiza los datos del proveedor (no toca asociaciones).
func (r *VendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, location = $3, contact_email = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, vendor.ID, vendor.Name, vendor.Location, vendor.ContactEmail, vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor; las tablas de unión se borran en cascada.
func (r *VendorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithCategories lista todos los proveedores por nombre, cada uno con sus categorías.
func (r *VendorRepo) ListWithCategories(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	vendors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Vendor, error) {
		return scanVendor(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan vendor: %w", err)
	}

	byID := make(map[string]*entity.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}

	links, err := r.q.Query(ctx, `
		SELECT vc.vendor_id, c.id, c.name, COALESCE(c.name_fr, ''), COALESCE(c.name_nl, ''), c.created_at, c.updated_at
		FROM vendor_categories vc JOIN categories c ON c.id = vc.category_id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list vendor categories: %w", err)
	}
	defer links.Close()
	for links.Next() {
		var vendorID string
		var c entity.Category
		if err := links.Scan(&vendorID, &c.ID, &c.Name.Default, &c.Name.FR, &c.Name.NL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor category: %w", err)
		}
		if v, ok := byID[vendorID]; ok {
			v.Categories = append(v.Categories, c)
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("list vendor categories: %w", err)
	}
	return vendors, nil
}

// GetAssignment lee los tres conjuntos de asociaciones del proveedor.
func (r *VendorRepo) GetAssignment(ctx context.Context, vendorID string) (entity.Assignment, error) {
	var a entity.Assignment
	var err error
	if a.CategoryIDs, err = r.listIDs(ctx, `SELECT category_id FROM vendor_categories WHERE vendor_id = $1`, vendorID); err != nil {
		return a, fmt.Errorf("get vendor categories: %w", err)
	}
	if a.SubcategoryIDs, err = r.listIDs(ctx, `SELECT subcategory_id FROM vendor_subcategories WHERE vendor_id = $1`, vendorID); err != nil {
		return a, fmt.Errorf("get vendor subcategories: %w", err)
	}
	if a.ProductIDs, err = r.listIDs(ctx, `SELECT product_id FROM vendor_products WHERE vendor_id = $1`, vendorID); err != nil {
		return a, fmt.Errorf("get vendor products: %w", err)
	}
	return a, nil
}

func (r *VendorRepo) listIDs(ctx context.Context, query, vendorID string) ([]string, error) {
	rows, err := r.q.Query(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ReplaceAssignment reemplaza las tres asociaciones del proveedor. Debe ejecutarse dentro de una tx
// (TxRunner.RunVendor) para que el reemplazo sea atómico.
func (r *VendorRepo) ReplaceAssignment(ctx context.Context, vendorID string, a entity.Assignment) error {
	tables := []struct {
		table, column string
		ids           []string
	}{
		{"vendor_categories", "category_id", a.CategoryIDs},
		{"vendor_subcategories", "subcategory_id", a.SubcategoryIDs},
		{"vendor_products", "product_id", a.ProductIDs},
	}
	for _, t := range tables {
		if _, err := r.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE vendor_id = $1`, vendorID); err != nil {
			return fmt.Errorf("clear %s: %w", t.table, err)
		}
		if len(t.ids) == 0 {
			continue
		}
		insert := `INSERT INTO ` + t.table + ` (vendor_id, ` + t.column + `)
			SELECT $1::uuid, unnest($2::text[])::uuid ON CONFLICT DO NOTHING`
		if _, err := r.q.Exec(ctx, insert, vendorID, t.ids); err != nil {
			if isForeignKeyViolation(err) || isInvalidText(err) {
				return fmt.Errorf("insert %s: %w", t.table, domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert %s: %w", t.table, err)
		}
	}
	return nil
}
