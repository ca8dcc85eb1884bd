package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/filtering"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
	"github.com/jhoicas/vendor-directory/pkg/logger"
	"github.com/jhoicas/vendor-directory/pkg/validation"
)

// TreeSource fuente del árbol de taxonomía (TaxonomyUseCase en producción).
type TreeSource interface {
	Tree(ctx context.Context) (*taxonomy.Tree, error)
}

// VendorUseCase casos de uso del directorio de proveedores.
type VendorUseCase struct {
	repo    repository.VendorRepository
	tx      VendorTxRunner
	tree    TreeSource
	sheets  SheetGenerator
	metrics Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewVendorUseCase construye el caso de uso. metrics puede ser nil.
func NewVendorUseCase(
	repo repository.VendorRepository,
	tx VendorTxRunner,
	tree TreeSource,
	sheets SheetGenerator,
	metrics Metrics,
	log *logger.Logger,
) *VendorUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &VendorUseCase{
		repo:    repo,
		tx:      tx,
		tree:    tree,
		sheets:  sheets,
		metrics: metrics,
		log:     log.Component("vendor"),
		now:     time.Now,
	}
}

// List devuelve los proveedores (ordenados por nombre) que pasan el filtro de nombre y categorías.
func (uc *VendorUseCase) List(ctx context.Context, query string, categoryIDs []string, locale string) (*dto.VendorListResponse, error) {
	vendors, err := uc.repo.ListWithCategories(ctx)
	if err != nil {
		return nil, err
	}
	matched := filtering.Filter(vendors, query, categoryIDs)
	uc.metrics.VendorsFiltered(len(matched))

	items := make([]dto.VendorResponse, 0, len(matched))
	for _, v := range matched {
		items = append(items, toVendorResponse(v, locale))
	}
	return &dto.VendorListResponse{Items: items, Total: len(items), Locale: locale}, nil
}

// GetDetail devuelve la ficha del proveedor con categorías, subcategorías, productos y
// productos agrupados por categoría.
func (uc *VendorUseCase) GetDetail(ctx context.Context, id, locale string) (*dto.VendorDetailResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	v, err := uc.repo.GetWithAssociations(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorDetail(v, locale), nil
}

// GetSelection devuelve la selección persistida del proveedor restringida a los ids del árbol,
// lista para pre-cargar la edición.
func (uc *VendorUseCase) GetSelection(ctx context.Context, id string) (*dto.Selection, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	a, err := uc.repo.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, err := uc.tree.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return toSelectionDTO(tree.Assignment(tree.SelectionFrom(a))), nil
}

// Create da de alta el proveedor y su selección en una sola transacción.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest, locale string) (*dto.VendorDetailResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	tree, err := uc.tree.Tree(ctx)
	if err != nil {
		return nil, err
	}
	assignment := tree.Assignment(tree.SelectionFrom(toAssignment(in.Selection)))

	now := uc.now()
	vendor := &entity.Vendor{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Location:     in.Location,
		ContactEmail: in.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunVendor(ctx, func(repo repository.VendorRepository) error {
		if err := repo.Create(ctx, vendor); err != nil {
			return err
		}
		if assignment.IsEmpty() {
			return nil
		}
		return repo.ReplaceAssignment(ctx, vendor.ID, assignment)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("vendor_id", vendor.ID).
		Int("categories", len(assignment.CategoryIDs)).
		Int("subcategories", len(assignment.SubcategoryIDs)).
		Int("products", len(assignment.ProductIDs)).
		Msg("proveedor creado")

	// La respuesta sale de lo escrito; releer tras el commit podría fallar con el alta ya hecha.
	cats, subs, prods := tree.Resolve(assignment)
	vendor.Categories = sortedByName(cats, func(c entity.Category) string { return c.Name.Default })
	vendor.Subcategories = sortedByName(subs, func(s entity.Subcategory) string { return s.Name.Default })
	vendor.Products = sortedByName(prods, func(p entity.Product) string { return p.Name.Default })
	return toVendorDetail(vendor, locale), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.UpdateVendorRequest, locale string) (*dto.VendorDetailResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	trimPtr(in.Name)
	trimPtr(in.Location)
	trimPtr(in.ContactEmail)
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	err := uc.tx.RunVendor(ctx, func(repo repository.VendorRepository) error {
		vendor, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if vendor == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			vendor.Name = *in.Name
		}
		if in.Location != nil {
			vendor.Location = *in.Location
		}
		if in.ContactEmail != nil {
			vendor.ContactEmail = *in.ContactEmail
		}
		vendor.UpdatedAt = uc.now()
		return repo.Update(ctx, vendor)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetDetail(ctx, id, locale)
}

// ReplaceSelection reemplaza los tres conjuntos de asociaciones del proveedor de forma atómica.
func (uc *VendorUseCase) ReplaceSelection(ctx context.Context, id string, in dto.Selection) (*dto.Selection, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	assignment, err := uc.restrict(ctx, in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunVendor(ctx, func(repo repository.VendorRepository) error {
		vendor, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if vendor == nil {
			return domain.ErrNotFound
		}
		return repo.ReplaceAssignment(ctx, id, assignment)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("vendor_id", id).Msg("selección del proveedor reemplazada")
	return toSelectionDTO(assignment), nil
}

// Delete elimina el proveedor; sus asociaciones se borran en cascada.
func (uc *VendorUseCase) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("vendor_id", id).Msg("proveedor eliminado")
	return nil
}

// Sheet genera la ficha PDF del proveedor en el locale indicado.
func (uc *VendorUseCase) Sheet(ctx context.Context, id, locale string) ([]byte, error) {
	detail, err := uc.GetDetail(ctx, id, locale)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.sheets.VendorSheet(detail)
	if err != nil {
		return nil, fmt.Errorf("generar ficha PDF: %w", err)
	}
	return pdf, nil
}

// restrict reduce la selección recibida a los ids presentes en el árbol, en orden del árbol.
func (uc *VendorUseCase) restrict(ctx context.Context, in dto.Selection) (entity.Assignment, error) {
	tree, err := uc.tree.Tree(ctx)
	if err != nil {
		return entity.Assignment{}, err
	}
	return tree.Assignment(tree.SelectionFrom(toAssignment(in))), nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// sortedByName ordena como las consultas del repositorio (ORDER BY name).
func sortedByName[T any](items []T, name func(T) string) []T {
	slices.SortStableFunc(items, func(a, b T) int { return strings.Compare(name(a), name(b)) })
	return items
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
