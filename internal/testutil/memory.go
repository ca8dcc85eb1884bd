// Package testutil repositorios en memoria y datos de ejemplo para los tests de casos de uso y HTTP.
package testutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
)

var (
	_ repository.TaxonomyRepository = (*Store)(nil)
	_ repository.VendorRepository   = (*Store)(nil)
)

// Store implementa TaxonomyRepository, VendorRepository y VendorTxRunner en memoria.
type Store struct {
	mu            sync.Mutex
	categories    []entity.Category
	subcategories []entity.Subcategory
	products      []entity.Product
	vendors       map[string]*entity.Vendor
	assignments   map[string]entity.Assignment

	// Err, si no es nil, lo devuelven todas las lecturas (simula caída de la BD).
	Err error
	// TaxonomyLoads cuenta las cargas completas de la taxonomía (ListCategories).
	TaxonomyLoads int
}

// NewStore crea un almacén con la taxonomía dada y sin proveedores.
func NewStore(categories []entity.Category, subcategories []entity.Subcategory, products []entity.Product) *Store {
	return &Store{
		categories:    categories,
		subcategories: subcategories,
		products:      products,
		vendors:       map[string]*entity.Vendor{},
		assignments:   map[string]entity.Assignment{},
	}
}

// --- TaxonomyRepository ---

func (s *Store) ListCategories(_ context.Context) ([]entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.TaxonomyLoads++
	return slices.Clone(s.categories), nil
}

func (s *Store) ListSubcategories(_ context.Context) ([]entity.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.subcategories), nil
}

func (s *Store) ListProducts(_ context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.products), nil
}

// --- VendorRepository ---

func (s *Store) Create(_ context.Context, v *entity.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[v.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *v
	s.vendors[v.ID] = &cp
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	v, ok := s.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *Store) GetWithAssociations(_ context.Context, id string) (*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	v, ok := s.vendors[id]
	if !ok {
		return nil, nil
	}
	return s.hydrate(v, true), nil
}

func (s *Store) Update(_ context.Context, v *entity.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	s.vendors[v.ID] = &cp
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.vendors, id)
	delete(s.assignments, id)
	return nil
}

func (s *Store) ListWithCategories(_ context.Context) ([]*entity.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*entity.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, s.hydrate(v, false))
	}
	slices.SortFunc(out, func(a, b *entity.Vendor) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *Store) GetAssignment(_ context.Context, vendorID string) (entity.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return entity.Assignment{}, s.Err
	}
	a := s.assignments[vendorID]
	return entity.Assignment{
		CategoryIDs:    slices.Clone(a.CategoryIDs),
		SubcategoryIDs: slices.Clone(a.SubcategoryIDs),
		ProductIDs:     slices.Clone(a.ProductIDs),
	}, nil
}

// ReplaceAssignment rechaza ids inexistentes como lo haría la clave foránea.
func (s *Store) ReplaceAssignment(_ context.Context, vendorID string, a entity.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vendors[vendorID]; !ok {
		return fmt.Errorf("%w: proveedor %s", domain.ErrInvalidInput, vendorID)
	}
	for _, id := range a.CategoryIDs {
		if !slices.ContainsFunc(s.categories, func(c entity.Category) bool { return c.ID == id }) {
			return fmt.Errorf("%w: categoría %s", domain.ErrInvalidInput, id)
		}
	}
	for _, id := range a.SubcategoryIDs {
		if !slices.ContainsFunc(s.subcategories, func(c entity.Subcategory) bool { return c.ID == id }) {
			return fmt.Errorf("%w: subcategoría %s", domain.ErrInvalidInput, id)
		}
	}
	for _, id := range a.ProductIDs {
		if !slices.ContainsFunc(s.products, func(p entity.Product) bool { return p.ID == id }) {
			return fmt.Errorf("%w: producto %s", domain.ErrInvalidInput, id)
		}
	}
	s.assignments[vendorID] = entity.Assignment{
		CategoryIDs:    slices.Clone(a.CategoryIDs),
		SubcategoryIDs: slices.Clone(a.SubcategoryIDs),
		ProductIDs:     slices.Clone(a.ProductIDs),
	}
	return nil
}

// --- VendorTxRunner ---

// RunVendor restaura el estado previo si fn devuelve error.
func (s *Store) RunVendor(_ context.Context, fn func(repo repository.VendorRepository) error) error {
	s.mu.Lock()
	vendors := make(map[string]*entity.Vendor, len(s.vendors))
	for id, v := range s.vendors {
		cp := *v
		vendors[id] = &cp
	}
	assignments := maps.Clone(s.assignments)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.vendors = vendors
		s.assignments = assignments
		s.mu.Unlock()
		return err
	}
	return nil
}

// VendorCount número de proveedores almacenados.
func (s *Store) VendorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vendors)
}

// hydrate copia el proveedor con sus asociaciones ordenadas por nombre, como la consulta SQL.
func (s *Store) hydrate(v *entity.Vendor, all bool) *entity.Vendor {
	cp := *v
	a := s.assignments[v.ID]
	cp.Categories = nil
	cp.Subcategories = nil
	cp.Products = nil
	for _, c := range sortedByName(s.categories, func(c entity.Category) string { return c.Name.Default }) {
		if slices.Contains(a.CategoryIDs, c.ID) {
			cp.Categories = append(cp.Categories, c)
		}
	}
	if !all {
		return &cp
	}
	for _, sc := range sortedByName(s.subcategories, func(c entity.Subcategory) string { return c.Name.Default }) {
		if slices.Contains(a.SubcategoryIDs, sc.ID) {
			cp.Subcategories = append(cp.Subcategories, sc)
		}
	}
	for _, p := range sortedByName(s.products, func(p entity.Product) string { return p.Name.Default }) {
		if slices.Contains(a.ProductIDs, p.ID) {
			cp.Products = append(cp.Products, p)
		}
	}
	return &cp
}

func sortedByName[T any](items []T, name func(T) string) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int { return strings.Compare(name(a), name(b)) })
	return out
}
