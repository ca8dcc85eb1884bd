// Package taxonomy implementa el motor de selección jerárquica Category → Subcategory → Product.
//
// Un Tree es una instantánea inmutable de la taxonomía con índices construidos una sola vez
// (subcategorías por categoría, productos por subcategoría, padre de cada subcategoría).
// Las operaciones de selección son reductores puros: reciben una Selection y devuelven otra nueva.
package taxonomy

import (
	"fmt"

	"github.com/jhoicas/vendor-directory/internal/domain/entity"
)

// Violation referencia rota detectada al construir el árbol (precondición del proveedor de taxonomía).
type Violation struct {
	Kind     string // "subcategory" | "product"
	ID       string
	ParentID string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s referencia un padre inexistente %s", v.Kind, v.ID, v.ParentID)
}

// CategoryNode categoría con sus subcategorías en el orden del proveedor.
type CategoryNode struct {
	Category      entity.Category
	Subcategories []*SubcategoryNode
}

// SubcategoryNode subcategoría con sus productos.
type SubcategoryNode struct {
	Subcategory entity.Subcategory
	Products    []entity.Product
}

// Tree instantánea de la taxonomía más índices.
type Tree struct {
	categories []*CategoryNode

	subsByCategory    map[string][]string
	productsBySub     map[string][]string
	categoryOfSub     map[string]string
	subcategoryOfProd map[string]string

	violations []Violation
}

// NewTree construye el árbol. El orden de los hijos sigue el orden de entrada.
// Subcategorías o productos huérfanos se descartan y quedan en Violations.
func NewTree(categories []entity.Category, subcategories []entity.Subcategory, products []entity.Product) *Tree {
	t := &Tree{
		categories:        make([]*CategoryNode, 0, len(categories)),
		subsByCategory:    make(map[string][]string, len(categories)),
		productsBySub:     make(map[string][]string, len(subcategories)),
		categoryOfSub:     make(map[string]string, len(subcategories)),
		subcategoryOfProd: make(map[string]string, len(products)),
	}

	catNodes := make(map[string]*CategoryNode, len(categories))
	for _, c := range categories {
		if _, dup := catNodes[c.ID]; dup {
			continue
		}
		node := &CategoryNode{Category: c}
		catNodes[c.ID] = node
		t.categories = append(t.categories, node)
		t.subsByCategory[c.ID] = nil
	}

	subNodes := make(map[string]*SubcategoryNode, len(subcategories))
	for _, s := range subcategories {
		if _, dup := subNodes[s.ID]; dup {
			continue
		}
		parent, ok := catNodes[s.CategoryID]
		if !ok {
			t.violations = append(t.violations, Violation{Kind: "subcategory", ID: s.ID, ParentID: s.CategoryID})
			continue
		}
		node := &SubcategoryNode{Subcategory: s}
		subNodes[s.ID] = node
		parent.Subcategories = append(parent.Subcategories, node)
		t.subsByCategory[s.CategoryID] = append(t.subsByCategory[s.CategoryID], s.ID)
		t.categoryOfSub[s.ID] = s.CategoryID
		t.productsBySub[s.ID] = nil
	}

	for _, p := range products {
		if _, dup := t.subcategoryOfProd[p.ID]; dup {
			continue
		}
		parent, ok := subNodes[p.SubcategoryID]
		if !ok {
			t.violations = append(t.violations, Violation{Kind: "product", ID: p.ID, ParentID: p.SubcategoryID})
			continue
		}
		parent.Products = append(parent.Products, p)
		t.productsBySub[p.SubcategoryID] = append(t.productsBySub[p.SubcategoryID], p.ID)
		t.subcategoryOfProd[p.ID] = p.SubcategoryID
	}
	return t
}

// Categories nodos raíz en orden.
func (t *Tree) Categories() []*CategoryNode { return t.categories }

// Violations referencias rotas encontradas al construir el árbol.
func (t *Tree) Violations() []Violation { return t.violations }

// HasCategory indica si la categoría existe en la instantánea.
func (t *Tree) HasCategory(id string) bool {
	_, ok := t.subsByCategory[id]
	return ok
}

// HasSubcategory indica si la subcategoría existe en la instantánea.
func (t *Tree) HasSubcategory(id string) bool {
	_, ok := t.categoryOfSub[id]
	return ok
}

// HasProduct indica si el producto existe en la instantánea.
func (t *Tree) HasProduct(id string) bool {
	_, ok := t.subcategoryOfProd[id]
	return ok
}

// Resolve devuelve las entidades de la asignación presentes en el árbol, en orden del árbol.
// Los ids desconocidos se ignoran.
func (t *Tree) Resolve(a entity.Assignment) ([]entity.Category, []entity.Subcategory, []entity.Product) {
	cats, subs, prods := NewSet(a.CategoryIDs...), NewSet(a.SubcategoryIDs...), NewSet(a.ProductIDs...)
	var (
		categories    []entity.Category
		subcategories []entity.Subcategory
		products      []entity.Product
	)
	for _, c := range t.categories {
		if cats.Has(c.Category.ID) {
			categories = append(categories, c.Category)
		}
		for _, s := range c.Subcategories {
			if subs.Has(s.Subcategory.ID) {
				subcategories = append(subcategories, s.Subcategory)
			}
			for _, p := range s.Products {
				if prods.Has(p.ID) {
					products = append(products, p)
				}
			}
		}
	}
	return categories, subcategories, products
}
