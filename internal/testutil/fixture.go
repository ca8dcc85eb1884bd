package testutil

import (
	"sync"
	"time"

	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
)

// Ids de la taxonomía de ejemplo:
//
//	Fruit  → Apples  → Jonagold, Elstar
//	       → Berries → Strawberry
//	Dairy  → Cheese  → Herve, Passendale
//	Bakery (sin subcategorías)
const (
	CatFruit  = "0b7e0f4a-1c1d-4d6e-9a01-000000000001"
	CatDairy  = "0b7e0f4a-1c1d-4d6e-9a01-000000000002"
	CatBakery = "0b7e0f4a-1c1d-4d6e-9a01-000000000003"

	SubApples  = "0b7e0f4a-1c1d-4d6e-9a02-000000000001"
	SubBerries = "0b7e0f4a-1c1d-4d6e-9a02-000000000002"
	SubCheese  = "0b7e0f4a-1c1d-4d6e-9a02-000000000003"

	ProdJonagold   = "0b7e0f4a-1c1d-4d6e-9a03-000000000001"
	ProdElstar     = "0b7e0f4a-1c1d-4d6e-9a03-000000000002"
	ProdStrawberry = "0b7e0f4a-1c1d-4d6e-9a03-000000000003"
	ProdHerve      = "0b7e0f4a-1c1d-4d6e-9a03-000000000004"
	ProdPassendale = "0b7e0f4a-1c1d-4d6e-9a03-000000000005"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Taxonomy devuelve la taxonomía de ejemplo ordenada por nombre (como la devuelve Postgres).
func Taxonomy() ([]entity.Category, []entity.Subcategory, []entity.Product) {
	categories := []entity.Category{
		{ID: CatBakery, Name: entity.LocalizedName{Default: "Bakery", FR: "Boulangerie", NL: "Bakkerij"}, CreatedAt: epoch, UpdatedAt: epoch},
		{ID: CatDairy, Name: entity.LocalizedName{Default: "Dairy", FR: "Produits laitiers", NL: "Zuivel"}, CreatedAt: epoch, UpdatedAt: epoch},
		{ID: CatFruit, Name: entity.LocalizedName{Default: "Fruit", FR: "Fruits"}, CreatedAt: epoch, UpdatedAt: epoch},
	}
	subcategories := []entity.Subcategory{
		{ID: SubApples, CategoryID: CatFruit, Name: entity.LocalizedName{Default: "Apples", FR: "Pommes", NL: "Appels"}},
		{ID: SubBerries, CategoryID: CatFruit, Name: entity.LocalizedName{Default: "Berries", NL: "Bessen"}},
		{ID: SubCheese, CategoryID: CatDairy, Name: entity.LocalizedName{Default: "Cheese", FR: "Fromage", NL: "Kaas"}},
	}
	products := []entity.Product{
		{ID: ProdElstar, SubcategoryID: SubApples, Name: entity.LocalizedName{Default: "Elstar"}},
		{ID: ProdHerve, SubcategoryID: SubCheese, Name: entity.LocalizedName{Default: "Herve"}},
		{ID: ProdJonagold, SubcategoryID: SubApples, Name: entity.LocalizedName{Default: "Jonagold"}},
		{ID: ProdPassendale, SubcategoryID: SubCheese, Name: entity.LocalizedName{Default: "Passendale"}},
		{ID: ProdStrawberry, SubcategoryID: SubBerries, Name: entity.LocalizedName{Default: "Strawberry", FR: "Fraise", NL: "Aardbei"}},
	}
	return categories, subcategories, products
}

// NewFixtureStore almacén en memoria con la taxonomía de ejemplo.
func NewFixtureStore() *Store {
	return NewStore(Taxonomy())
}

// TreeCache caché del árbol sin expiración.
type TreeCache struct {
	mu   sync.Mutex
	tree *taxonomy.Tree
}

func (c *TreeCache) Get() (*taxonomy.Tree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree, c.tree != nil
}

func (c *TreeCache) Set(tree *taxonomy.Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = tree
}

func (c *TreeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = nil
}
