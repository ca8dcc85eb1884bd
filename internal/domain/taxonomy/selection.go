package taxonomy

import "github.com/jhoicas/vendor-directory/internal/domain/entity"

// Selection los tres conjuntos seleccionados mientras se compone la asignación de un proveedor.
type Selection struct {
	Categories    Set
	Subcategories Set
	Products      Set
}

// NewSelection selección vacía.
func NewSelection() Selection {
	return Selection{Categories: NewSet(), Subcategories: NewSet(), Products: NewSet()}
}

// Clone copia los tres conjuntos; los nil se convierten en conjuntos vacíos.
func (s Selection) Clone() Selection {
	return Selection{
		Categories:    s.Categories.Clone(),
		Subcategories: s.Subcategories.Clone(),
		Products:      s.Products.Clone(),
	}
}

// SelectionFrom construye una selección a partir de una asignación existente,
// descartando ids que no están en la instantánea.
func (t *Tree) SelectionFrom(a entity.Assignment) Selection {
	sel := NewSelection()
	for _, id := range a.CategoryIDs {
		if t.HasCategory(id) {
			sel.Categories.Add(id)
		}
	}
	for _, id := range a.SubcategoryIDs {
		if t.HasSubcategory(id) {
			sel.Subcategories.Add(id)
		}
	}
	for _, id := range a.ProductIDs {
		if t.HasProduct(id) {
			sel.Products.Add(id)
		}
	}
	return sel
}

// Assignment devuelve el triple en orden del árbol (salida estable).
func (t *Tree) Assignment(sel Selection) entity.Assignment {
	out := entity.Assignment{
		CategoryIDs:    []string{},
		SubcategoryIDs: []string{},
		ProductIDs:     []string{},
	}
	for _, c := range t.categories {
		if sel.Categories.Has(c.Category.ID) {
			out.CategoryIDs = append(out.CategoryIDs, c.Category.ID)
		}
		for _, s := range c.Subcategories {
			if sel.Subcategories.Has(s.Subcategory.ID) {
				out.SubcategoryIDs = append(out.SubcategoryIDs, s.Subcategory.ID)
			}
			for _, p := range s.Products {
				if sel.Products.Has(p.ID) {
					out.ProductIDs = append(out.ProductIDs, p.ID)
				}
			}
		}
	}
	return out
}

// ToggleCategory marca o desmarca una categoría junto con todo su subárbol.
// Desmarcar quita todas las subcategorías y productos debajo, sin importar cómo se marcaron.
func (t *Tree) ToggleCategory(sel Selection, categoryID string, checked bool) Selection {
	next := sel.Clone()
	if !t.HasCategory(categoryID) {
		return next
	}
	if checked {
		next.Categories.Add(categoryID)
	} else {
		next.Categories.Remove(categoryID)
	}
	for _, subID := range t.subsByCategory[categoryID] {
		t.setSubtree(next, subID, checked)
	}
	return next
}

// ToggleSubcategory marca o desmarca una subcategoría y sus productos.
// Al marcar, si todas las hermanas quedan marcadas se promueve la categoría padre.
// Al desmarcar, la categoría padre se quita siempre.
func (t *Tree) ToggleSubcategory(sel Selection, subcategoryID string, checked bool) Selection {
	next := sel.Clone()
	parentID, ok := t.categoryOfSub[subcategoryID]
	if !ok {
		return next
	}
	t.setSubtree(next, subcategoryID, checked)
	if !checked {
		next.Categories.Remove(parentID)
		return next
	}
	if t.allSubcategoriesSelected(next, parentID) {
		next.Categories.Add(parentID)
	}
	return next
}

// ToggleProduct solo toca el conjunto de productos; no promueve ni degrada a los padres.
func (t *Tree) ToggleProduct(sel Selection, productID string, checked bool) Selection {
	next := sel.Clone()
	if !t.HasProduct(productID) {
		return next
	}
	if checked {
		next.Products.Add(productID)
	} else {
		next.Products.Remove(productID)
	}
	return next
}

func (t *Tree) setSubtree(sel Selection, subcategoryID string, checked bool) {
	if checked {
		sel.Subcategories.Add(subcategoryID)
	} else {
		sel.Subcategories.Remove(subcategoryID)
	}
	for _, pid := range t.productsBySub[subcategoryID] {
		if checked {
			sel.Products.Add(pid)
		} else {
			sel.Products.Remove(pid)
		}
	}
}

func (t *Tree) allSubcategoriesSelected(sel Selection, categoryID string) bool {
	for _, subID := range t.subsByCategory[categoryID] {
		if !sel.Subcategories.Has(subID) {
			return false
		}
	}
	return true
}
