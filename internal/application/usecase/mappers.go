package usecase

import (
	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
)

func toAssignment(s dto.Selection) entity.Assignment {
	return entity.Assignment{
		CategoryIDs:    s.CategoryIDs,
		SubcategoryIDs: s.SubcategoryIDs,
		ProductIDs:     s.ProductIDs,
	}
}

func toSelectionDTO(a entity.Assignment) *dto.Selection {
	return &dto.Selection{
		CategoryIDs:    nonNil(a.CategoryIDs),
		SubcategoryIDs: nonNil(a.SubcategoryIDs),
		ProductIDs:     nonNil(a.ProductIDs),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func toTreeResponse(tree *taxonomy.Tree, locale string) *dto.TaxonomyTreeResponse {
	out := &dto.TaxonomyTreeResponse{
		Locale:     locale,
		Categories: make([]dto.CategoryNode, 0, len(tree.Categories())),
	}
	for _, cn := range tree.Categories() {
		cat := dto.CategoryNode{
			ID:            cn.Category.ID,
			Name:          cn.Category.Name.For(locale),
			Subcategories: make([]dto.SubcategoryNode, 0, len(cn.Subcategories)),
		}
		for _, sn := range cn.Subcategories {
			sub := dto.SubcategoryNode{
				ID:         sn.Subcategory.ID,
				CategoryID: sn.Subcategory.CategoryID,
				Name:       sn.Subcategory.Name.For(locale),
				Products:   make([]dto.ProductNode, 0, len(sn.Products)),
			}
			for _, p := range sn.Products {
				sub.Products = append(sub.Products, dto.ProductNode{
					ID:            p.ID,
					SubcategoryID: p.SubcategoryID,
					Name:          p.Name.For(locale),
				})
			}
			cat.Subcategories = append(cat.Subcategories, sub)
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}

func toVendorResponse(v *entity.Vendor, locale string) dto.VendorResponse {
	cats := make([]dto.NamedRef, 0, len(v.Categories))
	for _, c := range v.Categories {
		cats = append(cats, dto.NamedRef{ID: c.ID, Name: c.Name.For(locale)})
	}
	return dto.VendorResponse{
		ID:           v.ID,
		Name:         v.Name,
		Location:     v.Location,
		ContactEmail: v.ContactEmail,
		Categories:   cats,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toVendorDetail(v *entity.Vendor, locale string) *dto.VendorDetailResponse {
	out := &dto.VendorDetailResponse{
		VendorResponse:     toVendorResponse(v, locale),
		Subcategories:      make([]dto.NamedRef, 0, len(v.Subcategories)),
		Products:           make([]dto.NamedRef, 0, len(v.Products)),
		ProductsByCategory: groupProductsByCategory(v, locale),
		Locale:             locale,
	}
	for _, s := range v.Subcategories {
		out.Subcategories = append(out.Subcategories, dto.NamedRef{ID: s.ID, Name: s.Name.For(locale)})
	}
	for _, p := range v.Products {
		out.Products = append(out.Products, dto.NamedRef{ID: p.ID, Name: p.Name.For(locale)})
	}
	return out
}

// groupProductsByCategory agrupa los productos del proveedor bajo sus categorías a través de
// las subcategorías del propio proveedor. Un producto cuya subcategoría no está asociada al
// proveedor no aparece en ningún grupo. Solo se devuelven grupos con productos.
func groupProductsByCategory(v *entity.Vendor, locale string) []dto.CategoryProducts {
	categoryOfSub := make(map[string]string, len(v.Subcategories))
	for _, s := range v.Subcategories {
		categoryOfSub[s.ID] = s.CategoryID
	}
	groups := make([]dto.CategoryProducts, 0, len(v.Categories))
	for _, c := range v.Categories {
		var products []dto.NamedRef
		for _, p := range v.Products {
			if catID, ok := categoryOfSub[p.SubcategoryID]; ok && catID == c.ID {
				products = append(products, dto.NamedRef{ID: p.ID, Name: p.Name.For(locale)})
			}
		}
		if len(products) == 0 {
			continue
		}
		groups = append(groups, dto.CategoryProducts{
			Category: dto.NamedRef{ID: c.ID, Name: c.Name.For(locale)},
			Products: products,
		})
	}
	return groups
}
