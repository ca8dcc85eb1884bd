package filtering

import "github.com/jhoicas/vendor-directory/internal/domain/entity"

// Filter devuelve la subsecuencia de vendors que coincide con query y con selectedCategoryIDs.
// Nunca devuelve nil.
func Filter(vendors []*entity.Vendor, query string, selectedCategoryIDs []string) []*entity.Vendor {
	names := newNameMatcher(query)
	selected := toSet(selectedCategoryIDs)

	out := make([]*entity.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v == nil {
			continue
		}
		if !names.match(v.Name) {
			continue
		}
		if !MatchesCategories(v.CategoryIDs(), selected) {
			continue
		}
		out = append(out, v)
	}
	return out
}
