package filtering

// MatchesCategories indica si alguna categoría del proveedor está en selected.
// Sin selección, todo proveedor coincide.
func MatchesCategories(vendorCategoryIDs []string, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, id := range vendorCategoryIDs {
		if _, ok := selected[id]; ok {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
