package filtering

import (
	"strings"

	"golang.org/x/text/cases"
)

// nameMatcher pliega la consulta una sola vez para recorrer una lista completa.
type nameMatcher struct {
	fold  cases.Caser
	query string
}

func newNameMatcher(query string) *nameMatcher {
	fold := cases.Fold()
	return &nameMatcher{fold: fold, query: fold.String(query)}
}

func (m *nameMatcher) match(name string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(m.fold.String(name), m.query)
}
