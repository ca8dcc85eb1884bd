package taxonomy

import (
	"maps"
	"slices"
)

// Set conjunto de identificadores (semántica de conjunto, sin duplicados ni orden).
type Set map[string]struct{}

// NewSet construye un Set con los ids dados.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add agrega id al conjunto.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Remove quita id del conjunto.
func (s Set) Remove(id string) { delete(s, id) }

// Has indica si id pertenece al conjunto.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len cantidad de elementos.
func (s Set) Len() int { return len(s) }

// Clone copia superficial; nunca devuelve nil.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Sorted ids ordenados lexicográficamente.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
