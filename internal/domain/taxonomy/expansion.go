package taxonomy

// Expansion nodos visualmente expandidos del árbol. Es independiente de Selection:
// ninguna operación de selección lo lee ni lo modifica.
type Expansion struct {
	nodes Set
}

// NewExpansion expansión inicial con los nodos dados.
func NewExpansion(nodeIDs ...string) Expansion {
	return Expansion{nodes: NewSet(nodeIDs...)}
}

// Toggle devuelve una nueva expansión con nodeID agregado o quitado.
func (e Expansion) Toggle(nodeID string) Expansion {
	next := e.nodes.Clone()
	if next.Has(nodeID) {
		next.Remove(nodeID)
	} else {
		next.Add(nodeID)
	}
	return Expansion{nodes: next}
}

// IsExpanded indica si el nodo está expandido.
func (e Expansion) IsExpanded(nodeID string) bool { return e.nodes.Has(nodeID) }

// IDs nodos expandidos, ordenados.
func (e Expansion) IDs() []string { return e.nodes.Sorted() }
