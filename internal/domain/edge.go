package domain

// EdgeType represents the kind of relationship an edge expresses
type EdgeType string

const (
	// EdgeTypeInterface is the structural ownership edge from a switch to
	// one of its interfaces. Always present for every interface and never
	// user-removable.
	EdgeTypeInterface EdgeType = "interface"

	// EdgeTypeLink is a live data-plane connection between two interfaces
	// or between an interface and a host. Its presence determines whether
	// an endpoint counts as used/connected.
	EdgeTypeLink EdgeType = "link"
)

// Edge represents a relationship between two nodes. Source and Target are
// node names as they appear on the wire; From and To are resolved by the
// graph and reference the graph's own node objects.
type Edge struct {
	Type   EdgeType `json:"type"`
	Source string   `json:"source"`
	Target string   `json:"target"`

	From *Node `json:"-"`
	To   *Node `json:"-"`
}

// NewEdge creates an unresolved edge between two node names
func NewEdge(source, target string, edgeType EdgeType) *Edge {
	return &Edge{Type: edgeType, Source: source, Target: target}
}

// Involves checks if this edge touches the named node
func (e *Edge) Involves(name string) bool {
	return e.Source == name || e.Target == name
}
