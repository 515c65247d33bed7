package view

import (
	"sort"

	"toposcope/internal/domain"
)

// Drawn radius per node type.
var nodeRadius = map[domain.NodeType]float64{
	domain.NodeTypeSwitch:    18,
	domain.NodeTypeInterface: 5,
	domain.NodeTypeHost:      9,
}

// NodePrimitive is the drawn form of a node.
type NodePrimitive struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Pinned  bool    `json:"pinned"`
	Downlit bool    `json:"downlit"`
	Visible bool    `json:"visible"`

	node *domain.Node
}

// LinePrimitive is the drawn form of an edge. A line is visible only while
// both of its endpoints are.
type LinePrimitive struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Visible bool    `json:"visible"`

	edge *domain.Edge
}

// Scene owns all visual state for one graph: primitives, highlight classes,
// visibility toggles, the detail panel and the viewport transform.
type Scene struct {
	graph *domain.Graph

	nodes map[string]*NodePrimitive
	lines map[string]*LinePrimitive

	downlit map[string]bool

	hideUnusedInterfaces  bool
	hideDisconnectedHosts bool

	detail    Detail
	transform Transform
}

// NewScene builds primitives for every node and resolved edge of the graph.
func NewScene(g *domain.Graph) *Scene {
	s := &Scene{
		graph:     g,
		nodes:     make(map[string]*NodePrimitive),
		lines:     make(map[string]*LinePrimitive),
		downlit:   make(map[string]bool),
		detail:    DefaultDetail(),
		transform: IdentityTransform(),
	}
	for _, n := range g.Nodes() {
		id := ElementID(n.Type, n.Name)
		s.nodes[id] = &NodePrimitive{
			ID:     id,
			Name:   n.Name,
			Type:   string(n.Type),
			Radius: nodeRadius[n.Type],
			node:   n,
		}
	}
	for _, e := range g.Edges() {
		id := LineID(e)
		s.lines[id] = &LinePrimitive{ID: id, Type: string(e.Type), edge: e}
	}
	s.Sync()
	return s
}

// Sync refreshes every primitive from the live graph: coordinates from the
// simulation state, visibility from the toggles, highlight class from the
// downlight set. Visibility is recomputed from current degrees on every call
// rather than cached, so edge churn is picked up without bookkeeping.
func (s *Scene) Sync() {
	for _, p := range s.nodes {
		p.X = p.node.X
		p.Y = p.node.Y
		p.Pinned = p.node.Pinned()
		p.Downlit = s.downlit[p.Name]
		p.Visible = s.visible(p.node)
	}
	for _, l := range s.lines {
		e := l.edge
		l.X1, l.Y1 = e.From.X, e.From.Y
		l.X2, l.Y2 = e.To.X, e.To.Y
		l.Visible = s.visible(e.From) && s.visible(e.To)
	}
}

func (s *Scene) visible(n *domain.Node) bool {
	switch n.Type {
	case domain.NodeTypeInterface:
		if s.hideUnusedInterfaces && s.graph.LinkDegree(n.Name) == 0 {
			return false
		}
	case domain.NodeTypeHost:
		if s.hideDisconnectedHosts && s.graph.Degree(n.Name) == 0 {
			return false
		}
	}
	return true
}

// Nodes returns the node primitives ordered by id.
func (s *Scene) Nodes() []*NodePrimitive {
	out := make([]*NodePrimitive, 0, len(s.nodes))
	for _, p := range s.nodes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lines returns the line primitives ordered by id.
func (s *Scene) Lines() []*LinePrimitive {
	out := make([]*LinePrimitive, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeByID looks a node primitive up by element id.
func (s *Scene) NodeByID(id string) (*NodePrimitive, bool) {
	p, ok := s.nodes[id]
	return p, ok
}

// Downlit reports whether a node currently carries the downlight class.
func (s *Scene) Downlit(name string) bool { return s.downlit[name] }

// SetDownlit forces the downlight class of a single node, used when a saved
// layout restores visual emphasis.
func (s *Scene) SetDownlit(name string, on bool) {
	if on {
		s.downlit[name] = true
	} else {
		delete(s.downlit, name)
	}
}

// Detail returns the current detail panel content.
func (s *Scene) Detail() Detail { return s.detail }

// Transform returns the current viewport transform.
func (s *Scene) Transform() Transform { return s.transform }

// SetTransform replaces the viewport transform.
func (s *Scene) SetTransform(t Transform) { s.transform = t }
