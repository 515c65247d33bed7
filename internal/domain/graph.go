package domain

import "fmt"

// Graph owns the nodes and edges of one topology view and maintains an
// adjacency index so ownership and degree lookups never scan the edge list.
type Graph struct {
	nodes  []*Node
	edges  []*Edge
	byName map[string]*Node

	owner      map[string]*Node   // interface name -> owning switch
	members    map[string][]*Node // switch name -> owned interfaces
	incident   map[string][]*Edge // node name -> resolved edges
	linkDegree map[string]int     // node name -> count of link edges

	warnings []IntegrityWarning
}

// NewGraph creates an empty graph with initialized indexes
func NewGraph() *Graph {
	return &Graph{
		nodes:      make([]*Node, 0),
		edges:      make([]*Edge, 0),
		byName:     make(map[string]*Node),
		owner:      make(map[string]*Node),
		members:    make(map[string][]*Node),
		incident:   make(map[string][]*Edge),
		linkDegree: make(map[string]int),
	}
}

// AddNode adds a node to the graph. Node names are unique within a view.
func (g *Graph) AddNode(n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("node name is required")
	}
	if _, exists := g.byName[n.Name]; exists {
		return fmt.Errorf("node %s already exists", n.Name)
	}
	g.nodes = append(g.nodes, n)
	g.byName[n.Name] = n
	return nil
}

// AddEdge resolves and adds an edge. Edges referencing unknown node names
// are dropped and recorded as integrity warnings instead of failing the
// whole load.
func (g *Graph) AddEdge(e *Edge) {
	from, okFrom := g.byName[e.Source]
	to, okTo := g.byName[e.Target]
	if !okFrom || !okTo {
		missing := e.Source
		if okFrom {
			missing = e.Target
		}
		g.warnings = append(g.warnings, IntegrityWarning{
			Kind:    WarningUnknownEndpoint,
			Subject: missing,
			Detail:  fmt.Sprintf("%s edge %s -> %s dropped", e.Type, e.Source, e.Target),
		})
		return
	}

	e.From, e.To = from, to
	g.edges = append(g.edges, e)
	g.incident[e.Source] = append(g.incident[e.Source], e)
	g.incident[e.Target] = append(g.incident[e.Target], e)

	switch e.Type {
	case EdgeTypeLink:
		g.linkDegree[e.Source]++
		g.linkDegree[e.Target]++
	case EdgeTypeInterface:
		g.indexOwnership(e)
	}
}

func (g *Graph) indexOwnership(e *Edge) {
	if e.From.Type != NodeTypeSwitch || e.To.Type != NodeTypeInterface {
		return
	}
	if existing, claimed := g.owner[e.Target]; claimed {
		if existing.Name != e.Source {
			g.warnings = append(g.warnings, IntegrityWarning{
				Kind:    WarningMultipleOwners,
				Subject: e.Target,
				Detail:  fmt.Sprintf("owned by %s, also claimed by %s", existing.Name, e.Source),
			})
		}
		return
	}
	g.owner[e.Target] = e.From
	g.members[e.Source] = append(g.members[e.Source], e.To)
}

// RemoveEdge detaches an edge and updates the adjacency index. Returns
// false if the edge is not part of the graph.
func (g *Graph) RemoveEdge(e *Edge) bool {
	idx := -1
	for i, candidate := range g.edges {
		if candidate == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	g.edges = append(g.edges[:idx], g.edges[idx+1:]...)
	g.incident[e.Source] = removeEdgeFrom(g.incident[e.Source], e)
	g.incident[e.Target] = removeEdgeFrom(g.incident[e.Target], e)

	switch e.Type {
	case EdgeTypeLink:
		g.linkDegree[e.Source]--
		g.linkDegree[e.Target]--
	case EdgeTypeInterface:
		if owner, ok := g.owner[e.Target]; ok && owner.Name == e.Source {
			delete(g.owner, e.Target)
			g.members[e.Source] = removeNodeFrom(g.members[e.Source], e.To)
		}
	}
	return true
}

func removeEdgeFrom(edges []*Edge, e *Edge) []*Edge {
	for i, candidate := range edges {
		if candidate == e {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

func removeNodeFrom(nodes []*Node, n *Node) []*Node {
	for i, candidate := range nodes {
		if candidate == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// Validate records a warning for every interface node that no switch owns.
// Call once after all nodes and edges are loaded.
func (g *Graph) Validate() []IntegrityWarning {
	for _, n := range g.nodes {
		if n.Type != NodeTypeInterface {
			continue
		}
		if _, owned := g.owner[n.Name]; !owned {
			g.warnings = append(g.warnings, IntegrityWarning{
				Kind:    WarningOwnerlessInterface,
				Subject: n.Name,
				Detail:  "no ownership edge from any switch",
			})
		}
	}
	return g.warnings
}

// Node returns the node with the given name, or nil
func (g *Graph) Node(name string) *Node {
	return g.byName[name]
}

// Nodes returns all nodes in load order
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns all resolved edges in load order
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// NodesByType returns all nodes of the given type
func (g *Graph) NodesByType(t NodeType) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// EdgesOf returns all resolved edges touching the named node
func (g *Graph) EdgesOf(name string) []*Edge {
	return g.incident[name]
}

// OwnerOf returns the switch owning the named interface. The second return
// is false for ownerless (malformed) interfaces.
func (g *Graph) OwnerOf(interfaceName string) (*Node, bool) {
	owner, ok := g.owner[interfaceName]
	return owner, ok
}

// InterfacesOf returns the interfaces owned by the named switch
func (g *Graph) InterfacesOf(switchName string) []*Node {
	return g.members[switchName]
}

// LinkDegree returns how many link-type edges touch the named node
func (g *Graph) LinkDegree(name string) int {
	return g.linkDegree[name]
}

// Degree returns how many resolved edges of any type touch the named node
func (g *Graph) Degree(name string) int {
	return len(g.incident[name])
}

// Warnings returns the integrity warnings accumulated so far
func (g *Graph) Warnings() []IntegrityWarning {
	return g.warnings
}
