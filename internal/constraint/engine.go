// Package constraint translates raw pointer-drag deltas into physically
// consistent pin updates, according to each node type's ownership rules.
package constraint

import (
	"log"
	"math"

	"toposcope/internal/domain"
	"toposcope/internal/sim"
)

// Engine intercepts drag gestures before they reach the simulation's fixed
// positions. A switch drag moves its whole interface cluster rigidly; an
// interface drag is re-projected onto a ring around its owning switch; a
// host (or anything unclassified, or an ownerless interface) pins freely.
type Engine struct {
	graph *domain.Graph
	sim   *sim.Simulation

	gesture *gesture
}

// gesture tracks one pointer interaction from start to end. Drag deltas
// are pointer deltas, so the rigid-cluster move is exact regardless of
// where inside the node the gesture began.
type gesture struct {
	node  *domain.Node
	lastX float64
	lastY float64
}

// New creates a constraint engine over the view's graph and simulation
func New(g *domain.Graph, s *sim.Simulation) *Engine {
	return &Engine{graph: g, sim: s}
}

// DragStart begins a gesture on the named node: the node is pinned where
// it stands, a switch additionally pins its owned interfaces, and the
// simulation is held warm for the duration of the gesture.
func (e *Engine) DragStart(name string, x, y float64) error {
	node := e.graph.Node(name)
	if node == nil {
		return &domain.ValidationError{Field: "node", Reason: "unknown node " + name}
	}

	e.sim.Reheat()
	node.Pin(node.X, node.Y)
	if node.Type == domain.NodeTypeSwitch {
		for _, iface := range e.graph.InterfacesOf(name) {
			iface.Pin(iface.X, iface.Y)
		}
	}

	e.gesture = &gesture{node: node, lastX: x, lastY: y}
	return nil
}

// Drag applies one pointer movement to the active gesture. A drag event
// arriving without a start (or for a different node) implicitly begins a
// new gesture.
func (e *Engine) Drag(name string, x, y float64) error {
	if e.gesture == nil || e.gesture.node.Name != name {
		if err := e.DragStart(name, x, y); err != nil {
			return err
		}
	}

	g := e.gesture
	dx := x - g.lastX
	dy := y - g.lastY
	g.lastX, g.lastY = x, y

	switch g.node.Type {
	case domain.NodeTypeSwitch:
		// Rigid-body move: the switch and every owned interface shift by
		// the same pointer delta, preserving their relative offsets.
		g.node.Translate(dx, dy)
		for _, iface := range e.graph.InterfacesOf(g.node.Name) {
			iface.Translate(dx, dy)
		}

	case domain.NodeTypeInterface:
		owner, ok := e.graph.OwnerOf(g.node.Name)
		if !ok {
			log.Printf("interface %s has no owner, falling back to free drag", g.node.Name)
			g.node.Pin(x, y)
			return nil
		}
		rx, ry := projectOntoRing(owner.X, owner.Y, x, y, e.sim.Params().RingRadius())
		g.node.Pin(rx, ry)

	default:
		g.node.Pin(x, y)
	}
	return nil
}

// DragEnd finishes the active gesture and lets the simulation cool. The
// dragged nodes stay pinned until explicitly released.
func (e *Engine) DragEnd(name string) {
	if e.gesture != nil && e.gesture.node.Name == name {
		e.gesture = nil
	}
	e.sim.Cool()
}

// Release clears the named node's pin. Releasing a switch also releases
// every interface it owns, returning the whole cluster to free simulation.
// A small temperature bump lets the freed nodes re-settle.
func (e *Engine) Release(name string) error {
	node := e.graph.Node(name)
	if node == nil {
		return &domain.ValidationError{Field: "node", Reason: "unknown node " + name}
	}

	node.Unpin()
	if node.Type == domain.NodeTypeSwitch {
		for _, iface := range e.graph.InterfacesOf(name) {
			iface.Unpin()
		}
	}

	e.sim.Reheat()
	e.sim.Cool()
	return nil
}

// projectOntoRing maps the pointer position onto the circle of the given
// radius around (cx, cy), keeping the pointer's angle. A pointer exactly
// on the center projects to the ring's rightmost point.
func projectOntoRing(cx, cy, px, py, radius float64) (float64, float64) {
	angle := math.Atan2(py-cy, px-cx)
	return cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)
}
