// Package sim implements the continuous force-directed layout solver.
//
// The solver is tick-driven: every tick applies a link force per edge, a
// pairwise charge force, and a global centering force, then integrates
// velocities into positions. Nodes with a pinned position (fx/fy set) are
// held in place and act as anchors for their neighbors.
//
// The simulation never terminates on its own. Its temperature (alpha)
// decays toward zero; drag gestures hold it warm via an alpha target and a
// layout load restarts it so moved pins can re-settle. The math follows the
// velocity-Verlet scheme popularized by d3-force.
package sim

import (
	"math"

	"toposcope/internal/domain"
)

const (
	initRadius = 10
	initAngle  = math.Pi * (3 - 2.2360679774997896) // golden angle, sqrt(5)
)

// Simulation solves node positions for one topology view. It operates on
// the graph's own node objects so position updates are immediately visible
// to every component holding a reference.
type Simulation struct {
	graph  *domain.Graph
	params Params

	alpha       float64
	alphaTarget float64
}

// New seeds a simulation from a resolved graph. Nodes without a position
// are placed deterministically on a phyllotaxis spiral around the canvas
// center so the first ticks do not start from a degenerate overlap.
func New(g *domain.Graph, p Params) *Simulation {
	s := &Simulation{graph: g, params: p, alpha: 1}
	cx, cy := p.Center()

	for i, n := range g.Nodes() {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		radius := initRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initAngle
		n.X = cx + radius*math.Cos(angle)
		n.Y = cy + radius*math.Sin(angle)
	}
	return s
}

// Params returns the physics parameters the simulation runs with
func (s *Simulation) Params() Params {
	return s.params
}

// Alpha returns the current simulation temperature
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Settled reports whether the simulation has cooled below its minimum
// temperature with no target holding it warm
func (s *Simulation) Settled() bool {
	return s.alphaTarget == 0 && s.alpha < s.params.AlphaMin
}

// Restart bumps the temperature back to maximum. Called after a layout
// load so fixed and freed nodes re-settle.
func (s *Simulation) Restart() {
	s.alpha = 1
}

// Reheat holds the simulation at the drag temperature for the duration of
// a gesture
func (s *Simulation) Reheat() {
	s.alphaTarget = s.params.DragAlphaTarget
	if s.alpha < s.alphaTarget {
		s.alpha = s.alphaTarget
	}
}

// Cool releases the drag temperature target and lets the simulation decay
func (s *Simulation) Cool() {
	s.alphaTarget = 0
}

// Tick advances the solver by one step. Pinned nodes are snapped to their
// fixed positions even when the simulation has settled, so pin updates made
// between ticks always take effect.
func (s *Simulation) Tick() {
	if s.Settled() {
		s.applyPins()
		return
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.params.AlphaDecay

	s.forceLinks()
	s.forceCharge()
	s.integrate()
	s.forceCenter()
}

// TickN advances the solver by n steps
func (s *Simulation) TickN(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func (s *Simulation) applyPins() {
	for _, n := range s.graph.Nodes() {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
		}
	}
}

// forceLinks pulls edge endpoints toward their type's target distance. The
// adjustment is biased toward the less connected endpoint so hubs stay put.
func (s *Simulation) forceLinks() {
	for _, e := range s.graph.Edges() {
		distance := s.params.LinkDistance[e.Type]
		strength := s.params.LinkStrength[e.Type]

		dx := e.To.X + e.To.VX - e.From.X - e.From.VX
		dy := e.To.Y + e.To.VY - e.From.Y - e.From.VY
		l := math.Hypot(dx, dy)
		if l == 0 {
			dx, l = 1e-6, 1e-6
		}

		k := (l - distance) / l * s.alpha * strength
		dx *= k
		dy *= k

		fromDeg := float64(s.graph.Degree(e.Source))
		toDeg := float64(s.graph.Degree(e.Target))
		bias := fromDeg / (fromDeg + toDeg)

		e.To.VX -= dx * bias
		e.To.VY -= dy * bias
		e.From.VX += dx * (1 - bias)
		e.From.VY += dy * (1 - bias)
	}
}

// forceCharge applies pairwise repulsion (or attraction, for positive
// charges) between every node pair. O(n²) is fine at topology-view scale.
func (s *Simulation) forceCharge() {
	nodes := s.graph.Nodes()
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			l2 := dx*dx + dy*dy
			if l2 < 1 {
				l2 = 1
			}
			w := s.alpha / l2

			a.VX += dx * s.params.ChargeOf(b) * w
			a.VY += dy * s.params.ChargeOf(b) * w
			b.VX -= dx * s.params.ChargeOf(a) * w
			b.VY -= dy * s.params.ChargeOf(a) * w
		}
	}
}

func (s *Simulation) integrate() {
	decay := 1 - s.params.VelocityDecay
	for _, n := range s.graph.Nodes() {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= decay
		n.VY *= decay
		n.X += n.VX
		n.Y += n.VY
	}
}

// forceCenter translates the free nodes so their centroid sits on the
// canvas center, preventing the whole system from drifting. Pinned nodes
// are left alone so the correction never fights a pin.
func (s *Simulation) forceCenter() {
	nodes := s.graph.Nodes()
	free := 0
	var sx, sy float64
	for _, n := range nodes {
		if n.Pinned() {
			continue
		}
		sx += n.X
		sy += n.Y
		free++
	}
	if free == 0 {
		return
	}

	cx, cy := s.params.Center()
	dx := sx/float64(free) - cx
	dy := sy/float64(free) - cy
	for _, n := range nodes {
		if n.Pinned() {
			continue
		}
		n.X -= dx
		n.Y -= dy
	}
}
