package sim

import (
	"math"

	"toposcope/internal/domain"
)

// Params holds the per-type physics parameters for one simulation.
// Structural interface edges pull much tighter and stronger than data-plane
// links so interfaces stay visually clustered on their switch; switches
// repel strongly to spread the diagram out while interfaces are allowed to
// cluster.
type Params struct {
	Width  float64
	Height float64

	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64

	// DragAlphaTarget is the temperature the simulation is held at while a
	// drag gesture is in progress
	DragAlphaTarget float64

	Charge       map[domain.NodeType]float64
	LinkDistance map[domain.EdgeType]float64
	LinkStrength map[domain.EdgeType]float64
}

// DefaultParams returns the stock physics tuning for a topology view
func DefaultParams() Params {
	return Params{
		Width:  960,
		Height: 600,

		AlphaMin:      0.001,
		AlphaDecay:    1 - math.Pow(0.001, 1.0/300),
		VelocityDecay: 0.4,

		DragAlphaTarget: 0.3,

		Charge: map[domain.NodeType]float64{
			domain.NodeTypeSwitch:    -900,
			domain.NodeTypeInterface: 30,
			domain.NodeTypeHost:      -250,
		},
		LinkDistance: map[domain.EdgeType]float64{
			domain.EdgeTypeInterface: 24,
			domain.EdgeTypeLink:      140,
		},
		LinkStrength: map[domain.EdgeType]float64{
			domain.EdgeTypeInterface: 1.0,
			domain.EdgeTypeLink:      0.15,
		},
	}
}

// RingRadius returns the radius of the ring interfaces are constrained to
// around their owning switch. It matches the structural edge distance so
// the constraint and the link force agree.
func (p Params) RingRadius() float64 {
	return p.LinkDistance[domain.EdgeTypeInterface]
}

// ChargeOf returns the charge strength for a node's type
func (p Params) ChargeOf(n *domain.Node) float64 {
	return p.Charge[n.Type]
}

// Center returns the canvas center the global centering force targets
func (p Params) Center() (float64, float64) {
	return p.Width / 2, p.Height / 2
}
