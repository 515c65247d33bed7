// Package view maintains the drawn representation of a topology graph.
//
// The scene keeps a one-to-one mapping between live nodes/edges and drawn
// primitives, keyed by a collision-safe identifier derived from the node
// type and a reversibly escaped node name (colons in MAC- and DPID-like
// names being the motivating case). On every simulation tick the primitives
// are repositioned from current node coordinates; the view never computes
// geometry itself.
//
// The package also owns the purely visual state the physics model knows
// nothing about: downlight/highlight classes, the two visibility toggles
// (hide unused interfaces, hide disconnected hosts), the detail panel
// content, and the zoom/pan viewport transform.
package view
