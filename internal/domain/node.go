package domain

// NodeType represents the kind of topology entity
type NodeType string

const (
	NodeTypeSwitch    NodeType = "switch"
	NodeTypeInterface NodeType = "interface"
	NodeTypeHost      NodeType = "host"
)

// Node represents a topology entity in the graph.
// X and Y hold the current simulated position; FX and FY, when set, pin the
// node so the simulation holds it in place instead of solving for it.
type Node struct {
	Name string   `json:"name"`
	Type NodeType `json:"type"`

	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`

	// Velocities are simulation-internal and never serialized
	VX float64 `json:"-"`
	VY float64 `json:"-"`

	Switch    *SwitchAttrs    `json:"switch,omitempty"`
	Interface *InterfaceAttrs `json:"interface,omitempty"`
}

// SwitchAttrs holds attributes present only on switch nodes
type SwitchAttrs struct {
	DPID       string `json:"dpid,omitempty"`
	Connection string `json:"connection,omitempty"`
	OFPVersion string `json:"ofp_version,omitempty"`
	Hardware   string `json:"hardware,omitempty"`
	Software   string `json:"software,omitempty"`
}

// InterfaceAttrs holds attributes present only on interface nodes
type InterfaceAttrs struct {
	PortNumber      uint32 `json:"port_number,omitempty"`
	HardwareAddress string `json:"hardware_address,omitempty"`
}

// NewNode creates a node of the given type at the origin
func NewNode(name string, nodeType NodeType) *Node {
	return &Node{Name: name, Type: nodeType}
}

// Pinned reports whether the node has a fixed position
func (n *Node) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at (x, y). The current position snaps there as well so
// rendering and the pin never disagree.
func (n *Node) Pin(x, y float64) {
	n.X, n.Y = x, y
	fx, fy := x, y
	n.FX, n.FY = &fx, &fy
}

// Unpin releases the node back to free simulation
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// Translate shifts the node by (dx, dy). A pinned node keeps its pin,
// shifted by the same delta.
func (n *Node) Translate(dx, dy float64) {
	n.X += dx
	n.Y += dy
	if n.Pinned() {
		fx := *n.FX + dx
		fy := *n.FY + dy
		n.FX, n.FY = &fx, &fy
	}
}
