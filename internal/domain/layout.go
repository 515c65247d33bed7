package domain

// Layout is the persisted snapshot exchanged with the layout store: the
// position, pin, and downlight state of every node at capture time, plus
// the two visibility toggle settings.
type Layout struct {
	Nodes         map[string]LayoutNode `json:"nodes"`
	OtherSettings OtherSettings         `json:"other_settings"`
}

// LayoutNode is one node's persisted state within a layout
type LayoutNode struct {
	Name    string   `json:"name"`
	Type    NodeType `json:"type"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	FX      *float64 `json:"fx"`
	FY      *float64 `json:"fy"`
	Downlit bool     `json:"downlit"`
}

// OtherSettings carries the visibility toggles persisted alongside positions
type OtherSettings struct {
	HideUnusedInterfaces  bool `json:"hide_unused_interfaces"`
	HideDisconnectedHosts bool `json:"hide_disconnected_hosts"`
}

// NewLayout creates an empty layout
func NewLayout() *Layout {
	return &Layout{Nodes: make(map[string]LayoutNode)}
}

// SetNode records a node's state in the layout
func (l *Layout) SetNode(ln LayoutNode) {
	if l.Nodes == nil {
		l.Nodes = make(map[string]LayoutNode)
	}
	l.Nodes[ln.Name] = ln
}

// NodeState returns the persisted state for a node name, if present
func (l *Layout) NodeState(name string) (LayoutNode, bool) {
	ln, ok := l.Nodes[name]
	return ln, ok
}
