package view

import "toposcope/internal/domain"

// Click handles a primary click on a node. Switches and interfaces focus
// the owning cluster: every switch and interface is downlit, then the
// cluster's switch and its interfaces are lit back up. Hosts only update
// the detail panel and leave the highlight state alone. The updated detail
// content is returned.
func (s *Scene) Click(name string) (Detail, error) {
	n := s.graph.Node(name)
	if n == nil {
		return s.detail, &domain.ValidationError{Field: "node", Reason: "unknown node " + name}
	}
	switch n.Type {
	case domain.NodeTypeSwitch:
		s.focusCluster(n)
	case domain.NodeTypeInterface:
		if owner, ok := s.graph.OwnerOf(name); ok {
			s.focusCluster(owner)
		} else {
			s.focusOnly(n)
		}
	}
	s.detail = DetailFor(s.graph, n)
	s.Sync()
	return s.detail, nil
}

// BackgroundClick clears all highlight state and resets the detail panel.
func (s *Scene) BackgroundClick() {
	s.downlit = make(map[string]bool)
	s.detail = DefaultDetail()
	s.Sync()
}

func (s *Scene) focusCluster(sw *domain.Node) {
	s.downlightAll()
	delete(s.downlit, sw.Name)
	for _, iface := range s.graph.InterfacesOf(sw.Name) {
		delete(s.downlit, iface.Name)
	}
}

func (s *Scene) focusOnly(n *domain.Node) {
	s.downlightAll()
	delete(s.downlit, n.Name)
}

// downlightAll marks every switch and interface downlit. Hosts never carry
// the class.
func (s *Scene) downlightAll() {
	for _, n := range s.graph.Nodes() {
		if n.Type == domain.NodeTypeSwitch || n.Type == domain.NodeTypeInterface {
			s.downlit[n.Name] = true
		}
	}
}
