package view

// SetHideUnusedInterfaces toggles hiding of interfaces with no structural
// link. The hidden set is derived from current link degrees, so hiding,
// changing the edge set and toggling back can hide a different set of
// interfaces than before.
func (s *Scene) SetHideUnusedInterfaces(on bool) {
	s.hideUnusedInterfaces = on
	s.Sync()
}

// SetHideDisconnectedHosts toggles hiding of hosts with no edge at all.
func (s *Scene) SetHideDisconnectedHosts(on bool) {
	s.hideDisconnectedHosts = on
	s.Sync()
}

// HideUnusedInterfaces reports the current state of the interface toggle.
func (s *Scene) HideUnusedInterfaces() bool { return s.hideUnusedInterfaces }

// HideDisconnectedHosts reports the current state of the host toggle.
func (s *Scene) HideDisconnectedHosts() bool { return s.hideDisconnectedHosts }
