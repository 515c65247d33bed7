// Package service coordinates one diagram session: the simulation loop, the
// pointer gestures, the visual state, and the layout store round trips. All
// mutation goes through the Session so the HTTP layer stays thin.
package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"toposcope/internal/constraint"
	"toposcope/internal/domain"
	"toposcope/internal/layoutstore"
	"toposcope/internal/sim"
	"toposcope/internal/view"
)

// LayoutStore is the session's view of the remote layout store. Implemented
// by layoutstore.Client and by the bundled repository-backed store.
type LayoutStore interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*domain.Layout, error)
	Put(ctx context.Context, name string, l *domain.Layout) error
}

var _ LayoutStore = (*layoutstore.Client)(nil)

// Frame is one renderable snapshot of the session, produced per tick. The
// primitives are copied out of the scene under the session lock, so a frame
// stays valid while later ticks mutate the scene.
type Frame struct {
	Nodes     []view.NodePrimitive `json:"nodes"`
	Lines     []view.LinePrimitive `json:"lines"`
	Alpha     float64              `json:"alpha"`
	Settled   bool                 `json:"settled"`
	Detail    view.Detail          `json:"detail"`
	Transform view.Transform       `json:"transform"`
}

// Session owns all mutable state for one loaded topology. Methods are safe
// for concurrent use; store round trips are serialized separately from the
// simulation lock so a slow store never stalls the tick loop.
type Session struct {
	mu     sync.Mutex
	graph  *domain.Graph
	sim    *sim.Simulation
	engine *constraint.Engine
	scene  *view.Scene

	// Serializes overlapping save/load/list calls, last writer wins.
	storeMu sync.Mutex
	store   LayoutStore

	bus *EventBus
}

// NewSession builds a session over a loaded graph.
func NewSession(g *domain.Graph, params sim.Params, store LayoutStore, bus *EventBus) *Session {
	simulation := sim.New(g, params)
	return &Session{
		graph:  g,
		sim:    simulation,
		engine: constraint.New(g, simulation),
		scene:  view.NewScene(g),
		store:  store,
		bus:    bus,
	}
}

// Graph exposes the underlying graph for wiring and tests. Callers that run
// alongside the simulation loop use GraphSnapshot instead.
func (s *Session) Graph() *domain.Graph { return s.graph }

// GraphSnapshot is a point-in-time copy of the loaded graph, safe to encode
// while the simulation keeps ticking.
type GraphSnapshot struct {
	Nodes    []domain.Node             `json:"nodes"`
	Edges    []domain.Edge             `json:"edges"`
	Warnings []domain.IntegrityWarning `json:"warnings"`
}

// GraphSnapshot copies the graph's nodes, edges and integrity warnings under
// the session lock.
func (s *Session) GraphSnapshot() GraphSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := s.graph.Nodes()
	edges := s.graph.Edges()
	snap := GraphSnapshot{
		Nodes:    make([]domain.Node, 0, len(nodes)),
		Edges:    make([]domain.Edge, 0, len(edges)),
		Warnings: append([]domain.IntegrityWarning(nil), s.graph.Warnings()...),
	}
	for _, n := range nodes {
		c := *n
		if n.FX != nil {
			fx := *n.FX
			c.FX = &fx
		}
		if n.FY != nil {
			fy := *n.FY
			c.FY = &fy
		}
		snap.Nodes = append(snap.Nodes, c)
	}
	for _, e := range edges {
		c := *e
		c.From, c.To = nil, nil
		snap.Edges = append(snap.Edges, c)
	}
	return snap
}

// Tick advances the simulation one step and returns the resulting frame.
func (s *Session) Tick() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Tick()
	s.scene.Sync()
	return s.frameLocked()
}

// Frame returns the current frame without advancing the simulation.
func (s *Session) Frame() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene.Sync()
	return s.frameLocked()
}

func (s *Session) frameLocked() *Frame {
	sceneNodes := s.scene.Nodes()
	sceneLines := s.scene.Lines()
	f := &Frame{
		Nodes:     make([]view.NodePrimitive, len(sceneNodes)),
		Lines:     make([]view.LinePrimitive, len(sceneLines)),
		Alpha:     s.sim.Alpha(),
		Settled:   s.sim.Settled(),
		Detail:    s.scene.Detail(),
		Transform: s.scene.Transform(),
	}
	for i, p := range sceneNodes {
		f.Nodes[i] = *p
	}
	for i, l := range sceneLines {
		f.Lines[i] = *l
	}
	return f
}

// Settled reports whether the simulation has cooled below its floor.
func (s *Session) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Settled()
}

// DragStart begins a drag gesture on a node.
func (s *Session) DragStart(name string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DragStart(name, x, y)
}

// Drag moves an active gesture to a new pointer position.
func (s *Session) Drag(name string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Drag(name, x, y)
}

// DragEnd finishes a gesture, leaving the dragged node pinned.
func (s *Session) DragEnd(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.DragEnd(name)
}

// DoubleClick releases a node's pin. On a switch the whole cluster is
// released.
func (s *Session) DoubleClick(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Release(name)
}

// Click selects a node, updating the highlight pass and the detail panel.
func (s *Session) Click(name string) (view.Detail, error) {
	s.mu.Lock()
	d, err := s.scene.Click(name)
	s.mu.Unlock()
	if err != nil {
		return d, err
	}
	s.bus.Publish(Event{Type: EventSelectionChanged, Payload: d})
	return d, nil
}

// BackgroundClick clears the selection.
func (s *Session) BackgroundClick() {
	s.mu.Lock()
	s.scene.BackgroundClick()
	d := s.scene.Detail()
	s.mu.Unlock()
	s.bus.Publish(Event{Type: EventSelectionChanged, Payload: d})
}

// SetHideUnusedInterfaces toggles interface visibility.
func (s *Session) SetHideUnusedInterfaces(on bool) {
	s.mu.Lock()
	s.scene.SetHideUnusedInterfaces(on)
	s.mu.Unlock()
	s.publishVisibility()
}

// SetHideDisconnectedHosts toggles host visibility.
func (s *Session) SetHideDisconnectedHosts(on bool) {
	s.mu.Lock()
	s.scene.SetHideDisconnectedHosts(on)
	s.mu.Unlock()
	s.publishVisibility()
}

func (s *Session) publishVisibility() {
	s.mu.Lock()
	payload := map[string]bool{
		"hide_unused_interfaces":  s.scene.HideUnusedInterfaces(),
		"hide_disconnected_hosts": s.scene.HideDisconnectedHosts(),
	}
	s.mu.Unlock()
	s.bus.Publish(Event{Type: EventVisibilityChanged, Payload: payload})
}

// SetViewport replaces the zoom/pan transform.
func (s *Session) SetViewport(t view.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene.SetTransform(t)
}

// CaptureLayout snapshots the current position, pin, downlight and toggle
// state of every node into a layout document.
func (s *Session) CaptureLayout() *domain.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captureLocked()
}

func (s *Session) captureLocked() *domain.Layout {
	l := domain.NewLayout()
	for _, n := range s.graph.Nodes() {
		ln := domain.LayoutNode{
			Name:    n.Name,
			Type:    n.Type,
			X:       n.X,
			Y:       n.Y,
			Downlit: s.scene.Downlit(n.Name),
		}
		if n.FX != nil {
			fx := *n.FX
			ln.FX = &fx
		}
		if n.FY != nil {
			fy := *n.FY
			ln.FY = &fy
		}
		l.SetNode(ln)
	}
	l.OtherSettings = domain.OtherSettings{
		HideUnusedInterfaces:  s.scene.HideUnusedInterfaces(),
		HideDisconnectedHosts: s.scene.HideDisconnectedHosts(),
	}
	return l
}

// SaveLayout captures the current state and stores it under name,
// overwriting any layout already saved with that name. The caller keeps its
// save dialog open until a nil return confirms the write.
func (s *Session) SaveLayout(ctx context.Context, name string) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Reason: "layout name must not be empty"}
	}

	s.mu.Lock()
	layout := s.captureLocked()
	s.mu.Unlock()

	s.storeMu.Lock()
	err := s.store.Put(ctx, name, layout)
	s.storeMu.Unlock()
	if err != nil {
		log.Printf("saving layout %q: %v", name, err)
		s.bus.Publish(Event{Type: EventNotice, Payload: fmt.Sprintf("could not save layout %q", name)})
		return err
	}

	s.bus.Publish(Event{Type: EventLayoutSaved, Payload: name})
	return nil
}

// ListLayouts fetches the names of all saved layouts. An empty store is not
// an error; it surfaces as a notice so the UI can tell the user.
func (s *Session) ListLayouts(ctx context.Context) ([]string, error) {
	s.storeMu.Lock()
	names, err := s.store.List(ctx)
	s.storeMu.Unlock()
	if err != nil {
		log.Printf("listing layouts: %v", err)
		s.bus.Publish(Event{Type: EventNotice, Payload: "could not reach the layout store"})
		return nil, err
	}
	if len(names) == 0 {
		s.bus.Publish(Event{Type: EventNotice, Payload: "no saved layouts"})
	}
	s.bus.Publish(Event{Type: EventLayoutList, Payload: names})
	return names, nil
}

// LoadLayout fetches a saved layout and applies it. Nodes present in the
// layout take their saved position, pin and downlight state; nodes the
// layout does not mention keep their live state. A toggle is only switched
// when the saved setting differs from the current one. The simulation is
// restarted so unpinned nodes resettle around the restored pins.
func (s *Session) LoadLayout(ctx context.Context, name string) error {
	s.storeMu.Lock()
	layout, err := s.store.Get(ctx, name)
	s.storeMu.Unlock()
	if err != nil {
		log.Printf("loading layout %q: %v", name, err)
		s.bus.Publish(Event{Type: EventNotice, Payload: fmt.Sprintf("could not load layout %q", name)})
		return err
	}

	s.ApplyLayout(layout)
	s.bus.Publish(Event{Type: EventLayoutLoaded, Payload: name})
	return nil
}

// ApplyLayout merges a layout document into the live session state, then
// restarts the simulation. Used by LoadLayout and by file imports.
func (s *Session) ApplyLayout(layout *domain.Layout) {
	s.mu.Lock()
	for _, n := range s.graph.Nodes() {
		ln, ok := layout.NodeState(n.Name)
		if !ok {
			continue
		}
		n.X = ln.X
		n.Y = ln.Y
		n.VX = 0
		n.VY = 0
		if ln.FX != nil && ln.FY != nil {
			n.Pin(*ln.FX, *ln.FY)
		} else {
			n.Unpin()
		}
		s.scene.SetDownlit(n.Name, ln.Downlit)
	}

	changedVisibility := false
	if layout.OtherSettings.HideUnusedInterfaces != s.scene.HideUnusedInterfaces() {
		s.scene.SetHideUnusedInterfaces(layout.OtherSettings.HideUnusedInterfaces)
		changedVisibility = true
	}
	if layout.OtherSettings.HideDisconnectedHosts != s.scene.HideDisconnectedHosts() {
		s.scene.SetHideDisconnectedHosts(layout.OtherSettings.HideDisconnectedHosts)
		changedVisibility = true
	}

	s.sim.Restart()
	s.scene.Sync()
	s.mu.Unlock()

	if changedVisibility {
		s.publishVisibility()
	}
}
