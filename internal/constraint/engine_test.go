package constraint

import (
	"math"
	"testing"

	"toposcope/internal/domain"
	"toposcope/internal/sim"
)

func testView(t *testing.T) (*domain.Graph, *sim.Simulation, *Engine) {
	t.Helper()
	g := domain.NewGraph()
	for _, n := range []*domain.Node{
		domain.NewNode("sw1", domain.NodeTypeSwitch),
		domain.NewNode("sw1-eth1", domain.NodeTypeInterface),
		domain.NewNode("sw1-eth2", domain.NodeTypeInterface),
		domain.NewNode("orphan-eth0", domain.NodeTypeInterface),
		domain.NewNode("h1", domain.NodeTypeHost),
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	g.AddEdge(domain.NewEdge("sw1", "sw1-eth1", domain.EdgeTypeInterface))
	g.AddEdge(domain.NewEdge("sw1", "sw1-eth2", domain.EdgeTypeInterface))
	g.AddEdge(domain.NewEdge("sw1-eth1", "h1", domain.EdgeTypeLink))
	g.Validate()

	s := sim.New(g, sim.DefaultParams())
	return g, s, New(g, s)
}

func TestSwitchDragMovesClusterRigidly(t *testing.T) {
	g, _, e := testView(t)

	sw := g.Node("sw1")
	eth1 := g.Node("sw1-eth1")
	eth2 := g.Node("sw1-eth2")

	sw.X, sw.Y = 100, 100
	eth1.X, eth1.Y = 110, 95
	eth2.X, eth2.Y = 90, 108

	offset1 := [2]float64{eth1.X - sw.X, eth1.Y - sw.Y}
	offset2 := [2]float64{eth2.X - sw.X, eth2.Y - sw.Y}

	if err := e.DragStart("sw1", 100, 100); err != nil {
		t.Fatal(err)
	}
	if err := e.Drag("sw1", 130, 80); err != nil {
		t.Fatal(err)
	}
	if err := e.Drag("sw1", 160, 140); err != nil {
		t.Fatal(err)
	}
	e.DragEnd("sw1")

	if sw.X != 160 || sw.Y != 140 {
		t.Errorf("switch at (%v, %v), want (160, 140)", sw.X, sw.Y)
	}
	if got := [2]float64{eth1.X - sw.X, eth1.Y - sw.Y}; got != offset1 {
		t.Errorf("eth1 offset changed: %v -> %v", offset1, got)
	}
	if got := [2]float64{eth2.X - sw.X, eth2.Y - sw.Y}; got != offset2 {
		t.Errorf("eth2 offset changed: %v -> %v", offset2, got)
	}

	for _, n := range []*domain.Node{sw, eth1, eth2} {
		if !n.Pinned() {
			t.Errorf("%s not pinned after drag", n.Name)
		}
	}
	if g.Node("h1").Pinned() {
		t.Error("host pinned by a switch drag it was not part of")
	}
}

func TestInterfaceDragStaysOnRing(t *testing.T) {
	g, s, e := testView(t)
	radius := s.Params().RingRadius()

	sw := g.Node("sw1")
	sw.X, sw.Y = 200, 200
	iface := g.Node("sw1-eth1")
	iface.X, iface.Y = 200+radius, 200

	pointers := [][2]float64{
		{240, 200},
		{200, 300},
		{100, 100},
		{201, 199},
		{200 - radius*3, 200},
	}

	if err := e.DragStart("sw1-eth1", iface.X, iface.Y); err != nil {
		t.Fatal(err)
	}
	for _, p := range pointers {
		if err := e.Drag("sw1-eth1", p[0], p[1]); err != nil {
			t.Fatal(err)
		}

		d := math.Hypot(*iface.FX-sw.X, *iface.FY-sw.Y)
		if math.Abs(d-radius) > 1e-9 {
			t.Errorf("pointer %v: interface pinned %v from owner, want ring radius %v", p, d, radius)
		}

		// The pin keeps the pointer's angle from the owner center
		want := math.Atan2(p[1]-sw.Y, p[0]-sw.X)
		got := math.Atan2(*iface.FY-sw.Y, *iface.FX-sw.X)
		if math.Abs(want-got) > 1e-9 {
			t.Errorf("pointer %v: pin angle %v, want %v", p, got, want)
		}
	}
}

func TestOwnerlessInterfaceDragsFreely(t *testing.T) {
	g, _, e := testView(t)

	orphan := g.Node("orphan-eth0")
	if err := e.Drag("orphan-eth0", 77, 33); err != nil {
		t.Fatal(err)
	}
	if !orphan.Pinned() || *orphan.FX != 77 || *orphan.FY != 33 {
		t.Errorf("expected free pin at (77, 33), got %v", orphan)
	}
}

func TestHostDragPinsToPointer(t *testing.T) {
	g, _, e := testView(t)

	h := g.Node("h1")
	if err := e.DragStart("h1", h.X, h.Y); err != nil {
		t.Fatal(err)
	}
	if err := e.Drag("h1", 500, 400); err != nil {
		t.Fatal(err)
	}
	if *h.FX != 500 || *h.FY != 400 {
		t.Errorf("host pinned at (%v, %v), want (500, 400)", *h.FX, *h.FY)
	}
}

func TestReleaseCascades(t *testing.T) {
	g, _, e := testView(t)

	t.Run("releasing a switch frees its interfaces", func(t *testing.T) {
		for _, name := range []string{"sw1", "sw1-eth1", "sw1-eth2"} {
			g.Node(name).Pin(10, 10)
		}
		g.Node("h1").Pin(99, 99)

		if err := e.Release("sw1"); err != nil {
			t.Fatal(err)
		}

		for _, name := range []string{"sw1", "sw1-eth1", "sw1-eth2"} {
			if g.Node(name).Pinned() {
				t.Errorf("%s still pinned after switch release", name)
			}
		}
		if !g.Node("h1").Pinned() {
			t.Error("host lost its pin from an unrelated release")
		}
	})

	t.Run("releasing a host frees only the host", func(t *testing.T) {
		g.Node("h1").Pin(99, 99)
		g.Node("sw1-eth1").Pin(5, 5)

		if err := e.Release("h1"); err != nil {
			t.Fatal(err)
		}

		if g.Node("h1").Pinned() {
			t.Error("host still pinned after release")
		}
		if !g.Node("sw1-eth1").Pinned() {
			t.Error("interface lost its pin from a host release")
		}
	})
}

func TestGestureLifecycle(t *testing.T) {
	g, s, e := testView(t)

	t.Run("unknown node is an error", func(t *testing.T) {
		if err := e.DragStart("ghost", 0, 0); err == nil {
			t.Error("expected error for unknown node")
		}
		if err := e.Release("ghost"); err == nil {
			t.Error("expected error for unknown node")
		}
	})

	t.Run("drag start reheats the simulation", func(t *testing.T) {
		s.TickN(5000)
		if !s.Settled() {
			t.Fatal("simulation did not settle")
		}
		if err := e.DragStart("h1", 0, 0); err != nil {
			t.Fatal(err)
		}
		if s.Settled() {
			t.Error("expected simulation to run during gesture")
		}
		e.DragEnd("h1")
	})

	t.Run("drag without start begins implicitly", func(t *testing.T) {
		if err := e.Drag("h1", 10, 20); err != nil {
			t.Fatal(err)
		}
		if !g.Node("h1").Pinned() {
			t.Error("expected implicit gesture to pin the node")
		}
	})
}
