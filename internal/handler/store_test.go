package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"toposcope/internal/domain"
	"toposcope/internal/layoutstore"
	"toposcope/internal/repository"
)

type memRepo struct {
	layouts map[string]*domain.Layout
}

func (m *memRepo) List(ctx context.Context) ([]string, error) {
	names := []string{}
	for name := range m.layouts {
		names = append(names, name)
	}
	return names, nil
}

func (m *memRepo) Get(ctx context.Context, name string) (*domain.Layout, error) {
	l, ok := m.layouts[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

func (m *memRepo) Put(ctx context.Context, name string, l *domain.Layout) error {
	m.layouts[name] = l
	return nil
}

func (m *memRepo) Close() error { return nil }

func storeServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()
	repo := &memRepo{layouts: make(map[string]*domain.Layout)}
	h := NewStoreHandler(repo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/layouts", h.List)
	mux.HandleFunc("GET /api/layouts/{name}", h.Get)
	mux.HandleFunc("POST /api/layouts/{name}", h.Put)

	srv := httptest.NewServer(Chain(mux, Recover, CORS, Logger))
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestStoreContract(t *testing.T) {
	srv, _ := storeServer(t)
	base := srv.URL + "/api/layouts"

	layout := domain.NewLayout()
	fx, fy := 10.0, 20.0
	layout.SetNode(domain.LayoutNode{Name: "sw1", Type: domain.NodeTypeSwitch, X: 10, Y: 20, FX: &fx, FY: &fy})

	body, _ := json.Marshal(layout)
	resp, err := http.Post(base+"/prod", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	listResp, err := http.Get(base)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	json.NewDecoder(listResp.Body).Decode(&names)
	listResp.Body.Close()
	if len(names) != 1 || names[0] != "prod" {
		t.Errorf("names = %v", names)
	}

	getResp, err := http.Get(base + "/prod")
	if err != nil {
		t.Fatal(err)
	}
	var got domain.Layout
	json.NewDecoder(getResp.Body).Decode(&got)
	getResp.Body.Close()
	if sw, ok := got.NodeState("sw1"); !ok || sw.FX == nil || *sw.FX != 10 {
		t.Errorf("stored layout state = %+v, ok=%v", got, ok)
	}
}

func TestStoreGetMissing(t *testing.T) {
	srv, _ := storeServer(t)
	resp, err := http.Get(srv.URL + "/api/layouts/ghost")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestStoreRejectsBadBody(t *testing.T) {
	srv, repo := storeServer(t)
	resp, err := http.Post(srv.URL+"/api/layouts/prod", "application/json", bytes.NewReader([]byte("{nope")))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if len(repo.layouts) != 0 {
		t.Error("malformed body must not be stored")
	}
}

// The bundled store and the store client speak the same contract, so a
// session can point at its own process.
func TestStoreServesClient(t *testing.T) {
	srv, _ := storeServer(t)
	c := layoutstore.NewClient(srv.URL + "/api/layouts")
	ctx := context.Background()

	l := domain.NewLayout()
	l.SetNode(domain.LayoutNode{Name: "h1", Type: domain.NodeTypeHost, X: 3, Y: 4})
	if err := c.Put(ctx, "self", l); err != nil {
		t.Fatalf("Put through client: %v", err)
	}

	names, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List through client: %v", err)
	}
	if len(names) != 1 || names[0] != "self" {
		t.Errorf("names = %v", names)
	}

	got, err := c.Get(ctx, "self")
	if err != nil {
		t.Fatalf("Get through client: %v", err)
	}
	if _, ok := got.NodeState("h1"); !ok {
		t.Error("layout lost through client round trip")
	}
}
