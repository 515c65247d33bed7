// Package topology loads the read-only topology snapshot that seeds a view.
//
// The snapshot is fetched once, either from the controller's topology URL or
// from a local JSON file with the same shape. Any transport or parse error
// aborts initialization; no partial graph is ever installed.
package topology

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"toposcope/internal/domain"
)

// snapshot is the wire format produced by the topology source
type snapshot struct {
	Nodes []snapshotNode `json:"nodes"`
	Links []snapshotEdge `json:"links"`
}

type snapshotNode struct {
	Name string `json:"name"`
	Type string `json:"type"`

	// Switch attributes
	DPID       string `json:"dpid,omitempty"`
	Connection string `json:"connection,omitempty"`
	OFPVersion string `json:"ofp_version,omitempty"`
	Hardware   string `json:"hardware,omitempty"`
	Software   string `json:"software,omitempty"`

	// Interface attributes
	PortNumber      uint32 `json:"port_number,omitempty"`
	HardwareAddress string `json:"hardware_address,omitempty"`
}

type snapshotEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Client fetches topology snapshots over HTTP
type Client struct {
	url string
	hc  *http.Client
}

// NewClient creates a topology client for the given snapshot URL
func NewClient(url string) *Client {
	return &Client{
		url: url,
		hc:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves and resolves the topology snapshot. Failures are returned
// as *domain.FetchError and are fatal for view initialization.
func (c *Client) Fetch(ctx context.Context) (*domain.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: c.url, Err: err}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: c.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var snap snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &domain.FetchError{URL: c.url, Err: fmt.Errorf("decode snapshot: %w", err)}
	}

	return buildGraph(&snap)
}

// LoadFile reads a topology snapshot from a local JSON file. Used when the
// server runs against a saved snapshot instead of a live controller.
func LoadFile(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.FetchError{URL: path, Err: err}
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &domain.FetchError{URL: path, Err: fmt.Errorf("decode snapshot: %w", err)}
	}

	return buildGraph(&snap)
}

func buildGraph(snap *snapshot) (*domain.Graph, error) {
	g := domain.NewGraph()

	for _, sn := range snap.Nodes {
		node := domain.NewNode(sn.Name, nodeType(sn.Type))
		switch node.Type {
		case domain.NodeTypeSwitch:
			node.Switch = &domain.SwitchAttrs{
				DPID:       sn.DPID,
				Connection: sn.Connection,
				OFPVersion: sn.OFPVersion,
				Hardware:   sn.Hardware,
				Software:   sn.Software,
			}
		case domain.NodeTypeInterface:
			node.Interface = &domain.InterfaceAttrs{
				PortNumber:      sn.PortNumber,
				HardwareAddress: sn.HardwareAddress,
			}
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("add node %s: %w", sn.Name, err)
		}
	}

	for _, se := range snap.Links {
		g.AddEdge(domain.NewEdge(se.Source, se.Target, edgeType(se.Type)))
	}

	g.Validate()
	return g, nil
}

// nodeType maps a wire type to a domain type. Unclassified entities are
// treated as hosts, which also gives them unconstrained drag behavior.
func nodeType(t string) domain.NodeType {
	switch t {
	case string(domain.NodeTypeSwitch):
		return domain.NodeTypeSwitch
	case string(domain.NodeTypeInterface):
		return domain.NodeTypeInterface
	default:
		return domain.NodeTypeHost
	}
}

func edgeType(t string) domain.EdgeType {
	if t == string(domain.EdgeTypeInterface) {
		return domain.EdgeTypeInterface
	}
	return domain.EdgeTypeLink
}
