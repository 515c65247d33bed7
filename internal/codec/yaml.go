package codec

import (
	"fmt"
	"io"
	"sort"

	"toposcope/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML layout import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlLayout represents the YAML structure for a layout document
type yamlLayout struct {
	Nodes         []yamlLayoutNode `yaml:"nodes"`
	OtherSettings yamlSettings     `yaml:"other_settings"`
}

type yamlLayoutNode struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	FX      *float64 `yaml:"fx,omitempty"`
	FY      *float64 `yaml:"fy,omitempty"`
	Downlit bool     `yaml:"downlit,omitempty"`
}

type yamlSettings struct {
	HideUnusedInterfaces  bool `yaml:"hide_unused_interfaces"`
	HideDisconnectedHosts bool `yaml:"hide_disconnected_hosts"`
}

// Parse imports a layout from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Layout, error) {
	var yl yamlLayout
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yl); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	layout := domain.NewLayout()
	for _, yn := range yl.Nodes {
		layout.SetNode(domain.LayoutNode{
			Name:    yn.Name,
			Type:    domain.NodeType(yn.Type),
			X:       yn.X,
			Y:       yn.Y,
			FX:      yn.FX,
			FY:      yn.FY,
			Downlit: yn.Downlit,
		})
	}
	layout.OtherSettings = domain.OtherSettings{
		HideUnusedInterfaces:  yl.OtherSettings.HideUnusedInterfaces,
		HideDisconnectedHosts: yl.OtherSettings.HideDisconnectedHosts,
	}
	return layout, nil
}

// Export writes a layout as YAML with nodes sorted by name
func (c *YAMLCodec) Export(l *domain.Layout, w io.Writer) error {
	yl := yamlLayout{
		Nodes: make([]yamlLayoutNode, 0, len(l.Nodes)),
		OtherSettings: yamlSettings{
			HideUnusedInterfaces:  l.OtherSettings.HideUnusedInterfaces,
			HideDisconnectedHosts: l.OtherSettings.HideDisconnectedHosts,
		},
	}
	for _, ln := range l.Nodes {
		yl.Nodes = append(yl.Nodes, yamlLayoutNode{
			Name:    ln.Name,
			Type:    string(ln.Type),
			X:       ln.X,
			Y:       ln.Y,
			FX:      ln.FX,
			FY:      ln.FY,
			Downlit: ln.Downlit,
		})
	}
	sort.Slice(yl.Nodes, func(i, j int) bool { return yl.Nodes[i].Name < yl.Nodes[j].Name })

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yl); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
