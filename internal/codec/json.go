package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"toposcope/internal/domain"
)

// JSONCodec handles JSON layout import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a layout from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Layout, error) {
	layout := domain.NewLayout()
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(layout); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if layout.Nodes == nil {
		layout.Nodes = make(map[string]domain.LayoutNode)
	}
	return layout, nil
}

// Export writes a layout as indented JSON
func (c *JSONCodec) Export(l *domain.Layout, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(l); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
