// Package codec serializes layout documents for export and import outside
// the layout store, so a layout can be checked into a repo or handed to
// another deployment as a file.
package codec

import (
	"fmt"
	"io"

	"toposcope/internal/domain"
)

// Importer parses a layout document from a serialized form
type Importer interface {
	Parse(r io.Reader) (*domain.Layout, error)
	Format() string
}

// Exporter writes a layout document in a serialized form
type Exporter interface {
	Export(l *domain.Layout, w io.Writer) error
	Format() string
}

// ForFormat returns the codec registered for a format identifier
func ForFormat(format string) (interface {
	Importer
	Exporter
}, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported layout format %q", format)
}
