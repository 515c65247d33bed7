package view

import (
	"fmt"
	"strings"

	"toposcope/internal/domain"
)

// EscapeName escapes a node name into an identifier-safe form. Every byte
// outside [0-9A-Za-z] is replaced by an underscore followed by its two-digit
// lowercase hex value, which keeps distinct names distinct and the escaping
// reversible ("s1-eth0" and "s1_eth0" never collide).
func EscapeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02x", c)
	}
	return b.String()
}

// UnescapeName reverses EscapeName.
func UnescapeName(escaped string) (string, error) {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(escaped) {
			return "", fmt.Errorf("truncated escape at offset %d in %q", i, escaped)
		}
		var v byte
		if _, err := fmt.Sscanf(escaped[i+1:i+3], "%02x", &v); err != nil {
			return "", fmt.Errorf("bad escape %q at offset %d in %q", escaped[i:i+3], i, escaped)
		}
		b.WriteByte(v)
		i += 2
	}
	return b.String(), nil
}

// ElementID returns the scene identifier for a node: the node type, a dash,
// and the escaped name. Node types contain no dashes and escaped names
// contain only [0-9A-Za-z_], so the first dash always splits cleanly.
func ElementID(t domain.NodeType, name string) string {
	return string(t) + "-" + EscapeName(name)
}

// SplitElementID recovers the node type and original name from an element id.
func SplitElementID(id string) (domain.NodeType, string, error) {
	i := strings.IndexByte(id, '-')
	if i < 0 {
		return "", "", fmt.Errorf("element id %q has no type prefix", id)
	}
	name, err := UnescapeName(id[i+1:])
	if err != nil {
		return "", "", err
	}
	return domain.NodeType(id[:i]), name, nil
}

// LineID returns the scene identifier for an edge between two named nodes.
func LineID(e *domain.Edge) string {
	return string(e.Type) + "-" + EscapeName(e.Source) + "-" + EscapeName(e.Target)
}
