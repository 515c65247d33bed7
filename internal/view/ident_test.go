package view

import (
	"testing"

	"toposcope/internal/domain"
)

func TestEscapeNameRoundTrip(t *testing.T) {
	names := []string{
		"sw1",
		"sw1-eth0",
		"sw1_eth0",
		"00:00:00:00:00:00:00:01",
		"15:1f:99:2f:a7:5c",
		"host with spaces",
		"",
	}
	seen := map[string]string{}
	for _, name := range names {
		esc := EscapeName(name)
		for i := 0; i < len(esc); i++ {
			c := esc[i]
			if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_') {
				t.Errorf("EscapeName(%q) = %q contains unsafe byte %q", name, esc, c)
			}
		}
		if prev, dup := seen[esc]; dup {
			t.Errorf("names %q and %q escape to the same id %q", prev, name, esc)
		}
		seen[esc] = name
		got, err := UnescapeName(esc)
		if err != nil {
			t.Fatalf("UnescapeName(%q): %v", esc, err)
		}
		if got != name {
			t.Errorf("round trip of %q: got %q", name, got)
		}
	}
}

func TestUnescapeNameRejectsMalformed(t *testing.T) {
	for _, esc := range []string{"_", "_0", "sw_zz", "sw_"} {
		if _, err := UnescapeName(esc); err == nil {
			t.Errorf("UnescapeName(%q): want error", esc)
		}
	}
}

func TestElementIDSplit(t *testing.T) {
	id := ElementID(domain.NodeTypeInterface, "sw1-eth0")
	typ, name, err := SplitElementID(id)
	if err != nil {
		t.Fatalf("SplitElementID(%q): %v", id, err)
	}
	if typ != domain.NodeTypeInterface || name != "sw1-eth0" {
		t.Errorf("SplitElementID(%q) = (%q, %q)", id, typ, name)
	}
}

func TestElementIDsDistinct(t *testing.T) {
	a := ElementID(domain.NodeTypeInterface, "sw1-eth0")
	b := ElementID(domain.NodeTypeInterface, "sw1_eth0")
	if a == b {
		t.Errorf("distinct names share element id %q", a)
	}
}
