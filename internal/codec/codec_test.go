package codec

import (
	"bytes"
	"strings"
	"testing"

	"toposcope/internal/domain"
)

func exportLayout() *domain.Layout {
	l := domain.NewLayout()
	fx, fy := 320.0, 180.0
	l.SetNode(domain.LayoutNode{Name: "sw1", Type: domain.NodeTypeSwitch, X: 320, Y: 180, FX: &fx, FY: &fy})
	l.SetNode(domain.LayoutNode{Name: "sw1-eth1", Type: domain.NodeTypeInterface, X: 344, Y: 180, Downlit: true})
	l.OtherSettings.HideDisconnectedHosts = true
	return l
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"json", "yaml", "yml"} {
		if _, err := ForFormat(format); err != nil {
			t.Errorf("ForFormat(%q): %v", format, err)
		}
	}
	if _, err := ForFormat("toml"); err == nil {
		t.Error("ForFormat(toml): want error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := NewJSONCodec()
	var buf bytes.Buffer
	if err := c.Export(exportLayout(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sw, ok := got.NodeState("sw1")
	if !ok || sw.FX == nil || *sw.FX != 320 {
		t.Errorf("sw1 state = %+v, ok=%v", sw, ok)
	}
	iface, _ := got.NodeState("sw1-eth1")
	if iface.FX != nil || !iface.Downlit {
		t.Errorf("sw1-eth1 state = %+v", iface)
	}
	if !got.OtherSettings.HideDisconnectedHosts {
		t.Error("toggle state lost")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	c := NewYAMLCodec()
	var buf bytes.Buffer
	if err := c.Export(exportLayout(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sw, ok := got.NodeState("sw1")
	if !ok || sw.FY == nil || *sw.FY != 180 {
		t.Errorf("sw1 state = %+v, ok=%v", sw, ok)
	}
	if !got.OtherSettings.HideDisconnectedHosts {
		t.Error("toggle state lost")
	}
}

func TestYAMLExportDeterministic(t *testing.T) {
	c := NewYAMLCodec()
	var a, b bytes.Buffer
	if err := c.Export(exportLayout(), &a); err != nil {
		t.Fatal(err)
	}
	if err := c.Export(exportLayout(), &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("two exports of the same layout differ")
	}
	if !strings.Contains(a.String(), "hide_disconnected_hosts: true") {
		t.Errorf("export missing toggle key:\n%s", a.String())
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := NewJSONCodec().Parse(strings.NewReader("{nope")); err == nil {
		t.Error("JSON parse of malformed input: want error")
	}
	if _, err := NewYAMLCodec().Parse(strings.NewReader("{ unclosed")); err == nil {
		t.Error("YAML parse of malformed input: want error")
	}
}
