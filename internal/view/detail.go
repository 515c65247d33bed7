package view

import (
	"sort"

	"toposcope/internal/domain"
)

// Detail is the content of the detail panel. Exactly one of the typed
// sub-structs is set for switch and interface selections; hosts carry only
// the name.
type Detail struct {
	Kind      string           `json:"kind"`
	Name      string           `json:"name,omitempty"`
	Switch    *SwitchDetail    `json:"switch,omitempty"`
	Interface *InterfaceDetail `json:"interface,omitempty"`
}

// SwitchDetail lists a switch's attributes and its owned interfaces.
type SwitchDetail struct {
	DPID       string   `json:"dpid,omitempty"`
	Connection string   `json:"connection,omitempty"`
	OFPVersion string   `json:"ofp_version,omitempty"`
	Hardware   string   `json:"hardware,omitempty"`
	Software   string   `json:"software,omitempty"`
	Interfaces []string `json:"interfaces"`
}

// InterfaceDetail lists an interface's attributes and its owning switch.
type InterfaceDetail struct {
	PortNumber      uint32 `json:"port_number"`
	HardwareAddress string `json:"hardware_address,omitempty"`
	Owner           string `json:"owner,omitempty"`
}

// DefaultDetail is the panel content when nothing is selected.
func DefaultDetail() Detail {
	return Detail{Kind: "default"}
}

// DetailFor builds the panel content for a node selection.
func DetailFor(g *domain.Graph, n *domain.Node) Detail {
	d := Detail{Kind: string(n.Type), Name: n.Name}
	switch n.Type {
	case domain.NodeTypeSwitch:
		sd := &SwitchDetail{Interfaces: []string{}}
		if n.Switch != nil {
			sd.DPID = n.Switch.DPID
			sd.Connection = n.Switch.Connection
			sd.OFPVersion = n.Switch.OFPVersion
			sd.Hardware = n.Switch.Hardware
			sd.Software = n.Switch.Software
		}
		for _, iface := range g.InterfacesOf(n.Name) {
			sd.Interfaces = append(sd.Interfaces, iface.Name)
		}
		sort.Strings(sd.Interfaces)
		d.Switch = sd
	case domain.NodeTypeInterface:
		id := &InterfaceDetail{}
		if n.Interface != nil {
			id.PortNumber = n.Interface.PortNumber
			id.HardwareAddress = n.Interface.HardwareAddress
		}
		if owner, ok := g.OwnerOf(n.Name); ok {
			id.Owner = owner.Name
		}
		d.Interface = id
	}
	return d
}
