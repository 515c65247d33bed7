// Package domain defines the core domain types for the Toposcope topology
// visualization engine.
//
// This package contains the fundamental entities and value objects that
// represent a live network topology view: nodes, edges, the resolved graph,
// and persisted layouts.
//
// # Core Types
//
// Node represents a network entity (switch, interface, or host) together
// with its simulated position and optional pinned position. Switch and
// interface nodes carry type-specific attributes (datapath id, port number,
// hardware address, and so on).
//
// Edge represents a relationship between two nodes. Structural "interface"
// edges express switch-to-interface ownership; "link" edges express live
// data-plane connectivity. Resolved edges reference the graph's node objects
// directly so that position updates are visible everywhere without copying.
//
// Graph owns all nodes and edges for the lifetime of one topology view and
// maintains an adjacency index so ownership and degree lookups are O(1) or
// O(degree) rather than edge scans.
//
// # Layouts
//
// Layout is the persisted artifact exchanged with the remote layout store:
// a per-node map of positions, pins, and downlight state, plus the two
// visibility toggle settings. Applying a layout is a partial merge into the
// running view, never a replace-all.
//
// # Integrity
//
// Malformed input (an interface with no owning switch, an edge referencing
// an unknown node) degrades rather than aborts: the condition is recorded as
// an IntegrityWarning and the affected node keeps working with relaxed
// constraints.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Shared node ownership: one object per entity, referenced everywhere
package domain
