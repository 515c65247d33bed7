package domain

import "fmt"

// FetchError wraps a transport or parse failure while talking to the
// topology source or the layout store
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports invalid user input rejected before any network
// call is made
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// WarningKind classifies graph integrity problems
type WarningKind string

const (
	// WarningOwnerlessInterface marks an interface node with no incoming
	// ownership edge from a switch
	WarningOwnerlessInterface WarningKind = "ownerless_interface"

	// WarningMultipleOwners marks an interface claimed by more than one
	// switch; the first owner wins
	WarningMultipleOwners WarningKind = "multiple_owners"

	// WarningUnknownEndpoint marks an edge referencing a node name that
	// does not exist in the snapshot; the edge is dropped
	WarningUnknownEndpoint WarningKind = "unknown_endpoint"
)

// IntegrityWarning records a non-fatal graph inconsistency. The affected
// node stays in the view with relaxed constraints.
type IntegrityWarning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"`
	Detail  string      `json:"detail,omitempty"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Subject, w.Detail)
}
