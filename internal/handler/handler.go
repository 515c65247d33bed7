package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"toposcope/internal/codec"
	"toposcope/internal/domain"
	"toposcope/internal/service"
	"toposcope/internal/view"
)

// SessionHandler handles session API requests
type SessionHandler struct {
	session *service.Session
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(session *service.Session) *SessionHandler {
	return &SessionHandler{session: session}
}

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetGraph returns a snapshot of the loaded graph with its integrity
// warnings. The snapshot is copied under the session lock so encoding it
// does not race the simulation loop.
func (h *SessionHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.session.GraphSnapshot(), http.StatusOK)
}

// GetFrame returns the current frame without advancing the simulation
func (h *SessionHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.session.Frame(), http.StatusOK)
}

// pointerRequest is one pointer gesture step
type pointerRequest struct {
	Action string  `json:"action"`
	Node   string  `json:"node,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Pointer dispatches a pointer gesture to the session
func (h *SessionHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	switch req.Action {
	case "drag_start":
		err = h.session.DragStart(req.Node, req.X, req.Y)
	case "drag":
		err = h.session.Drag(req.Node, req.X, req.Y)
	case "drag_end":
		h.session.DragEnd(req.Node)
	case "click":
		var detail view.Detail
		detail, err = h.session.Click(req.Node)
		if err == nil {
			writeJSON(w, detail, http.StatusOK)
			return
		}
	case "double_click":
		err = h.session.DoubleClick(req.Node)
	case "background_click":
		h.session.BackgroundClick()
	default:
		writeError(w, "Unknown action", fmt.Sprintf("unsupported pointer action %q", req.Action), http.StatusBadRequest)
		return
	}

	if err != nil {
		writeDomainError(w, "Pointer action failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// visibilityRequest carries toggle updates, absent fields left unchanged
type visibilityRequest struct {
	HideUnusedInterfaces  *bool `json:"hide_unused_interfaces,omitempty"`
	HideDisconnectedHosts *bool `json:"hide_disconnected_hosts,omitempty"`
}

// SetVisibility updates the visibility toggles
func (h *SessionHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.HideUnusedInterfaces != nil {
		h.session.SetHideUnusedInterfaces(*req.HideUnusedInterfaces)
	}
	if req.HideDisconnectedHosts != nil {
		h.session.SetHideDisconnectedHosts(*req.HideDisconnectedHosts)
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetViewport replaces the zoom/pan transform
func (h *SessionHandler) SetViewport(w http.ResponseWriter, r *http.Request) {
	var t view.Transform
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if t.K <= 0 {
		writeError(w, "Invalid viewport", "scale must be positive", http.StatusBadRequest)
		return
	}
	h.session.SetViewport(t)
	w.WriteHeader(http.StatusNoContent)
}

// ListLayouts returns the names of all layouts saved in the store
func (h *SessionHandler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	names, err := h.session.ListLayouts(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list layouts", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names, http.StatusOK)
}

// SaveLayout captures the current state under the named layout
func (h *SessionHandler) SaveLayout(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.session.SaveLayout(r.Context(), name); err != nil {
		writeDomainError(w, "Failed to save layout", err)
		return
	}
	writeJSON(w, map[string]string{"saved": name}, http.StatusOK)
}

// LoadLayout applies a saved layout to the session
func (h *SessionHandler) LoadLayout(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.session.LoadLayout(r.Context(), name); err != nil {
		writeDomainError(w, "Failed to load layout", err)
		return
	}
	writeJSON(w, map[string]string{"loaded": name}, http.StatusOK)
}

// ExportLayout writes the current state as a layout document file
func (h *SessionHandler) ExportLayout(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	layout := h.session.CaptureLayout()
	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/yaml")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=layout.%s", c.Format()))
	if err := c.Export(layout, w); err != nil {
		log.Printf("Failed to export layout: %v", err)
	}
}

// ImportLayout parses a layout document file and applies it to the session
func (h *SessionHandler) ImportLayout(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(r.PathValue("format"))
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	layout, err := c.Parse(r.Body)
	if err != nil {
		writeError(w, "Invalid layout document", err.Error(), http.StatusBadRequest)
		return
	}
	h.session.ApplyLayout(layout)
	writeJSON(w, map[string]int{"applied": len(layout.Nodes)}, http.StatusOK)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, msg, details string, status int) {
	writeJSON(w, ErrorResponse{Error: msg, Details: details}, status)
}

// writeDomainError maps domain error types onto HTTP statuses: validation
// failures are the client's fault, store failures are upstream's.
func writeDomainError(w http.ResponseWriter, msg string, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, msg, ve.Error(), http.StatusBadRequest)
		return
	}
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		writeError(w, msg, fe.Error(), http.StatusBadGateway)
		return
	}
	log.Printf("%s: %v", msg, err)
	writeError(w, msg, err.Error(), http.StatusInternalServerError)
}
