// Package handler exposes the diagram session over HTTP.
//
// # Endpoints
//
// The session API serves the graph, the current frame, pointer gestures,
// selection, visibility toggles, the viewport, and layout save/load/list
// against the configured layout store. Export and import endpoints move
// layout documents as JSON or YAML files.
//
// The store API is a self-contained implementation of the layout store
// contract backed by a repository, so a deployment without an external
// store can point the session at its own process.
//
// # Middleware
//
// Chain composes the Recover, CORS, and Logger middleware around a mux.
package handler
