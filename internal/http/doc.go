// Package http provides the REST handlers for the kernel service.
//
// Endpoints map one-to-one onto kernel operations: navigation, foreground
// selection, loading-state updates, error display and eviction, and history
// management. Every mutating endpoint responds with the snapshot produced by
// the dispatched action.
package http
