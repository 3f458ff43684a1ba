// Package server wires the kernel service together: reducer, store, history
// persistence, manifest loader, REST routes, WebSocket stream, and metrics.
package server
