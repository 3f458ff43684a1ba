// Package history persists the navigation history log to disk.
//
// The log is stored as one JSON document. Writes go through a temp file and
// rename so a crashed write never leaves a torn document. The manager
// returns the canonical persisted list after every write; the caller
// dispatches it back into the kernel as the then-phase of the owning async
// operation, overwriting the kernel's speculative insert.
//
// Storage Structure:
//   - Path: {storage}/history.json
//   - Newest-first, one entry per URL
package history
