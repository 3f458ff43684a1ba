// Package types defines the shared data model for the browser kernel.
//
// The root record is BrowserState, an immutable snapshot of everything the
// kernel tracks: loaded tasks, navigation history, foreground selection,
// home-screen visibility, and shell-mode properties. Snapshots are replaced
// wholesale on every transition; no record is mutated in place.
//
// Field names in the JSON tags are the stable contract consumed by the
// frontend and the persistence layer. Do not rename them.
package types
