// Package store is the dispatcher that drives the kernel reducer.
//
// The store holds the current BrowserState snapshot and applies actions
// strictly one at a time: each dispatch reads one snapshot, runs the reducer,
// and installs the result atomically. Readers always observe a complete
// snapshot, never a partial update.
//
// Subscribers receive the snapshot produced by each transition over a
// buffered channel; a slow subscriber drops intermediate snapshots rather
// than blocking dispatch.
//
// Example Usage:
//
//	st := store.New(kernel.New(reporter)).WithMetrics(metrics)
//	next := st.Dispatch(kernel.ForegroundHome())
//	id, ch := st.Subscribe()
//	defer st.Unsubscribe(id)
package store
