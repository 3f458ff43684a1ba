// Package kernel implements the browser kernel state machine.
//
// The kernel is a pure reducer: given the current BrowserState snapshot and
// one action, it produces the next snapshot. It is the single source of
// truth reconciling overlapping asynchronous operations (navigation,
// loading-state updates, error reporting, history persistence) into one
// consistent state.
//
// Responsibilities, sequenced inside a single transition:
//   - Task store: create, update, and evict task entries keyed by URL
//   - History log: deduplicated, newest-first record of visited destinations
//   - Foreground/home selector: which task is visible, or the home surface
//   - Shell policy guard: in single-app mode, restrict the task set to the
//     foreground task plus the designated shell manifest
//
// Invariants held after every transition:
//   - isKernelLoading equals "any task is loading" (re-derived, never drifted)
//   - history holds at most one item per URL, newest first
//   - in shell mode with a foreground task, no other task survives except
//     the one keyed by the shell manifest URL
//
// Actions referencing an unknown URL are recoverable no-ops: the snapshot is
// returned unchanged and a diagnostic goes to the Reporter. Out-of-order
// delivery of async phases is expected and tolerated; no transition is ever
// fatal.
//
// Example Usage:
//
//	r := kernel.New(reporter)
//	next := r.Apply(prev, kernel.NavigateBegin(meta))
package kernel
