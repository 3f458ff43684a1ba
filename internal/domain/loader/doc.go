// Package loader is the transport collaborator that turns navigations into
// kernel action phases.
//
// Navigate fetches the manifest document for a target URL over HTTP (resty
// on a retrying transport), then drives the kernel through the phases of
// navigateToUrlAsync:
//   - begin: the fetched manifest, bundle URL, and speculative history item
//   - then: the canonical history list re-read from persistence
//   - catch: persistence failure (history left as-is, loading flag cleared)
//
// A fetch failure never reaches the begin phase; it is surfaced directly as
// showLoadingError with the HTTP status code, so the user still sees an
// error screen for the attempted URL.
//
// The kernel itself never blocks: all timeouts and retries live here.
package loader
