package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// beginNavigation inserts or replaces the task for the navigation target,
// prepends the speculative history entry, and foregrounds the task.
// Repeating an identical begin replaces the entry rather than duplicating it.
func (r *Reducer) beginNavigation(s types.BrowserState, a Action) types.BrowserState {
	if a.Meta == nil || a.Meta.URL == "" {
		r.reporter.Report("navigate.missing_url", nil)
		return s
	}

	url := a.Meta.URL
	task := types.Task{
		BundleURL:    a.Meta.BundleURL,
		ManifestURL:  a.Meta.ManifestURL,
		Manifest:     a.Meta.Manifest,
		IsLoading:    false,
		InitialProps: a.Meta.InitialProps,
	}

	s.Tasks = s.Tasks.With(url, task)
	s.History = prependHistory(s.History, a.Meta.HistoryItem)
	s.ForegroundTaskURL = &url
	s.IsHomeVisible = false
	s = applyShellPolicy(s)
	return recomputeKernelLoading(s)
}

// setLoadingState updates one task's loading flag. A loading update for an
// evicted URL is a transient race and a deliberate no-op.
func setLoadingState(s types.BrowserState, url string, loading bool) types.BrowserState {
	task, ok := s.Tasks.Get(url)
	if !ok {
		return s
	}

	task.IsLoading = loading
	if loading {
		task.LoadingError = nil
	}
	s.Tasks = s.Tasks.With(url, task)
	return recomputeKernelLoading(s)
}

// showLoadingError merges the error into the task at its original URL, or
// synthesizes a fresh task holding only the error, then foregrounds it so
// the failure is visible as an error screen.
func (r *Reducer) showLoadingError(s types.BrowserState, e *types.LoadingError) types.BrowserState {
	if e == nil || e.OriginalURL == "" {
		r.reporter.Report("loading_error.missing_url", nil)
		return s
	}

	url := e.OriginalURL
	errCopy := *e

	task, ok := s.Tasks.Get(url)
	if ok {
		task.IsLoading = false
		task.LoadingError = &errCopy
		task.InitialProps = nil
	} else {
		task = types.Task{LoadingError: &errCopy}
	}

	s.Tasks = s.Tasks.With(url, task)
	s.ForegroundTaskURL = &url
	s.IsHomeVisible = false
	s = applyShellPolicy(s)
	return recomputeKernelLoading(s)
}

// clearTaskWithError evicts the failed task entirely and returns to home.
// Idempotent: an absent URL leaves the snapshot unchanged.
func clearTaskWithError(s types.BrowserState, url string) types.BrowserState {
	if !s.Tasks.Has(url) {
		return s
	}

	s.Tasks = s.Tasks.Without(url)
	s.ForegroundTaskURL = nil
	s.IsHomeVisible = true
	return recomputeKernelLoading(s)
}

// markUncaughtError forces isLoading off for the task, touching nothing
// else. Unknown URLs are a no-op.
func markUncaughtError(s types.BrowserState, url string) types.BrowserState {
	task, ok := s.Tasks.Get(url)
	if !ok {
		return s
	}

	task.IsLoading = false
	s.Tasks = s.Tasks.With(url, task)
	return recomputeKernelLoading(s)
}
