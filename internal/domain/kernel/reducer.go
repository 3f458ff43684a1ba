package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// Reducer computes state transitions. It holds no mutable state of its own;
// the only dependency is the diagnostic reporter.
type Reducer struct {
	reporter Reporter
}

// New creates a reducer. A nil reporter is replaced with a no-op.
func New(reporter Reporter) *Reducer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Reducer{reporter: reporter}
}

// Apply produces the next snapshot for one action. Every action has a total,
// exception-free result: unknown kinds and unknown URLs leave the snapshot
// unchanged and report a diagnostic.
func (r *Reducer) Apply(s types.BrowserState, a Action) types.BrowserState {
	switch a.Kind {
	case KindNavigateToURL:
		switch a.Phase {
		case PhaseBegin:
			return r.beginNavigation(s, a)
		case PhaseThen:
			return replaceHistory(s, a.History)
		case PhaseCatch:
			r.reporter.Report("navigate.failed", map[string]interface{}{"reason": a.Reason})
			s.IsKernelLoading = false
			return s
		}
		r.reporter.Report("action.unknown_phase", map[string]interface{}{"kind": string(a.Kind), "phase": string(a.Phase)})
		return s

	case KindForegroundURL:
		return r.foregroundURL(s, a.URL)

	case KindForegroundHome:
		return r.foregroundHome(s)

	case KindSetKernelLoadingState:
		s.IsKernelLoading = a.IsLoading
		return s

	case KindSetLoadingState:
		if a.URL == nil {
			return s
		}
		return setLoadingState(s, *a.URL, a.IsLoading)

	case KindSetShellProperties:
		return setShellProperties(s, a.IsShell, a.ShellManifestURL)

	case KindSetInitialShellURL:
		if a.URL == nil {
			return s
		}
		s.ShellInitialURL = *a.URL
		return s

	case KindLoadHistory:
		if a.Phase == PhaseThen {
			return replaceHistory(s, a.History)
		}
		return s

	case KindClearHistory:
		if a.Phase == PhaseThen {
			s.History = []types.HistoryItem{}
		}
		return s

	case KindShowLoadingError:
		return r.showLoadingError(s, a.Error)

	case KindClearTaskWithError:
		if a.URL == nil {
			return s
		}
		return clearTaskWithError(s, *a.URL)

	case KindLogUncaughtError:
		if a.URL == nil {
			return s
		}
		return markUncaughtError(s, *a.URL)
	}

	r.reporter.Report("action.unknown_kind", map[string]interface{}{"kind": string(a.Kind)})
	return s
}

// recomputeKernelLoading re-derives the aggregate loading flag from the task
// set. Called by every transition that can touch a task's loading state.
func recomputeKernelLoading(s types.BrowserState) types.BrowserState {
	loading := false
	s.Tasks.Range(func(_ string, t types.Task) bool {
		if t.IsLoading {
			loading = true
			return false
		}
		return true
	})
	s.IsKernelLoading = loading
	return s
}
