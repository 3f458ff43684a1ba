package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// foregroundURL selects the visible task. A nil URL always clears the
// selection; a non-nil URL absent from the task set is rejected to keep the
// foreground reference valid.
func (r *Reducer) foregroundURL(s types.BrowserState, url *string) types.BrowserState {
	if url != nil && !s.Tasks.Has(*url) {
		r.reporter.Report("foreground.unknown_url", map[string]interface{}{"url": *url})
		return s
	}

	if url == nil {
		s.ForegroundTaskURL = nil
	} else {
		u := *url
		s.ForegroundTaskURL = &u
	}
	s.IsHomeVisible = false
	return s
}

// foregroundHome shows the home surface. Shell mode has no home surface, so
// the operation is rejected there. The retained foreground task is kept;
// home visibility and a foreground task can coexist transiently.
func (r *Reducer) foregroundHome(s types.BrowserState) types.BrowserState {
	if s.IsShell {
		r.reporter.Report("foreground.home_in_shell", nil)
		return s
	}

	s.IsHomeVisible = true
	return s
}

// setShellProperties switches shell mode and records the designated
// manifest. Shell mode starts directly into its one task, so home is hidden.
func setShellProperties(s types.BrowserState, isShell bool, manifestURL string) types.BrowserState {
	s.IsShell = isShell
	s.ShellManifestURL = manifestURL
	s.IsHomeVisible = false
	return s
}
