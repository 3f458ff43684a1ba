package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// applyShellPolicy normalizes the task set in shell mode: with a foreground
// task selected, only that task and the one keyed by the shell manifest URL
// may remain. Runs after the transitions that grow the task set (begin
// navigation, show loading error).
func applyShellPolicy(s types.BrowserState) types.BrowserState {
	if !s.IsShell || s.ForegroundTaskURL == nil {
		return s
	}

	foreground := *s.ForegroundTaskURL
	s.Tasks = s.Tasks.Filter(func(url string) bool {
		return url == foreground || (s.ShellManifestURL != "" && url == s.ShellManifestURL)
	})
	return s
}
