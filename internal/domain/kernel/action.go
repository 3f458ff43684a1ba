package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// Kind identifies a logical operation on the kernel.
type Kind string

const (
	KindNavigateToURL         Kind = "navigateToUrlAsync"
	KindForegroundURL         Kind = "foregroundUrlAsync"
	KindForegroundHome        Kind = "foregroundHomeAsync"
	KindSetKernelLoadingState Kind = "setKernelLoadingState"
	KindSetLoadingState       Kind = "setLoadingState"
	KindSetShellProperties    Kind = "setShellPropertiesAsync"
	KindSetInitialShellURL    Kind = "setInitialShellUrl"
	KindLoadHistory           Kind = "loadHistoryAsync"
	KindClearHistory          Kind = "clearHistoryAsync"
	KindShowLoadingError      Kind = "showLoadingError"
	KindClearTaskWithError    Kind = "clearTaskWithError"
	KindLogUncaughtError      Kind = "logUncaughtError"
)

// Phase distinguishes the settlement phases of an async operation. Single
// actions carry PhaseNone.
type Phase string

const (
	PhaseNone  Phase = ""
	PhaseBegin Phase = "begin"
	PhaseThen  Phase = "then"
	PhaseCatch Phase = "catch"
)

// NavigationMeta is the payload of a begun navigation: everything needed to
// materialize the task record and its speculative history entry.
type NavigationMeta struct {
	URL          string            `json:"url"`
	BundleURL    string            `json:"bundleUrl"`
	ManifestURL  string            `json:"manifestUrl"`
	Manifest     types.Document    `json:"manifest,omitempty"`
	InitialProps types.Document    `json:"initialProps,omitempty"`
	HistoryItem  types.HistoryItem `json:"historyItem"`
}

// Action is a tagged variant dispatched into the reducer. Kind selects the
// operation, Phase the settlement phase; the remaining fields are per-kind
// payload and unused fields stay zero.
type Action struct {
	Kind             Kind                `json:"kind"`
	Phase            Phase               `json:"phase,omitempty"`
	Meta             *NavigationMeta     `json:"meta,omitempty"`
	URL              *string             `json:"url,omitempty"`
	IsLoading        bool                `json:"isLoading,omitempty"`
	IsShell          bool                `json:"isShell,omitempty"`
	ShellManifestURL string              `json:"shellManifestUrl,omitempty"`
	History          []types.HistoryItem `json:"history,omitempty"`
	Error            *types.LoadingError `json:"error,omitempty"`
	Reason           string              `json:"reason,omitempty"`
}

// NavigateBegin starts tracking a navigation target.
func NavigateBegin(meta NavigationMeta) Action {
	return Action{Kind: KindNavigateToURL, Phase: PhaseBegin, Meta: &meta}
}

// NavigateThen carries the persisted canonical history list. It overwrites
// the speculative head-insert made at begin time; the resolution always wins.
func NavigateThen(history []types.HistoryItem) Action {
	return Action{Kind: KindNavigateToURL, Phase: PhaseThen, History: history}
}

// NavigateCatch reports a failed navigation persistence.
func NavigateCatch(err error) Action {
	a := Action{Kind: KindNavigateToURL, Phase: PhaseCatch}
	if err != nil {
		a.Reason = err.Error()
	}
	return a
}

// ForegroundURL selects the visible task. A nil url clears the selection;
// both cases hide the home surface.
func ForegroundURL(url *string) Action {
	return Action{Kind: KindForegroundURL, URL: url}
}

// ForegroundHome shows the home surface.
func ForegroundHome() Action {
	return Action{Kind: KindForegroundHome}
}

// SetKernelLoadingState sets the aggregate loading flag directly.
func SetKernelLoadingState(loading bool) Action {
	return Action{Kind: KindSetKernelLoadingState, IsLoading: loading}
}

// SetLoadingState updates one task's loading flag.
func SetLoadingState(url string, loading bool) Action {
	return Action{Kind: KindSetLoadingState, URL: &url, IsLoading: loading}
}

// SetShellProperties switches single-app mode on or off.
func SetShellProperties(isShell bool, manifestURL string) Action {
	return Action{Kind: KindSetShellProperties, IsShell: isShell, ShellManifestURL: manifestURL}
}

// SetInitialShellURL records the shell's initial URL.
func SetInitialShellURL(url string) Action {
	return Action{Kind: KindSetInitialShellURL, URL: &url}
}

// LoadHistoryThen hydrates the history log from the persisted copy.
func LoadHistoryThen(history []types.HistoryItem) Action {
	return Action{Kind: KindLoadHistory, Phase: PhaseThen, History: history}
}

// ClearHistoryThen empties the history log after a successful wipe.
func ClearHistoryThen() Action {
	return Action{Kind: KindClearHistory, Phase: PhaseThen}
}

// ShowLoadingError surfaces a load failure as a foregrounded error task.
func ShowLoadingError(e types.LoadingError) Action {
	return Action{Kind: KindShowLoadingError, Error: &e}
}

// ClearTaskWithError evicts a failed task and returns to home.
func ClearTaskWithError(url string) Action {
	return Action{Kind: KindClearTaskWithError, URL: &url}
}

// LogUncaughtError marks a task as no longer loading after an uncaught
// exception was reported for it.
func LogUncaughtError(url string) Action {
	return Action{Kind: KindLogUncaughtError, URL: &url}
}
