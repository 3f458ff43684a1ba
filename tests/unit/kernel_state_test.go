package unit

import (
	"testing"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nav(url string) kernel.Action {
	return kernel.NavigateBegin(kernel.NavigationMeta{
		URL:         url,
		BundleURL:   url + "/bundle.js",
		ManifestURL: url + "/manifest.json",
		HistoryItem: types.HistoryItem{URL: url, BundleURL: url + "/bundle.js"},
	})
}

// requireInvariants asserts the conditions that must hold after every
// transition, regardless of the action sequence that produced the snapshot.
func requireInvariants(t *testing.T, s types.BrowserState) {
	t.Helper()

	// isKernelLoading == OR of every task's isLoading
	anyLoading := false
	s.Tasks.Range(func(_ string, task types.Task) bool {
		if task.IsLoading {
			anyLoading = true
		}
		return true
	})
	require.Equal(t, anyLoading, s.IsKernelLoading, "kernel loading flag drifted")

	// no two history entries share a URL
	seen := make(map[string]bool)
	for _, item := range s.History {
		require.False(t, seen[item.URL], "duplicate history entry for %s", item.URL)
		seen[item.URL] = true
	}

	// shell mode: only foreground and shell manifest tasks survive
	if s.IsShell && s.ForegroundTaskURL != nil {
		s.Tasks.Range(func(url string, _ types.Task) bool {
			require.True(t, url == *s.ForegroundTaskURL || url == s.ShellManifestURL,
				"task %s violates shell policy", url)
			return true
		})
	}
}

func TestNavigationScenario(t *testing.T) {
	r := kernel.New(nil)
	s := types.NewBrowserState()

	for _, a := range []kernel.Action{nav("https://a"), nav("https://b"), nav("https://a")} {
		s = r.Apply(s, a)
		requireInvariants(t, s)
	}

	require.Len(t, s.History, 2)
	assert.Equal(t, "https://a", s.History[0].URL)
	assert.Equal(t, "https://b", s.History[1].URL)
	assert.True(t, s.Tasks.Has("https://a"))
	assert.True(t, s.Tasks.Has("https://b"))
	assert.Equal(t, "https://a", s.ForegroundURL())
}

func TestLoadingStateOnEmptyState(t *testing.T) {
	r := kernel.New(nil)
	s := r.Apply(types.NewBrowserState(), kernel.SetLoadingState("https://x", true))

	assert.False(t, s.IsKernelLoading)
	assert.Equal(t, 0, s.Tasks.Len())
	requireInvariants(t, s)
}

func TestLoadingErrorOnEmptyState(t *testing.T) {
	r := kernel.New(nil)
	s := r.Apply(types.NewBrowserState(), kernel.ShowLoadingError(types.LoadingError{
		OriginalURL: "https://a",
		Code:        404,
	}))

	task, ok := s.Tasks.Get("https://a")
	require.True(t, ok)
	require.NotNil(t, task.LoadingError)
	assert.Equal(t, 404, task.LoadingError.Code)
	assert.False(t, task.IsLoading)
	assert.Equal(t, "https://a", s.ForegroundURL())
	assert.False(t, s.IsHomeVisible)
	requireInvariants(t, s)
}

func TestClearTaskScenario(t *testing.T) {
	r := kernel.New(nil)
	s := r.Apply(types.NewBrowserState(), nav("https://a"))

	s = r.Apply(s, kernel.ClearTaskWithError("https://a"))
	assert.True(t, s.IsHomeVisible)
	assert.Nil(t, s.ForegroundTaskURL)
	assert.False(t, s.Tasks.Has("https://a"))
	requireInvariants(t, s)

	// Idempotent for the now-absent URL.
	again := r.Apply(s, kernel.ClearTaskWithError("https://a"))
	assert.Equal(t, s.Tasks.Len(), again.Tasks.Len())
	assert.Equal(t, s.IsHomeVisible, again.IsHomeVisible)
}

func TestInvariantsAcrossInterleavedPhases(t *testing.T) {
	r := kernel.New(nil)
	s := types.NewBrowserState()

	// Two logical navigations interleaving their phases, plus stale updates
	// for evicted URLs. Every intermediate snapshot must satisfy the
	// invariants.
	urlB := "https://b"
	sequence := []kernel.Action{
		nav("https://a"),
		kernel.SetLoadingState("https://a", true),
		nav("https://b"),
		kernel.SetLoadingState("https://b", true),
		kernel.NavigateThen([]types.HistoryItem{{URL: "https://b"}, {URL: "https://a"}}),
		kernel.SetLoadingState("https://stale", false), // evicted long ago
		kernel.SetLoadingState("https://a", false),
		kernel.ShowLoadingError(types.LoadingError{OriginalURL: "https://b", Code: 500}),
		kernel.ForegroundURL(&urlB),
		kernel.LogUncaughtError("https://b"),
		kernel.ClearTaskWithError("https://b"),
		kernel.NavigateCatch(nil),
	}

	for _, a := range sequence {
		s = r.Apply(s, a)
		requireInvariants(t, s)
	}

	assert.True(t, s.IsHomeVisible)
	assert.False(t, s.IsKernelLoading)
}

func TestShellModeScenario(t *testing.T) {
	r := kernel.New(nil)
	s := types.NewBrowserState()

	s = r.Apply(s, kernel.SetShellProperties(true, "https://shell"))
	s = r.Apply(s, kernel.SetInitialShellURL("https://shell/start"))
	s = r.Apply(s, nav("https://shell"))
	requireInvariants(t, s)

	// Home never becomes visible in shell mode.
	s = r.Apply(s, kernel.ForegroundHome())
	assert.False(t, s.IsHomeVisible)

	// New navigations evict everything but foreground + shell manifest.
	s = r.Apply(s, nav("https://one"))
	s = r.Apply(s, nav("https://two"))
	requireInvariants(t, s)
	assert.False(t, s.Tasks.Has("https://one"))
	assert.True(t, s.Tasks.Has("https://two"))
	assert.True(t, s.Tasks.Has("https://shell"))
	assert.Equal(t, "https://shell/start", s.ShellInitialURL)
}

func TestForegroundUnknownURLNeverChangesSelection(t *testing.T) {
	r := kernel.New(nil)
	s := r.Apply(types.NewBrowserState(), nav("https://a"))

	for _, unknown := range []string{"https://x", "https://y", ""} {
		u := unknown
		next := r.Apply(s, kernel.ForegroundURL(&u))
		assert.Equal(t, "https://a", next.ForegroundURL())
	}
}
