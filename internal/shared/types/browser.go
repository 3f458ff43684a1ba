package types

// Document is an arbitrary structured JSON document (manifest, initial props).
type Document map[string]interface{}

// LoadingError describes a user-visible load failure attached to a task.
type LoadingError struct {
	Code        int      `json:"code"`
	Message     string   `json:"message,omitempty"`
	OriginalURL string   `json:"originalUrl"`
	Manifest    Document `json:"manifest,omitempty"`
}

// Task is a tracked remote application instance the kernel can display.
type Task struct {
	BundleURL    string        `json:"bundleUrl"`
	ManifestURL  string        `json:"manifestUrl"`
	Manifest     Document      `json:"manifest,omitempty"`
	IsLoading    bool          `json:"isLoading"`
	LoadingError *LoadingError `json:"loadingError,omitempty"`
	InitialProps Document      `json:"initialProps,omitempty"`
}

// HistoryItem records a past navigation. The history sequence is kept
// newest-first with at most one item per URL.
type HistoryItem struct {
	URL         string   `json:"url"`
	BundleURL   string   `json:"bundleUrl"`
	ManifestURL string   `json:"manifestUrl"`
	Manifest    Document `json:"manifest,omitempty"`
	Time        int64    `json:"time"` // unix milliseconds
}

// BrowserState is the root snapshot. It is a value type: transitions copy it
// and replace the whole record, never mutate through it.
type BrowserState struct {
	IsShell           bool          `json:"isShell"`
	ShellManifestURL  string        `json:"shellManifestUrl,omitempty"`
	ShellInitialURL   string        `json:"shellInitialUrl,omitempty"`
	IsHomeVisible     bool          `json:"isHomeVisible"`
	IsKernelLoading   bool          `json:"isKernelLoading"`
	ForegroundTaskURL *string       `json:"foregroundTaskUrl"`
	Tasks             TaskMap       `json:"tasks"`
	History           []HistoryItem `json:"history"`
}

// NewBrowserState returns the default-constructed snapshot used at process
// start: home visible, nothing loaded, empty history.
func NewBrowserState() BrowserState {
	return BrowserState{
		IsHomeVisible: true,
		Tasks:         NewTaskMap(),
		History:       []HistoryItem{},
	}
}

// ForegroundURL returns the foreground task URL or "" when none is set.
func (s BrowserState) ForegroundURL() string {
	if s.ForegroundTaskURL == nil {
		return ""
	}
	return *s.ForegroundTaskURL
}
