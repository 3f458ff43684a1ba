package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

type mockDispatcher struct {
	actions []kernel.Action
}

func (d *mockDispatcher) Dispatch(a kernel.Action) types.BrowserState {
	d.actions = append(d.actions, a)
	return types.BrowserState{}
}

type mockHistory struct {
	items []types.HistoryItem
	err   error
}

func (h *mockHistory) Record(_ context.Context, item types.HistoryItem) ([]types.HistoryItem, error) {
	if h.err != nil {
		return nil, h.err
	}
	h.items = append([]types.HistoryItem{item}, h.items...)
	return h.items, nil
}

func newTestLoader(d Dispatcher, h HistoryStore) *Loader {
	return New(Config{Timeout: 5 * time.Second, RetryMax: 0}, d, h, nil)
}

func TestNavigateDispatchesPhases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"demo","bundleUrl":"https://cdn/bundle.js"}`))
	}))
	defer srv.Close()

	d := &mockDispatcher{}
	l := newTestLoader(d, &mockHistory{})

	if err := l.Navigate(context.Background(), srv.URL, types.Document{"k": "v"}); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	if len(d.actions) != 2 {
		t.Fatalf("expected begin+then, got %d actions", len(d.actions))
	}

	begin := d.actions[0]
	if begin.Kind != kernel.KindNavigateToURL || begin.Phase != kernel.PhaseBegin {
		t.Errorf("first action should be navigate/begin, got %s/%s", begin.Kind, begin.Phase)
	}
	if begin.Meta == nil || begin.Meta.BundleURL != "https://cdn/bundle.js" {
		t.Error("bundle url should come from the manifest")
	}
	if begin.Meta.InitialProps == nil {
		t.Error("initial props should pass through")
	}

	then := d.actions[1]
	if then.Kind != kernel.KindNavigateToURL || then.Phase != kernel.PhaseThen {
		t.Errorf("second action should be navigate/then, got %s/%s", then.Kind, then.Phase)
	}
	if len(then.History) != 1 || then.History[0].URL != srv.URL {
		t.Error("then phase should carry the canonical history list")
	}
}

func TestNavigateHTTPErrorShowsLoadingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := &mockDispatcher{}
	l := newTestLoader(d, &mockHistory{})

	if err := l.Navigate(context.Background(), srv.URL, nil); err == nil {
		t.Fatal("expected an error")
	}

	if len(d.actions) != 1 {
		t.Fatalf("expected only showLoadingError, got %d actions", len(d.actions))
	}
	a := d.actions[0]
	if a.Kind != kernel.KindShowLoadingError {
		t.Fatalf("expected showLoadingError, got %s", a.Kind)
	}
	if a.Error == nil || a.Error.Code != http.StatusNotFound || a.Error.OriginalURL != srv.URL {
		t.Errorf("error payload should carry status and original url, got %+v", a.Error)
	}
}

func TestNavigateBadManifestShowsLoadingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	d := &mockDispatcher{}
	l := newTestLoader(d, &mockHistory{})

	if err := l.Navigate(context.Background(), srv.URL, nil); err == nil {
		t.Fatal("expected an error")
	}
	if len(d.actions) != 1 || d.actions[0].Kind != kernel.KindShowLoadingError {
		t.Fatal("expected showLoadingError")
	}
	if d.actions[0].Error.Code != CodeBadManifest {
		t.Errorf("expected code %d, got %d", CodeBadManifest, d.actions[0].Error.Code)
	}
}

func TestNavigatePersistFailureDispatchesCatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"demo"}`))
	}))
	defer srv.Close()

	d := &mockDispatcher{}
	l := newTestLoader(d, &mockHistory{err: errors.New("disk full")})

	if err := l.Navigate(context.Background(), srv.URL, nil); err == nil {
		t.Fatal("expected an error")
	}

	if len(d.actions) != 2 {
		t.Fatalf("expected begin+catch, got %d actions", len(d.actions))
	}
	last := d.actions[1]
	if last.Kind != kernel.KindNavigateToURL || last.Phase != kernel.PhaseCatch {
		t.Errorf("expected navigate/catch, got %s/%s", last.Kind, last.Phase)
	}
	if last.Reason == "" {
		t.Error("catch should carry the failure reason")
	}
}

func TestNavigateEmptyURL(t *testing.T) {
	d := &mockDispatcher{}
	l := newTestLoader(d, &mockHistory{})

	if err := l.Navigate(context.Background(), "", nil); err == nil {
		t.Fatal("expected an error for empty url")
	}
	if len(d.actions) != 0 {
		t.Error("nothing should be dispatched")
	}
}
