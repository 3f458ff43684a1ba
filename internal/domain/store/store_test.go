package store

import (
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

func meta(url string) kernel.NavigationMeta {
	return kernel.NavigationMeta{
		URL:         url,
		HistoryItem: types.HistoryItem{URL: url},
	}
}

func TestDispatch(t *testing.T) {
	s := New(kernel.New(nil))

	next := s.Dispatch(kernel.NavigateBegin(meta("https://a")))
	if !next.Tasks.Has("https://a") {
		t.Error("dispatch should apply the transition")
	}
	if !s.State().Tasks.Has("https://a") {
		t.Error("state should hold the new snapshot")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	s := New(kernel.New(nil))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			url := "https://task-" + string(rune('a'+n))
			s.Dispatch(kernel.NavigateBegin(meta(url)))
		}(i)
	}
	wg.Wait()

	state := s.State()
	if state.Tasks.Len() != 10 {
		t.Errorf("expected 10 tasks, got %d", state.Tasks.Len())
	}
	if len(state.History) != 10 {
		t.Errorf("expected 10 history entries, got %d", len(state.History))
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := New(kernel.New(nil))

	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)

	s.Dispatch(kernel.NavigateBegin(meta("https://a")))

	select {
	case snapshot := <-ch:
		if !snapshot.Tasks.Has("https://a") {
			t.Error("subscriber should see the new snapshot")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never notified")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New(kernel.New(nil))

	id, ch := s.Subscribe()
	s.Unsubscribe(id)

	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}

	// Second unsubscribe is a no-op.
	s.Unsubscribe(id)
}

func TestSlowSubscriberDoesNotBlockDispatch(t *testing.T) {
	s := New(kernel.New(nil))

	id, _ := s.Subscribe()
	defer s.Unsubscribe(id)

	// Overflow the buffer; dispatch must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			s.Dispatch(kernel.ForegroundHome())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch blocked on a slow subscriber")
	}
}
