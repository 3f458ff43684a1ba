package store

import (
	"sync"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/google/uuid"
)

// subscriberBuffer bounds how many snapshots a slow subscriber can lag
// behind before intermediate ones are dropped.
const subscriberBuffer = 16

// Store serializes dispatches and holds the current snapshot.
type Store struct {
	mu      sync.RWMutex
	state   types.BrowserState // Protected by mu
	reducer *kernel.Reducer
	metrics *monitoring.Metrics

	subMu sync.RWMutex
	subs  map[string]chan types.BrowserState // Protected by subMu
}

// New creates a store seeded with the default-constructed snapshot.
func New(reducer *kernel.Reducer) *Store {
	return &Store{
		state:   types.NewBrowserState(),
		reducer: reducer,
		subs:    make(map[string]chan types.BrowserState),
	}
}

// WithMetrics adds metrics tracking to the store.
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// State returns the current snapshot.
func (s *Store) State() types.BrowserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies one action and returns the resulting snapshot. Dispatches
// are serialized; the reducer never sees two actions concurrently.
func (s *Store) Dispatch(a kernel.Action) types.BrowserState {
	s.mu.Lock()
	next := s.reducer.Apply(s.state, a)
	s.state = next
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordTransition(string(a.Kind), string(a.Phase))
		s.metrics.SetTasksTracked(next.Tasks.Len())
		s.metrics.SetHistoryLength(len(next.History))
		s.metrics.SetKernelLoading(next.IsKernelLoading)
	}

	s.notify(next)
	return next
}

// Subscribe registers a snapshot listener and returns its ID and channel.
func (s *Store) Subscribe() (string, <-chan types.BrowserState) {
	id := uuid.New().String()
	ch := make(chan types.BrowserState, subscriberBuffer)

	s.subMu.Lock()
	s.subs[id] = ch
	s.subMu.Unlock()

	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) notify(snapshot types.BrowserState) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			// Subscriber is behind; it will catch up on the next dispatch.
		}
	}
}
