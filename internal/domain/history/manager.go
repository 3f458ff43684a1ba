package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/bytedance/sonic"
)

// Manager handles history persistence
type Manager struct {
	mu        sync.Mutex
	path      string
	metrics   *monitoring.Metrics
	lastSaved *time.Time // Protected by mu
}

// Stats contains history manager statistics
type Stats struct {
	Path      string     `json:"path"`
	LastSaved *time.Time `json:"last_saved,omitempty"`
}

// NewManager creates a history manager rooted at storagePath
func NewManager(storagePath string) *Manager {
	return &Manager{
		path: filepath.Join(storagePath, "history.json"),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Load reads the persisted history list. A missing file is an empty log,
// not an error.
func (m *Manager) Load(ctx context.Context) ([]types.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Record prepends item to the persisted log, dropping any older entry with
// the same URL, and returns the canonical list.
func (m *Manager) Record(ctx context.Context, item types.HistoryItem) ([]types.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.load()
	if err != nil {
		return nil, err
	}

	items := make([]types.HistoryItem, 0, len(existing)+1)
	items = append(items, item)
	for _, it := range existing {
		if it.URL == item.URL {
			continue
		}
		items = append(items, it)
	}

	if err := m.save(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear wipes the persisted log.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.save([]types.HistoryItem{}); err != nil {
		return err
	}
	if m.metrics != nil {
		m.metrics.IncHistoryClears()
	}
	return nil
}

// Stats returns persistence statistics
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Path: m.path, LastSaved: m.lastSaved}
}

// load must be called with mu held
func (m *Manager) load() ([]types.HistoryItem, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.HistoryItem{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var items []types.HistoryItem
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if m.metrics != nil {
		m.metrics.IncHistoryLoads()
	}
	return items, nil
}

// save must be called with mu held
func (m *Manager) save(items []types.HistoryItem) error {
	data, err := sonic.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}

	now := time.Now()
	m.lastSaved = &now
	if m.metrics != nil {
		m.metrics.IncHistorySaves()
	}
	return nil
}
