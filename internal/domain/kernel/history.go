package kernel

import (
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
)

// prependHistory inserts item at the front, dropping any existing entry with
// the same URL wherever it sits in the sequence.
func prependHistory(history []types.HistoryItem, item types.HistoryItem) []types.HistoryItem {
	out := make([]types.HistoryItem, 0, len(history)+1)
	out = append(out, item)
	for _, existing := range history {
		if existing.URL == item.URL {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// replaceHistory swaps in the externally resolved canonical list, preserving
// the given order. The resolution always wins over the speculative insert
// made at begin time.
func replaceHistory(s types.BrowserState, items []types.HistoryItem) types.BrowserState {
	history := make([]types.HistoryItem, len(items))
	copy(history, items)
	s.History = history
	return s
}
