package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskMap is an insertion-ordered mapping from URL to Task with
// copy-on-write update operations. The zero value is an empty map; With and
// Without never modify the receiver, so snapshots sharing a TaskMap stay
// consistent.
type TaskMap struct {
	urls  []string
	items map[string]Task
}

// NewTaskMap returns an empty task map.
func NewTaskMap() TaskMap {
	return TaskMap{}
}

// Len returns the number of tracked tasks.
func (m TaskMap) Len() int {
	return len(m.urls)
}

// Get returns the task at url.
func (m TaskMap) Get(url string) (Task, bool) {
	t, ok := m.items[url]
	return t, ok
}

// Has reports whether url is tracked.
func (m TaskMap) Has(url string) bool {
	_, ok := m.items[url]
	return ok
}

// URLs returns the tracked URLs in insertion order.
func (m TaskMap) URLs() []string {
	out := make([]string, len(m.urls))
	copy(out, m.urls)
	return out
}

// Range calls f for each entry in insertion order until f returns false.
func (m TaskMap) Range(f func(url string, t Task) bool) {
	for _, u := range m.urls {
		if !f(u, m.items[u]) {
			return
		}
	}
}

// With returns a copy with the task at url inserted or replaced. Replacing
// keeps the original insertion position.
func (m TaskMap) With(url string, t Task) TaskMap {
	out := m.clone(1)
	if _, exists := out.items[url]; !exists {
		out.urls = append(out.urls, url)
	}
	out.items[url] = t
	return out
}

// Without returns a copy with the task at url removed. Removing an absent
// URL returns an equivalent copy.
func (m TaskMap) Without(url string) TaskMap {
	out := TaskMap{
		urls:  make([]string, 0, len(m.urls)),
		items: make(map[string]Task, len(m.items)),
	}
	for _, u := range m.urls {
		if u == url {
			continue
		}
		out.urls = append(out.urls, u)
		out.items[u] = m.items[u]
	}
	return out
}

// Filter returns a copy containing only entries whose URL satisfies keep.
func (m TaskMap) Filter(keep func(url string) bool) TaskMap {
	out := TaskMap{}
	for _, u := range m.urls {
		if keep(u) {
			out = out.With(u, m.items[u])
		}
	}
	return out
}

func (m TaskMap) clone(extra int) TaskMap {
	out := TaskMap{
		urls:  make([]string, len(m.urls), len(m.urls)+extra),
		items: make(map[string]Task, len(m.items)+extra),
	}
	copy(out.urls, m.urls)
	for u, t := range m.items {
		out.items[u] = t
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m TaskMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, u := range m.urls {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(u)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.items[u])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (m *TaskMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tasks: expected JSON object, got %v", tok)
	}

	out := TaskMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		url, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tasks: expected string key, got %v", keyTok)
		}
		var t Task
		if err := dec.Decode(&t); err != nil {
			return fmt.Errorf("tasks[%s]: %w", url, err)
		}
		out = out.With(url, t)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
