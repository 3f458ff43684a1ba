package types

import (
	"encoding/json"
	"testing"
)

func TestTaskMapInsertionOrder(t *testing.T) {
	m := NewTaskMap()
	m = m.With("https://a", Task{BundleURL: "a.js"})
	m = m.With("https://b", Task{BundleURL: "b.js"})
	m = m.With("https://a", Task{BundleURL: "a2.js"}) // replace keeps position

	urls := m.URLs()
	if len(urls) != 2 || urls[0] != "https://a" || urls[1] != "https://b" {
		t.Errorf("unexpected order %v", urls)
	}

	task, _ := m.Get("https://a")
	if task.BundleURL != "a2.js" {
		t.Error("replace should update the entry")
	}
}

func TestTaskMapCopyOnWrite(t *testing.T) {
	base := NewTaskMap().With("https://a", Task{BundleURL: "a.js"})

	_ = base.With("https://b", Task{})
	_ = base.Without("https://a")

	if base.Len() != 1 || !base.Has("https://a") {
		t.Error("With/Without must not modify the receiver")
	}
}

func TestTaskMapWithoutAbsentURL(t *testing.T) {
	m := NewTaskMap().With("https://a", Task{})
	out := m.Without("https://missing")

	if out.Len() != 1 || !out.Has("https://a") {
		t.Error("removing an absent URL should keep all entries")
	}
}

func TestTaskMapJSONRoundTrip(t *testing.T) {
	m := NewTaskMap().
		With("https://b", Task{BundleURL: "b.js", IsLoading: true}).
		With("https://a", Task{BundleURL: "a.js"})

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded TaskMap
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	urls := decoded.URLs()
	if len(urls) != 2 || urls[0] != "https://b" || urls[1] != "https://a" {
		t.Errorf("order not preserved through JSON: %v", urls)
	}
	task, _ := decoded.Get("https://b")
	if !task.IsLoading || task.BundleURL != "b.js" {
		t.Error("task fields lost through JSON")
	}
}

func TestTaskMapEmptyMarshalsToObject(t *testing.T) {
	data, err := json.Marshal(NewTaskMap())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty map should encode as {}, got %s", data)
	}
}
