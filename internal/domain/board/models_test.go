package board

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewSnapshotNormalizesNilSlices(t *testing.T) {
	snap := NewSnapshot(1, "2024-03-09", nil, nil, time.Time{})
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"matches":[]`) || !strings.Contains(string(data), `"quotes":[]`) {
		t.Fatalf("expected empty arrays, got %s", data)
	}
	if snap.OddsAvailable() {
		t.Fatalf("expected no odds")
	}
}

func TestKey(t *testing.T) {
	snap := NewSnapshot(3, "2024-03-09", nil, nil, time.Time{})
	if snap.Key() != "3/2024-03-09" || Key(3, "2024-03-09") != snap.Key() {
		t.Fatalf("unexpected key %s", snap.Key())
	}
}
