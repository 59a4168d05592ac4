package auditlog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartcat-ai/kicat/internal/risk"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndList(t *testing.T) {
	l := openTestLog(t)

	entries := []Entry{
		{SessionID: "s1", Mutation: risk.AddCopperLayers, Risk: "Critical", Approved: true},
		{SessionID: "s1", Mutation: risk.ChangeTrackWidth, Risk: "High", Approved: false},
		{SessionID: "s2", Mutation: risk.MoveComponent, Risk: "Medium", Approved: true},
	}
	for _, e := range entries {
		if err := l.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	s1, err := l.List("s1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(s1) != 2 {
		t.Fatalf("session s1 has %d entries, want 2", len(s1))
	}
	if s1[0].Mutation != risk.AddCopperLayers {
		t.Errorf("first entry = %q, want insertion order preserved", s1[0].Mutation)
	}
	if s1[0].Timestamp.IsZero() {
		t.Error("Record should stamp entries")
	}

	all, err := l.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all sessions = %d entries, want 3", len(all))
	}
}

func TestSessionSummary(t *testing.T) {
	l := openTestLog(t)

	_ = l.Record(Entry{SessionID: "s1", Mutation: risk.AddCopperLayers, Risk: "Critical", Approved: true})
	_ = l.Record(Entry{SessionID: "s1", Mutation: risk.DeleteNet, Risk: "Critical", Approved: false})

	summary, err := l.SessionSummary("s1")
	if err != nil {
		t.Fatalf("SessionSummary failed: %v", err)
	}
	if !strings.Contains(summary, "1 approved, 1 denied") {
		t.Errorf("summary totals wrong:\n%s", summary)
	}
	if !strings.Contains(summary, "add_copper_layers") {
		t.Errorf("summary missing mutation type:\n%s", summary)
	}
}

func TestSessionSummary_Empty(t *testing.T) {
	l := openTestLog(t)
	summary, err := l.SessionSummary("nothing")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(summary, "No modifications") {
		t.Errorf("summary = %q", summary)
	}
}

func TestDisabledLog(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") failed: %v", err)
	}
	if l != nil {
		t.Fatal("empty path should return a nil (disabled) log")
	}
	if err := l.Record(Entry{SessionID: "s"}); err != nil {
		t.Errorf("disabled Record returned %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("disabled Close returned %v", err)
	}
}
