package chatlog

import (
	"fmt"
	"path/filepath"
	"testing"

	"chatrelay/internal/store"
)

func newLog(t *testing.T) *Log {
	t.Helper()
	tbl, err := store.Open[Turn](filepath.Join(t.TempDir(), "turns.json"))
	if err != nil {
		t.Fatalf("open table: %v", err)
	}
	return NewLog(tbl)
}

func TestLog_AppendAndRecent(t *testing.T) {
	l := newLog(t)
	for i := 0; i < 5; i++ {
		turn := Turn{
			UserID:    "alice",
			Role:      "regular",
			Question:  fmt.Sprintf("q%d", i),
			Answer:    fmt.Sprintf("a%d", i),
			Timestamp: int64(1000 + i),
		}
		if err := l.Append(turn); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := l.Append(Turn{UserID: "bob", Question: "other", Answer: "x"}); err != nil {
		t.Fatalf("append bob: %v", err)
	}

	recent, err := l.RecentTurns("alice", 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("want 3, got %d", len(recent))
	}
	// oldest-first within the slice, most recent three of five
	if recent[0].Question != "q2" || recent[2].Question != "q4" {
		t.Fatalf("wrong window: %+v", recent)
	}
}

func TestLog_RecentFewerThanAsked(t *testing.T) {
	l := newLog(t)
	if err := l.Append(Turn{UserID: "alice", Question: "q0", Answer: "a0"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	recent, err := l.RecentTurns("alice", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Question != "q0" {
		t.Fatalf("unexpected: %+v", recent)
	}
}

func TestLog_RecentUnknownUser(t *testing.T) {
	l := newLog(t)
	recent, err := l.RecentTurns("nobody", 4)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("want empty, got %+v", recent)
	}
}
