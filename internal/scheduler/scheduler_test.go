package scheduler

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSnapshot_CopiesSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "users.json")
	if err := os.WriteFile(src, []byte(`[{"userId":"a"}]`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	backups := filepath.Join(dir, "backups")

	s := New(zap.NewNop(), backups, src, filepath.Join(dir, "missing.json"))
	if err := s.Snapshot(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	entries, err := os.ReadDir(backups)
	if err != nil || len(entries) != 1 {
		t.Fatalf("want one backup dir: %v %v", entries, err)
	}
	copied := filepath.Join(backups, entries[0].Name(), "users.json")
	data, err := os.ReadFile(copied)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(data) != `[{"userId":"a"}]` {
		t.Fatalf("copy mismatch: %s", data)
	}
}
