package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestListFiltersAndOrdersSnapshots(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, dir)

	for _, name := range []string{
		"backup_AUTO_20260101_080000.xlsx",
		"backup_MANUAL_20260102_090000.xlsx",
		"notes.txt",
		"report.pdf",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 snapshots, got %d: %+v", len(list), list)
	}
	kinds := map[string]bool{}
	for _, info := range list {
		kinds[info.Kind] = true
	}
	if !kinds[KindAuto] || !kinds[KindManual] {
		t.Fatalf("expected one AUTO and one MANUAL snapshot: %+v", list)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	svc := NewService(nil, filepath.Join(t.TempDir(), "does-not-exist"))
	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list != nil {
		t.Fatalf("expected no snapshots, got %+v", list)
	}
}

func TestSnapshotRejectsUnknownKind(t *testing.T) {
	svc := NewService(nil, t.TempDir())
	if _, err := svc.Snapshot(context.Background(), "t1", "WEEKLY"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
