package reports

import (
	"context"
	"testing"
)

type stubStore struct {
	lastManager string
	calls       int
}

func (s *stubStore) Dashboard(ctx context.Context, tenantID, period, managerID string) (Dashboard, error) {
	s.lastManager = managerID
	s.calls++
	return Dashboard{Period: period}, nil
}

func TestSummaryScopesToCallersTeam(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	dash, err := svc.Summary(context.Background(), "t1", "2026-H1", "mgr-1", false)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if store.lastManager != "mgr-1" {
		t.Fatalf("expected manager scope %q, got %q", "mgr-1", store.lastManager)
	}
	if dash.Period != "2026-H1" {
		t.Fatalf("period not threaded through: %+v", dash)
	}
}

func TestSummaryTenantWideDropsManagerScope(t *testing.T) {
	store := &stubStore{lastManager: "sentinel"}
	svc := NewService(store)

	if _, err := svc.Summary(context.Background(), "t1", "2026-H1", "hr-1", true); err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if store.lastManager != "" {
		t.Fatalf("tenant-wide summary must not filter by manager, got %q", store.lastManager)
	}
	if store.calls != 1 {
		t.Fatalf("expected one store call, got %d", store.calls)
	}
}
