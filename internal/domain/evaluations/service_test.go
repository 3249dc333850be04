package evaluations

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// memStore keeps one record per (period, employee, self-flag), mirroring the
// schema's unique key and the replace rules.
type memStore struct {
	records map[string]Record
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]Record{}}
}

func key(rec Record) string {
	return fmt.Sprintf("%s|%s|%s|%t", rec.TenantID, rec.Period, rec.EmployeeID, rec.SelfEval)
}

func (m *memStore) Replace(ctx context.Context, rec Record, overwriteSubmitted bool) (string, error) {
	k := key(rec)
	if existing, ok := m.records[k]; ok {
		if err := CanReplace(existing.Status, rec.SelfEval, overwriteSubmitted); err != nil {
			return "", err
		}
	}
	m.nextID++
	rec.ID = fmt.Sprintf("rec-%d", m.nextID)
	m.records[k] = rec
	return rec.ID, nil
}

func (m *memStore) Get(ctx context.Context, tenantID, period, employeeID string, selfEval bool) (Record, error) {
	rec, ok := m.records[fmt.Sprintf("%s|%s|%s|%t", tenantID, period, employeeID, selfEval)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *memStore) GetByID(ctx context.Context, tenantID, recordID string) (Record, error) {
	for _, rec := range m.records {
		if rec.ID == recordID {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (m *memStore) ListForPeriod(ctx context.Context, tenantID, period string) ([]Record, error) {
	return nil, nil
}

func (m *memStore) ListForEvaluator(ctx context.Context, tenantID, period, evaluatorID string) ([]Record, error) {
	return nil, nil
}

func (m *memStore) ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]Record, error) {
	return nil, nil
}

func (m *memStore) Lock(ctx context.Context, tenantID, recordID string) error {
	for k, rec := range m.records {
		if rec.ID == recordID {
			if rec.Status != StatusDraft {
				return ErrLocked
			}
			rec.Status = StatusSubmitted
			m.records[k] = rec
			return nil
		}
	}
	return ErrNotFound
}

func managerInput(performance int) SaveInput {
	return SaveInput{
		Period:      "2026-H1",
		EmployeeID:  "emp-1",
		EvaluatorID: "mgr-1",
		Performance: []int{performance, performance, performance, performance, performance},
		Potential:   []int{3, 3, 3, 3, 3},
	}
}

func TestSaveKeepsOneRecordPerKey(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.Save(ctx, "t1", managerInput(2))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := svc.Save(ctx, "t1", managerInput(4))
	if err != nil {
		t.Fatalf("re-save of a draft failed: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected exactly one record for the key, got %d", len(store.records))
	}
	if first.ID == second.ID {
		t.Fatalf("replace should mint a new row id")
	}
	kept, err := svc.Get(ctx, "t1", "2026-H1", "emp-1", false)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if kept.AvgPerformance != 4 {
		t.Fatalf("latest save should win, got avg %v", kept.AvgPerformance)
	}
}

func TestSaveRejectsLockedRecord(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	rec, err := svc.Save(ctx, "t1", managerInput(3))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if rec.Status != StatusDraft {
		t.Fatalf("manager entry should start as draft, got %q", rec.Status)
	}
	if err := svc.Lock(ctx, "t1", rec.ID); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	if _, err := svc.Save(ctx, "t1", managerInput(5)); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked after submit, got %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("locked record must survive untouched, got %d records", len(store.records))
	}
}

func TestSaveSelfSubmitsAndStaysReplaceable(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	input := managerInput(3)
	input.SelfEval = true
	rec, err := svc.Save(ctx, "t1", input)
	if err != nil {
		t.Fatalf("self save failed: %v", err)
	}
	if rec.Status != StatusSubmitted {
		t.Fatalf("self entry should submit directly, got %q", rec.Status)
	}
	if rec.EvaluatorID != EvaluatorSelf {
		t.Fatalf("self entry should carry the self marker, got %q", rec.EvaluatorID)
	}
	if rec.SubmittedAt == nil {
		t.Fatal("submitted self entry should carry a timestamp")
	}

	if _, err := svc.Save(ctx, "t1", input); err != nil {
		t.Fatalf("self records carry no lock: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one self record, got %d", len(store.records))
	}
}

func TestSaveRejectsMalformedRatings(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	input := managerInput(3)
	input.Potential = []int{3, 3}
	if _, err := svc.Save(context.Background(), "t1", input); err == nil {
		t.Fatal("expected error for short rating vector")
	}
	if len(store.records) != 0 {
		t.Fatalf("nothing should be written on invalid input, got %d records", len(store.records))
	}
}
