package delegation

import (
	"context"
	"errors"
	"testing"

	"talent/internal/domain/evaluations"
)

// memStore mimics the task table's compare-and-set completion.
type memStore struct {
	tasks   map[string]Task
	records []evaluations.Record
}

func newMemStore(tasks ...Task) *memStore {
	m := &memStore{tasks: map[string]Task{}}
	for _, task := range tasks {
		m.tasks[task.ID] = task
	}
	return m
}

func (m *memStore) Create(ctx context.Context, tenantID, period, managerID, delegateID, targetID string) (string, error) {
	id := "task-new"
	m.tasks[id] = Task{ID: id, TenantID: tenantID, Period: period, ManagerID: managerID, DelegateID: delegateID, TargetID: targetID, Status: StatusPending}
	return id, nil
}

func (m *memStore) Get(ctx context.Context, tenantID, taskID string) (Task, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return Task{}, ErrNotFound
	}
	return task, nil
}

func (m *memStore) ListForDelegate(ctx context.Context, tenantID, period, delegateID string) ([]Task, error) {
	return nil, nil
}

func (m *memStore) ListForManager(ctx context.Context, tenantID, period, managerID string) ([]Task, error) {
	return nil, nil
}

func (m *memStore) CompleteWithRecord(ctx context.Context, tenantID, taskID string, rec evaluations.Record) (string, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return "", ErrNotFound
	}
	if task.Status != StatusPending {
		return "", ErrAlreadyCompleted
	}
	task.Status = StatusCompleted
	m.tasks[taskID] = task
	m.records = append(m.records, rec)
	return "rec-1", nil
}

func pendingTask() Task {
	return Task{
		ID:         "task-1",
		TenantID:   "t1",
		Period:     "2026-H1",
		ManagerID:  "mgr-1",
		DelegateID: "del-1",
		TargetID:   "emp-1",
		Status:     StatusPending,
	}
}

func completeInput() CompleteInput {
	return CompleteInput{
		TaskID:      "task-1",
		DelegateID:  "del-1",
		Performance: []int{4, 4, 4, 4, 4},
		Potential:   []int{3, 3, 3, 3, 3},
		ActionPlan:  "stretch assignment",
	}
}

func TestCompleteWritesExactlyOnce(t *testing.T) {
	store := newMemStore(pendingTask())
	svc := NewService(store)
	ctx := context.Background()

	rec, err := svc.Complete(ctx, "t1", completeInput())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if rec.Status != evaluations.StatusSubmitted {
		t.Fatalf("delegated record should land submitted, got %q", rec.Status)
	}
	if rec.EvaluatorID != "mgr-1" {
		t.Fatalf("record should carry the delegating manager, got %q", rec.EvaluatorID)
	}
	if rec.SubmittedAt == nil {
		t.Fatal("submitted record should carry a timestamp")
	}

	if _, err := svc.Complete(ctx, "t1", completeInput()); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion should lose the compare-and-set, got %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("exactly one evaluation record expected, got %d", len(store.records))
	}
	if store.tasks["task-1"].Status != StatusCompleted {
		t.Fatalf("task should stay completed, got %q", store.tasks["task-1"].Status)
	}
}

func TestCompleteRejectsWrongDelegate(t *testing.T) {
	store := newMemStore(pendingTask())
	svc := NewService(store)

	input := completeInput()
	input.DelegateID = "someone-else"
	if _, err := svc.Complete(context.Background(), "t1", input); !errors.Is(err, ErrNotDelegate) {
		t.Fatalf("expected ErrNotDelegate, got %v", err)
	}
	if len(store.records) != 0 {
		t.Fatalf("no record should be written, got %d", len(store.records))
	}
	if store.tasks["task-1"].Status != StatusPending {
		t.Fatalf("task should stay pending, got %q", store.tasks["task-1"].Status)
	}
}

func TestCompleteRejectsMalformedRatings(t *testing.T) {
	store := newMemStore(pendingTask())
	svc := NewService(store)

	input := completeInput()
	input.Performance = []int{9, 9, 9, 9, 9}
	if _, err := svc.Complete(context.Background(), "t1", input); err == nil {
		t.Fatal("expected error for out-of-range ratings")
	}
	if len(store.records) != 0 {
		t.Fatalf("no record should be written, got %d", len(store.records))
	}
}
