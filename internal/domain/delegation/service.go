package delegation

import (
	"context"
	"errors"
	"time"

	"talent/internal/domain/evaluations"
	"talent/internal/domain/scoring"
)

var ErrNotDelegate = errors.New("task belongs to another delegate")

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, tenantID, period, managerID, delegateID, targetID string) (Task, error) {
	id, err := s.Store.Create(ctx, tenantID, period, managerID, delegateID, targetID)
	if err != nil {
		return Task{}, err
	}
	return s.Store.Get(ctx, tenantID, id)
}

func (s *Service) ListForDelegate(ctx context.Context, tenantID, period, delegateID string) ([]Task, error) {
	return s.Store.ListForDelegate(ctx, tenantID, period, delegateID)
}

func (s *Service) ListForManager(ctx context.Context, tenantID, period, managerID string) ([]Task, error) {
	return s.Store.ListForManager(ctx, tenantID, period, managerID)
}

type CompleteInput struct {
	TaskID      string
	DelegateID  string
	Performance []int
	Potential   []int
	ActionPlan  string
}

// Complete commits the status flip and the evaluation record in one
// transaction. The record lands as Submitted under the delegating manager's
// id, replacing any draft the manager had started.
func (s *Service) Complete(ctx context.Context, tenantID string, input CompleteInput) (evaluations.Record, error) {
	summary, err := scoring.Compute(input.Performance, input.Potential)
	if err != nil {
		return evaluations.Record{}, err
	}

	task, err := s.Store.Get(ctx, tenantID, input.TaskID)
	if err != nil {
		return evaluations.Record{}, err
	}
	if task.DelegateID != input.DelegateID {
		return evaluations.Record{}, ErrNotDelegate
	}

	now := time.Now()
	rec := evaluations.Record{
		TenantID:       tenantID,
		Period:         task.Period,
		EmployeeID:     task.TargetID,
		EvaluatorID:    task.ManagerID,
		SelfEval:       false,
		Performance:    input.Performance,
		Potential:      input.Potential,
		AvgPerformance: summary.AvgPerformance,
		AvgPotential:   summary.AvgPotential,
		Category:       summary.Category,
		ActionPlan:     input.ActionPlan,
		Status:         evaluations.StatusSubmitted,
		SubmittedAt:    &now,
	}

	id, err := s.Store.CompleteWithRecord(ctx, tenantID, input.TaskID, rec)
	if err != nil {
		return evaluations.Record{}, err
	}
	rec.ID = id
	return rec, nil
}
