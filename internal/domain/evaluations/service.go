package evaluations

import (
	"context"
	"time"

	"talent/internal/domain/scoring"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

type SaveInput struct {
	Period      string
	EmployeeID  string
	EvaluatorID string
	SelfEval    bool
	Performance []int
	Potential   []int
	ActionPlan  string
}

// Save computes averages and the 9-box category, then replaces the record
// for (tenant, period, employee, self-flag). Malformed ratings are rejected
// before anything is written.
func (s *Service) Save(ctx context.Context, tenantID string, input SaveInput) (Record, error) {
	summary, err := scoring.Compute(input.Performance, input.Potential)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		TenantID:       tenantID,
		Period:         input.Period,
		EmployeeID:     input.EmployeeID,
		EvaluatorID:    input.EvaluatorID,
		SelfEval:       input.SelfEval,
		Performance:    input.Performance,
		Potential:      input.Potential,
		AvgPerformance: summary.AvgPerformance,
		AvgPotential:   summary.AvgPotential,
		Category:       summary.Category,
		ActionPlan:     input.ActionPlan,
		Status:         EntryStatus(input.SelfEval),
	}
	if rec.SelfEval {
		rec.EvaluatorID = EvaluatorSelf
	}
	if rec.Status == StatusSubmitted {
		now := time.Now()
		rec.SubmittedAt = &now
	}

	id, err := s.Store.Replace(ctx, rec, false)
	if err != nil {
		return Record{}, err
	}
	rec.ID = id
	return rec, nil
}

func (s *Service) Get(ctx context.Context, tenantID, period, employeeID string, selfEval bool) (Record, error) {
	return s.Store.Get(ctx, tenantID, period, employeeID, selfEval)
}

func (s *Service) GetByID(ctx context.Context, tenantID, recordID string) (Record, error) {
	return s.Store.GetByID(ctx, tenantID, recordID)
}

func (s *Service) ListForPeriod(ctx context.Context, tenantID, period string) ([]Record, error) {
	return s.Store.ListForPeriod(ctx, tenantID, period)
}

func (s *Service) ListForEvaluator(ctx context.Context, tenantID, period, evaluatorID string) ([]Record, error) {
	return s.Store.ListForEvaluator(ctx, tenantID, period, evaluatorID)
}

func (s *Service) ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]Record, error) {
	return s.Store.ListForEmployee(ctx, tenantID, employeeID)
}

func (s *Service) Lock(ctx context.Context, tenantID, recordID string) error {
	return s.Store.Lock(ctx, tenantID, recordID)
}
