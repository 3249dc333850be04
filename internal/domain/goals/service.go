package goals

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, tenantID string, goal Goal) (string, error) {
	if goal.Status == "" {
		goal.Status = StatusOnTrack
	}
	return s.Store.Create(ctx, tenantID, goal)
}

func (s *Service) Get(ctx context.Context, tenantID, goalID string) (Goal, error) {
	return s.Store.Get(ctx, tenantID, goalID)
}

func (s *Service) ListForEmployee(ctx context.Context, tenantID, period, employeeID string) ([]Goal, error) {
	return s.Store.ListForEmployee(ctx, tenantID, period, employeeID)
}

func (s *Service) Update(ctx context.Context, tenantID, goalID string, goal Goal) error {
	return s.Store.Update(ctx, tenantID, goalID, goal)
}

func (s *Service) SetManualProgress(ctx context.Context, tenantID, goalID string, progress float64) error {
	return s.Store.SetManualProgress(ctx, tenantID, goalID, progress)
}

// ReplaceKPIs validates the incoming set, then swaps it and recomputes the
// goal's progress atomically.
func (s *Service) ReplaceKPIs(ctx context.Context, tenantID, goalID string, kpis []KPI) (float64, error) {
	if err := ValidateKPIs(kpis); err != nil {
		return 0, err
	}
	return s.Store.ReplaceKPIs(ctx, tenantID, goalID, kpis)
}

func (s *Service) Delete(ctx context.Context, tenantID, goalID string) error {
	return s.Store.Delete(ctx, tenantID, goalID)
}
