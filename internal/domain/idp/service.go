package idp

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Get(ctx context.Context, tenantID, period, employeeID string) (Plan, error) {
	return s.Store.Get(ctx, tenantID, period, employeeID)
}

func (s *Service) Replace(ctx context.Context, plan Plan) (string, error) {
	return s.Store.Replace(ctx, plan)
}
