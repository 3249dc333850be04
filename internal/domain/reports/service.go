package reports

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Summary builds the dashboard for the caller. Managers see their own team;
// tenantWide lifts the scope for HR and admin callers.
func (s *Service) Summary(ctx context.Context, tenantID, period, callerEmployeeID string, tenantWide bool) (Dashboard, error) {
	managerID := callerEmployeeID
	if tenantWide {
		managerID = ""
	}
	return s.Store.Dashboard(ctx, tenantID, period, managerID)
}
