package reports

import "context"

type StoreAPI interface {
	Dashboard(ctx context.Context, tenantID, period, managerID string) (Dashboard, error)
}
