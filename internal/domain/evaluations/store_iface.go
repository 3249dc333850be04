package evaluations

import "context"

type StoreAPI interface {
	Replace(ctx context.Context, rec Record, overwriteSubmitted bool) (string, error)
	Get(ctx context.Context, tenantID, period, employeeID string, selfEval bool) (Record, error)
	GetByID(ctx context.Context, tenantID, recordID string) (Record, error)
	ListForPeriod(ctx context.Context, tenantID, period string) ([]Record, error)
	ListForEvaluator(ctx context.Context, tenantID, period, evaluatorID string) ([]Record, error)
	ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]Record, error)
	Lock(ctx context.Context, tenantID, recordID string) error
}
