package delegation

import (
	"context"

	"talent/internal/domain/evaluations"
)

type StoreAPI interface {
	Create(ctx context.Context, tenantID, period, managerID, delegateID, targetID string) (string, error)
	Get(ctx context.Context, tenantID, taskID string) (Task, error)
	ListForDelegate(ctx context.Context, tenantID, period, delegateID string) ([]Task, error)
	ListForManager(ctx context.Context, tenantID, period, managerID string) ([]Task, error)
	CompleteWithRecord(ctx context.Context, tenantID, taskID string, rec evaluations.Record) (string, error)
}
