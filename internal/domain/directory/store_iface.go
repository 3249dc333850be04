package directory

import "context"

type StoreAPI interface {
	Get(ctx context.Context, tenantID, employeeID string) (Employee, error)
	GetByUserID(ctx context.Context, tenantID, userID string) (Employee, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]Employee, error)
	ListTeam(ctx context.Context, tenantID, managerID string) ([]Employee, error)
	ListEvaluators(ctx context.Context, tenantID string) ([]Employee, error)
	IsManagerOf(ctx context.Context, tenantID, managerID, employeeID string) (bool, error)
	SetActive(ctx context.Context, tenantID, employeeID string, active bool) error
	IDByNumber(ctx context.Context, tenantID, employeeNumber string) (string, error)
	Upsert(ctx context.Context, tenantID string, emp Employee) (string, error)
	UpsertWithLogin(ctx context.Context, tenantID string, emp Employee, passwordHash, roleName string) (string, error)
}
