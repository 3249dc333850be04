package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Dashboard aggregates the manager-side records for the period. A non-empty
// managerID narrows headcount to that manager's reports and the evaluation
// counts to records they authored; empty covers the whole tenant. Self
// evaluations are counted separately and excluded from the averages.
func (s *Store) Dashboard(ctx context.Context, tenantID, period, managerID string) (Dashboard, error) {
	dash := Dashboard{Period: period, Distribution: map[string]int{}}

	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(*) FROM employees
    WHERE tenant_id = $1 AND active AND ($2 = '' OR manager_id::text = $2)
  `, tenantID, managerID).Scan(&dash.Headcount)
	if err != nil {
		return Dashboard{}, err
	}

	err = s.DB.QueryRow(ctx, `
    SELECT COUNT(*) FILTER (WHERE NOT is_self_eval),
           COUNT(*) FILTER (WHERE NOT is_self_eval AND status = 'Submitted'),
           COUNT(*) FILTER (WHERE is_self_eval),
           COALESCE(AVG(avg_performance) FILTER (WHERE NOT is_self_eval), 0),
           COALESCE(AVG(avg_potential) FILTER (WHERE NOT is_self_eval), 0)
    FROM evaluations
    WHERE tenant_id = $1 AND period = $2 AND ($3 = '' OR evaluator_id = $3)
  `, tenantID, period, managerID).Scan(
		&dash.Evaluated, &dash.Submitted, &dash.SelfEvaluated,
		&dash.AvgPerformance, &dash.AvgPotential,
	)
	if err != nil {
		return Dashboard{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT category, COUNT(*)
    FROM evaluations
    WHERE tenant_id = $1 AND period = $2 AND NOT is_self_eval AND ($3 = '' OR evaluator_id = $3)
    GROUP BY category
  `, tenantID, period, managerID)
	if err != nil {
		return Dashboard{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return Dashboard{}, err
		}
		dash.Distribution[category] = count
	}
	return dash, rows.Err()
}
