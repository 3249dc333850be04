package goals

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("goal not found")

// ErrHasKPIs guards manual progress edits once KPIs drive the rollup.
var ErrHasKPIs = errors.New("goal progress is derived from its KPIs")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, tenantID string, goal Goal) (string, error) {
	var managerID any
	if goal.ManagerID != "" {
		managerID = goal.ManagerID
	}
	var deadline any
	if goal.Deadline != nil {
		deadline = *goal.Deadline
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (tenant_id, period, employee_id, manager_id, title, description, weight, progress, status, deadline)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, tenantID, goal.Period, goal.EmployeeID, managerID, goal.Title, goal.Description, goal.Weight, goal.Progress, goal.Status, deadline).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, tenantID, goalID string) (Goal, error) {
	var goal Goal
	err := s.DB.QueryRow(ctx, `
    SELECT id, period, employee_id, COALESCE(manager_id::text, ''), title, COALESCE(description, ''),
           weight, progress, status, deadline, updated_at
    FROM goals
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, goalID).Scan(
		&goal.ID, &goal.Period, &goal.EmployeeID, &goal.ManagerID, &goal.Title, &goal.Description,
		&goal.Weight, &goal.Progress, &goal.Status, &goal.Deadline, &goal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	if err != nil {
		return Goal{}, err
	}

	kpis, err := s.listKPIs(ctx, goal.ID)
	if err != nil {
		return Goal{}, err
	}
	goal.KPIs = kpis
	return goal, nil
}

func (s *Store) ListForEmployee(ctx context.Context, tenantID, period, employeeID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period, employee_id, COALESCE(manager_id::text, ''), title, COALESCE(description, ''),
           weight, progress, status, deadline, updated_at
    FROM goals
    WHERE tenant_id = $1 AND period = $2 AND employee_id = $3
    ORDER BY created_at
  `, tenantID, period, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var goal Goal
		if err := rows.Scan(
			&goal.ID, &goal.Period, &goal.EmployeeID, &goal.ManagerID, &goal.Title, &goal.Description,
			&goal.Weight, &goal.Progress, &goal.Status, &goal.Deadline, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		kpis, err := s.listKPIs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].KPIs = kpis
	}
	return out, nil
}

func (s *Store) listKPIs(ctx context.Context, goalID string) ([]KPI, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, description, weight, progress, deadline
    FROM goal_kpis
    WHERE goal_id = $1
    ORDER BY created_at
  `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KPI
	for rows.Next() {
		var kpi KPI
		if err := rows.Scan(&kpi.ID, &kpi.Description, &kpi.Weight, &kpi.Progress, &kpi.Deadline); err != nil {
			return nil, err
		}
		out = append(out, kpi)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, tenantID, goalID string, goal Goal) error {
	var deadline any
	if goal.Deadline != nil {
		deadline = *goal.Deadline
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET title = $1, description = $2, weight = $3, status = $4, deadline = $5, updated_at = now()
    WHERE tenant_id = $6 AND id = $7
  `, goal.Title, goal.Description, goal.Weight, goal.Status, deadline, tenantID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetManualProgress writes progress directly, only for goals without KPIs.
func (s *Store) SetManualProgress(ctx context.Context, tenantID, goalID string, progress float64) error {
	var kpiCount int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM goal_kpis WHERE goal_id = $1", goalID).Scan(&kpiCount); err != nil {
		return err
	}
	if kpiCount > 0 {
		return ErrHasKPIs
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE goals SET progress = $1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, progress, tenantID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceKPIs swaps the goal's KPI set and rolls the derived progress into
// the goal row, all in one transaction.
func (s *Store) ReplaceKPIs(ctx context.Context, tenantID, goalID string, kpis []KPI) (float64, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists int
	if err := tx.QueryRow(ctx, "SELECT COUNT(1) FROM goals WHERE tenant_id = $1 AND id = $2", tenantID, goalID).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM goal_kpis WHERE goal_id = $1", goalID); err != nil {
		return 0, err
	}

	for _, kpi := range kpis {
		var deadline any
		if kpi.Deadline != nil {
			deadline = *kpi.Deadline
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO goal_kpis (goal_id, description, weight, progress, deadline)
      VALUES ($1,$2,$3,$4,$5)
    `, goalID, kpi.Description, kpi.Weight, kpi.Progress, deadline); err != nil {
			return 0, err
		}
	}

	progress := RollUp(kpis)
	if len(kpis) > 0 {
		if _, err := tx.Exec(ctx, `
      UPDATE goals SET progress = $1, updated_at = now()
      WHERE tenant_id = $2 AND id = $3
    `, progress, tenantID, goalID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return progress, nil
}

func (s *Store) Delete(ctx context.Context, tenantID, goalID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE tenant_id = $1 AND id = $2", tenantID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
