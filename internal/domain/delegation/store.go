package delegation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talent/internal/domain/evaluations"
)

var (
	ErrNotFound = errors.New("delegated task not found")

	// ErrAlreadyCompleted is the losing side of the compare-and-set on the
	// task status; the first submit wins.
	ErrAlreadyCompleted = errors.New("delegated task already completed")
)

type Store struct {
	DB          *pgxpool.Pool
	Evaluations *evaluations.Store
}

func NewStore(db *pgxpool.Pool, evalStore *evaluations.Store) *Store {
	return &Store{DB: db, Evaluations: evalStore}
}

func (s *Store) Create(ctx context.Context, tenantID, period, managerID, delegateID, targetID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO delegated_tasks (tenant_id, period, manager_id, delegate_id, target_id, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, period, managerID, delegateID, targetID, StatusPending).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, tenantID, taskID string) (Task, error) {
	var task Task
	err := s.DB.QueryRow(ctx, `
    SELECT dt.id, dt.period, dt.manager_id, dt.delegate_id, dt.target_id,
           COALESCE(t.full_name, ''), COALESCE(d.full_name, ''), dt.status, dt.created_at
    FROM delegated_tasks dt
    LEFT JOIN employees t ON dt.target_id = t.id
    LEFT JOIN employees d ON dt.delegate_id = d.id
    WHERE dt.tenant_id = $1 AND dt.id = $2
  `, tenantID, taskID).Scan(
		&task.ID, &task.Period, &task.ManagerID, &task.DelegateID, &task.TargetID,
		&task.TargetName, &task.DelegateName, &task.Status, &task.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	return task, err
}

func (s *Store) ListForDelegate(ctx context.Context, tenantID, period, delegateID string) ([]Task, error) {
	return s.list(ctx, `
    SELECT dt.id, dt.period, dt.manager_id, dt.delegate_id, dt.target_id,
           COALESCE(t.full_name, ''), COALESCE(d.full_name, ''), dt.status, dt.created_at
    FROM delegated_tasks dt
    LEFT JOIN employees t ON dt.target_id = t.id
    LEFT JOIN employees d ON dt.delegate_id = d.id
    WHERE dt.tenant_id = $1 AND dt.period = $2 AND dt.delegate_id = $3
    ORDER BY dt.created_at
  `, tenantID, period, delegateID)
}

func (s *Store) ListForManager(ctx context.Context, tenantID, period, managerID string) ([]Task, error) {
	return s.list(ctx, `
    SELECT dt.id, dt.period, dt.manager_id, dt.delegate_id, dt.target_id,
           COALESCE(t.full_name, ''), COALESCE(d.full_name, ''), dt.status, dt.created_at
    FROM delegated_tasks dt
    LEFT JOIN employees t ON dt.target_id = t.id
    LEFT JOIN employees d ON dt.delegate_id = d.id
    WHERE dt.tenant_id = $1 AND dt.period = $2 AND dt.manager_id = $3
    ORDER BY dt.created_at
  `, tenantID, period, managerID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.Period, &task.ManagerID, &task.DelegateID, &task.TargetID,
			&task.TargetName, &task.DelegateName, &task.Status, &task.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// CompleteWithRecord commits the task flip and the evaluation record in one
// transaction. The status guard makes the whole pair happen at most once.
func (s *Store) CompleteWithRecord(ctx context.Context, tenantID, taskID string, rec evaluations.Record) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.CompleteTx(ctx, tx, tenantID, taskID); err != nil {
		return "", err
	}
	id, err := s.Evaluations.ReplaceTx(ctx, tx, rec, true)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// CompleteTx flips Pending to Completed, guarded by the status so a racing
// second delegate loses instead of silently overwriting.
func (s *Store) CompleteTx(ctx context.Context, tx pgx.Tx, tenantID, taskID string) error {
	tag, err := tx.Exec(ctx, `
    UPDATE delegated_tasks
    SET status = $1, completed_at = now()
    WHERE tenant_id = $2 AND id = $3 AND status = $4
  `, StatusCompleted, tenantID, taskID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := tx.QueryRow(ctx, "SELECT status FROM delegated_tasks WHERE tenant_id = $1 AND id = $2", tenantID, taskID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrAlreadyCompleted
	}
	return nil
}
