package evaluations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const recordColumns = `
    ev.id, ev.period, ev.employee_id, e.full_name, COALESCE(e.job_title, ''), COALESCE(e.department, ''),
    ev.evaluator_id, ev.is_self_eval,
    ev.p1, ev.p2, ev.p3, ev.p4, ev.p5,
    ev.pot1, ev.pot2, ev.pot3, ev.pot4, ev.pot5,
    ev.avg_performance, ev.avg_potential, ev.category, COALESCE(ev.action_plan, ''),
    ev.status, ev.submitted_at, ev.created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var p [5]int
	var pot [5]int
	err := row.Scan(
		&rec.ID, &rec.Period, &rec.EmployeeID, &rec.EmployeeName, &rec.JobTitle, &rec.Department,
		&rec.EvaluatorID, &rec.SelfEval,
		&p[0], &p[1], &p[2], &p[3], &p[4],
		&pot[0], &pot[1], &pot[2], &pot[3], &pot[4],
		&rec.AvgPerformance, &rec.AvgPotential, &rec.Category, &rec.ActionPlan,
		&rec.Status, &rec.SubmittedAt, &rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Performance = p[:]
	rec.Potential = pot[:]
	return rec, nil
}

// Get loads the record for (tenant, period, employee, self-flag), the key
// that the schema keeps unique.
func (s *Store) Get(ctx context.Context, tenantID, period, employeeID string, selfEval bool) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1 AND ev.period = $2 AND ev.employee_id = $3 AND ev.is_self_eval = $4
  `, tenantID, period, employeeID, selfEval))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) GetByID(ctx context.Context, tenantID, recordID string) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1 AND ev.id = $2
  `, tenantID, recordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) ListForPeriod(ctx context.Context, tenantID, period string) ([]Record, error) {
	return s.list(ctx, `
    SELECT `+recordColumns+`
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1 AND ev.period = $2
    ORDER BY e.full_name, ev.is_self_eval
  `, tenantID, period)
}

func (s *Store) ListForEvaluator(ctx context.Context, tenantID, period, evaluatorID string) ([]Record, error) {
	return s.list(ctx, `
    SELECT `+recordColumns+`
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1 AND ev.period = $2 AND ev.evaluator_id = $3
    ORDER BY e.full_name
  `, tenantID, period, evaluatorID)
}

func (s *Store) ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]Record, error) {
	return s.list(ctx, `
    SELECT `+recordColumns+`
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1 AND ev.employee_id = $2
    ORDER BY ev.period DESC, ev.is_self_eval
  `, tenantID, employeeID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Replace deletes any prior record for the key and inserts the new one in a
// single transaction, so the key holds exactly one row afterwards.
func (s *Store) Replace(ctx context.Context, rec Record, overwriteSubmitted bool) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := s.ReplaceTx(ctx, tx, rec, overwriteSubmitted)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// ReplaceTx is Replace inside a caller-owned transaction; delegation
// completion uses it to commit the task flip and the record together.
func (s *Store) ReplaceTx(ctx context.Context, tx pgx.Tx, rec Record, overwriteSubmitted bool) (string, error) {
	var existingStatus string
	err := tx.QueryRow(ctx, `
    SELECT status FROM evaluations
    WHERE tenant_id = $1 AND period = $2 AND employee_id = $3 AND is_self_eval = $4
    FOR UPDATE
  `, rec.TenantID, rec.Period, rec.EmployeeID, rec.SelfEval).Scan(&existingStatus)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first save for this key
	case err != nil:
		return "", err
	default:
		if err := CanReplace(existingStatus, rec.SelfEval, overwriteSubmitted); err != nil {
			return "", err
		}
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM evaluations
    WHERE tenant_id = $1 AND period = $2 AND employee_id = $3 AND is_self_eval = $4
  `, rec.TenantID, rec.Period, rec.EmployeeID, rec.SelfEval); err != nil {
		return "", err
	}

	var submittedAt any
	if rec.SubmittedAt != nil {
		submittedAt = *rec.SubmittedAt
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO evaluations (
      tenant_id, period, employee_id, evaluator_id, is_self_eval,
      p1, p2, p3, p4, p5, pot1, pot2, pot3, pot4, pot5,
      avg_performance, avg_potential, category, action_plan, status, submitted_at
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
    RETURNING id
  `,
		rec.TenantID, rec.Period, rec.EmployeeID, rec.EvaluatorID, rec.SelfEval,
		rec.Performance[0], rec.Performance[1], rec.Performance[2], rec.Performance[3], rec.Performance[4],
		rec.Potential[0], rec.Potential[1], rec.Potential[2], rec.Potential[3], rec.Potential[4],
		rec.AvgPerformance, rec.AvgPotential, rec.Category, rec.ActionPlan, rec.Status, submittedAt,
	).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Lock flips Draft to Submitted exactly once.
func (s *Store) Lock(ctx context.Context, tenantID, recordID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluations
    SET status = $1, submitted_at = now()
    WHERE tenant_id = $2 AND id = $3 AND status = $4
  `, StatusSubmitted, tenantID, recordID, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := s.DB.QueryRow(ctx, "SELECT status FROM evaluations WHERE tenant_id = $1 AND id = $2", tenantID, recordID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrLocked
	}
	return nil
}
