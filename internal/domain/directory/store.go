package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    e.id, e.employee_number, e.full_name, COALESCE(e.job_title, ''), COALESCE(e.department, ''),
    COALESCE(e.manager_id::text, ''), COALESCE(m.full_name, ''), e.is_evaluator, e.active,
    e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FullName, &emp.JobTitle, &emp.Department,
		&emp.ManagerID, &emp.ManagerName, &emp.IsEvaluator, &emp.Active,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) Get(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    WHERE e.tenant_id = $1 AND e.id = $2
  `, tenantID, employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) GetByUserID(ctx context.Context, tenantID, userID string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    JOIN users u ON u.employee_id = e.id
    WHERE e.tenant_id = $1 AND u.id = $2
  `, tenantID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) List(ctx context.Context, tenantID string, activeOnly bool) ([]Employee, error) {
	query := `
    SELECT ` + employeeColumns + `
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    WHERE e.tenant_id = $1`
	if activeOnly {
		query += " AND e.active"
	}
	query += " ORDER BY e.full_name"

	rows, err := s.DB.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) ListTeam(ctx context.Context, tenantID, managerID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    WHERE e.tenant_id = $1 AND e.manager_id = $2 AND e.active
    ORDER BY e.full_name
  `, tenantID, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) ListEvaluators(ctx context.Context, tenantID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    WHERE e.tenant_id = $1 AND e.is_evaluator AND e.active
    ORDER BY e.full_name
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) IsManagerOf(ctx context.Context, tenantID, managerID, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE tenant_id = $1 AND id = $2 AND manager_id = $3
  `, tenantID, employeeID, managerID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert inserts or updates an employee keyed by (tenant, employee number)
// and returns the row id. managerID may be empty, which clears the link.
func (s *Store) Upsert(ctx context.Context, tenantID string, emp Employee) (string, error) {
	var managerID any
	if emp.ManagerID != "" {
		managerID = emp.ManagerID
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, employee_number, full_name, job_title, department, manager_id, is_evaluator, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (tenant_id, employee_number) DO UPDATE
    SET full_name = EXCLUDED.full_name,
        job_title = EXCLUDED.job_title,
        department = EXCLUDED.department,
        manager_id = EXCLUDED.manager_id,
        is_evaluator = EXCLUDED.is_evaluator,
        active = EXCLUDED.active,
        updated_at = now()
    RETURNING id
  `, tenantID, emp.EmployeeNumber, emp.FullName, emp.JobTitle, emp.Department, managerID, emp.IsEvaluator, emp.Active).Scan(&id)
	return id, err
}

// UpsertTx is Upsert inside a caller-owned transaction, used when employee
// creation and credential creation must commit together.
func (s *Store) UpsertTx(ctx context.Context, tx pgx.Tx, tenantID string, emp Employee) (string, error) {
	var managerID any
	if emp.ManagerID != "" {
		managerID = emp.ManagerID
	}
	var id string
	err := tx.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, employee_number, full_name, job_title, department, manager_id, is_evaluator, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (tenant_id, employee_number) DO UPDATE
    SET full_name = EXCLUDED.full_name,
        job_title = EXCLUDED.job_title,
        department = EXCLUDED.department,
        manager_id = EXCLUDED.manager_id,
        is_evaluator = EXCLUDED.is_evaluator,
        active = EXCLUDED.active,
        updated_at = now()
    RETURNING id
  `, tenantID, emp.EmployeeNumber, emp.FullName, emp.JobTitle, emp.Department, managerID, emp.IsEvaluator, emp.Active).Scan(&id)
	return id, err
}

// UpsertWithLogin writes the employee row and its login credential in one
// transaction. The username is the employee number; the role is looked up by
// name within the tenant.
func (s *Store) UpsertWithLogin(ctx context.Context, tenantID string, emp Employee, passwordHash, roleName string) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	employeeID, err := s.UpsertTx(ctx, tx, tenantID, emp)
	if err != nil {
		return "", err
	}

	var roleID string
	if err := tx.QueryRow(ctx, "SELECT id FROM roles WHERE tenant_id = $1 AND name = $2", tenantID, roleName).Scan(&roleID); err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO users (tenant_id, employee_id, username, password_hash, role_id, department, status)
    VALUES ($1,$2,$3,$4,$5,$6,'active')
    ON CONFLICT (username) DO UPDATE
    SET role_id = EXCLUDED.role_id,
        department = EXCLUDED.department,
        employee_id = EXCLUDED.employee_id
  `, tenantID, employeeID, emp.EmployeeNumber, passwordHash, roleID, emp.Department); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return employeeID, nil
}

func (s *Store) SetActive(ctx context.Context, tenantID, employeeID string, active bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET active = $1, updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, active, tenantID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) IDByNumber(ctx context.Context, tenantID, employeeNumber string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM employees WHERE tenant_id = $1 AND employee_number = $2
  `, tenantID, employeeNumber).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}
