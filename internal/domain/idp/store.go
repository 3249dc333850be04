package idp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("development plan not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, tenantID, period, employeeID string) (Plan, error) {
	var plan Plan
	var expRaw, menRaw, eduRaw, supportRaw string
	err := s.DB.QueryRow(ctx, `
    SELECT id, period, employee_id, COALESCE(manager_id::text, ''),
           COALESCE(strengths, ''), COALESCE(areas_improve, ''), COALESCE(career_goal, ''),
           COALESCE(experience_json, ''), COALESCE(mentoring_json, ''), COALESCE(education_json, ''),
           COALESCE(support_needed, ''), COALESCE(support_notes, ''), status
    FROM development_plans
    WHERE tenant_id = $1 AND period = $2 AND employee_id = $3
  `, tenantID, period, employeeID).Scan(
		&plan.ID, &plan.Period, &plan.EmployeeID, &plan.ManagerID,
		&plan.Strengths, &plan.AreasImprove, &plan.CareerGoal,
		&expRaw, &menRaw, &eduRaw,
		&supportRaw, &plan.SupportNotes, &plan.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, err
	}

	// Corrupt section text degrades to an empty table; the plan still loads.
	if plan.Experience, err = decodeSection[ExperienceItem](expRaw); err != nil {
		slog.Warn("idp experience section corrupt", "planId", plan.ID, "err", err)
	}
	if plan.Mentoring, err = decodeSection[MentoringItem](menRaw); err != nil {
		slog.Warn("idp mentoring section corrupt", "planId", plan.ID, "err", err)
	}
	if plan.Education, err = decodeSection[EducationItem](eduRaw); err != nil {
		slog.Warn("idp education section corrupt", "planId", plan.ID, "err", err)
	}
	plan.SupportNeeded = DecodeSupport(supportRaw)
	return plan, nil
}

// Replace swaps the whole plan for (tenant, period, employee) in one
// transaction; a failed insert leaves the previous plan in place.
func (s *Store) Replace(ctx context.Context, plan Plan) (string, error) {
	expRaw, err := encodeSection(plan.Experience)
	if err != nil {
		return "", err
	}
	menRaw, err := encodeSection(plan.Mentoring)
	if err != nil {
		return "", err
	}
	eduRaw, err := encodeSection(plan.Education)
	if err != nil {
		return "", err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    DELETE FROM development_plans
    WHERE tenant_id = $1 AND period = $2 AND employee_id = $3
  `, plan.TenantID, plan.Period, plan.EmployeeID); err != nil {
		return "", err
	}

	var managerID any
	if plan.ManagerID != "" {
		managerID = plan.ManagerID
	}
	status := plan.Status
	if status == "" {
		status = StatusActive
	}

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO development_plans (
      tenant_id, period, employee_id, manager_id,
      strengths, areas_improve, career_goal,
      experience_json, mentoring_json, education_json,
      support_needed, support_notes, status
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `,
		plan.TenantID, plan.Period, plan.EmployeeID, managerID,
		plan.Strengths, plan.AreasImprove, plan.CareerGoal,
		expRaw, menRaw, eduRaw,
		EncodeSupport(plan.SupportNeeded), plan.SupportNotes, status,
	).Scan(&id); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}
