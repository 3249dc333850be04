package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"talent/internal/domain/auth"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Get(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	return s.Store.Get(ctx, tenantID, employeeID)
}

func (s *Service) GetByUserID(ctx context.Context, tenantID, userID string) (Employee, error) {
	return s.Store.GetByUserID(ctx, tenantID, userID)
}

func (s *Service) List(ctx context.Context, tenantID string, activeOnly bool) ([]Employee, error) {
	return s.Store.List(ctx, tenantID, activeOnly)
}

func (s *Service) ListTeam(ctx context.Context, tenantID, managerID string) ([]Employee, error) {
	return s.Store.ListTeam(ctx, tenantID, managerID)
}

func (s *Service) ListEvaluators(ctx context.Context, tenantID string) ([]Employee, error) {
	return s.Store.ListEvaluators(ctx, tenantID)
}

func (s *Service) IsManagerOf(ctx context.Context, tenantID, managerID, employeeID string) (bool, error) {
	return s.Store.IsManagerOf(ctx, tenantID, managerID, employeeID)
}

func (s *Service) SetActive(ctx context.Context, tenantID, employeeID string, active bool) error {
	return s.Store.SetActive(ctx, tenantID, employeeID, active)
}

type OnboardInput struct {
	EmployeeNumber string
	FullName       string
	JobTitle       string
	Department     string
	ManagerNumber  string
	IsEvaluator    bool
	Password       string
}

// Onboard creates (or updates) the employee record and, when a password is
// given, its login credential in the same transaction. The username is the
// employee number and the role follows the evaluator flag.
func (s *Service) Onboard(ctx context.Context, tenantID string, input OnboardInput) (string, error) {
	managerID := ""
	if input.ManagerNumber != "" {
		id, err := s.Store.IDByNumber(ctx, tenantID, input.ManagerNumber)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return "", err
		}
		// An unresolved manager reference leaves the link unset.
		managerID = id
	}

	emp := Employee{
		EmployeeNumber: strings.TrimSpace(input.EmployeeNumber),
		FullName:       strings.TrimSpace(input.FullName),
		JobTitle:       input.JobTitle,
		Department:     input.Department,
		ManagerID:      managerID,
		IsEvaluator:    input.IsEvaluator,
		Active:         true,
	}

	if input.Password == "" {
		return s.Store.Upsert(ctx, tenantID, emp)
	}

	roleName := auth.RoleEmployee
	if input.IsEvaluator {
		roleName = auth.RoleManager
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}
	return s.Store.UpsertWithLogin(ctx, tenantID, emp, hash, roleName)
}

// ImportRoster applies parsed roster rows with upsert semantics. Rows whose
// manager number does not resolve are still created with the link left
// unset; the row is reported, not failed.
func (s *Service) ImportRoster(ctx context.Context, tenantID string, rows []RosterRow) (RosterResult, error) {
	var result RosterResult
	for _, row := range rows {
		if row.EmployeeNumber == "" || row.FullName == "" {
			result.Skipped = append(result.Skipped, RosterIssue{Row: row.Line, Reason: "employee number and full name are required"})
			continue
		}

		managerID := ""
		if row.ManagerNumber != "" {
			id, err := s.Store.IDByNumber(ctx, tenantID, row.ManagerNumber)
			switch {
			case errors.Is(err, ErrNotFound):
				result.Unresolved = append(result.Unresolved, RosterIssue{Row: row.Line, Reason: "manager " + row.ManagerNumber + " not found; link left empty"})
			case err != nil:
				return result, err
			default:
				managerID = id
			}
		}

		if _, err := s.Store.Upsert(ctx, tenantID, Employee{
			EmployeeNumber: row.EmployeeNumber,
			FullName:       row.FullName,
			JobTitle:       row.JobTitle,
			Department:     row.Department,
			ManagerID:      managerID,
			IsEvaluator:    row.IsEvaluator,
			Active:         true,
		}); err != nil {
			slog.Warn("roster upsert failed", "employeeNumber", row.EmployeeNumber, "err", err)
			result.Skipped = append(result.Skipped, RosterIssue{Row: row.Line, Reason: "write failed"})
			continue
		}
		result.Imported++
	}
	return result, nil
}
