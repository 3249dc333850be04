// Package backup writes point-in-time xlsx snapshots of a tenant's data.
// Snapshots are taken automatically when an HR or Admin user signs in and
// on demand from the admin API.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

const (
	KindAuto   = "AUTO"
	KindManual = "MANUAL"
)

type Service struct {
	DB  *pgxpool.Pool
	Dir string
}

func NewService(db *pgxpool.Pool, dir string) *Service {
	return &Service{DB: db, Dir: dir}
}

type sheetSpec struct {
	name  string
	query string
}

var sheets = []sheetSpec{
	{"Employees", `
    SELECT e.employee_number, e.full_name, COALESCE(e.job_title, ''), COALESCE(e.department, ''),
           COALESCE(m.employee_number, ''), e.is_evaluator::text, e.active::text
    FROM employees e
    LEFT JOIN employees m ON e.manager_id = m.id
    WHERE e.tenant_id = $1
    ORDER BY e.employee_number`},
	{"Evaluations", `
    SELECT ev.period, e.employee_number, ev.evaluator_id::text, ev.is_self_eval::text,
           ev.p1::text, ev.p2::text, ev.p3::text, ev.p4::text, ev.p5::text,
           ev.pot1::text, ev.pot2::text, ev.pot3::text, ev.pot4::text, ev.pot5::text,
           ev.avg_performance::text, ev.avg_potential::text, ev.category,
           COALESCE(ev.action_plan, ''), ev.status
    FROM evaluations ev
    JOIN employees e ON ev.employee_id = e.id
    WHERE ev.tenant_id = $1
    ORDER BY ev.period, e.employee_number`},
	{"Goals", `
    SELECT g.period, e.employee_number, g.title, COALESCE(g.description, ''),
           g.weight::text, g.progress::text, g.status, COALESCE(g.deadline::text, '')
    FROM goals g
    JOIN employees e ON g.employee_id = e.id
    WHERE g.tenant_id = $1
    ORDER BY g.period, e.employee_number`},
	{"DevelopmentPlans", `
    SELECT dp.period, e.employee_number, COALESCE(dp.strengths, ''), COALESCE(dp.areas_improve, ''),
           COALESCE(dp.career_goal, ''), COALESCE(dp.experience_json, ''), COALESCE(dp.mentoring_json, ''),
           COALESCE(dp.education_json, ''), COALESCE(dp.support_needed, ''), dp.status
    FROM development_plans dp
    JOIN employees e ON dp.employee_id = e.id
    WHERE dp.tenant_id = $1
    ORDER BY dp.period, e.employee_number`},
	{"DelegatedTasks", `
    SELECT dt.period, dt.manager_id::text, dt.delegate_id::text, dt.target_id::text, dt.status
    FROM delegated_tasks dt
    WHERE dt.tenant_id = $1
    ORDER BY dt.created_at`},
}

var sheetHeaders = map[string][]string{
	"Employees":        {"EmployeeNumber", "FullName", "JobTitle", "Department", "ManagerNumber", "IsEvaluator", "Active"},
	"Evaluations":      {"Period", "EmployeeNumber", "Evaluator", "SelfEval", "P1", "P2", "P3", "P4", "P5", "Pot1", "Pot2", "Pot3", "Pot4", "Pot5", "AvgPerformance", "AvgPotential", "Category", "ActionPlan", "Status"},
	"Goals":            {"Period", "EmployeeNumber", "Title", "Description", "Weight", "Progress", "Status", "Deadline"},
	"DevelopmentPlans": {"Period", "EmployeeNumber", "Strengths", "AreasImprove", "CareerGoal", "Experience", "Mentoring", "Education", "SupportNeeded", "Status"},
	"DelegatedTasks":   {"Period", "Manager", "Delegate", "Target", "Status"},
}

// Snapshot dumps the tenant's tables into backup_<kind>_<timestamp>.xlsx and
// returns the file name.
func (s *Service) Snapshot(ctx context.Context, tenantID, kind string) (string, error) {
	if kind != KindAuto && kind != KindManual {
		return "", fmt.Errorf("unknown backup kind %q", kind)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	f, err := s.buildWorkbook(ctx, tenantID)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := fmt.Sprintf("backup_%s_%s.xlsx", kind, time.Now().Format("20060102_150405"))
	if err := f.SaveAs(filepath.Join(s.Dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Export streams the same workbook a snapshot would write, without touching
// the backup directory.
func (s *Service) Export(ctx context.Context, tenantID string, w io.Writer) error {
	f, err := s.buildWorkbook(ctx, tenantID)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (s *Service) buildWorkbook(ctx context.Context, tenantID string) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, spec := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), spec.name); err != nil {
				f.Close()
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(spec.name); err != nil {
				f.Close()
				return nil, err
			}
		}
		if err := s.fillSheet(ctx, f, spec, tenantID); err != nil {
			f.Close()
			return nil, fmt.Errorf("backup sheet %s: %w", spec.name, err)
		}
	}
	return f, nil
}

func (s *Service) fillSheet(ctx context.Context, f *excelize.File, spec sheetSpec, tenantID string) error {
	headers := sheetHeaders[spec.name]
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(spec.name, "A1", &cells); err != nil {
		return err
	}

	rows, err := s.DB.Query(ctx, spec.query, tenantID)
	if err != nil {
		return err
	}
	defer rows.Close()

	rowNum := 2
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(spec.name, cell, &values); err != nil {
			return err
		}
		rowNum++
	}
	return rows.Err()
}

type Info struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// List returns the snapshots on disk, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Info
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "backup_") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		kind := KindManual
		if strings.HasPrefix(name, "backup_"+KindAuto+"_") {
			kind = KindAuto
		}
		out = append(out, Info{Name: name, Kind: kind, Size: fi.Size(), CreatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
