package directory

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RosterRow is one parsed line of a roster spreadsheet. Column order:
// employee number, full name, job title, department, manager number,
// evaluator flag.
type RosterRow struct {
	Line           int
	EmployeeNumber string
	FullName       string
	JobTitle       string
	Department     string
	ManagerNumber  string
	IsEvaluator    bool
}

type RosterIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type RosterResult struct {
	Imported   int           `json:"imported"`
	Unresolved []RosterIssue `json:"unresolved,omitempty"`
	Skipped    []RosterIssue `json:"skipped,omitempty"`
}

// ParseRoster reads roster rows from the first sheet of an xlsx document.
// The first row is treated as a header when its first cell is not numeric-ish
// data; rows with no employee number and no name are ignored.
func ParseRoster(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var out []RosterRow
	for i, cells := range rows {
		row := RosterRow{Line: i + 1}
		row.EmployeeNumber = cellAt(cells, 0)
		row.FullName = cellAt(cells, 1)
		row.JobTitle = cellAt(cells, 2)
		row.Department = cellAt(cells, 3)
		row.ManagerNumber = cellAt(cells, 4)
		row.IsEvaluator = parseFlag(cellAt(cells, 5))

		if row.EmployeeNumber == "" && row.FullName == "" {
			continue
		}
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// WriteRoster renders employees as a roster workbook in the import column
// layout, so an export round-trips through ParseRoster.
func WriteRoster(w io.Writer, employees []Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []any{"Employee Number", "Full Name", "Job Title", "Department", "Manager Number", "Evaluator"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	managerNumbers := map[string]string{}
	for _, emp := range employees {
		managerNumbers[emp.ID] = emp.EmployeeNumber
	}

	for i, emp := range employees {
		flag := "0"
		if emp.IsEvaluator {
			flag = "1"
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{emp.EmployeeNumber, emp.FullName, emp.JobTitle, emp.Department, managerNumbers[emp.ManagerID], flag}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func parseFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "da":
		return true
	}
	return false
}

func looksLikeHeader(row RosterRow) bool {
	first := strings.ToLower(row.EmployeeNumber)
	return strings.Contains(first, "number") || strings.Contains(first, "broj") || strings.Contains(first, "id")
}
