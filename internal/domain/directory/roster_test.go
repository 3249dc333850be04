package directory

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func rosterWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestParseRosterSkipsHeaderAndBlankRows(t *testing.T) {
	buf := rosterWorkbook(t, [][]any{
		{"Employee Number", "Full Name", "Job Title", "Department", "Manager Number", "Evaluator"},
		{"E100", "Ana Horvat", "Engineer", "R&D", "E001", "0"},
		{"", "", "", "", "", ""},
		{"E001", "Ivo Kovac", "Head of R&D", "R&D", "", "1"},
	})

	rows, err := ParseRoster(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].EmployeeNumber != "E100" || rows[0].ManagerNumber != "E001" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].IsEvaluator {
		t.Fatal("E100 should not be an evaluator")
	}
	if !rows[1].IsEvaluator {
		t.Fatal("E001 should be an evaluator")
	}
}

func TestParseRosterFlagVariants(t *testing.T) {
	buf := rosterWorkbook(t, [][]any{
		{"E1", "A", "", "", "", "yes"},
		{"E2", "B", "", "", "", "DA"},
		{"E3", "C", "", "", "", "no"},
	})

	rows, err := ParseRoster(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !rows[0].IsEvaluator || !rows[1].IsEvaluator {
		t.Fatalf("yes/DA should both parse as evaluator: %+v", rows[:2])
	}
	if rows[2].IsEvaluator {
		t.Fatal("no should parse as non-evaluator")
	}
}

func TestWriteRosterRoundTrips(t *testing.T) {
	employees := []Employee{
		{ID: "id-1", EmployeeNumber: "E001", FullName: "Ivo Kovac", JobTitle: "Head of R&D", Department: "R&D", IsEvaluator: true},
		{ID: "id-2", EmployeeNumber: "E100", FullName: "Ana Horvat", JobTitle: "Engineer", Department: "R&D", ManagerID: "id-1"},
	}

	var buf bytes.Buffer
	if err := WriteRoster(&buf, employees); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	rows, err := ParseRoster(&buf)
	if err != nil {
		t.Fatalf("parse roster: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].ManagerNumber != "E001" {
		t.Fatalf("manager id should export as manager number, got %q", rows[1].ManagerNumber)
	}
	if !rows[0].IsEvaluator {
		t.Fatal("evaluator flag lost in round trip")
	}
}
