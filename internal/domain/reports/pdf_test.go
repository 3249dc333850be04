package reports

import (
	"bytes"
	"testing"
	"time"

	"talent/internal/domain/evaluations"
)

func TestEvaluationPDFRenders(t *testing.T) {
	now := time.Now()
	rec := evaluations.Record{
		Period:         "2026-Q1",
		EmployeeName:   "Ana Petrova",
		JobTitle:       "Senior Analyst",
		Performance:    []int{4, 5, 4, 4, 5},
		Potential:      []int{5, 4, 5, 4, 4},
		AvgPerformance: 4.4,
		AvgPotential:   4.4,
		Category:       "Star",
		ActionPlan:     "Nominate for the leadership track.",
		Status:         evaluations.StatusSubmitted,
		SubmittedAt:    &now,
	}

	data, err := EvaluationPDF(rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestEvaluationPDFWithoutActionPlan(t *testing.T) {
	rec := evaluations.Record{
		Period:       "2026-Q1",
		EmployeeName: "Marko Novak",
		Performance:  []int{2, 2, 3, 2, 2},
		Potential:    []int{2, 3, 2, 2, 2},
		Category:     "Underperformer",
		Status:       evaluations.StatusDraft,
	}

	data, err := EvaluationPDF(rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected PDF bytes")
	}
}
