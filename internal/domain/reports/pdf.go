package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"talent/internal/domain/evaluations"
	"talent/internal/domain/scoring"
)

var dimensionLabels = []string{
	"Results delivery",
	"Quality of work",
	"Collaboration",
	"Initiative",
	"Reliability",
}

var potentialLabels = []string{
	"Learning agility",
	"Ambition",
	"Leadership",
	"Adaptability",
	"Strategic thinking",
}

// EvaluationPDF renders a single evaluation as a printable summary sheet.
func EvaluationPDF(rec evaluations.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Evaluation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rec.EmployeeName))
	pdf.Ln(7)
	if rec.JobTitle != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Role: %s", rec.JobTitle))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", rec.Period))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Performance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	writeRatings(pdf, dimensionLabels, rec.Performance)
	pdf.Cell(0, 7, fmt.Sprintf("Average: %.2f", rec.AvgPerformance))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Potential")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	writeRatings(pdf, potentialLabels, rec.Potential)
	pdf.Cell(0, 7, fmt.Sprintf("Average: %.2f", rec.AvgPotential))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Talent category: %s", rec.Category))
	pdf.Ln(10)

	if strings.TrimSpace(rec.ActionPlan) != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Action plan")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, rec.ActionPlan, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRatings(pdf *gofpdf.Fpdf, labels []string, ratings []int) {
	for i := 0; i < scoring.Dimensions && i < len(ratings); i++ {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d / %d", labels[i], ratings[i], scoring.RatingMax))
		pdf.Ln(7)
	}
}
