package evaluations

import "time"

type Record struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"-"`
	Period         string     `json:"period"`
	EmployeeID     string     `json:"employeeId"`
	EmployeeName   string     `json:"employeeName,omitempty"`
	JobTitle       string     `json:"jobTitle,omitempty"`
	Department     string     `json:"department,omitempty"`
	EvaluatorID    string     `json:"evaluatorId"`
	SelfEval       bool       `json:"selfEval"`
	Performance    []int      `json:"performance"`
	Potential      []int      `json:"potential"`
	AvgPerformance float64    `json:"avgPerformance"`
	AvgPotential   float64    `json:"avgPotential"`
	Category       string     `json:"category"`
	ActionPlan     string     `json:"actionPlan,omitempty"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
