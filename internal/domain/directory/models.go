package directory

import "time"

type Employee struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"-"`
	EmployeeNumber string    `json:"employeeNumber"`
	FullName       string    `json:"fullName"`
	JobTitle       string    `json:"jobTitle"`
	Department     string    `json:"department"`
	ManagerID      string    `json:"managerId,omitempty"`
	ManagerName    string    `json:"managerName,omitempty"`
	IsEvaluator    bool      `json:"isEvaluator"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UnknownManagerLabel is shown when a manager reference cannot be resolved.
// Referential gaps degrade to a labeled value, they never abort a view.
const UnknownManagerLabel = "(unknown)"
