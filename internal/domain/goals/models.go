package goals

import "time"

type Goal struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"-"`
	Period      string     `json:"period"`
	EmployeeID  string     `json:"employeeId"`
	ManagerID   string     `json:"managerId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Weight      float64    `json:"weight"`
	Progress    float64    `json:"progress"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	KPIs        []KPI      `json:"kpis,omitempty"`
}

type KPI struct {
	ID          string     `json:"id,omitempty"`
	Description string     `json:"description"`
	Weight      float64    `json:"weight"`
	Progress    float64    `json:"progress"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

const (
	StatusOnTrack   = "On Track"
	StatusAtRisk    = "At Risk"
	StatusCompleted = "Completed"
)
