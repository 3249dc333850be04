package delegation

import "time"

type Task struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"-"`
	Period       string    `json:"period"`
	ManagerID    string    `json:"managerId"`
	DelegateID   string    `json:"delegateId"`
	TargetID     string    `json:"targetId"`
	TargetName   string    `json:"targetName,omitempty"`
	DelegateName string    `json:"delegateName,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)
