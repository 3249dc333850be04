package engagement

import "time"

// Recognition is an append-only shout-out between two employees.
type Recognition struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"-"`
	SenderID     string    `json:"senderId"`
	SenderName   string    `json:"senderName,omitempty"`
	ReceiverID   string    `json:"receiverId"`
	ReceiverName string    `json:"receiverName,omitempty"`
	Category     string    `json:"category"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Survey struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"-"`
	Question  string    `json:"question"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// SurveyStats carries the aggregate only; individual responses are stored
// without a user id and never leave the database row by row.
type SurveyStats struct {
	SurveyID  string  `json:"surveyId"`
	Question  string  `json:"question"`
	Responses int     `json:"responses"`
	Average   float64 `json:"average"`
}

type MeetingNote struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	ManagerID   string    `json:"managerId"`
	EmployeeID  string    `json:"employeeId"`
	Notes       string    `json:"notes"`
	ActionItems string    `json:"actionItems"`
	MeetingOn   time.Time `json:"meetingOn"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	ScoreMin = 1
	ScoreMax = 10
)
