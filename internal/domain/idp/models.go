package idp

// Plan is one development plan per (employee, period). The three activity
// sections follow the 70/20/10 learning split and each carries its own row
// shape; they are JSON text only at the storage boundary.
type Plan struct {
	ID            string           `json:"id,omitempty"`
	TenantID      string           `json:"-"`
	Period        string           `json:"period"`
	EmployeeID    string           `json:"employeeId"`
	ManagerID     string           `json:"managerId,omitempty"`
	Strengths     string           `json:"strengths,omitempty"`
	AreasImprove  string           `json:"areasImprove,omitempty"`
	CareerGoal    string           `json:"careerGoal,omitempty"`
	Experience    []ExperienceItem `json:"experience,omitempty"`
	Mentoring     []MentoringItem  `json:"mentoring,omitempty"`
	Education     []EducationItem  `json:"education,omitempty"`
	SupportNeeded []string         `json:"supportNeeded,omitempty"`
	SupportNotes  string           `json:"supportNotes,omitempty"`
	Status        string           `json:"status"`
}

// ExperienceItem is a 70% section row: learning through work.
type ExperienceItem struct {
	Skill    string `json:"skill"`
	Activity string `json:"activity"`
	Due      string `json:"due,omitempty"`
	Evidence string `json:"evidence,omitempty"`
}

// MentoringItem is a 20% section row: learning from others.
type MentoringItem struct {
	Skill    string `json:"skill"`
	Activity string `json:"activity"`
	Due      string `json:"due,omitempty"`
}

// EducationItem is a 10% section row: formal education.
type EducationItem struct {
	Course string `json:"course"`
	Cost   string `json:"cost,omitempty"`
	Due    string `json:"due,omitempty"`
}

const StatusActive = "Active"
