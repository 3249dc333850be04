package reports

// Dashboard is the period summary shown to managers and HR.
type Dashboard struct {
	Period         string         `json:"period"`
	Headcount      int            `json:"headcount"`
	Evaluated      int            `json:"evaluated"`
	Submitted      int            `json:"submitted"`
	SelfEvaluated  int            `json:"selfEvaluated"`
	AvgPerformance float64        `json:"avgPerformance"`
	AvgPotential   float64        `json:"avgPotential"`
	Distribution   map[string]int `json:"distribution"`
}
