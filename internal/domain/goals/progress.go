package goals

import "fmt"

// RollUp derives a goal's progress from its KPI set:
// sum(weight * progress) / 100. An empty set rolls up to zero; the caller
// keeps manual progress in that case.
func RollUp(kpis []KPI) float64 {
	total := 0.0
	for _, kpi := range kpis {
		total += kpi.Weight * kpi.Progress / 100
	}
	return total
}

// ValidateKPIs enforces the write-boundary invariants the source system
// never checked: each weight and progress in [0,100], weights summing to at
// most 100.
func ValidateKPIs(kpis []KPI) error {
	weightSum := 0.0
	for i, kpi := range kpis {
		if kpi.Description == "" {
			return fmt.Errorf("kpi %d: description is required", i+1)
		}
		if kpi.Weight < 0 || kpi.Weight > 100 {
			return fmt.Errorf("kpi %d: weight %.1f out of range [0,100]", i+1, kpi.Weight)
		}
		if kpi.Progress < 0 || kpi.Progress > 100 {
			return fmt.Errorf("kpi %d: progress %.1f out of range [0,100]", i+1, kpi.Progress)
		}
		weightSum += kpi.Weight
	}
	if weightSum > 100 {
		return fmt.Errorf("kpi weights sum to %.1f, must not exceed 100", weightSum)
	}
	return nil
}
