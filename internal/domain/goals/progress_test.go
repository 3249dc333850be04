package goals

import "testing"

func TestRollUpWeightedProgress(t *testing.T) {
	kpis := []KPI{
		{Description: "Ship feature", Weight: 60, Progress: 50},
		{Description: "Reduce defects", Weight: 40, Progress: 100},
	}
	if got := RollUp(kpis); got != 70 {
		t.Fatalf("expected 70, got %v", got)
	}
}

func TestRollUpIsIdempotent(t *testing.T) {
	kpis := []KPI{
		{Description: "a", Weight: 30, Progress: 10},
		{Description: "b", Weight: 30, Progress: 90},
	}
	first := RollUp(kpis)
	second := RollUp(kpis)
	if first != second {
		t.Fatalf("rollup not stable: %v vs %v", first, second)
	}
}

func TestRollUpEmptySet(t *testing.T) {
	if got := RollUp(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
}

func TestValidateKPIs(t *testing.T) {
	ok := []KPI{
		{Description: "a", Weight: 60, Progress: 50},
		{Description: "b", Weight: 40, Progress: 0},
	}
	if err := ValidateKPIs(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	overweight := []KPI{
		{Description: "a", Weight: 70, Progress: 0},
		{Description: "b", Weight: 40, Progress: 0},
	}
	if err := ValidateKPIs(overweight); err == nil {
		t.Fatal("expected error for weights over 100")
	}

	negative := []KPI{{Description: "a", Weight: -1, Progress: 0}}
	if err := ValidateKPIs(negative); err == nil {
		t.Fatal("expected error for negative weight")
	}

	badProgress := []KPI{{Description: "a", Weight: 10, Progress: 120}}
	if err := ValidateKPIs(badProgress); err == nil {
		t.Fatal("expected error for progress over 100")
	}

	unnamed := []KPI{{Weight: 10, Progress: 0}}
	if err := ValidateKPIs(unnamed); err == nil {
		t.Fatal("expected error for missing description")
	}
}
