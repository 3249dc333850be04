package scoring

import (
	"math"
	"testing"
)

func TestAverageBoundaries(t *testing.T) {
	avg, err := Average([]int{1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 1.0 {
		t.Fatalf("expected 1.0, got %v", avg)
	}

	avg, err = Average([]int{5, 5, 5, 5, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 5.0 {
		t.Fatalf("expected 5.0, got %v", avg)
	}
}

func TestAverageMean(t *testing.T) {
	avg, err := Average([]int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 3.0 {
		t.Fatalf("expected 3.0, got %v", avg)
	}
}

func TestAverageRejectsBadInput(t *testing.T) {
	if _, err := Average([]int{1, 2, 3, 4}); err == nil {
		t.Fatal("expected error for short vector")
	}
	if _, err := Average([]int{1, 2, 3, 4, 6}); err == nil {
		t.Fatal("expected error for out-of-range rating")
	}
	if _, err := Average(nil); err == nil {
		t.Fatal("expected error for nil vector")
	}
}

func TestClassifyGrid(t *testing.T) {
	cases := []struct {
		perf, pot float64
		want      string
	}{
		{5.0, 5.0, CategoryStar},
		{4.0, 4.0, CategoryStar},
		{4.2, 3.0, CategoryHighPerformer},
		{4.8, 1.0, CategorySolidPerformer},
		{3.0, 4.5, CategoryHighPotential},
		{3.0, 3.0, CategoryCorePerformer},
		{2.5, 2.5, CategoryCorePerformer},
		{3.4, 1.8, CategoryEffective},
		{1.0, 4.0, CategoryRoughDiamond},
		{2.0, 3.0, CategoryInconsistent},
		{1.0, 1.0, CategoryUnderperformer},
		{2.4999, 2.4999, CategoryUnderperformer},
	}
	for _, tc := range cases {
		got := Classify(tc.perf, tc.pot)
		if got != tc.want {
			t.Fatalf("Classify(%v, %v) = %q, want %q", tc.perf, tc.pot, got, tc.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for p := 0.0; p <= 5.0; p += 0.25 {
		for q := 0.0; q <= 5.0; q += 0.25 {
			if got := Classify(p, q); got == "" || got == CategoryUnavailable {
				t.Fatalf("Classify(%v, %v) returned %q", p, q, got)
			}
		}
	}
}

func TestClassifyUnavailable(t *testing.T) {
	if got := Classify(math.NaN(), 3.0); got != CategoryUnavailable {
		t.Fatalf("expected %q for NaN, got %q", CategoryUnavailable, got)
	}
	if got := Classify(3.0, math.Inf(1)); got != CategoryUnavailable {
		t.Fatalf("expected %q for Inf, got %q", CategoryUnavailable, got)
	}
}

func TestComputeTopTier(t *testing.T) {
	summary, err := Compute([]int{5, 5, 5, 5, 5}, []int{5, 5, 5, 5, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AvgPerformance != 5.0 || summary.AvgPotential != 5.0 {
		t.Fatalf("unexpected averages: %+v", summary)
	}
	if summary.Category != CategoryStar {
		t.Fatalf("expected %q, got %q", CategoryStar, summary.Category)
	}
}

func TestComputeDegradesOnBadInput(t *testing.T) {
	summary, err := Compute([]int{5, 5, 5}, []int{5, 5, 5, 5, 5})
	if err == nil {
		t.Fatal("expected error")
	}
	if summary.Category != CategoryUnavailable {
		t.Fatalf("expected sentinel category, got %q", summary.Category)
	}
}
