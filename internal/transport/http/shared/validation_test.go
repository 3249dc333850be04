package shared

import (
	"net/http/httptest"
	"testing"
)

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("period", "", "period is required")
	v.Required("title", "set", "title is required")
	v.Enum("status", "Nonsense", []string{"On Track", "At Risk"}, "unknown status")

	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
	if issues[0].Field != "period" || issues[1].Field != "status" {
		t.Fatalf("issues not sorted by field: %+v", issues)
	}
}

func TestValidatorRatings(t *testing.T) {
	v := NewValidator()
	v.Ratings("performance", []int{1, 2, 3, 4, 5}, 5, 1, 5)
	if v.HasIssues() {
		t.Fatalf("valid block rejected: %+v", v.Issues())
	}

	v = NewValidator()
	v.Ratings("performance", []int{1, 2, 3}, 5, 1, 5)
	if !v.HasIssues() {
		t.Fatal("short block must be rejected")
	}

	v = NewValidator()
	v.Ratings("potential", []int{1, 2, 3, 4, 6}, 5, 1, 5)
	if !v.HasIssues() {
		t.Fatal("out of range rating must be rejected")
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("deadline", "2026-03-31"); !ok {
		t.Fatal("plain date must parse")
	}
	if _, ok := v.Date("deadline", "31/03/2026"); ok {
		t.Fatal("unknown format must fail")
	}
	if !v.HasIssues() {
		t.Fatal("bad date must record an issue")
	}
}

func TestRejectWritesValidationError(t *testing.T) {
	v := NewValidator()
	v.Add("field", "broken")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	clean := NewValidator()
	if clean.Reject(httptest.NewRecorder(), "req-2") {
		t.Fatal("clean validator must not reject")
	}
}
