package idp

import "testing"

func TestSectionEncodingPreservesOrder(t *testing.T) {
	items := []ExperienceItem{
		{Skill: "Delegation", Activity: "Lead the Q3 rollout", Due: "2026-09-30", Evidence: "Rollout retro"},
		{Skill: "Planning", Activity: "Own the roadmap draft", Due: "2026-06-30"},
	}
	raw, err := encodeSection(items)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeSection[ExperienceItem](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(decoded))
	}
	if decoded[0].Skill != "Delegation" || decoded[1].Skill != "Planning" {
		t.Fatalf("order not preserved: %+v", decoded)
	}
}

func TestDecodeSectionToleratesEmpty(t *testing.T) {
	for _, raw := range []string{"", "  ", "[]"} {
		items, err := decodeSection[EducationItem](raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if items != nil {
			t.Fatalf("expected nil for %q, got %+v", raw, items)
		}
	}
}

func TestDecodeSectionReportsCorruptText(t *testing.T) {
	items, err := decodeSection[MentoringItem]("{not json")
	if err == nil {
		t.Fatal("expected error for corrupt section")
	}
	if items != nil {
		t.Fatalf("corrupt section must decode to empty, got %+v", items)
	}
}

func TestSupportRoundTrip(t *testing.T) {
	encoded := EncodeSupport([]string{"Budget", " Mentor ", "", "Time off"})
	if encoded != "Budget;Mentor;Time off" {
		t.Fatalf("unexpected encoding: %q", encoded)
	}
	decoded := DecodeSupport(encoded)
	if len(decoded) != 3 || decoded[1] != "Mentor" {
		t.Fatalf("unexpected decoding: %+v", decoded)
	}
	if DecodeSupport("") != nil {
		t.Fatal("empty support string must decode to nil")
	}
}
