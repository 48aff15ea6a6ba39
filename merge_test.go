package main

import "testing"

func TestMergeVerdictsDropsOutOfRange(t *testing.T) {
	results := []PostVerdict{
		{Index: 0, IsProblem: true, Summary: "broken export"},
		{Index: 2, IsProblem: false},
		{Index: 7, IsProblem: true, Summary: "phantom"},
		{Index: -1, IsProblem: true},
	}
	merged, dropped := MergeVerdicts(3, results, func(v PostVerdict) int { return v.Index })

	if dropped != 2 {
		t.Fatalf("expected 2 dropped verdicts, got %d", dropped)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged verdicts, got %d", len(merged))
	}
	if !merged[0].IsProblem || merged[0].Summary != "broken export" {
		t.Errorf("verdict 0 wrong: %+v", merged[0])
	}
	if _, ok := merged[1]; ok {
		t.Errorf("index 1 had no verdict but appears in merge")
	}
}

func TestMergeVerdictsMissingIndicesStayAbsent(t *testing.T) {
	results := []CommentVerdict{
		{Index: 1, Category: "Question", Summary: "asks about pricing"},
	}
	merged, dropped := MergeVerdicts(5, results, func(v CommentVerdict) int { return v.Index })

	if dropped != 0 {
		t.Fatalf("expected no drops, got %d", dropped)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged verdict, got %d", len(merged))
	}
	for _, idx := range []int{0, 2, 3, 4} {
		if _, ok := merged[idx]; ok {
			t.Errorf("unexpected verdict at index %d", idx)
		}
	}
}

func TestMergeVerdictsLastDuplicateWins(t *testing.T) {
	results := []KeywordVerdict{
		{Index: 0, Verdict: "Red Ocean"},
		{Index: 0, Verdict: "Golden Opportunity"},
	}
	merged, dropped := MergeVerdicts(1, results, func(v KeywordVerdict) int { return v.Index })

	if dropped != 0 {
		t.Fatalf("expected no drops, got %d", dropped)
	}
	if merged[0].Verdict != "Golden Opportunity" {
		t.Errorf("expected later duplicate to win, got %q", merged[0].Verdict)
	}
}
