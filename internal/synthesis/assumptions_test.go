package synthesis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"lensbackend/internal/artifact"
)

func sampleOpportunities() []artifact.Document {
	return []artifact.Document{
		{
			"id":            "opp-1",
			"title":         "Free tier expansion for SMB",
			"why_now":       "SMB buyers are churning from incumbent pricing changes.",
			"problem_today": "Small teams hit the paywall before seeing value.",
			"scoring":       map[string]any{"total": 82.0},
			"tradeoffs": map[string]any{
				"why_competitors_wont_follow": []any{"Incumbent revenue depends on per-seat pricing."},
				"capability_forced":           []any{"Self-serve onboarding with usage metering"},
			},
			"citations": []any{
				map[string]any{"url": "https://example.com/a"},
				map[string]any{"url": "https://example.com/b"},
			},
		},
		{
			"id":      "opp-2",
			"title":   "Workflow automation for onboarding",
			"why_now": "Complaints about manual onboarding doubled.",
			"score":   68.0,
			"citations": []any{
				map[string]any{"url": "https://example.com/c"},
			},
		},
		{
			"id":    "opp-3",
			"title": "Compliance reporting exports",
			"score": 44.0,
		},
	}
}

func TestDeriveAssumptionsBounds(t *testing.T) {
	assumptions := DeriveAssumptions(sampleOpportunities())

	if len(assumptions) < 8 || len(assumptions) > 15 {
		t.Fatalf("expected 8-15 assumptions, got %d", len(assumptions))
	}
	for _, a := range assumptions {
		if a.ID == "" {
			t.Errorf("assumption %q has empty id", a.Statement)
		}
		if a.Impact < 1 || a.Impact > 5 {
			t.Errorf("impact out of range for %q: %d", a.Statement, a.Impact)
		}
		if a.SourcesCount < 0 {
			t.Errorf("negative sources count for %q", a.Statement)
		}
	}
}

func TestDeriveAssumptionsCategoryOrder(t *testing.T) {
	order := map[Category]int{
		CategoryMarket:      0,
		CategoryBuyer:       1,
		CategoryProduct:     2,
		CategoryCompetition: 3,
		CategoryEvidence:    4,
		CategoryExecution:   5,
	}

	last := -1
	for _, a := range DeriveAssumptions(sampleOpportunities()) {
		rank, ok := order[a.Category]
		if !ok {
			t.Fatalf("unexpected category %q", a.Category)
		}
		if rank < last {
			t.Fatalf("category %q out of order", a.Category)
		}
		last = rank
	}
}

func TestDeriveAssumptionsEmptyInputFallback(t *testing.T) {
	assumptions := DeriveAssumptions(nil)

	if len(assumptions) != 2 {
		t.Fatalf("expected exactly 2 generic assumptions, got %d", len(assumptions))
	}
	if assumptions[0].Category != CategoryMarket || assumptions[1].Category != CategoryBuyer {
		t.Errorf("expected Market then Buyer generics, got %q and %q",
			assumptions[0].Category, assumptions[1].Category)
	}
}

func TestDeriveAssumptionsDeterministicIDs(t *testing.T) {
	first := DeriveAssumptions(sampleOpportunities())
	second := DeriveAssumptions(sampleOpportunities())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("assumptions drifted across identical runs:\n%s", diff)
	}

	seen := map[string]struct{}{}
	for _, a := range first {
		if _, dup := seen[a.ID]; dup {
			t.Errorf("duplicate assumption id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
}

func TestAssumptionIDStableAcrossCalls(t *testing.T) {
	a := assumptionID(CategoryMarket, "The market window is open.")
	b := assumptionID(CategoryMarket, "The market window is open.")
	if a != b {
		t.Fatalf("same statement must hash to same id: %q vs %q", a, b)
	}
	if c := assumptionID(CategoryBuyer, "The market window is open."); c == a {
		t.Errorf("category must namespace the hash")
	}
}

func TestEvidenceAssumptionThresholds(t *testing.T) {
	cases := []struct {
		citations int
		want      Confidence
	}{
		{12, ConfidenceHigh},
		{7, ConfidenceMedium},
		{3, ConfidenceLow},
		{0, ConfidenceLow},
	}
	for _, tc := range cases {
		a := evidenceAssumption(tc.citations)
		if a.Confidence != tc.want {
			t.Errorf("citations=%d: expected %q, got %q", tc.citations, tc.want, a.Confidence)
		}
	}
}

func TestDeriveConfidence(t *testing.T) {
	cases := []struct {
		citations int
		hint      int
		want      Confidence
	}{
		{4, 7, ConfidenceHigh},
		{4, 0, ConfidenceMedium},
		{2, 0, ConfidenceMedium},
		{0, 5, ConfidenceMedium},
		{1, 0, ConfidenceLow},
		{0, 0, ConfidenceLow},
	}
	for _, tc := range cases {
		if got := deriveConfidence(tc.citations, tc.hint); got != tc.want {
			t.Errorf("deriveConfidence(%d, %d) = %q, want %q", tc.citations, tc.hint, got, tc.want)
		}
	}
}

func TestDeriveImpact(t *testing.T) {
	cases := []struct {
		linked bool
		score  float64
		want   int
	}{
		{true, 82, 5},
		{true, 70, 5},
		{true, 55, 4},
		{true, 20, 3},
		{false, 90, 2},
	}
	for _, tc := range cases {
		if got := deriveImpact(tc.linked, tc.score); got != tc.want {
			t.Errorf("deriveImpact(%v, %v) = %d, want %d", tc.linked, tc.score, got, tc.want)
		}
	}
}
