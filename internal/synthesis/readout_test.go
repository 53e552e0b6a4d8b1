package synthesis

import (
	"strings"
	"testing"

	"lensbackend/internal/artifact"
)

func compressed(fields artifact.Document) CompressedOpportunity {
	return CompressedOpportunity{
		Fields:        fields,
		MergedFromIDs: []string{fields.Str("id")},
		MergedCount:   1,
	}
}

func TestSelectReadoutTopThreeByScore(t *testing.T) {
	in := ReadoutInput{
		Opportunities: []CompressedOpportunity{
			compressed(artifact.Document{"id": "low", "title": "Low", "score": 10.0}),
			compressed(artifact.Document{"id": "high", "title": "High", "score": 90.0}),
			compressed(artifact.Document{"id": "mid", "title": "Mid", "score": 50.0}),
			compressed(artifact.Document{"id": "floor", "title": "Floor", "score": 5.0}),
		},
	}

	readout := SelectReadout(in)
	if len(readout.TopOpportunities) != 3 {
		t.Fatalf("expected top 3, got %d", len(readout.TopOpportunities))
	}
	if got := readout.TopOpportunities[0].Fields.Str("id"); got != "high" {
		t.Errorf("expected highest score first, got %q", got)
	}
}

func TestExecutiveBulletsPreferenceChain(t *testing.T) {
	in := ReadoutInput{
		Opportunities: []CompressedOpportunity{
			compressed(artifact.Document{"title": "A", "one_liner": "A in one line.", "score": 90.0}),
			compressed(artifact.Document{"title": "B", "why_now": "the window is open", "score": 80.0}),
			compressed(artifact.Document{"title": "C", "score": 70.0}),
		},
	}

	bullets := SelectReadout(in).ExecutiveSummary
	if len(bullets) < 3 || len(bullets) > 5 {
		t.Fatalf("expected 3-5 bullets, got %d", len(bullets))
	}
	if bullets[0] != "A in one line." {
		t.Errorf("one_liner must win, got %q", bullets[0])
	}
	if !strings.Contains(bullets[1], "B:") {
		t.Errorf("expected synthesized title/why_now bullet, got %q", bullets[1])
	}
	if bullets[2] != "C" {
		t.Errorf("expected bare-title padding, got %q", bullets[2])
	}
}

func TestActionPlanPrefersStrategicBet(t *testing.T) {
	in := ReadoutInput{
		Opportunities: []CompressedOpportunity{
			compressed(artifact.Document{"title": "Top", "proposed_move": "Ship it", "score": 90.0}),
		},
		Bets: []artifact.Document{
			{
				"decision":          "Win SMB with a free tier.",
				"next_3_moves":      []any{"Ship tier", "Instrument funnel", "Target churn", "Extra move"},
				"what_to_say_no_to": []any{"Enterprise pilots"},
			},
		},
	}

	plan := SelectReadout(in).ActionPlan
	if plan.Decision != "Win SMB with a free tier." {
		t.Fatalf("expected bet-driven decision, got %q", plan.Decision)
	}
	if len(plan.Next3Moves) != 3 {
		t.Errorf("moves must cap at 3, got %d", len(plan.Next3Moves))
	}
	if len(plan.WhatToSayNoTo) != 1 {
		t.Errorf("expected one no-to, got %d", len(plan.WhatToSayNoTo))
	}
}

func TestActionPlanFallsBackToTopOpportunity(t *testing.T) {
	in := ReadoutInput{
		Opportunities: []CompressedOpportunity{
			compressed(artifact.Document{
				"title":         "Free tier expansion",
				"proposed_move": "Ship a usage-capped free tier.",
				"score":         82.0,
				"tradeoffs": map[string]any{
					"no_tos": []any{"Custom enterprise pilots"},
				},
			}),
		},
	}

	plan := SelectReadout(in).ActionPlan
	if !strings.Contains(plan.Decision, "Free tier expansion") {
		t.Fatalf("expected top-opportunity decision, got %q", plan.Decision)
	}
	if len(plan.Next3Moves) == 0 || plan.Next3Moves[0] != "Ship a usage-capped free tier." {
		t.Errorf("expected proposed_move first, got %v", plan.Next3Moves)
	}
	if len(plan.WhatToSayNoTo) != 1 {
		t.Errorf("expected tradeoff no-tos, got %v", plan.WhatToSayNoTo)
	}
}

func TestWhyThisMattersFallbackChain(t *testing.T) {
	in := ReadoutInput{
		Opportunities: []CompressedOpportunity{
			compressed(artifact.Document{
				"title":         "Top",
				"problem_today": "Teams abandon evaluations at the paywall",
				"why_now":       "Incumbent pricing changes this quarter",
				"score":         82.0,
				"tradeoffs": map[string]any{
					"defensibility": []any{"Usage data compounds"},
				},
			}),
		},
	}

	why := SelectReadout(in).WhyThisMatters
	if !strings.Contains(why.MarketTension, "paywall") {
		t.Errorf("unexpected market tension %q", why.MarketTension)
	}
	if !strings.Contains(why.WhyNow, "pricing changes") {
		t.Errorf("unexpected why now %q", why.WhyNow)
	}
	if !strings.Contains(why.WhyDefensible, "Usage data") {
		t.Errorf("unexpected defensibility %q", why.WhyDefensible)
	}
}

func TestSelectReadoutEmptyInput(t *testing.T) {
	readout := SelectReadout(ReadoutInput{})

	if len(readout.TopOpportunities) != 0 {
		t.Errorf("expected no top opportunities")
	}
	if readout.ActionPlan.Decision == "" {
		t.Errorf("expected a degraded but present decision")
	}
	if readout.WhyThisMatters.MarketTension == "" {
		t.Errorf("expected a degraded market tension narrative")
	}
}
