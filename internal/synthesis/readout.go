package synthesis

import (
	"fmt"
	"sort"

	"lensbackend/internal/artifact"
)

// ReadoutInput fans in the already-derived structures the readout assembles.
// No new scoring happens here.
type ReadoutInput struct {
	Opportunities []CompressedOpportunity
	Coverage      EvidenceCoverage
	Assumptions   []Assumption
	Bets          []artifact.Document
}

// SelectReadout assembles the final externally-consumed structure: top
// opportunities, executive bullets, an action plan, and the narrative triple.
func SelectReadout(in ReadoutInput) ReadoutData {
	ranked := make([]CompressedOpportunity, len(in.Opportunities))
	copy(ranked, in.Opportunities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreOrDefault(ranked[i].Fields) > scoreOrDefault(ranked[j].Fields)
	})

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}

	return ReadoutData{
		TopOpportunities: top,
		ExecutiveSummary: executiveBullets(ranked),
		ActionPlan:       actionPlan(in.Bets, top),
		WhyThisMatters:   whyThisMatters(top, in.Assumptions),
	}
}

// executiveBullets builds 3-5 bullets preferring one_liner, then a synthesized
// title/why_now pair, padding with bare titles when still short.
func executiveBullets(ranked []CompressedOpportunity) []string {
	var bullets []string
	for _, op := range ranked {
		if len(bullets) == 5 {
			break
		}
		fields := op.Fields
		if oneLiner := fields.Str("one_liner"); oneLiner != "" {
			bullets = append(bullets, oneLiner)
			continue
		}
		title := fields.Str("title", "name")
		if title == "" {
			continue
		}
		if whyNow := fields.Str("why_now"); whyNow != "" {
			bullets = append(bullets, fmt.Sprintf("%s: %s", title, whyNow))
			continue
		}
		if len(bullets) < 3 {
			bullets = append(bullets, title)
		}
	}
	return bullets
}

// actionPlan prefers an explicit strategic-bet artifact and falls back to the
// top opportunity's own proposed move and tradeoffs.
func actionPlan(bets []artifact.Document, top []CompressedOpportunity) ActionPlan {
	for _, bet := range bets {
		decision := bet.Str("decision", "bet", "statement")
		if decision == "" {
			continue
		}
		moves := bet.Strings("next_3_moves", "next_moves", "moves")
		if len(moves) > 3 {
			moves = moves[:3]
		}
		return ActionPlan{
			Decision:      decision,
			Next3Moves:    moves,
			WhatToSayNoTo: bet.Strings("what_to_say_no_to", "no_tos"),
		}
	}

	if len(top) == 0 {
		return ActionPlan{
			Decision: "Gather more evidence before committing to a direction.",
		}
	}

	fields := top[0].Fields
	plan := ActionPlan{
		Decision: fmt.Sprintf("Pursue the top opportunity: %s.", fields.Str("title", "name")),
	}
	if move := fields.Str("proposed_move"); move != "" {
		plan.Next3Moves = append(plan.Next3Moves, move)
	}
	plan.Next3Moves = append(plan.Next3Moves, "Validate the assumptions flagged as must-prove.")
	if len(plan.Next3Moves) < 3 {
		plan.Next3Moves = append(plan.Next3Moves, "Re-run synthesis once fresh evidence is ingested.")
	}
	plan.WhatToSayNoTo = tradeoffStrings(fields, "no_tos")
	return plan
}

// whyThisMatters fills the narrative triple with the same fallback-chain
// philosophy as the assumption deriver.
func whyThisMatters(top []CompressedOpportunity, assumptions []Assumption) WhyThisMatters {
	out := WhyThisMatters{
		WhyNow:        "No timing signal was identified in the source artifacts.",
		WhyDefensible: "Defensibility is unproven; treat any advantage as temporary.",
	}

	if len(top) > 0 {
		fields := top[0].Fields
		if tension := fields.Str("problem_today", "market_tension"); tension != "" {
			out.MarketTension = sentence(tension)
		}
		if whyNow := fields.Str("why_now"); whyNow != "" {
			out.WhyNow = sentence(whyNow)
		}
		if reasons := tradeoffStrings(fields, "defensibility"); len(reasons) > 0 {
			out.WhyDefensible = sentence(reasons[0])
		} else if reasons := tradeoffStrings(fields, "why_competitors_wont_follow"); len(reasons) > 0 {
			out.WhyDefensible = sentence(reasons[0])
		}
	}

	if out.MarketTension == "" {
		for _, a := range assumptions {
			if a.Category == CategoryMarket {
				out.MarketTension = a.Statement
				break
			}
		}
	}
	if out.MarketTension == "" {
		out.MarketTension = "The market tension has not been articulated yet."
	}

	return out
}
