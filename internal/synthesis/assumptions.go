package synthesis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lensbackend/internal/artifact"
)

const maxAssumptions = 15

// DeriveAssumptions synthesizes a bounded list of categorized assumptions from
// opportunity records. Output order is fixed by category (Market, Buyer,
// Product, Competition, Evidence, Execution) and capped at 15. An empty input
// degrades to two generic Market/Buyer assumptions.
func DeriveAssumptions(ops []artifact.Document) []Assumption {
	if len(ops) == 0 {
		return genericFallbackAssumptions()
	}

	ranked := make([]artifact.Document, len(ops))
	copy(ranked, ops)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreOrDefault(ranked[i]) > scoreOrDefault(ranked[j])
	})

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}

	var totalCitations int
	for _, op := range ranked {
		totalCitations += citationCount(op)
	}

	var assumptions []Assumption
	assumptions = append(assumptions, marketAssumptions(top, totalCitations)...)
	assumptions = append(assumptions, buyerAssumptions(top, totalCitations)...)
	assumptions = append(assumptions, productAssumptions(top)...)
	assumptions = append(assumptions, competitionAssumptions(top)...)
	assumptions = append(assumptions, evidenceAssumption(totalCitations))
	assumptions = append(assumptions, executionAssumption(top[0]))

	if len(assumptions) > maxAssumptions {
		assumptions = assumptions[:maxAssumptions]
	}
	return assumptions
}

func genericFallbackAssumptions() []Assumption {
	return []Assumption{
		newAssumption(CategoryMarket,
			"A real market exists for solving this problem.",
			"Without a validated market the rest of the analysis is moot.",
			ConfidenceLow, 2, nil, 0),
		newAssumption(CategoryBuyer,
			"Buyers will prioritize this problem over competing spend.",
			"Willingness to pay is the first thing to validate with real prospects.",
			ConfidenceLow, 2, nil, 0),
	}
}

func marketAssumptions(top []artifact.Document, totalCitations int) []Assumption {
	var out []Assumption
	for _, op := range top {
		if len(out) == 2 {
			break
		}
		whyNow := op.Str("why_now")
		if whyNow == "" {
			continue
		}
		out = append(out, newAssumption(CategoryMarket,
			fmt.Sprintf("The market window is open: %s", sentence(whyNow)),
			"If the timing signal is wrong, the opportunity ranking collapses.",
			deriveConfidence(citationCount(op), 0),
			deriveImpact(true, scoreOrDefault(op)),
			relatedIDs(op), citationCount(op)))
	}
	generics := []string{
		fmt.Sprintf("Demand signals across %d citations reflect a durable market need.", totalCitations),
		"The market is large enough to sustain a differentiated entrant.",
	}
	for _, g := range generics {
		if len(out) == 2 {
			break
		}
		out = append(out, newAssumption(CategoryMarket, g,
			"Generic demand evidence still needs direct validation.",
			deriveConfidence(totalCitations, 0), 2, nil, totalCitations))
	}
	return out
}

func buyerAssumptions(top []artifact.Document, totalCitations int) []Assumption {
	var out []Assumption
	for _, op := range top {
		if len(out) == 2 {
			break
		}
		pain := op.Str("problem_today", "customer")
		if pain == "" {
			if customer := op.Sub("customer"); customer != nil {
				pain = customer.Str("description", "profile", "summary")
			}
		}
		if pain == "" {
			continue
		}
		out = append(out, newAssumption(CategoryBuyer,
			fmt.Sprintf("Buyers feel this pain today: %s", sentence(pain)),
			"The buyer's current workaround defines what good enough looks like.",
			deriveConfidence(citationCount(op), 0),
			deriveImpact(true, scoreOrDefault(op)),
			relatedIDs(op), citationCount(op)))
	}
	generics := []string{
		fmt.Sprintf("The buyer implied by %d citations will engage with a solution.", totalCitations),
		"Budget ownership sits with the buyer who feels the pain.",
	}
	for _, g := range generics {
		if len(out) == 2 {
			break
		}
		out = append(out, newAssumption(CategoryBuyer, g,
			"An unvalidated buyer persona is the most common failure mode.",
			deriveConfidence(totalCitations, 0), 2, nil, totalCitations))
	}
	return out
}

func productAssumptions(top []artifact.Document) []Assumption {
	var out []Assumption
	for _, op := range top {
		if len(out) == 2 {
			break
		}
		title := op.Str("title", "name")
		if title == "" {
			continue
		}
		out = append(out, newAssumption(CategoryProduct,
			fmt.Sprintf("The product can credibly deliver %q.", title),
			"Each ranked opportunity presumes the product can be built as described.",
			deriveConfidence(citationCount(op), 0),
			deriveImpact(true, scoreOrDefault(op)),
			relatedIDs(op), citationCount(op)))
	}
	for len(out) < 1 {
		out = append(out, newAssumption(CategoryProduct,
			"The proposed product direction addresses the identified gap.",
			"A mismatch between gap and build plan surfaces late and expensively.",
			ConfidenceLow, 2, nil, 0))
	}
	return out
}

func competitionAssumptions(top []artifact.Document) []Assumption {
	var out []Assumption
	for _, op := range top {
		if len(out) == 2 {
			break
		}
		reasons := tradeoffStrings(op, "why_competitors_wont_follow")
		if len(reasons) == 0 {
			continue
		}
		out = append(out, newAssumption(CategoryCompetition,
			fmt.Sprintf("Competitors are unlikely to follow: %s", sentence(reasons[0])),
			"If competitors can copy the move cheaply, the advantage is temporary.",
			deriveConfidence(citationCount(op), 0),
			deriveImpact(true, scoreOrDefault(op)),
			relatedIDs(op), citationCount(op)))
	}
	generics := []string{
		"Competitors are not addressing this opportunity effectively.",
		"Incumbent roadmaps will not close this gap in the near term.",
	}
	for _, g := range generics {
		if len(out) == 2 {
			break
		}
		out = append(out, newAssumption(CategoryCompetition, g,
			"Competitive inaction is assumed, not observed; it needs monitoring.",
			ConfidenceLow, 3, nil, 0))
	}
	return out
}

func evidenceAssumption(totalCitations int) Assumption {
	statement := fmt.Sprintf("Evidence is limited (%d citations); conclusions should be re-validated before committing.", totalCitations)
	if totalCitations >= 10 {
		statement = fmt.Sprintf("The evidence base is broad (%d citations) and supports the top opportunities.", totalCitations)
	}
	confidence := ConfidenceLow
	switch {
	case totalCitations >= 10:
		confidence = ConfidenceHigh
	case totalCitations >= 5:
		confidence = ConfidenceMedium
	}
	return newAssumption(CategoryEvidence, statement,
		"Every downstream score inherits the quality of the citation base.",
		confidence, 3, nil, totalCitations)
}

func executionAssumption(top artifact.Document) Assumption {
	capabilities := tradeoffStrings(top, "capability_forced")
	if len(capabilities) > 0 {
		return newAssumption(CategoryExecution,
			fmt.Sprintf("Winning requires building: %s", sentence(capabilities[0])),
			"The forced capability is the long pole in the execution plan.",
			ConfidenceMedium,
			deriveImpact(true, scoreOrDefault(top)),
			relatedIDs(top), citationCount(top))
	}
	return newAssumption(CategoryExecution,
		"The team can build the capabilities this opportunity demands.",
		"No forced capability was identified upstream; execution risk is unsized.",
		ConfidenceLow, 3, nil, 0)
}

// deriveConfidence grades evidence strength. The recency hint is optional:
// callers without a recency signal pass 0 and the citation count alone decides.
func deriveConfidence(citationsCount, recencyConfidenceHint int) Confidence {
	if citationsCount >= 4 && recencyConfidenceHint >= 7 {
		return ConfidenceHigh
	}
	if citationsCount >= 2 || recencyConfidenceHint >= 5 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// deriveImpact sizes an assumption by the strength of the opportunity it backs.
func deriveImpact(affectsTopOpportunities bool, score float64) int {
	if affectsTopOpportunities && score >= 70 {
		return 5
	}
	if affectsTopOpportunities && score >= 50 {
		return 4
	}
	if affectsTopOpportunities {
		return 3
	}
	return 2
}

func newAssumption(category Category, statement, why string, confidence Confidence, impact int, related []string, sources int) Assumption {
	return Assumption{
		ID:                    assumptionID(category, statement),
		Category:              category,
		Statement:             statement,
		WhyItMatters:          why,
		Confidence:            confidence,
		Impact:                impact,
		RelatedOpportunityIDs: related,
		SourcesCount:          sources,
	}
}

// assumptionID hashes category:statement into a stable key so repeated runs
// over identical input produce identical ids. Not a cryptographic identifier.
func assumptionID(category Category, statement string) string {
	var h uint32
	for _, r := range string(category) + ":" + statement {
		h = h*31 + uint32(r)
	}
	return strconv.FormatUint(uint64(h), 36)
}

// citationCount reports the size of the first citation array carried directly
// by the record.
func citationCount(op artifact.Document) int {
	return len(op.Items("citations", "evidence_citations", "sources", "references"))
}

func relatedIDs(op artifact.Document) []string {
	if id := op.Str("id"); id != "" {
		return []string{id}
	}
	if title := op.Str("title", "name"); title != "" {
		return []string{title}
	}
	return nil
}

func tradeoffStrings(op artifact.Document, key string) []string {
	tradeoffs := op.Sub("tradeoffs")
	if tradeoffs == nil {
		return nil
	}
	return tradeoffs.Strings(key)
}

// sentence trims a narrative fragment to a single readable statement.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	const max = 180
	if runes := []rune(s); len(runes) > max {
		s = strings.TrimSpace(string(runes[:max])) + "…"
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "…") {
		s += "."
	}
	return s
}
