package synthesis

// DecisionSensitivity derives how much the overall decision hinges on an
// assumption: impact, bumped when the assumption touches market or buyer
// fundamentals and when it backs a concrete opportunity, clamped to [1,5].
func DecisionSensitivity(a Assumption) int {
	sensitivity := a.Impact
	if a.Category == CategoryMarket || a.Category == CategoryBuyer {
		sensitivity++
	}
	if len(a.RelatedOpportunityIDs) > 0 {
		sensitivity++
	}
	if sensitivity < 1 {
		return 1
	}
	if sensitivity > 5 {
		return 5
	}
	return sensitivity
}

func confidenceIndex(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Classify buckets an assumption into one of four action quadrants. The rules
// run in priority order; several conditions can hold at once and the first
// match wins.
func Classify(a Assumption) Quadrant {
	sensitivity := DecisionSensitivity(a)
	index := confidenceIndex(a.Confidence)

	switch {
	case index == 0 && sensitivity >= 4:
		return QuadrantMustProveNow
	case index == 2 && sensitivity <= 2:
		return QuadrantSafeToProceed
	case sensitivity <= 2:
		return QuadrantIgnoreForNow
	default:
		return QuadrantWatchClosely
	}
}

// ComputeQuadrantCounts tallies assumptions per quadrant.
func ComputeQuadrantCounts(assumptions []Assumption) map[Quadrant]int {
	counts := map[Quadrant]int{
		QuadrantMustProveNow:  0,
		QuadrantWatchClosely:  0,
		QuadrantSafeToProceed: 0,
		QuadrantIgnoreForNow:  0,
	}
	for _, a := range assumptions {
		counts[Classify(a)]++
	}
	return counts
}

// ActionPriority gives a fixed presentation order: the most urgent levers first.
func ActionPriority(q Quadrant) int {
	switch q {
	case QuadrantMustProveNow:
		return 1
	case QuadrantWatchClosely:
		return 2
	case QuadrantSafeToProceed:
		return 3
	default:
		return 4
	}
}
