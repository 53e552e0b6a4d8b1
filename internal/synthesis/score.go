package synthesis

import "lensbackend/internal/artifact"

// scoreAliases are tried in order. Newer payload versions nest the score under
// scoring.total, so that lookup runs first and older flat fields act as fallbacks.
var scoreAliases = []string{"score", "opportunity_score", "total_score"}

// ExtractScore normalizes heterogeneous score fields into one numeric value.
// The second return is false when the input is not an object or carries no
// numeric score in any known location.
func ExtractScore(op any) (float64, bool) {
	doc, ok := artifact.AsDocument(op)
	if !ok {
		return 0, false
	}
	if scoring := doc.Sub("scoring"); scoring != nil {
		if total, ok := scoring.Num("total"); ok {
			return total, true
		}
	}
	return doc.Num(scoreAliases...)
}

// scoreOrDefault is the ranking form of ExtractScore: records without a score
// sort below every scored record.
func scoreOrDefault(op any) float64 {
	if score, ok := ExtractScore(op); ok {
		return score
	}
	return -1
}
