package synthesis

import (
	"fmt"
	"strings"

	"lensbackend/internal/artifact"
)

// Compressor folds near-duplicate opportunity records into single
// representatives using word-token Jaccard similarity over normalized
// title+summary fingerprints.
type Compressor struct {
	SimilarityThreshold float64
	SummaryPrefixLen    int
}

// NewCompressor constructs a Compressor with sane defaults when fields are unset.
func NewCompressor(threshold float64) Compressor {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.6
	}
	return Compressor{SimilarityThreshold: threshold, SummaryPrefixLen: 160}
}

// Compress groups near-duplicate opportunities and merges each group into one
// record. Pairwise comparison is O(n²), acceptable for per-project counts in
// the tens. Input documents are never mutated.
func (c Compressor) Compress(ops []artifact.Document) ([]CompressedOpportunity, CompressStats) {
	stats := CompressStats{Original: len(ops)}
	if len(ops) == 0 {
		return []CompressedOpportunity{}, stats
	}

	prefixLen := c.SummaryPrefixLen
	if prefixLen <= 0 {
		prefixLen = 160
	}
	threshold := c.SimilarityThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.6
	}

	fingerprints := make([][]string, len(ops))
	for idx, op := range ops {
		fingerprints[idx] = fingerprintTokens(op, prefixLen)
	}

	used := make([]bool, len(ops))
	items := make([]CompressedOpportunity, 0, len(ops))

	for i := range ops {
		if used[i] {
			continue
		}
		used[i] = true
		group := []int{i}
		for j := i + 1; j < len(ops); j++ {
			if used[j] {
				continue
			}
			if jaccard(fingerprints[i], fingerprints[j]) >= threshold {
				used[j] = true
				group = append(group, j)
			}
		}
		items = append(items, mergeGroup(ops, group))
	}

	stats.Merged = stats.Original - len(items)
	return items, stats
}

// mergeGroup picks the highest-scored record as the surviving base (ties keep
// the first seen) and accumulates provenance from every grouped record.
func mergeGroup(ops []artifact.Document, group []int) CompressedOpportunity {
	base := group[0]
	bestScore := scoreOrDefault(ops[base])
	for _, idx := range group[1:] {
		if score := scoreOrDefault(ops[idx]); score > bestScore {
			bestScore = score
			base = idx
		}
	}

	merged := CompressedOpportunity{
		Fields:      ops[base],
		MergedCount: len(group),
	}

	seenURLs := make(map[string]struct{})
	for _, idx := range group {
		op := ops[idx]
		merged.MergedFromIDs = append(merged.MergedFromIDs, opportunityID(op, idx))
		if title := op.Str("title", "name"); title != "" {
			merged.MergedTitles = append(merged.MergedTitles, title)
		}
		for _, cit := range op.Docs("citations", "evidence_citations", "sources", "references") {
			url := cit.Str("url")
			if url != "" {
				if _, ok := seenURLs[url]; ok {
					continue
				}
				seenURLs[url] = struct{}{}
			}
			merged.MergedCitations = append(merged.MergedCitations, cit)
		}
	}

	return merged
}

// opportunityID falls back from id to title to a positional marker so every
// input record remains traceable through a merge.
func opportunityID(op artifact.Document, idx int) string {
	if id := op.Str("id"); id != "" {
		return id
	}
	if title := op.Str("title", "name"); title != "" {
		return title
	}
	return fmt.Sprintf("idx-%d", idx)
}

func fingerprintTokens(op artifact.Document, prefixLen int) []string {
	title := normalizeText(op.Str("title", "name"))
	summary := normalizeText(op.Str("summary", "description"))
	if runes := []rune(summary); len(runes) > prefixLen {
		summary = string(runes[:prefixLen])
	}
	return tokenize(strings.TrimSpace(title + " " + summary))
}

var punctuationReplacer = strings.NewReplacer(
	",", " ", ".", " ", ":", " ", ";", " ", "!", " ", "?", " ",
	"(", " ", ")", " ", "'", " ", "\"", " ", "-", " ", "_", " ",
	"/", " ", "&", " ",
)

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(punctuationReplacer.Replace(s))), " ")
}

func tokenize(s string) []string {
	var tokens []string
	for _, part := range strings.Fields(s) {
		if len(part) <= 2 {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// jaccard computes word-token set similarity. Two empty token sets are
// considered identical; one empty set shares nothing with a non-empty one.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	var intersection int
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
