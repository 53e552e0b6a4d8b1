package synthesis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lensbackend/internal/artifact"
)

// citationKeys are the field names whose array values are treated as citation
// lists, wherever they appear in a document.
var citationKeys = map[string]struct{}{
	"citations":          {},
	"evidence_citations": {},
	"sources":            {},
	"references":         {},
}

// dateAliases are tried in order when looking for a citation date. First match wins.
var dateAliases = []string{
	"published_at",
	"captured_at",
	"extracted_at",
	"published",
	"date",
	"retrieved_at",
	"created_at",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// maxWalkDepth bounds the document walk. Realistic artifacts stay under depth
// 20; anything deeper is treated as malformed and skipped.
const maxWalkDepth = 32

type citation struct {
	sourceType string
	date       time.Time
	hasDate    bool
}

// ComputeCoverage scans an arbitrary nested document for citation-like arrays
// and reports aggregate volume, diversity, and recency. It never fails: any
// malformed node is skipped and missing data degrades the score, not the call.
func ComputeCoverage(doc any, now time.Time) EvidenceCoverage {
	citations := collectCitations(doc)

	coverage := EvidenceCoverage{
		TotalCitations: len(citations),
		RecencyLabel:   RecencyUnknown,
	}

	typeCounts := make(map[string]int)
	var dates []time.Time
	for _, c := range citations {
		if c.sourceType != "" {
			typeCounts[c.sourceType]++
		}
		if c.hasDate {
			dates = append(dates, c.date)
		}
	}

	coverage.SourceTypes = sortedTypeCounts(typeCounts)

	if len(dates) > 0 {
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		oldest, newest := dates[0], dates[len(dates)-1]
		coverage.OldestDate = oldest.UTC().Format(time.RFC3339)
		coverage.MostRecentDate = newest.UTC().Format(time.RFC3339)
		coverage.RecencyLabel = recencyLabel(newest, now)
	}

	coverage.CoverageScore = coverageScore(len(citations), len(typeCounts), coverage.RecencyLabel)
	coverage.CoverageNotes = coverageNotes(len(citations), len(typeCounts), coverage.RecencyLabel)

	return coverage
}

type walkNode struct {
	value any
	depth int
}

// walkFields visits every key/value pair in a document tree with an explicit
// worklist so depth stays bounded regardless of how the upstream process
// nested its payload. Traversal order is stable: map keys are visited sorted
// and array elements in index order, so callers that accumulate values see
// the same sequence on every run.
func walkFields(root any, visit func(key string, value any)) {
	stack := []walkNode{{value: root}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current.depth > maxWalkDepth {
			continue
		}

		switch v := current.value.(type) {
		case map[string]any:
			keys := make([]string, 0, len(v))
			for key := range v {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, walkNode{value: v[keys[i]], depth: current.depth + 1})
			}
			for _, key := range keys {
				visit(key, v[key])
			}
		case artifact.Document:
			stack = append(stack, walkNode{value: map[string]any(v), depth: current.depth})
		case []any:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, walkNode{value: v[i], depth: current.depth + 1})
			}
		case []artifact.Document:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, walkNode{value: v[i], depth: current.depth + 1})
			}
		}
	}
}

func collectCitations(doc any) []citation {
	var citations []citation
	walkFields(doc, func(key string, value any) {
		if _, ok := citationKeys[key]; !ok {
			return
		}
		items, ok := value.([]any)
		if !ok {
			return
		}
		for _, item := range items {
			if c, ok := extractCitation(item); ok {
				citations = append(citations, c)
			}
		}
	})
	return citations
}

func extractCitation(item any) (citation, bool) {
	doc, ok := artifact.AsDocument(item)
	if !ok {
		return citation{}, false
	}

	c := citation{
		sourceType: strings.ToLower(strings.TrimSpace(doc.Str("source_type", "type"))),
	}
	for _, alias := range dateAliases {
		raw, ok := doc[alias].(string)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if ts, ok := parseDate(raw); ok {
			c.date = ts
			c.hasDate = true
		}
		break
	}
	return c, true
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func sortedTypeCounts(counts map[string]int) []SourceTypeCount {
	if len(counts) == 0 {
		return nil
	}
	out := make([]SourceTypeCount, 0, len(counts))
	for sourceType, count := range counts {
		out = append(out, SourceTypeCount{Type: sourceType, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func recencyLabel(newest, now time.Time) string {
	days := int(now.Sub(newest).Hours() / 24)
	switch {
	case days <= 0:
		return RecencyToday
	case days <= 7:
		return RecencyLast7
	case days <= 30:
		return RecencyLast30
	default:
		return RecencyStale
	}
}

func coverageScore(totalCitations, distinctTypes int, recency string) int {
	var score int

	switch {
	case totalCitations >= 10:
		score += 30
	case totalCitations >= 5:
		score += 20
	case totalCitations >= 1:
		score += 10
	}

	switch {
	case distinctTypes >= 3:
		score += 30
	case distinctTypes >= 2:
		score += 20
	case distinctTypes >= 1:
		score += 10
	}

	switch recency {
	case RecencyToday, RecencyLast7, RecencyLast30:
		score += 40
	case RecencyStale:
		score += 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// coverageNotes emits every applicable caveat; the conditions are independent,
// not mutually exclusive.
func coverageNotes(totalCitations, distinctTypes int, recency string) []string {
	var notes []string
	if totalCitations == 0 {
		notes = append(notes, "No citations found in the artifact data.")
	}
	if totalCitations < 5 {
		notes = append(notes, fmt.Sprintf("Evidence base is thin: %d citations (5+ recommended).", totalCitations))
	}
	if distinctTypes == 1 {
		notes = append(notes, "All citations come from a single source type.")
	}
	if distinctTypes == 0 && totalCitations > 0 {
		notes = append(notes, "Citations are missing source type labels.")
	}
	if recency == RecencyStale {
		notes = append(notes, "Most recent evidence is over 90 days old.")
	}
	if recency == RecencyUnknown {
		notes = append(notes, "Citation dates could not be determined.")
	}
	return notes
}
