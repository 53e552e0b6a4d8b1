package synthesis

import (
	"sort"
	"strings"
	"unicode"

	"lensbackend/internal/artifact"
)

// FramesByJob returns a single group with all jobs sorted by opportunity score
// descending. Source records are never mutated, only re-ordered in a copy.
func FramesByJob(jobs []artifact.Document) []FrameGroup {
	if len(jobs) == 0 {
		return nil
	}
	sorted := make([]artifact.Document, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOrDefault(sorted[i]) > scoreOrDefault(sorted[j])
	})
	return []FrameGroup{{
		ID:    "all-jobs",
		Label: "All Jobs by Opportunity Score",
		Items: toItems(sorted),
	}}
}

// FramesByTheme groups opportunities by their type field. Items within a group
// sort by score descending; groups order by mean score descending.
func FramesByTheme(ops []artifact.Document) []FrameGroup {
	if len(ops) == 0 {
		return nil
	}

	order := []string{}
	grouped := map[string][]artifact.Document{}
	for _, op := range ops {
		theme := strings.TrimSpace(strings.ToLower(op.Str("type")))
		if theme == "" {
			theme = "other"
		}
		if _, ok := grouped[theme]; !ok {
			order = append(order, theme)
		}
		grouped[theme] = append(grouped[theme], op)
	}

	return buildScoredGroups(order, grouped, "theme-", func(theme string) string {
		return titleCase(theme)
	})
}

// buildScoredGroups sorts members within each group by score descending and
// orders the groups themselves by mean score descending.
func buildScoredGroups(order []string, grouped map[string][]artifact.Document, idPrefix string, label func(string) string) []FrameGroup {
	type scoredGroup struct {
		group FrameGroup
		mean  float64
	}
	scored := make([]scoredGroup, 0, len(order))
	for _, key := range order {
		members := grouped[key]
		sort.SliceStable(members, func(i, j int) bool {
			return scoreOrDefault(members[i]) > scoreOrDefault(members[j])
		})
		scored = append(scored, scoredGroup{
			group: FrameGroup{
				ID:    idPrefix + slug(key),
				Label: label(key),
				Items: toItems(members),
			},
			mean: meanScore(members),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].mean > scored[j].mean
	})
	groups := make([]FrameGroup, len(scored))
	for i, sg := range scored {
		groups[i] = sg.group
	}
	return groups
}

// FramesByStruggle clusters customer-struggle strings from competitor
// snapshots by the first matching vocabulary term. Identical strings are
// de-duplicated within a cluster; clusters order by member count descending.
func FramesByStruggle(snapshots []artifact.Document, vocabulary []string) []FrameGroup {
	var struggles []string
	for _, snapshot := range snapshots {
		struggles = append(struggles, collectStruggles(snapshot)...)
	}
	if len(struggles) == 0 {
		return nil
	}

	const fallback = "Other Issues"
	order := []string{}
	clusters := map[string][]string{}
	seen := map[string]map[string]struct{}{}

	for _, struggle := range struggles {
		label := fallback
		lowered := strings.ToLower(struggle)
		for _, term := range vocabulary {
			if strings.Contains(lowered, strings.ToLower(term)) {
				label = titleCase(term) + " Issues"
				break
			}
		}
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
			seen[label] = map[string]struct{}{}
		}
		if _, dup := seen[label][struggle]; dup {
			continue
		}
		seen[label][struggle] = struct{}{}
		clusters[label] = append(clusters[label], struggle)
	}

	groups := make([]FrameGroup, 0, len(order))
	for _, label := range order {
		members := clusters[label]
		items := make([]any, len(members))
		for i, m := range members {
			items[i] = m
		}
		groups = append(groups, FrameGroup{
			ID:    "struggle-" + slug(label),
			Label: label,
			Items: items,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})
	return groups
}

// FramesByBet buckets opportunities into strategic-bet families by matching
// title and why_now text against each family's keywords; the first family
// matched wins. Groups order by mean score descending.
func FramesByBet(ops []artifact.Document, families []BetFamily) []FrameGroup {
	if len(ops) == 0 {
		return nil
	}

	const fallback = "Other Strategic Bets"
	order := []string{}
	grouped := map[string][]artifact.Document{}

	for _, op := range ops {
		text := strings.ToLower(op.Str("title", "name") + " " + op.Str("why_now"))
		label := fallback
	match:
		for _, family := range families {
			for _, keyword := range family.Keywords {
				if strings.Contains(text, strings.ToLower(keyword)) {
					label = family.Label
					break match
				}
			}
		}
		if _, ok := grouped[label]; !ok {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], op)
	}

	return buildScoredGroups(order, grouped, "bet-", func(label string) string {
		return label
	})
}

// collectStruggles walks one snapshot for customer_struggles arrays at any
// depth, since snapshot shapes nest competitors differently across versions.
func collectStruggles(snapshot artifact.Document) []string {
	var struggles []string
	walkFields(snapshot, func(key string, value any) {
		if key != "customer_struggles" {
			return
		}
		items, ok := value.([]any)
		if !ok {
			return
		}
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				struggles = append(struggles, s)
			}
		}
	})
	return struggles
}

func toItems(docs []artifact.Document) []any {
	items := make([]any, len(docs))
	for i, doc := range docs {
		items[i] = doc
	}
	return items
}

func meanScore(docs []artifact.Document) float64 {
	if len(docs) == 0 {
		return 0
	}
	var total float64
	for _, doc := range docs {
		if score, ok := ExtractScore(doc); ok {
			total += score
		}
	}
	return total / float64(len(docs))
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
