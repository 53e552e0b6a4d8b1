package synthesis

import "lensbackend/internal/artifact"

// Category labels the aspect of the business an assumption speaks to.
type Category string

const (
	CategoryMarket      Category = "Market"
	CategoryBuyer       Category = "Buyer"
	CategoryProduct     Category = "Product"
	CategoryCompetition Category = "Competition"
	CategoryEvidence    Category = "Evidence"
	CategoryExecution   Category = "Execution"
)

// Confidence grades how well an assumption is supported by evidence.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Quadrant is one of four decision-urgency buckets for an assumption.
type Quadrant string

const (
	QuadrantMustProveNow  Quadrant = "mustProveNow"
	QuadrantWatchClosely  Quadrant = "watchClosely"
	QuadrantSafeToProceed Quadrant = "safeToProceed"
	QuadrantIgnoreForNow  Quadrant = "ignoreForNow"
)

// Recency labels for the most recent citation date found in a document.
const (
	RecencyToday   = "Today"
	RecencyLast7   = "Last 7 days"
	RecencyLast30  = "Last 30 days"
	RecencyStale   = "90+ days"
	RecencyUnknown = "Unknown"
)

// SourceTypeCount pairs a normalized citation source type with its frequency.
type SourceTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// EvidenceCoverage summarises the citation footprint of an artifact document.
type EvidenceCoverage struct {
	TotalCitations int               `json:"total_citations"`
	SourceTypes    []SourceTypeCount `json:"source_types"`
	MostRecentDate string            `json:"most_recent_date,omitempty"`
	OldestDate     string            `json:"oldest_date,omitempty"`
	RecencyLabel   string            `json:"recency_label"`
	CoverageScore  int               `json:"coverage_score"`
	CoverageNotes  []string          `json:"coverage_notes"`
}

// CompressedOpportunity is a transient merge of near-duplicate opportunity
// records. Fields points at the surviving base record; the merge bookkeeping
// preserves provenance for every record folded into it.
type CompressedOpportunity struct {
	Fields          artifact.Document   `json:"fields"`
	MergedFromIDs   []string            `json:"merged_from_ids"`
	MergedCount     int                 `json:"merged_count"`
	MergedTitles    []string            `json:"merged_titles"`
	MergedCitations []artifact.Document `json:"merged_citations"`
}

// CompressStats reports how much the compressor folded.
type CompressStats struct {
	Original int `json:"original"`
	Merged   int `json:"merged"`
}

// Assumption is a synthesized, categorized statement a decision rests on.
type Assumption struct {
	ID                    string     `json:"id"`
	Category              Category   `json:"category"`
	Statement             string     `json:"statement"`
	WhyItMatters          string     `json:"why_it_matters"`
	Confidence            Confidence `json:"confidence"`
	Impact                int        `json:"impact"`
	RelatedOpportunityIDs []string   `json:"related_opportunity_ids"`
	SourcesCount          int        `json:"sources_count"`
}

// DecisionLever pairs an assumption with its quadrant and presentation priority.
type DecisionLever struct {
	AssumptionID string   `json:"assumption_id"`
	Quadrant     Quadrant `json:"quadrant"`
	Priority     int      `json:"priority"`
}

// FrameGroup is one bucket of an alternate analytical view over existing records.
type FrameGroup struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Items []any  `json:"items"`
}

// Frames bundles the four alternate views.
type Frames struct {
	ByJob      []FrameGroup `json:"by_job"`
	ByTheme    []FrameGroup `json:"by_theme"`
	ByStruggle []FrameGroup `json:"by_struggle"`
	ByBet      []FrameGroup `json:"by_bet"`
}

// ActionPlan is the decision section of the readout.
type ActionPlan struct {
	Decision      string   `json:"decision"`
	Next3Moves    []string `json:"next_3_moves"`
	WhatToSayNoTo []string `json:"what_to_say_no_to"`
}

// WhyThisMatters is the narrative triple of the readout.
type WhyThisMatters struct {
	MarketTension string `json:"market_tension"`
	WhyNow        string `json:"why_now"`
	WhyDefensible string `json:"why_defensible"`
}

// ReadoutData is the final externally-consumed structure.
type ReadoutData struct {
	TopOpportunities []CompressedOpportunity `json:"top_opportunities"`
	ExecutiveSummary []string                `json:"executive_summary"`
	ActionPlan       ActionPlan              `json:"action_plan"`
	WhyThisMatters   WhyThisMatters          `json:"why_this_matters"`
}

// Result is the full read model produced by one synthesis pass.
type Result struct {
	ProjectID     string                  `json:"project_id,omitempty"`
	Coverage      EvidenceCoverage        `json:"coverage"`
	Opportunities []CompressedOpportunity `json:"opportunities"`
	Stats         CompressStats           `json:"stats"`
	Assumptions   []Assumption            `json:"assumptions"`
	Levers        []DecisionLever         `json:"levers"`
	Quadrants     map[Quadrant]int        `json:"quadrants"`
	Frames        Frames                  `json:"frames"`
	Readout       ReadoutData             `json:"readout"`
}
