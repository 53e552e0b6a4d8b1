package synthesis

import (
	"context"
	"errors"
	"sort"
	"time"

	"lensbackend/internal/artifact"
)

// Synthesizer orchestrates one synthesis pass: fetch artifacts, compute
// coverage, compress opportunities, derive and classify assumptions, build the
// frames and the readout. Everything downstream of the fetch is pure.
type Synthesizer struct {
	Sources    *artifact.SourceRegistry
	Heuristics Heuristics
}

// NewSynthesizer constructs a new Synthesizer.
func NewSynthesizer(sources *artifact.SourceRegistry, heuristics Heuristics) (*Synthesizer, error) {
	if sources == nil {
		return nil, errors.New("synthesizer requires sources")
	}
	return &Synthesizer{Sources: sources, Heuristics: heuristics.normalized()}, nil
}

// Run executes the end-to-end synthesis for one project. The caller supplies
// "now" so recency labeling stays reproducible.
func (s *Synthesizer) Run(ctx context.Context, projectID string, now time.Time) (*Result, error) {
	artifacts, err := s.Sources.FetchAll(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := s.Synthesize(artifacts, now)
	result.ProjectID = projectID
	return result, nil
}

// Synthesize builds the full read model from an in-memory artifact batch.
func (s *Synthesizer) Synthesize(artifacts []artifact.Artifact, now time.Time) *Result {
	sorted := make([]artifact.Artifact, len(artifacts))
	copy(sorted, artifacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var (
		ops       []artifact.Document
		jobs      []artifact.Document
		snapshots []artifact.Document
		bets      []artifact.Document
		payloads  []any
	)
	for _, a := range sorted {
		payloads = append(payloads, a.Payload)
		switch a.Kind {
		case artifact.KindOpportunities:
			ops = append(ops, a.Opportunities()...)
		case artifact.KindJTBD:
			jobs = append(jobs, a.Jobs()...)
		case artifact.KindCompetitorSnapshot:
			snapshots = append(snapshots, a.Payload)
		case artifact.KindStrategicBet:
			bets = append(bets, a.Payload)
		}
	}

	coverage := ComputeCoverage(payloads, now)

	compressed, stats := s.Heuristics.Compressor().Compress(ops)

	baseFields := make([]artifact.Document, len(compressed))
	for i, op := range compressed {
		baseFields[i] = op.Fields
	}
	assumptions := DeriveAssumptions(baseFields)

	levers := make([]DecisionLever, len(assumptions))
	for i, a := range assumptions {
		quadrant := Classify(a)
		levers[i] = DecisionLever{
			AssumptionID: a.ID,
			Quadrant:     quadrant,
			Priority:     ActionPriority(quadrant),
		}
	}
	sort.SliceStable(levers, func(i, j int) bool {
		return levers[i].Priority < levers[j].Priority
	})

	readout := SelectReadout(ReadoutInput{
		Opportunities: compressed,
		Coverage:      coverage,
		Assumptions:   assumptions,
		Bets:          bets,
	})

	return &Result{
		Coverage:      coverage,
		Opportunities: compressed,
		Stats:         stats,
		Assumptions:   assumptions,
		Levers:        levers,
		Quadrants:     ComputeQuadrantCounts(assumptions),
		Frames: Frames{
			ByJob:      FramesByJob(jobs),
			ByTheme:    FramesByTheme(ops),
			ByStruggle: FramesByStruggle(snapshots, s.Heuristics.StruggleVocabulary),
			ByBet:      FramesByBet(ops, s.Heuristics.BetFamilies),
		},
		Readout: readout,
	}
}
