package artifact

import "time"

// Known artifact kinds produced by the upstream generation process. The list is
// advisory: unknown kinds are stored and served untouched.
const (
	KindJTBD               = "jtbd"
	KindOpportunities      = "opportunities"
	KindCompetitorSnapshot = "competitor_snapshot"
	KindStrategicBet       = "strategic_bet"
)

// Artifact wraps one versioned document produced upstream. The payload shape
// differs across versions, so it is kept opaque and read through Document
// accessors.
type Artifact struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Kind      string    `json:"kind"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Payload   Document  `json:"payload"`
}

// Opportunities extracts the opportunity records carried by the artifact
// payload, trying the field names used by the known payload versions.
func (a Artifact) Opportunities() []Document {
	return a.Payload.Docs("opportunities", "items", "records")
}

// Jobs extracts the jobs-to-be-done records carried by the artifact payload.
func (a Artifact) Jobs() []Document {
	return a.Payload.Docs("jobs", "jtbd", "items")
}
