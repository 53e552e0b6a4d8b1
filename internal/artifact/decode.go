package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type rawArtifact struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Kind      string         `json:"kind"`
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Payload   map[string]any `json:"payload"`
}

// decodeArtifacts parses a JSON array of artifact envelopes. Unknown fields and
// missing metadata are tolerated: schema drift is expected from upstream, and a
// half-formed artifact still carries usable evidence.
func decodeArtifacts(data []byte) ([]Artifact, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raws []rawArtifact
	if err := decoder.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	artifacts := make([]Artifact, 0, len(raws))
	for _, r := range raws {
		var created time.Time
		if r.CreatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
				created = ts
			}
		}
		payload := r.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		artifacts = append(artifacts, Artifact{
			ID:        r.ID,
			ProjectID: r.ProjectID,
			Kind:      r.Kind,
			Version:   r.Version,
			CreatedAt: created,
			Payload:   Document(payload),
		})
	}

	return artifacts, nil
}
