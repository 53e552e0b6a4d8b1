package artifact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IngestSource stores ad-hoc artifacts submitted via the API.
type IngestSource struct {
	name      string
	mu        sync.RWMutex
	artifacts []Artifact
}

// NewIngestSource constructs an empty ingest source.
func NewIngestSource(name string) *IngestSource {
	if name == "" {
		name = "ingest"
	}
	return &IngestSource{name: name}
}

// Name returns the source identifier.
func (s *IngestSource) Name() string { return s.name }

// Add registers an artifact in the ingest source, generating defaults when missing.
func (s *IngestSource) Add(a Artifact) Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Payload == nil {
		a.Payload = Document{}
	}

	// Replace existing record with same ID if found.
	for idx := range s.artifacts {
		if s.artifacts[idx].ID == a.ID {
			s.artifacts[idx] = a
			return s.artifacts[idx]
		}
	}

	s.artifacts = append(s.artifacts, a)
	return a
}

// Fetch returns artifacts for the requested project.
func (s *IngestSource) Fetch(ctx context.Context, projectID string) ([]Artifact, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Artifact, len(s.artifacts))
	copy(snapshot, s.artifacts)
	return filterProject(snapshot, projectID), nil
}
