package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Source defines a pluggable provider capable of serving artifacts for a project.
type Source interface {
	Name() string
	Fetch(ctx context.Context, projectID string) ([]Artifact, error)
}

// SourceRegistry keeps track of available sources and enables simple configuration.
type SourceRegistry struct {
	sources []Source
}

// NewSourceRegistry builds a registry with the provided sources.
func NewSourceRegistry(sources ...Source) (*SourceRegistry, error) {
	if len(sources) == 0 {
		return nil, errors.New("artifact: at least one source is required")
	}
	return &SourceRegistry{sources: sources}, nil
}

// Add registers a new source instance.
func (r *SourceRegistry) Add(source Source) {
	r.sources = append(r.sources, source)
}

// FetchAll aggregates artifacts from each registered source.
func (r *SourceRegistry) FetchAll(ctx context.Context, projectID string) ([]Artifact, error) {
	var results []Artifact
	for _, src := range r.sources {
		artifacts, err := src.Fetch(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("fetch from %s: %w", src.Name(), err)
		}
		results = append(results, artifacts...)
	}
	return results, nil
}

// StaticFileSource serves artifact documents from a JSON file.
type StaticFileSource struct {
	name string
	path string
}

// NewStaticFileSource returns a new StaticFileSource referencing the given file.
func NewStaticFileSource(name, path string) (*StaticFileSource, error) {
	if name == "" {
		return nil, errors.New("static source requires a name")
	}
	if path == "" {
		return nil, errors.New("static source requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("static source: %w", err)
	}
	return &StaticFileSource{name: name, path: path}, nil
}

// Name returns the source name.
func (s *StaticFileSource) Name() string { return s.name }

// Fetch reads the JSON file and filters artifacts by project.
func (s *StaticFileSource) Fetch(ctx context.Context, projectID string) ([]Artifact, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read static file %s: %w", s.path, err)
	}

	artifacts, err := decodeArtifacts(raw)
	if err != nil {
		return nil, fmt.Errorf("decode static file %s: %w", s.path, err)
	}

	return filterProject(artifacts, projectID), nil
}

// filterProject keeps artifacts for the given project. An empty project ID
// matches everything, which keeps single-project deployments friction-free.
func filterProject(artifacts []Artifact, projectID string) []Artifact {
	if projectID == "" {
		return artifacts
	}
	var filtered []Artifact
	for _, a := range artifacts {
		if a.ProjectID == projectID {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
