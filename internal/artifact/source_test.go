package artifact

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleDataPath(t *testing.T) string {
	t.Helper()
	return filepath.Join("..", "..", "data", "sample_artifacts.json")
}

func TestStaticFileSourceFetchFiltersByProject(t *testing.T) {
	source, err := NewStaticFileSource("sample", sampleDataPath(t))
	if err != nil {
		t.Fatalf("static source: %v", err)
	}

	artifacts, err := source.Fetch(context.Background(), "acme")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(artifacts) != 4 {
		t.Fatalf("expected 4 acme artifacts, got %d", len(artifacts))
	}

	kinds := map[string]bool{}
	for _, a := range artifacts {
		kinds[a.Kind] = true
		if a.Payload == nil {
			t.Errorf("artifact %s has nil payload", a.ID)
		}
	}
	for _, kind := range []string{KindJTBD, KindOpportunities, KindCompetitorSnapshot, KindStrategicBet} {
		if !kinds[kind] {
			t.Errorf("missing kind %q in fixture", kind)
		}
	}

	none, err := source.Fetch(context.Background(), "unknown-project")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no artifacts for unknown project, got %d", len(none))
	}
}

func TestStaticFileSourceRequiresExistingFile(t *testing.T) {
	if _, err := NewStaticFileSource("sample", "no/such/file.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSourceRegistryAggregates(t *testing.T) {
	static, err := NewStaticFileSource("sample", sampleDataPath(t))
	if err != nil {
		t.Fatalf("static source: %v", err)
	}
	ingest := NewIngestSource("ingest")
	ingest.Add(Artifact{ProjectID: "acme", Kind: KindStrategicBet})

	registry, err := NewSourceRegistry(static, ingest)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	artifacts, err := registry.FetchAll(context.Background(), "acme")
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(artifacts) != 5 {
		t.Fatalf("expected 4 static + 1 ingested, got %d", len(artifacts))
	}
}

func TestNewSourceRegistryRequiresSources(t *testing.T) {
	if _, err := NewSourceRegistry(); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestIngestSourceAssignsDefaults(t *testing.T) {
	ingest := NewIngestSource("")

	stored := ingest.Add(Artifact{Kind: KindOpportunities})
	if stored.ID == "" {
		t.Errorf("expected generated id")
	}
	if stored.CreatedAt.IsZero() {
		t.Errorf("expected created_at default")
	}
	if stored.Payload == nil {
		t.Errorf("expected non-nil payload")
	}
	if ingest.Name() != "ingest" {
		t.Errorf("expected default name, got %q", ingest.Name())
	}
}

func TestIngestSourceReplacesOnSameID(t *testing.T) {
	ingest := NewIngestSource("ingest")

	ingest.Add(Artifact{ID: "art-1", Kind: KindOpportunities, CreatedAt: time.Now()})
	ingest.Add(Artifact{ID: "art-1", Kind: KindJTBD, CreatedAt: time.Now()})

	artifacts, err := ingest.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected replacement, got %d artifacts", len(artifacts))
	}
	if artifacts[0].Kind != KindJTBD {
		t.Errorf("expected latest version to survive, got %q", artifacts[0].Kind)
	}
}

func TestIngestSourceFetchHonorsContext(t *testing.T) {
	ingest := NewIngestSource("ingest")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ingest.Fetch(ctx, ""); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestDecodeArtifactsToleratesPartialRecords(t *testing.T) {
	data := []byte(`[
		{"kind": "opportunities"},
		{"id": "x", "created_at": "not a timestamp", "payload": {"opportunities": []}},
		{"unexpected_field": true}
	]`)

	artifacts, err := decodeArtifacts(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("partial records must be kept, got %d", len(artifacts))
	}
	for _, a := range artifacts {
		if a.Payload == nil {
			t.Errorf("expected non-nil payload for %+v", a)
		}
	}
}

func TestDecodeArtifactsRejectsInvalidJSON(t *testing.T) {
	if _, err := decodeArtifacts([]byte(`{not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
