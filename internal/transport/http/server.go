package transporthttp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"lensbackend/internal/artifact"
	"lensbackend/internal/config"
	"lensbackend/internal/synthesis"
)

type Server struct {
	synth          *synthesis.Synthesizer
	ingest         *artifact.IngestSource
	defaultProject string
}

func NewServer(synth *synthesis.Synthesizer, cfg config.Config, ingest *artifact.IngestSource) *Server {
	return &Server{
		synth:          synth,
		ingest:         ingest,
		defaultProject: cfg.DefaultProject,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/synthesis", s.handleSynthesis)
	mux.HandleFunc("/artifacts", s.handleIngest)
	mux.HandleFunc("/swagger/openapi.yaml", serveSwaggerYAML)
	mux.HandleFunc("/swagger", serveSwaggerUI)
	mux.HandleFunc("/swagger/", serveSwaggerUI)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleSynthesis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	project := r.URL.Query().Get("project")
	if project == "" {
		project = s.defaultProject
	}

	// An explicit "now" keeps recency labels reproducible across calls,
	// e.g. when re-rendering a stored readout.
	now := time.Now().UTC()
	if v := r.URL.Query().Get("now"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			now = parsed.UTC()
		}
	}

	result, err := s.synth.Run(ctx, project, now)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := map[string]any{
		"as_of":  now,
		"result": result,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// nothing we can do; connection likely closed
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.ingest == nil {
		s.writeError(w, http.StatusServiceUnavailable, "ingest disabled")
		return
	}

	var payload struct {
		ID        string         `json:"id"`
		ProjectID string         `json:"project_id"`
		Kind      string         `json:"kind"`
		Version   string         `json:"version"`
		CreatedAt string         `json:"created_at"`
		Payload   map[string]any `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Kind) == "" {
		s.writeError(w, http.StatusBadRequest, "kind is required")
		return
	}

	var created time.Time
	if payload.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
			created = parsed
		}
	}

	doc := payload.Payload
	if doc == nil {
		doc = map[string]any{}
	}

	stored := s.ingest.Add(artifact.Artifact{
		ID:        payload.ID,
		ProjectID: payload.ProjectID,
		Kind:      payload.Kind,
		Version:   payload.Version,
		CreatedAt: created,
		Payload:   artifact.Document(doc),
	})

	response := map[string]any{
		"status":     "accepted",
		"id":         stored.ID,
		"created_at": stored.CreatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(response)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
